// Package metrics exposes query cycle and session figures to Prometheus.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventgallery/internal/model"
)

type Metrics struct {
	registry *prometheus.Registry

	queries  *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
	sessions prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_queries_total",
			Help: "Query requests issued, by trigger.",
		}, []string{"trigger"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_query_outcomes_total",
			Help: "Finished query cycles, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gallery_query_duration_seconds",
			Help:    "Time from issuing a query to handling its result.",
			Buckets: prometheus.DefBuckets,
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gallery_sessions_active",
			Help: "Connected gallery sessions.",
		}),
	}
	m.registry.MustRegister(m.queries, m.outcomes, m.duration, m.sessions)
	return m
}

// Register adds an extra collector to the registry.
func (m *Metrics) Register(c prometheus.Collector) {
	m.registry.MustRegister(c)
}

func (m *Metrics) QueryIssued(trigger model.Trigger) {
	m.queries.WithLabelValues(string(trigger)).Inc()
}

func (m *Metrics) QueryFinished(outcome model.Outcome, took time.Duration) {
	m.outcomes.WithLabelValues(string(outcome)).Inc()
	m.duration.Observe(took.Seconds())
}

func (m *Metrics) SessionOpened() {
	m.sessions.Inc()
}

func (m *Metrics) SessionClosed() {
	m.sessions.Dec()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})
}
