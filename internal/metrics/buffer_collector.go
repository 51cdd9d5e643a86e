package metrics

import "github.com/prometheus/client_golang/prometheus"

// BufferStats is implemented by the journal buffer.
type BufferStats interface {
	Len() int
	Dropped() int
}

var (
	bufferedDesc = prometheus.NewDesc(
		"gallery_journal_buffered",
		"Query cycles waiting to be written to the journal.",
		nil, nil,
	)
	droppedDesc = prometheus.NewDesc(
		"gallery_journal_dropped_total",
		"Query cycles dropped because the journal buffer was full.",
		nil, nil,
	)
)

// BufferCollector reads the buffer on every scrape.
type BufferCollector struct {
	Buffer BufferStats
}

func (c *BufferCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- bufferedDesc
	ch <- droppedDesc
}

func (c *BufferCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(bufferedDesc, prometheus.GaugeValue, float64(c.Buffer.Len()))
	ch <- prometheus.MustNewConstMetric(droppedDesc, prometheus.CounterValue, float64(c.Buffer.Dropped()))
}
