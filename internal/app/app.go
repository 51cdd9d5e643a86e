package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"eventgallery/internal/config"
	"eventgallery/internal/logger"
	"eventgallery/internal/metrics"
	"eventgallery/internal/query"
	"eventgallery/internal/repository/sqlite"
	"eventgallery/internal/route"
	"eventgallery/internal/service/session"
	"eventgallery/internal/service/storage"
)

// ShutdownTimeout bounds how long in-flight HTTP requests may take on exit.
const ShutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  *logger.Logger
	db      *sqlite.DB
	journal *sqlite.JournalRepository
	buffer  *storage.JournalBuffer
	metrics *metrics.Metrics
	manager *session.Manager
	server  *http.Server
}

func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	journal := sqlite.NewJournalRepository(db)
	buffer := storage.NewJournalBuffer(cfg, log, journal)

	m := metrics.New()
	m.Register(&metrics.BufferCollector{Buffer: buffer})

	fetcher := query.NewClient(cfg.QueryEndpoint, cfg.QueryTimeout)
	manager, err := session.NewManager(cfg, fetcher, buffer, m, m, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := &App{
		config:  cfg,
		logger:  log,
		db:      db,
		journal: journal,
		buffer:  buffer,
		metrics: m,
		manager: manager,
	}
	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           route.SetupRoutes(manager, cfg, log, journal, buffer, m),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled, then shuts everything down in order:
// HTTP server, gallery sessions, final journal flush, database.
func (a *App) Run(ctx context.Context) error {
	bufferCtx, stopBuffer := context.WithCancel(context.Background())
	var bg sync.WaitGroup
	bg.Add(1)
	go func() {
		defer bg.Done()
		a.buffer.Run(bufferCtx)
	}()

	a.logger.Info("🚀 Event Gallery")
	a.logger.Info("📍 URL: http://localhost:%d", a.config.Port)
	a.logger.Info("🔎 Query endpoint: %s", a.config.QueryEndpoint)
	a.logger.Info("📁 Media: %s", a.config.MediaDirectory)
	if a.config.RefreshEnabled {
		a.logger.Info("🔁 Refresh every %v", a.config.RefreshInterval)
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down...")
	case err := <-serveErr:
		runErr = fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server forced to shutdown: %v", err)
	}

	a.manager.Shutdown()
	stopBuffer()
	bg.Wait()

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing database: %v", err)
	}
	return runErr
}
