package route

import (
	"net/http"

	"eventgallery/internal/config"
	"eventgallery/internal/handler"
	"eventgallery/internal/logger"
	"eventgallery/internal/metrics"
	"eventgallery/internal/middleware"
	"eventgallery/internal/repository"
	"eventgallery/internal/service/session"
)

// SetupRoutes registers the page, media, websocket and diagnostic endpoints
// and wraps the mux with recovery and request logging.
func SetupRoutes(manager *session.Manager, cfg *config.Config, logger *logger.Logger,
	journal repository.QueryJournal, buffer metrics.BufferStats, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Page and static files
	mux.HandleFunc("GET /{$}", handler.IndexHandler(logger))
	mux.Handle("GET /static/", handler.StaticHandler())

	// Media
	mux.HandleFunc("GET "+config.ImageBasePath, handler.ImageHandler(cfg, logger))
	mux.HandleFunc("GET "+config.VideoBasePath, handler.VideoHandler(cfg, logger))

	// Gallery sessions
	mux.HandleFunc("GET /ws", handler.GalleryWebsocketHandler(manager, logger))

	// Diagnostics
	mux.HandleFunc("GET /api/diagnostics", handler.GetDiagnosticsHandler(journal, buffer, manager, logger))
	mux.HandleFunc("DELETE /api/diagnostics", handler.ClearDiagnosticsHandler(journal, logger))
	mux.HandleFunc("GET /healthz", handler.HealthHandler(manager))
	mux.Handle("GET /metrics", m.Handler())

	// Log endpoints
	mux.HandleFunc("GET /logs/{level}", handler.ShowLogsHandler(logger))
	mux.HandleFunc("POST /logs/{level}/clear", handler.ClearLogsHandler(logger))

	return middleware.Chain(mux,
		middleware.RecoverMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)
}
