package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"eventgallery/internal/dto"
	"eventgallery/internal/logger"
	"eventgallery/internal/metrics"
	"eventgallery/internal/repository"
)

const (
	// DefaultDiagnosticsLimit is how many recent query cycles are listed by default.
	DefaultDiagnosticsLimit = 50
	MaxDiagnosticsLimit     = 500
)

// SessionCounter reports how many gallery sessions are live.
type SessionCounter interface {
	Count() int
}

// GetDiagnosticsHandler returns journal statistics and the most recent query cycles.
func GetDiagnosticsHandler(journal repository.QueryJournal, buffer metrics.BufferStats, sessions SessionCounter,
	logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := atoiDefault(r.URL.Query().Get("limit"), DefaultDiagnosticsLimit)
		if limit > MaxDiagnosticsLimit {
			limit = MaxDiagnosticsLimit
		}

		stats, err := journal.Stats()
		if err != nil {
			logger.Error("Error reading journal statistics: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		recent, err := journal.Recent(limit)
		if err != nil {
			logger.Error("Error querying journal: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := dto.Diagnostics{
			Stats:  stats,
			Recent: recent,
		}
		if buffer != nil {
			data.Buffered = buffer.Len()
			data.Dropped = buffer.Dropped()
		}
		if sessions != nil {
			data.Sessions = sessions.Count()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// ClearDiagnosticsHandler deletes every journaled query cycle.
func ClearDiagnosticsHandler(journal repository.QueryJournal, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := journal.DeleteAll(); err != nil {
			logger.Error("Error clearing journal: %v", err)
			http.Error(w, "Unable to clear journal", http.StatusInternalServerError)
			return
		}

		logger.Info("Query journal cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// HealthHandler reports that the server is up.
func HealthHandler(sessions SessionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "sessions": sessions.Count()})
	}
}

// atoiDefault converts string to int or returns a default when conversion fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
