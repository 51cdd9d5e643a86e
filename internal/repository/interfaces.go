package repository

import "eventgallery/internal/model"

// QueryJournal stores finished query cycles.
type QueryJournal interface {
	// Create operations
	InsertBatch(records []model.QueryRecord) error

	// Read operations
	Recent(limit int) ([]model.QueryRecord, error)
	Stats() (*model.JournalStats, error)

	// Delete operations
	DeleteAll() error
}
