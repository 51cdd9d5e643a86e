package storage

import (
	"context"
	"sync"
	"time"

	"eventgallery/internal/config"
	"eventgallery/internal/logger"
	"eventgallery/internal/model"
	"eventgallery/internal/repository"
)

// JournalBuffer buffers finished query cycles in memory and periodically
// flushes them to the journal.
type JournalBuffer struct {
	records  []model.QueryRecord
	limit    int
	interval time.Duration
	dropped  int
	mu       sync.Mutex
	logger   *logger.Logger
	journal  repository.QueryJournal
}

// NewJournalBuffer creates a JournalBuffer writing to journal.
func NewJournalBuffer(config *config.Config, logger *logger.Logger, journal repository.QueryJournal) *JournalBuffer {
	limit := config.JournalBufferLimit
	if limit <= 0 {
		limit = 100
	}
	interval := config.JournalFlushInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &JournalBuffer{
		records:  make([]model.QueryRecord, 0, limit),
		limit:    limit,
		interval: interval,
		logger:   logger,
		journal:  journal,
	}
}

// Run flushes on a ticker until ctx is done, then flushes one last time.
func (s *JournalBuffer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Flush()
		case <-ctx.Done():
			s.Flush()
			return
		}
	}
}

// Add appends a record. When the buffer is full the oldest record is dropped.
func (s *JournalBuffer) Add(record model.QueryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) >= s.limit {
		s.records = s.records[1:]
		s.dropped++
		s.logger.Warning("Journal buffer full (%d), dropping oldest record", s.limit)
	}
	s.records = append(s.records, record)
	s.logger.Debug("Journal buffer size: %d/%d", len(s.records), s.limit)
}

// Flush writes buffered records to the journal. Records stay buffered when
// the write fails so the next tick can retry.
func (s *JournalBuffer) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 || s.journal == nil {
		return
	}

	if err := s.journal.InsertBatch(s.records); err != nil {
		s.logger.Error("Error saving query cycles to database: %v", err)
		return
	}

	s.logger.Info("Flushed %d query cycles to journal", len(s.records))
	s.records = make([]model.QueryRecord, 0, s.limit)
}

func (s *JournalBuffer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Dropped counts records lost because the buffer was full.
func (s *JournalBuffer) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
