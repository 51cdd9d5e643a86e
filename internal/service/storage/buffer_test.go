package storage

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"eventgallery/internal/config"
	"eventgallery/internal/logger"
	"eventgallery/internal/model"
)

type fakeJournal struct {
	mu      sync.Mutex
	batches [][]model.QueryRecord
	err     error
}

func (f *fakeJournal) InsertBatch(records []model.QueryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]model.QueryRecord(nil), records...))
	return nil
}

func (f *fakeJournal) Recent(int) ([]model.QueryRecord, error) { return nil, nil }
func (f *fakeJournal) Stats() (*model.JournalStats, error) { return &model.JournalStats{}, nil }
func (f *fakeJournal) DeleteAll() error { return nil }

func (f *fakeJournal) flushed() []model.QueryRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.QueryRecord
	for _, b := range f.batches {
		all = append(all, b...)
	}
	return all
}

func newTestBuffer(limit int, interval time.Duration, journal *fakeJournal) *JournalBuffer {
	cfg := &config.Config{JournalBufferLimit: limit, JournalFlushInterval: interval}
	return NewJournalBuffer(cfg, logger.New(io.Discard, io.Discard), journal)
}

func TestJournalBuffer_Flush(t *testing.T) {
	journal := &fakeJournal{}
	buf := newTestBuffer(10, time.Hour, journal)

	buf.Add(model.QueryRecord{Seq: 1, Prompt: "cars"})
	buf.Add(model.QueryRecord{Seq: 2, Prompt: "dogs"})
	buf.Flush()

	if got := journal.flushed(); len(got) != 2 || got[0].Seq != 1 || got[1].Seq != 2 {
		t.Errorf("unexpected flushed records %+v", got)
	}
	if buf.Len() != 0 {
		t.Errorf("buffer should be empty after flush, got %d", buf.Len())
	}

	buf.Flush()
	if len(journal.batches) != 1 {
		t.Errorf("empty flush must not write, got %d batches", len(journal.batches))
	}
}

func TestJournalBuffer_DropsOldest(t *testing.T) {
	journal := &fakeJournal{}
	buf := newTestBuffer(2, time.Hour, journal)

	for seq := uint64(1); seq <= 3; seq++ {
		buf.Add(model.QueryRecord{Seq: seq})
	}
	if buf.Dropped() != 1 {
		t.Errorf("expected one dropped record, got %d", buf.Dropped())
	}
	buf.Flush()
	got := journal.flushed()
	if len(got) != 2 || got[0].Seq != 2 || got[1].Seq != 3 {
		t.Errorf("expected seq 2 and 3 to survive, got %+v", got)
	}
}

func TestJournalBuffer_KeepsRecordsOnError(t *testing.T) {
	journal := &fakeJournal{err: errors.New("disk full")}
	buf := newTestBuffer(10, time.Hour, journal)

	buf.Add(model.QueryRecord{Seq: 1})
	buf.Flush()
	if buf.Len() != 1 {
		t.Fatalf("record should stay buffered after a failed flush, got %d", buf.Len())
	}

	journal.mu.Lock()
	journal.err = nil
	journal.mu.Unlock()
	buf.Flush()
	if len(journal.flushed()) != 1 {
		t.Error("record should be written on retry")
	}
}

func TestJournalBuffer_RunFlushesOnShutdown(t *testing.T) {
	journal := &fakeJournal{}
	buf := newTestBuffer(10, time.Hour, journal)
	buf.Add(model.QueryRecord{Seq: 7})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		buf.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := journal.flushed(); len(got) != 1 || got[0].Seq != 7 {
		t.Errorf("expected final flush, got %+v", got)
	}
}

func TestJournalBuffer_RunFlushesOnTick(t *testing.T) {
	journal := &fakeJournal{}
	buf := newTestBuffer(10, 10*time.Millisecond, journal)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go buf.Run(ctx)

	buf.Add(model.QueryRecord{Seq: 1})
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(journal.flushed()) == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("ticker did not flush the buffer")
}
