package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"eventgallery/internal/config"
)

type countingHooks struct{ opened, closed atomic.Int32 }

func (h *countingHooks) SessionOpened() { h.opened.Add(1) }
func (h *countingHooks) SessionClosed() { h.closed.Add(1) }

func testConfig() *config.Config {
	return &config.Config{
		ColorStrategy:   config.ColorStrategyGrouped,
		DisplayTimeZone: "UTC",
		RefreshEnabled:  false,
		RefreshInterval: time.Minute,
	}
}

func TestManager_OpenCloseShutdown(t *testing.T) {
	hooks := &countingHooks{}
	m, err := NewManager(testConfig(), &instantFetcher{}, nil, nil, hooks, testLogger())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	ctx := context.Background()
	a, err := m.Open(ctx)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	b, err := m.Open(ctx)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if a.ID == b.ID || a.ID == "" {
		t.Errorf("expected distinct session ids, got %q and %q", a.ID, b.ID)
	}
	if m.Count() != 2 || m.Get(a.ID) != a {
		t.Errorf("expected both sessions registered, count %d", m.Count())
	}

	m.Close(a.ID)
	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("closed session did not stop")
	}

	m.Shutdown()
	if m.Count() != 0 {
		t.Errorf("expected no sessions after shutdown, got %d", m.Count())
	}
	if hooks.opened.Load() != 2 || hooks.closed.Load() != 2 {
		t.Errorf("expected 2 opened and 2 closed, got %d/%d", hooks.opened.Load(), hooks.closed.Load())
	}
	if m.Get(b.ID) != nil {
		t.Error("session should be gone after shutdown")
	}
}

func TestNewManager_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ColorStrategy = "rainbow"
	if _, err := NewManager(cfg, &instantFetcher{}, nil, nil, nil, testLogger()); err == nil {
		t.Error("expected error for unknown color strategy")
	}

	cfg = testConfig()
	cfg.DisplayTimeZone = "Mars/Olympus"
	if _, err := NewManager(cfg, &instantFetcher{}, nil, nil, nil, testLogger()); err == nil {
		t.Error("expected error for unknown time zone")
	}
}
