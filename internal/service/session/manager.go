package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"eventgallery/internal/config"
	"eventgallery/internal/gallery"
	"eventgallery/internal/logger"
	"eventgallery/internal/query"
)

// SessionHooks is told when sessions come and go.
type SessionHooks interface {
	SessionOpened()
	SessionClosed()
}

// Manager keeps the live sessions, one per browser connection.
type Manager struct {
	sessions map[string]*managed
	mu       sync.Mutex
	wg       sync.WaitGroup

	galleryOpts gallery.Options
	sessionOpts Options
	hooks       SessionHooks
	logger      *logger.Logger
}

type managed struct {
	session *Session
	cancel  context.CancelFunc
}

// NewManager builds a Manager from the configuration. recorder, observer and
// hooks may be nil.
func NewManager(cfg *config.Config, fetcher query.Fetcher, recorder Recorder, observer Observer, hooks SessionHooks, logger *logger.Logger) (*Manager, error) {
	strategy, err := gallery.ParseStrategy(cfg.ColorStrategy)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Manager{
		sessions: make(map[string]*managed),
		galleryOpts: gallery.Options{
			Strategy:   strategy,
			ImageBase:  config.ImageBasePath,
			VideoBase:  config.VideoBasePath,
			Location:   loc,
			ShowErrors: cfg.ShowQueryErrors,
		},
		sessionOpts: Options{
			Fetcher:         fetcher,
			Recorder:        recorder,
			Observer:        observer,
			RefreshEnabled:  cfg.RefreshEnabled,
			RefreshInterval: cfg.RefreshInterval,
			Logger:          logger,
		},
		hooks:  hooks,
		logger: logger,
	}, nil
}

// Open starts a new session. It runs until Close, Shutdown or ctx ends.
func (m *Manager) Open(ctx context.Context) (*Session, error) {
	ctrl, err := gallery.New(gallery.NewDocument(), m.galleryOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create gallery: %w", err)
	}

	id := uuid.NewString()
	sessionCtx, cancel := context.WithCancel(ctx)
	s := New(id, ctrl, m.sessionOpts)

	m.mu.Lock()
	m.sessions[id] = &managed{session: s, cancel: cancel}
	m.mu.Unlock()

	if m.hooks != nil {
		m.hooks.SessionOpened()
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		s.Run(sessionCtx)
		m.remove(id)
	}()

	m.logger.Info("Gallery session %s opened. Total: %d", id, m.Count())
	return s, nil
}

// Close stops the session with the given id.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		entry.cancel()
	}
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	entry.cancel()
	if m.hooks != nil {
		m.hooks.SessionClosed()
	}
	m.logger.Info("Gallery session %s closed. Total: %d", id, m.Count())
}

// Get returns the live session with the given id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.sessions[id]; ok {
		return entry.session
	}
	return nil
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown stops every session and waits for their loops to finish.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for _, entry := range m.sessions {
		entry.cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()
	m.logger.Info("All gallery sessions stopped")
}
