// Package session runs one gallery controller per connected browser.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventgallery/internal/dto"
	"eventgallery/internal/gallery"
	"eventgallery/internal/logger"
	"eventgallery/internal/model"
	"eventgallery/internal/query"
)

// Recorder receives every finished query cycle.
type Recorder interface {
	Add(record model.QueryRecord)
}

// Observer is told about issued and finished queries.
type Observer interface {
	QueryIssued(trigger model.Trigger)
	QueryFinished(outcome model.Outcome, took time.Duration)
}

type Options struct {
	Fetcher         query.Fetcher
	Recorder        Recorder // optional
	Observer        Observer // optional
	RefreshEnabled  bool
	RefreshInterval time.Duration
	Logger          *logger.Logger
}

// Session owns a Controller and is the only goroutine touching it.
// Actions, fetch results and refresh ticks are handled one at a time.
type Session struct {
	ID   string
	ctrl *gallery.Controller
	opts Options

	actions chan dto.ViewAction
	results chan gallery.Result
	updates chan dto.ViewUpdate
	done    chan struct{}

	fetches sync.WaitGroup
}

func New(id string, ctrl *gallery.Controller, opts Options) *Session {
	return &Session{
		ID:      id,
		ctrl:    ctrl,
		opts:    opts,
		actions: make(chan dto.ViewAction, 16),
		results: make(chan gallery.Result, 16),
		updates: make(chan dto.ViewUpdate, 16),
		done:    make(chan struct{}),
	}
}

// Dispatch hands an action to the loop.
func (s *Session) Dispatch(ctx context.Context, action dto.ViewAction) error {
	select {
	case <-s.done:
		return fmt.Errorf("session %s is closed", s.ID)
	default:
	}
	select {
	case s.actions <- action:
		return nil
	case <-s.done:
		return fmt.Errorf("session %s is closed", s.ID)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Updates delivers view changes. It is closed when Run returns.
func (s *Session) Updates() <-chan dto.ViewUpdate {
	return s.updates
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run is the event loop. It returns when ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer func() {
		s.fetches.Wait()
		close(s.updates)
		close(s.done)
	}()

	var tick <-chan time.Time
	if s.opts.RefreshEnabled && s.opts.RefreshInterval > 0 {
		ticker := time.NewTicker(s.opts.RefreshInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	full := dto.NewViewUpdate(s.ctrl.FullView())
	full.Session = s.ID
	s.send(ctx, full)

	for {
		select {
		case <-ctx.Done():
			return
		case action := <-s.actions:
			s.safely("action "+action.Type, func() { s.handle(ctx, action) })
		case res := <-s.results:
			s.safely("result", func() { s.apply(res) })
		case <-tick:
			s.safely("refresh", func() {
				if req, ok := s.ctrl.Refresh(); ok {
					s.fetch(ctx, req)
				}
			})
		}
		s.flush(ctx)
	}
}

func (s *Session) handle(ctx context.Context, action dto.ViewAction) {
	switch action.Type {
	case dto.ActionInput:
		s.ctrl.Input(action.Prompt)
	case dto.ActionSubmit:
		if req, ok := s.ctrl.Submit(action.Prompt); ok {
			s.fetch(ctx, req)
		}
	case dto.ActionClick:
		if !s.ctrl.Click(action.Target) {
			s.opts.Logger.Debug("Session %s: click on unknown element %q", s.ID, action.Target)
		}
	case dto.ActionTimeUpdate:
		s.ctrl.ReportPlayback(action.Paused, action.Position)
	case dto.ActionPlay:
		s.ctrl.ReportPlayback(false, action.Position)
	case dto.ActionPause:
		s.ctrl.ReportPlayback(true, action.Position)
	default:
		s.opts.Logger.Warning("Session %s: unknown action %q", s.ID, action.Type)
	}
}

// fetch runs the query in its own goroutine; the result comes back
// through the results channel.
func (s *Session) fetch(ctx context.Context, req gallery.Request) {
	if s.opts.Observer != nil {
		s.opts.Observer.QueryIssued(req.Trigger)
	}
	s.opts.Logger.Debug("Session %s: query #%d %q (%s)", s.ID, req.Seq, req.Prompt, req.Trigger)

	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()

		res := gallery.Result{Request: req}
		func() {
			defer func() {
				if r := recover(); r != nil {
					res.Err = fmt.Errorf("fetch panicked: %v", r)
				}
			}()
			res.Events, res.Err = s.opts.Fetcher.Fetch(ctx, req.Prompt)
		}()

		select {
		case s.results <- res:
		case <-ctx.Done():
		}
	}()
}

func (s *Session) apply(res gallery.Result) {
	outcome := s.ctrl.Apply(res)
	completed := time.Now()

	record := model.QueryRecord{
		SessionID:   s.ID,
		Seq:         res.Request.Seq,
		Prompt:      res.Request.Prompt,
		Trigger:     res.Request.Trigger,
		Outcome:     outcome,
		Events:      len(res.Events),
		IssuedAt:    res.Request.IssuedAt,
		CompletedAt: completed,
	}

	switch outcome {
	case model.OutcomeApplied:
		record.Cards = s.ctrl.State().Len()
		s.opts.Logger.Debug("Session %s: query #%d rendered %d cards", s.ID, res.Request.Seq, record.Cards)
	case model.OutcomeStale:
		s.opts.Logger.Debug("Session %s: dropped stale result #%d (latest #%d)", s.ID, res.Request.Seq, s.ctrl.Issued())
	case model.OutcomeFailed:
		record.Error = res.Err.Error()
		s.opts.Logger.Error("Session %s: query #%d %q failed: %v", s.ID, res.Request.Seq, res.Request.Prompt, res.Err)
	}
	if res.Err != nil && record.Error == "" {
		record.Error = res.Err.Error()
	}

	if s.opts.Recorder != nil {
		s.opts.Recorder.Add(record)
	}
	if s.opts.Observer != nil {
		s.opts.Observer.QueryFinished(outcome, record.Duration())
	}
}

func (s *Session) flush(ctx context.Context) {
	v := s.ctrl.Flush()
	if v.Empty() {
		return
	}
	s.send(ctx, dto.NewViewUpdate(v))
}

func (s *Session) send(ctx context.Context, u dto.ViewUpdate) {
	select {
	case s.updates <- u:
	case <-ctx.Done():
	}
}

// safely keeps the loop alive when a handler panics.
func (s *Session) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.opts.Logger.Error("Session %s: recovered from panic in %s: %v", s.ID, what, r)
		}
	}()
	fn()
}
