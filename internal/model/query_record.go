package model

import "time"

// Trigger tells what started a query cycle.
type Trigger string

const (
	TriggerUser    Trigger = "user"
	TriggerRefresh Trigger = "refresh"
)

// Outcome is how a finished query cycle was handled by the gallery.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeStale   Outcome = "stale"
	OutcomeFailed  Outcome = "failed"
)

// QueryRecord is one journaled query cycle.
type QueryRecord struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Seq         uint64    `json:"seq"`
	Prompt      string    `json:"prompt"`
	Trigger     Trigger   `json:"trigger"`
	Outcome     Outcome   `json:"outcome"`
	Events      int       `json:"events"`
	Cards       int       `json:"cards"`
	Error       string    `json:"error,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Duration is the time between issuing the request and handling its result.
func (r QueryRecord) Duration() time.Duration {
	return r.CompletedAt.Sub(r.IssuedAt)
}

// JournalStats contains aggregate figures about journaled query cycles.
type JournalStats struct {
	TotalCycles int             `json:"total_cycles"`
	PerOutcome  map[Outcome]int `json:"per_outcome"`
	PerTrigger  map[Trigger]int `json:"per_trigger"`
	TopPrompts  map[string]int  `json:"top_prompts"`
}
