package sqlite

import (
	"fmt"

	"eventgallery/internal/model"
)

// TopPromptsLimit caps how many prompts Stats reports.
const TopPromptsLimit = 5

// JournalRepository implements repository.QueryJournal for SQLite.
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new SQLite query journal.
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// InsertBatch adds multiple records in a single transaction.
func (r *JournalRepository) InsertBatch(records []model.QueryRecord) error {
	if len(records) == 0 {
		return nil
	}

	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO query_cycles (session_id, seq, prompt, trigger_kind, outcome, events, cards, error, issued_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.SessionID, int64(rec.Seq), rec.Prompt, string(rec.Trigger), string(rec.Outcome),
			rec.Events, rec.Cards, rec.Error, rec.IssuedAt.UTC(), rec.CompletedAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert query record: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns the newest records first.
func (r *JournalRepository) Recent(limit int) ([]model.QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, session_id, seq, prompt, trigger_kind, outcome, events, cards, error, issued_at, completed_at
		FROM query_cycles ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var records []model.QueryRecord
	for rows.Next() {
		var rec model.QueryRecord
		var seq int64
		var trigger, outcome string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &seq, &rec.Prompt, &trigger, &outcome,
			&rec.Events, &rec.Cards, &rec.Error, &rec.IssuedAt, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query record: %w", err)
		}
		rec.Seq = uint64(seq)
		rec.Trigger = model.Trigger(trigger)
		rec.Outcome = model.Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats aggregates the whole journal.
func (r *JournalRepository) Stats() (*model.JournalStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &model.JournalStats{
		PerOutcome: make(map[model.Outcome]int),
		PerTrigger: make(map[model.Trigger]int),
		TopPrompts: make(map[string]int),
	}

	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM query_cycles`).Scan(&stats.TotalCycles); err != nil {
		return nil, fmt.Errorf("failed to count query cycles: %w", err)
	}

	counts := func(query string, add func(key string, n int)) error {
		rows, err := r.db.Conn().Query(query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var key string
			var n int
			if err := rows.Scan(&key, &n); err != nil {
				return err
			}
			add(key, n)
		}
		return rows.Err()
	}

	if err := counts(`SELECT outcome, COUNT(*) FROM query_cycles GROUP BY outcome`, func(k string, n int) {
		stats.PerOutcome[model.Outcome(k)] = n
	}); err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}
	if err := counts(`SELECT trigger_kind, COUNT(*) FROM query_cycles GROUP BY trigger_kind`, func(k string, n int) {
		stats.PerTrigger[model.Trigger(k)] = n
	}); err != nil {
		return nil, fmt.Errorf("failed to count triggers: %w", err)
	}
	top := fmt.Sprintf(`SELECT prompt, COUNT(*) AS n FROM query_cycles GROUP BY prompt ORDER BY n DESC, prompt LIMIT %d`, TopPromptsLimit)
	if err := counts(top, func(k string, n int) {
		stats.TopPrompts[k] = n
	}); err != nil {
		return nil, fmt.Errorf("failed to count prompts: %w", err)
	}

	return stats, nil
}

// DeleteAll removes every record from the journal.
func (r *JournalRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM query_cycles`); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}
