// Package audit records console actions (creates, deletes, checkouts) in a
// local Postgres table. The trail is optional: with no database configured
// the recorder is nil and every call becomes a no-op.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one recorded console action.
type Entry struct {
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// Recorder writes entries into audit_logs.
type Recorder struct {
	pool *pgxpool.Pool
}

// NewRecorder returns a Recorder backed by pool.
func NewRecorder(pool *pgxpool.Pool) *Recorder {
	return &Recorder{pool: pool}
}

// Record persists the entry. A nil receiver drops it silently.
func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	if r == nil || r.pool == nil {
		return nil
	}
	if entry.Action == "" || entry.Entity == "" {
		return errors.New("audit: entry requires action and entity")
	}
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return err
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO audit_logs (actor, action, entity, entity_id, meta, occurred_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.Actor, entry.Action, entry.Entity, entry.EntityID, meta, entry.At)
	return err
}
