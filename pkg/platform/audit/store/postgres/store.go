// Package postgres persists audit events in a single append-only table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"intake/pkg/platform/audit"
)

// Store implements audit.Store on database/sql. The driver (lib/pq) is
// registered by the binary that opens the connection.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	detail         JSONB,
	client_context TEXT NOT NULL DEFAULT '',
	request_id     TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the audit table when it does not exist yet. Kept here
// rather than in a migration tool because the subsystem owns exactly one table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

// Append writes one audit event. There is deliberately no update or delete
// counterpart.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return fmt.Errorf("marshal audit detail: %w", err)
	}

	const query = `
		INSERT INTO audit_events (id, name, detail, client_context, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Name,
		detail,
		event.ClientContext,
		event.RequestID,
		event.Timestamp.UTC(),
	); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// CountSince reports how many events with the given name were recorded at or
// after the cutoff. Used by operational checks, not by the enquiry flow.
func (s *Store) CountSince(ctx context.Context, name string, cutoff time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM audit_events WHERE name = $1 AND created_at >= $2`
	var count int
	if err := s.db.QueryRowContext(ctx, query, name, cutoff.UTC()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return count, nil
}
