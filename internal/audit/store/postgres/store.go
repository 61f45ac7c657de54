// Package postgres persists audit events in an audit_events table. The
// database/sql handle is opened in main with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"campusdesk/internal/audit"
)

type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL-backed audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema creates the audit_events table if it does not exist. Called once at
// startup; not a migration system.
func (s *Store) Schema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS audit_events (
			id         UUID PRIMARY KEY,
			timestamp  TIMESTAMPTZ NOT NULL,
			actor      TEXT NOT NULL,
			action     TEXT NOT NULL,
			category   TEXT NOT NULL,
			request_id TEXT NOT NULL DEFAULT '',
			client_ip  TEXT NOT NULL DEFAULT '',
			details    JSONB
		)
	`)
	if err != nil {
		return fmt.Errorf("create audit_events table: %w", err)
	}
	return nil
}

// Append inserts an audit event. Idempotent on the event ID.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var details []byte
	if len(event.Details) > 0 {
		var err error
		details, err = json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
	}

	query := `
		INSERT INTO audit_events (id, timestamp, actor, action, category, request_id, client_ip, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		event.Actor,
		string(event.Action),
		string(event.Category),
		event.RequestID,
		event.ClientIP,
		details,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// List returns events with timestamp >= since, oldest first.
func (s *Store) List(ctx context.Context, since time.Time) ([]audit.Event, error) {
	query := `
		SELECT id, timestamp, actor, action, category, request_id, client_ip, details
		FROM audit_events
		WHERE $1::timestamptz IS NULL OR timestamp >= $1
		ORDER BY timestamp ASC
	`

	var sinceArg any
	if !since.IsZero() {
		sinceArg = since
	}

	rows, err := s.db.QueryContext(ctx, query, sinceArg)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			action   string
			category string
			details  []byte
		)
		if err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.Actor,
			&action,
			&category,
			&event.RequestID,
			&event.ClientIP,
			&details,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Action = audit.Action(action)
		event.Category = audit.EventCategory(category)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &event.Details); err != nil {
				return nil, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
