package storage

import (
	"context"
	"database/sql"
	"fmt"

	"systemos/internal/engine"
)

type EventRepo struct {
	db *DB
}

func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

// Append writes the events in one transaction.
func (r *EventRepo) Append(ctx context.Context, userID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}
	q := r.db.rebind(`INSERT INTO event_log (user_id, kind, message, created_at) VALUES (?, ?, ?, ?)`)
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return fmt.Errorf("event prepare: %w", err)
		}
		defer stmt.Close()
		for _, ev := range events {
			if _, err := stmt.ExecContext(ctx, userID, string(ev.Kind), ev.Message, ev.At.UTC()); err != nil {
				return fmt.Errorf("event insert: %w", err)
			}
		}
		return nil
	})
}

// Recent returns the newest events first.
func (r *EventRepo) Recent(ctx context.Context, userID string, limit int) ([]EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.db.rebind(`
		SELECT id, user_id, kind, message, created_at
		FROM event_log
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("event list: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var ev EventRecord
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Kind, &ev.Message, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("event scan: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event rows: %w", err)
	}
	return out, nil
}

// CountByKind counts the user's logged events of one kind.
func (r *EventRepo) CountByKind(ctx context.Context, userID string, kind engine.EventKind) (int, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`
		SELECT COUNT(*)
		FROM event_log
		WHERE user_id = ? AND kind = ?
	`), userID, string(kind))
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("event count: %w", err)
	}
	return n, nil
}
