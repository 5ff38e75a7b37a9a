package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"systemos/internal/engine"
)

// SnapshotRepo stores one JSON state document per user. It satisfies
// engine.Persistence.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

var _ engine.Persistence = (*SnapshotRepo)(nil)

// LoadSnapshot returns (nil, nil) when the user has no snapshot yet.
func (r *SnapshotRepo) LoadSnapshot(ctx context.Context, userID string) (*engine.State, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`SELECT state FROM snapshots WHERE user_id = ?`), userID)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot get: %w", err)
	}
	var s engine.State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	return &s, nil
}

func (r *SnapshotRepo) SaveSnapshot(ctx context.Context, userID string, s *engine.State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO snapshots (user_id, state, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET state = excluded.state, saved_at = excluded.saved_at
	`), userID, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("snapshot upsert: %w", err)
	}
	return nil
}

// SavedAt reports when the user's snapshot was last written. The zero time
// means there is none.
func (r *SnapshotRepo) SavedAt(ctx context.Context, userID string) (time.Time, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`SELECT saved_at FROM snapshots WHERE user_id = ?`), userID)
	var t time.Time
	if err := row.Scan(&t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("snapshot saved_at: %w", err)
	}
	return t, nil
}

// Delete removes the user's snapshot so the next open starts fresh.
func (r *SnapshotRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM snapshots WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("snapshot delete: %w", err)
	}
	return nil
}
