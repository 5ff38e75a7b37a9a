package storage

import (
	"context"
	"fmt"
)

func Migrate(ctx context.Context, db *DB) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.Dialect == DialectPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			user_id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		);`,
		// Drained engine events, kept as an audit trail.
		`CREATE TABLE IF NOT EXISTS event_log (
			` + idColumn + `,
			user_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_event_log_user_created ON event_log(user_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
