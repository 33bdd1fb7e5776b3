package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the schema if it does not exist yet.
func runMigrations(ctx context.Context, db *sql.DB) error {
	// No UNIQUE(scope, bucket, position): a move rewrites positions one row at a
	// time and passes through duplicate states between calls.
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			scope TEXT NOT NULL,
			bucket TEXT NOT NULL,
			position INTEGER NOT NULL CHECK (position >= 0),
			title TEXT NOT NULL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_items_scope_bucket
		ON items(scope, bucket, position)
	`)
	return err
}
