package repositories

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the quote audit table if it does not exist.
// Run by cmd/dbtool and by cmd/server on startup for local runs.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotes (
		id                 TEXT PRIMARY KEY,
		distance_km        DOUBLE PRECISION NOT NULL,
		base_price         DOUBLE PRECISION NOT NULL,
		dynamic_multiplier DOUBLE PRECISION NOT NULL,
		final_price        DOUBLE PRECISION NOT NULL,
		confidence         DOUBLE PRECISION NOT NULL,
		explanation        TEXT NOT NULL,
		quoted_at          TIMESTAMPTZ NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS quotes_created_at_idx ON quotes (created_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: create quotes table: %w", err)
	}
	return nil
}
