// ABOUTME: Database schema definitions
// ABOUTME: Tables for fetch runs, per-range fetch outcomes, and latest source state
package db

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS fetch_runs (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	orders INTEGER NOT NULL DEFAULT 0,
	contacts INTEGER NOT NULL DEFAULT 0,
	notes INTEGER NOT NULL DEFAULT 0,
	companies INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_fetch_runs_started_at ON fetch_runs(started_at);

CREATE TABLE IF NOT EXISTS source_fetches (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	entity TEXT NOT NULL,
	spreadsheet_id TEXT NOT NULL,
	range_spec TEXT NOT NULL,
	rows INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	FOREIGN KEY (run_id) REFERENCES fetch_runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_source_fetches_run_id ON source_fetches(run_id);

CREATE TABLE IF NOT EXISTS source_state (
	entity TEXT PRIMARY KEY,
	spreadsheet_id TEXT NOT NULL,
	range_spec TEXT NOT NULL,
	status TEXT NOT NULL,
	last_success_at DATETIME,
	error_message TEXT,
	updated_at DATETIME NOT NULL
);
`

// InitSchema creates all tables if they don't exist.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
