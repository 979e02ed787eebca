// ABOUTME: Fetch run log operations
// ABOUTME: Records pipeline runs with their per-range outcomes and lists recent runs
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/stoneledger/models"
)

// RunLog stores a summary of every pipeline run. It never stores entity data.
type RunLog struct {
	db *sql.DB
}

func NewRunLog(db *sql.DB) *RunLog {
	return &RunLog{db: db}
}

// RecordRun writes the run, its source fetches, and the resulting source
// state in one transaction.
func (l *RunLog) RecordRun(ctx context.Context, run *models.FetchRun) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO fetch_runs (id, mode, status, error, started_at, finished_at, orders, contacts, notes, companies)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Mode, run.Status, nullString(run.Error), run.StartedAt, run.FinishedAt,
		run.Orders, run.Contacts, run.Notes, run.Companies)
	if err != nil {
		return fmt.Errorf("failed to insert fetch run: %w", err)
	}

	for i, src := range run.Sources {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO source_fetches (id, run_id, position, entity, spreadsheet_id, range_spec, rows, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), run.ID, i, src.Entity, src.SpreadsheetID, src.Range, src.Rows, nullString(src.Error))
		if err != nil {
			return fmt.Errorf("failed to insert source fetch: %w", err)
		}

		if err := updateSourceState(ctx, tx, run, src); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fetch run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, with their sources.
func ListRuns(db *sql.DB, limit int) ([]models.FetchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT id, mode, status, error, started_at, finished_at, orders, contacts, notes, companies
		FROM fetch_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []models.FetchRun
	for rows.Next() {
		var run models.FetchRun
		var runErr sql.NullString
		err := rows.Scan(
			&run.ID,
			&run.Mode,
			&run.Status,
			&runErr,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Orders,
			&run.Contacts,
			&run.Notes,
			&run.Companies,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fetch run: %w", err)
		}
		run.Error = runErr.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetch runs: %w", err)
	}

	for i := range runs {
		sources, err := getSourceFetches(db, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Sources = sources
	}

	return runs, nil
}

func getSourceFetches(db *sql.DB, runID string) ([]models.SourceFetch, error) {
	rows, err := db.Query(`
		SELECT entity, spreadsheet_id, range_spec, rows, error
		FROM source_fetches
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query source fetches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sources []models.SourceFetch
	for rows.Next() {
		var src models.SourceFetch
		var srcErr sql.NullString
		if err := rows.Scan(&src.Entity, &src.SpreadsheetID, &src.Range, &src.Rows, &srcErr); err != nil {
			return nil, fmt.Errorf("failed to scan source fetch: %w", err)
		}
		src.Error = srcErr.String
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source fetches: %w", err)
	}
	return sources, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
