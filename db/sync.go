// ABOUTME: Database operations for the source_state table
// ABOUTME: Tracks the latest fetch status of each configured sheet range
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/stoneledger/models"
)

func updateSourceState(ctx context.Context, tx *sql.Tx, run *models.FetchRun, src models.SourceFetch) error {
	var err error
	if src.Error == "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO source_state (entity, spreadsheet_id, range_spec, status, last_success_at, error_message, updated_at)
			VALUES (?, ?, ?, 'ok', ?, NULL, ?)
			ON CONFLICT(entity) DO UPDATE SET
				spreadsheet_id = excluded.spreadsheet_id,
				range_spec = excluded.range_spec,
				status = 'ok',
				last_success_at = excluded.last_success_at,
				error_message = NULL,
				updated_at = excluded.updated_at
		`, src.Entity, src.SpreadsheetID, src.Range, run.FinishedAt, run.FinishedAt)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO source_state (entity, spreadsheet_id, range_spec, status, error_message, updated_at)
			VALUES (?, ?, ?, 'error', ?, ?)
			ON CONFLICT(entity) DO UPDATE SET
				spreadsheet_id = excluded.spreadsheet_id,
				range_spec = excluded.range_spec,
				status = 'error',
				error_message = excluded.error_message,
				updated_at = excluded.updated_at
		`, src.Entity, src.SpreadsheetID, src.Range, src.Error, run.FinishedAt)
	}
	if err != nil {
		return fmt.Errorf("failed to update source state: %w", err)
	}
	return nil
}

// GetSourceState retrieves the state of one entity's source. It returns nil
// when the source has never been fetched.
func GetSourceState(db *sql.DB, entity string) (*models.SourceState, error) {
	var state models.SourceState
	var lastSuccess sql.NullTime
	var errorMessage sql.NullString

	err := db.QueryRow(`
		SELECT entity, spreadsheet_id, range_spec, status, last_success_at, error_message, updated_at
		FROM source_state
		WHERE entity = ?
	`, entity).Scan(
		&state.Entity,
		&state.SpreadsheetID,
		&state.Range,
		&state.Status,
		&lastSuccess,
		&errorMessage,
		&state.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get source state: %w", err)
	}

	if lastSuccess.Valid {
		state.LastSuccessAt = &lastSuccess.Time
	}
	if errorMessage.Valid {
		state.ErrorMessage = &errorMessage.String
	}
	return &state, nil
}

// GetAllSourceStates retrieves the state of every source ever fetched.
func GetAllSourceStates(db *sql.DB) ([]models.SourceState, error) {
	rows, err := db.Query(`
		SELECT entity, spreadsheet_id, range_spec, status, last_success_at, error_message, updated_at
		FROM source_state
		ORDER BY entity
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query source states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var states []models.SourceState
	for rows.Next() {
		var state models.SourceState
		var lastSuccess sql.NullTime
		var errorMessage sql.NullString

		err := rows.Scan(
			&state.Entity,
			&state.SpreadsheetID,
			&state.Range,
			&state.Status,
			&lastSuccess,
			&errorMessage,
			&state.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source state: %w", err)
		}

		if lastSuccess.Valid {
			state.LastSuccessAt = &lastSuccess.Time
		}
		if errorMessage.Valid {
			state.ErrorMessage = &errorMessage.String
		}
		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source states: %w", err)
	}
	return states, nil
}
