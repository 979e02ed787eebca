// ABOUTME: Operational records of pipeline runs
// ABOUTME: One FetchRun per invocation, one SourceFetch per sheet range read
package models

import "time"

// Fetch run modes.
const (
	RunModeFull  = "full"
	RunModeDebug = "debug"
)

// Fetch run and source statuses.
const (
	RunStatusOK    = "ok"
	RunStatusError = "error"
)

// FetchRun describes one pipeline invocation. Entity data is never stored,
// only counts and outcome.
type FetchRun struct {
	ID         string        `json:"id"`
	Mode       string        `json:"mode"`
	Status     string        `json:"status"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Orders     int           `json:"orders"`
	Contacts   int           `json:"contacts"`
	Notes      int           `json:"notes"`
	Companies  int           `json:"companies"`
	Sources    []SourceFetch `json:"sources,omitempty"`
}

// Duration is the wall time of the run.
func (r FetchRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SourceFetch is the outcome of reading one range.
type SourceFetch struct {
	Entity        string `json:"entity"`
	SpreadsheetID string `json:"spreadsheet_id"`
	Range         string `json:"range"`
	Rows          int    `json:"rows"`
	Error         string `json:"error,omitempty"`
}

// SourceState is the latest known health of one configured source.
type SourceState struct {
	Entity        string     `json:"entity"`
	SpreadsheetID string     `json:"spreadsheet_id"`
	Range         string     `json:"range"`
	Status        string     `json:"status"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
