// ABOUTME: Row-source abstraction over the spreadsheet backend
// ABOUTME: Selects Google Sheets, a CSV directory, or an in-memory source
package sheets

import (
	"context"
	"fmt"
)

// RowSource returns the rows of one range of one spreadsheet. A row is an
// ordered list of scalar cells (string, number, bool or nil).
type RowSource interface {
	FetchRows(ctx context.Context, spreadsheetID, rangeSpec string) ([][]any, error)
}

// Source kinds.
const (
	KindGoogle = "google"
	KindCSV    = "csv"
)

// Options select and configure a RowSource.
type Options struct {
	Kind string

	// Google Sheets
	Credentials Credentials
	ValueRender string

	// CSV directory
	CSVDir string
}

// New builds the RowSource described by opts.
func New(ctx context.Context, opts Options) (RowSource, error) {
	switch opts.Kind {
	case "", KindGoogle:
		clientOpts, err := opts.Credentials.ClientOptions(ctx)
		if err != nil {
			return nil, err
		}
		return NewGoogleSource(ctx, opts.ValueRender, clientOpts...)
	case KindCSV:
		if opts.CSVDir == "" {
			return nil, fmt.Errorf("csv source requires a directory")
		}
		return NewCSVSource(opts.CSVDir), nil
	}
	return nil, fmt.Errorf("unknown source kind %q", opts.Kind)
}
