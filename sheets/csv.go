// ABOUTME: CSV directory row source for offline use and fixtures
// ABOUTME: Reads <dir>/<spreadsheet id>/<tab>.csv and applies the A1 window
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVSource serves sheet exports from disk. Each tab of a spreadsheet is a
// file named after the tab inside a directory named after the spreadsheet id.
type CSVSource struct {
	dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

func (s *CSVSource) FetchRows(ctx context.Context, spreadsheetID, rangeSpec string) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := ParseA1(rangeSpec)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, spreadsheetID, r.Sheet+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet export: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return r.Window(records), nil
}
