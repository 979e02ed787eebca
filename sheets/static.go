// ABOUTME: In-memory row source
// ABOUTME: Serves fixed rows per spreadsheet range and can simulate failures
package sheets

import (
	"context"
	"fmt"
	"sync"
)

type StaticSource struct {
	mu    sync.Mutex
	rows  map[string][][]any
	errs  map[string]error
	calls map[string]int
}

func NewStaticSource() *StaticSource {
	return &StaticSource{
		rows:  make(map[string][][]any),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func staticKey(spreadsheetID, rangeSpec string) string {
	return spreadsheetID + "/" + rangeSpec
}

// Set registers rows for a range.
func (s *StaticSource) Set(spreadsheetID, rangeSpec string, rows [][]any) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[staticKey(spreadsheetID, rangeSpec)] = rows
	return s
}

// Fail makes fetches of a range return err.
func (s *StaticSource) Fail(spreadsheetID, rangeSpec string, err error) *StaticSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[staticKey(spreadsheetID, rangeSpec)] = err
	return s
}

// Calls reports how many times a range was fetched.
func (s *StaticSource) Calls(spreadsheetID, rangeSpec string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[staticKey(spreadsheetID, rangeSpec)]
}

func (s *StaticSource) FetchRows(ctx context.Context, spreadsheetID, rangeSpec string) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := staticKey(spreadsheetID, rangeSpec)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[key]++

	if err := s.errs[key]; err != nil {
		return nil, err
	}
	rows, ok := s.rows[key]
	if !ok {
		return nil, fmt.Errorf("unable to parse range: %s", rangeSpec)
	}
	return rows, nil
}
