// ABOUTME: Pipeline failure type
// ABOUTME: The only error that crosses the pipeline boundary
package pipeline

import (
	"fmt"

	"github.com/harperreed/stoneledger/mapper"
)

// SourceFetchError reports that a row-source read failed. No partial
// payload accompanies it.
type SourceFetchError struct {
	Entity        mapper.Entity
	SpreadsheetID string
	Range         string
	Err           error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s from sheet %s range %q: %v", e.Entity, e.SpreadsheetID, e.Range, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}
