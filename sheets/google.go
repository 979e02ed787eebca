// ABOUTME: Google Sheets v4 row source
// ABOUTME: Reads value ranges with spreadsheets.values.get
package sheets

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Value render options accepted by the Sheets API.
const (
	RenderFormatted   = "FORMATTED_VALUE"
	RenderUnformatted = "UNFORMATTED_VALUE"
)

type GoogleSource struct {
	service     *sheets.Service
	valueRender string
}

// NewGoogleSource creates a Sheets API client. valueRender may be empty,
// in which case the API default (formatted strings) applies.
func NewGoogleSource(ctx context.Context, valueRender string, opts ...option.ClientOption) (*GoogleSource, error) {
	switch valueRender {
	case "", RenderFormatted, RenderUnformatted:
	default:
		return nil, fmt.Errorf("unsupported value render option %q", valueRender)
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSource{service: service, valueRender: valueRender}, nil
}

func (g *GoogleSource) FetchRows(ctx context.Context, spreadsheetID, rangeSpec string) ([][]any, error) {
	call := g.service.Spreadsheets.Values.Get(spreadsheetID, rangeSpec).Context(ctx)
	if g.valueRender != "" {
		call = call.ValueRenderOption(g.valueRender)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	log.Debug("fetched sheet range", "sheet", spreadsheetID, "range", rangeSpec, "rows", len(resp.Values))
	if resp.Values == nil {
		return [][]any{}, nil
	}
	return resp.Values, nil
}
