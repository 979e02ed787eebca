// ABOUTME: Note MCP tool handlers
// ABOUTME: Implements list_notes over a fresh pipeline run
package handlers

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stoneledger/models"
)

type NoteHandlers struct {
	data DataSource
}

func NewNoteHandlers(data DataSource) *NoteHandlers {
	return &NoteHandlers{data: data}
}

type ListNotesInput struct {
	Company string `json:"company,omitempty" jsonschema:"Restrict to a company id or name"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 50)"`
}

type ListNotesOutput struct {
	Notes []models.Note `json:"notes"`
}

func (h *NoteHandlers) ListNotes(ctx context.Context, _ *mcp.CallToolRequest, input ListNotesInput) (*mcp.CallToolResult, ListNotesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	payload, err := h.data.Run(ctx)
	if err != nil {
		return nil, ListNotesOutput{}, fmt.Errorf("failed to fetch sheets: %w", err)
	}

	notes := payload.Notes
	if input.Company != "" {
		company, ok := payload.FindCompany(input.Company)
		if !ok {
			return nil, ListNotesOutput{}, fmt.Errorf("company not found: %s", input.Company)
		}
		notes = payload.NotesFor(company.ID)
	}

	sorted := make([]models.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return nil, ListNotesOutput{Notes: sorted}, nil
}
