// ABOUTME: Tests for the pipeline orchestrator
// ABOUTME: End-to-end scenario, failure propagation, idempotence, and debug mode
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/stoneledger/mapper"
	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/sheets"
)

const (
	ordersSheet   = "orders-sheet"
	contactsSheet = "contacts-sheet"
	notesSheet    = "notes-sheet"

	ordersRange   = "Orders!A2:F500"
	contactsRange = "Final List!A2:G500"
	notesRange    = "Notes!A2:F500"
)

type memoryRecorder struct {
	mu   sync.Mutex
	runs []*models.FetchRun
}

func (m *memoryRecorder) RecordRun(_ context.Context, run *models.FetchRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func specs() []SourceSpec {
	return []SourceSpec{
		{
			Entity:        mapper.EntityOrders,
			SpreadsheetID: ordersSheet,
			Range:         ordersRange,
			DebugRange:    "Orders!A1:F10",
			Schema:        mapper.MustSchema(mapper.EntityOrders, mapper.DefaultOrderColumns),
		},
		{
			Entity:        mapper.EntityContacts,
			SpreadsheetID: contactsSheet,
			Range:         contactsRange,
			Schema:        mapper.MustSchema(mapper.EntityContacts, mapper.DefaultContactColumns),
		},
		{
			Entity:        mapper.EntityNotes,
			SpreadsheetID: notesSheet,
			Range:         notesRange,
			Schema:        mapper.MustSchema(mapper.EntityNotes, mapper.DefaultNoteColumns),
		},
	}
}

func scenarioSource() *sheets.StaticSource {
	return sheets.NewStaticSource().
		Set(ordersSheet, ordersRange, [][]any{
			{"Acme Inc", "$100.00", "Order1", "http://x", "1/2/24", "1/10/24"},
			{"acme inc", 50, "Order2", "", "1/5/24", "1/12/24"},
		}).
		Set(contactsSheet, contactsRange, [][]any{
			{"jo@acme.com", "555", "Acme Inc", "US", "Jo", "Doe"},
			{"nobody@x.com", "", ""},
		}).
		Set(notesSheet, notesRange, [][]any{})
}

func TestRunEndToEndScenario(t *testing.T) {
	p := New(scenarioSource(), specs(), WithLogger(quietLogger()))

	payload, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, payload.Companies, 1)
	c := payload.Companies[0]
	assert.Equal(t, "Acme Inc", c.Name)
	assert.Equal(t, 2, c.OrderCount)
	assert.Equal(t, int64(15000), c.TotalValueCents)
	assert.Equal(t, "2024-01-05", c.LastOrderDate)

	require.Len(t, payload.Orders, 2)
	assert.NotEqual(t, payload.Orders[0].ID, payload.Orders[1].ID)
	assert.Equal(t, payload.Orders[0].CompanyID, payload.Orders[1].CompanyID)

	require.Len(t, payload.Contacts, 1)
	assert.Equal(t, "Jo Doe", payload.Contacts[0].FullName)
	assert.Empty(t, payload.Notes)
}

func TestRunIsIdempotent(t *testing.T) {
	p := New(scenarioSource(), specs(), WithLogger(quietLogger()))

	first, err := p.Run(context.Background())
	require.NoError(t, err)
	second, err := p.Run(context.Background())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRunFailsWholeInvocationOnFetchError(t *testing.T) {
	quota := errors.New("quota exceeded")
	src := scenarioSource().Fail(contactsSheet, contactsRange, quota)
	rec := &memoryRecorder{}

	p := New(src, specs(), WithLogger(quietLogger()), WithRecorder(rec))
	payload, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, quota)

	var fetchErr *SourceFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, mapper.EntityContacts, fetchErr.Entity)
	assert.Equal(t, contactsSheet, fetchErr.SpreadsheetID)
	assert.Equal(t, contactsRange, fetchErr.Range)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, models.RunStatusError, rec.runs[0].Status)
	assert.Contains(t, rec.runs[0].Error, "quota exceeded")
}

func TestRunWithUnconfiguredEntities(t *testing.T) {
	onlyOrders := specs()[:1]
	p := New(scenarioSource(), onlyOrders, WithLogger(quietLogger()))

	payload, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, payload.Orders, 2)
	assert.NotNil(t, payload.Contacts)
	assert.Empty(t, payload.Contacts)
	assert.NotNil(t, payload.Notes)
}

func TestRunWithNoSources(t *testing.T) {
	p := New(sheets.NewStaticSource(), nil, WithLogger(quietLogger()))
	payload, err := p.Run(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"companies":[],"orders":[],"contacts":[],"notes":[]}`, string(data))
}

func TestRunRecordsSuccess(t *testing.T) {
	rec := &memoryRecorder{}
	p := New(scenarioSource(), specs(), WithLogger(quietLogger()), WithRecorder(rec))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rec.runs, 1)
	run := rec.runs[0]
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, models.RunModeFull, run.Mode)
	assert.Equal(t, models.RunStatusOK, run.Status)
	assert.Equal(t, 2, run.Orders)
	assert.Equal(t, 1, run.Contacts)
	assert.Equal(t, 1, run.Companies)
	require.Len(t, run.Sources, 3)
	assert.Equal(t, 2, run.Sources[0].Rows)
	assert.Equal(t, 2, run.Sources[1].Rows)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))
}

func TestFetchRawUsesDebugRanges(t *testing.T) {
	header := [][]any{{"Company", "Value"}, {"Acme Inc", "$1"}}
	src := scenarioSource().Set(ordersSheet, "Orders!A1:F10", header)

	p := New(src, specs(), WithLogger(quietLogger()))
	raw, err := p.FetchRaw(context.Background())
	require.NoError(t, err)

	assert.Equal(t, header, raw["rawOrders"])
	assert.Len(t, raw["rawContacts"], 2)
	assert.Empty(t, raw["rawNotes"])
	assert.Equal(t, 0, src.Calls(ordersSheet, ordersRange))
}

func TestBuildSkipsFilteredRows(t *testing.T) {
	p := New(sheets.NewStaticSource(), specs(), WithLogger(quietLogger()))
	payload := p.Build(RawRows{
		mapper.EntityOrders: {
			{"", "$5"},
			{"Bolt", "$5"},
		},
		mapper.EntityNotes: {
			{"", "Bolt", "", "2/1/24", "", ""},
			{"", "Bolt", "", "2/1/24", "", "Met"},
		},
	})

	assert.Len(t, payload.Orders, 1)
	assert.Len(t, payload.Notes, 1)
	require.Len(t, payload.Companies, 1)
	assert.Equal(t, int64(500), payload.Companies[0].TotalValueCents)
}

func TestRawKey(t *testing.T) {
	assert.Equal(t, "rawOrders", RawKey(mapper.EntityOrders))
	assert.Equal(t, "rawContacts", RawKey(mapper.EntityContacts))
	assert.Equal(t, "rawNotes", RawKey(mapper.EntityNotes))
}

func TestSourceFetchErrorMessage(t *testing.T) {
	err := &SourceFetchError{Entity: mapper.EntityOrders, SpreadsheetID: "s", Range: "Orders!A2:F500", Err: errors.New("boom")}
	assert.Contains(t, err.Error(), "orders")
	assert.Contains(t, err.Error(), "Orders!A2:F500")
	assert.Contains(t, err.Error(), "boom")
}
