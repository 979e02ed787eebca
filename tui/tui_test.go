// ABOUTME: Tests for the TUI model
// ABOUTME: Drives Update with payload and key messages and checks the rendered views
package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/stoneledger/models"
)

type fakeData struct {
	payload *models.Payload
	err     error
}

func (f *fakeData) Run(context.Context) (*models.Payload, error) {
	return f.payload, f.err
}

func samplePayload() *models.Payload {
	p := models.NewPayload()
	p.Companies = []models.Company{
		{ID: "a1", Name: "Acme Inc", OrderCount: 2, TotalValueCents: 15000, LastOrderDate: "2024-01-05"},
		{ID: "b2", Name: "Bolt LLC", OrderCount: 1, TotalValueCents: 500, LastOrderDate: "2024-02-01"},
	}
	p.Orders = []models.Order{
		{ID: "o1", CompanyID: "a1", OrderName: "Order1", ValueCents: 10000, StartDate: "2024-01-02"},
		{ID: "o3", CompanyID: "b2", OrderName: "Bolt1", ValueCents: 500, StartDate: "2024-02-01"},
	}
	p.Contacts = []models.Contact{
		{ID: "c1", CompanyID: "b2", CompanyName: "Bolt LLC", FullName: "Sam Bolt"},
	}
	p.Notes = []models.Note{{ID: "n1", CompanyID: "b2", Date: "2024-02-03", Contact: "Sam", Content: "Renewal talk"}}
	return p
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func loaded(t *testing.T) Model {
	t.Helper()
	data := &fakeData{payload: samplePayload()}
	m := NewModel(context.Background(), data, nil)
	msg := m.load()()
	return send(t, m, msg)
}

func TestLoadingState(t *testing.T) {
	m := NewModel(context.Background(), &fakeData{payload: samplePayload()}, nil)
	assert.Contains(t, m.View(), "Fetching sheets")
}

func TestLoadError(t *testing.T) {
	m := NewModel(context.Background(), &fakeData{err: errors.New("quota exceeded")}, nil)
	m = send(t, m, m.load()())
	assert.Contains(t, m.View(), "quota exceeded")
}

func TestCompanyListAndDetail(t *testing.T) {
	m := loaded(t)

	view := m.View()
	assert.Contains(t, view, "Acme Inc")
	assert.Contains(t, view, "$150.00")
	assert.Less(t, strings.Index(view, "Acme Inc"), strings.Index(view, "Bolt LLC"))

	m = send(t, m, key("down"), key("down"))
	assert.Equal(t, 1, m.selectedRow)

	m = send(t, m, key("enter"))
	require.Equal(t, ViewDetail, m.viewMode)
	require.NotNil(t, m.detail)
	assert.Equal(t, "b2", m.detail.Company.ID)

	view = m.View()
	assert.Contains(t, view, "BOLT LLC")
	assert.Contains(t, view, "Sam Bolt")
	assert.Contains(t, view, "Note with Sam")
	assert.Contains(t, view, "Renewal talk")

	m = send(t, m, key("esc"))
	assert.Equal(t, ViewList, m.viewMode)
	assert.Nil(t, m.detail)
}

func TestSearchFiltersCompanies(t *testing.T) {
	m := loaded(t)

	m = send(t, m, key("/"))
	require.True(t, m.searching)

	m = send(t, m, key("b"), key("o"), key("q"))
	assert.Equal(t, "boq", m.search.Value())
	assert.True(t, m.searching, "typing q while searching must not quit")

	m = send(t, m, key("esc"))
	assert.False(t, m.searching)
	assert.Empty(t, m.search.Value())

	m = send(t, m, key("/"), key("b"), key("o"), key("enter"))
	assert.False(t, m.searching)
	companies := m.visibleCompanies()
	require.Len(t, companies, 1)
	assert.Equal(t, "Bolt LLC", companies[0].Name)
}

func TestSortCycle(t *testing.T) {
	m := loaded(t)

	m = send(t, m, key("s"))
	assert.Equal(t, "orderCount", string(m.sortField))

	m = send(t, m, key("s"), key("o"))
	assert.Equal(t, "lastOrderDate", string(m.sortField))
	assert.True(t, m.ascending)
	assert.Equal(t, "Acme Inc", m.visibleCompanies()[0].Name)
}

func TestContactsTabOpensCompany(t *testing.T) {
	m := loaded(t)

	m = send(t, m, key("tab"))
	assert.Equal(t, EntityContacts, m.entityType)
	assert.Contains(t, m.View(), "Sam Bolt")

	m = send(t, m, key("enter"))
	require.Equal(t, ViewDetail, m.viewMode)
	assert.Equal(t, "b2", m.detail.Company.ID)
}

func TestRunsTab(t *testing.T) {
	started := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	lister := func(limit int) ([]models.FetchRun, error) {
		return []models.FetchRun{{
			ID: "r1", Mode: models.RunModeFull, Status: models.RunStatusError,
			StartedAt: started, FinishedAt: started.Add(120 * time.Millisecond),
			Sources: []models.SourceFetch{{Entity: "orders", Range: "Orders!A2:F500", Error: "quota exceeded"}},
		}}, nil
	}

	m := NewModel(context.Background(), &fakeData{payload: samplePayload()}, lister)
	m = send(t, m, m.load()())
	m = send(t, m, m.loadRuns()())
	m = send(t, m, key("tab"), key("tab"))

	require.Equal(t, EntityRuns, m.entityType)
	view := m.View()
	assert.Contains(t, view, "120ms")
	assert.Contains(t, view, "quota exceeded")
}

func TestRunsTabWithoutLog(t *testing.T) {
	m := loaded(t)
	m = send(t, m, key("tab"), key("tab"))
	assert.Contains(t, m.View(), "Run log disabled")
}

func TestQuit(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
