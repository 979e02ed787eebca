// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Browses the company rollup, contacts, and fetch run history
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// EntityType represents the tab being viewed
type EntityType int

const (
	EntityCompanies EntityType = iota
	EntityContacts
	EntityRuns
)

var tabNames = []string{"Companies", "Contacts", "Runs"}

// DataSource produces a fresh payload per call.
type DataSource interface {
	Run(ctx context.Context) (*models.Payload, error)
}

// RunLister returns recent fetch runs, newest first.
type RunLister func(limit int) ([]models.FetchRun, error)

type payloadMsg struct {
	payload *models.Payload
	err     error
}

type runsMsg struct {
	runs []models.FetchRun
	err  error
}

// Model is the main bubbletea model
type Model struct {
	ctx        context.Context
	data       DataSource
	listRuns   RunLister
	viewMode   ViewMode
	entityType EntityType

	payload   *models.Payload
	fetchRuns []models.FetchRun
	loading   bool
	err       error

	// List view state
	selectedRow int
	search      textinput.Model
	searching   bool
	sortField   rollup.SortField
	ascending   bool

	// Detail view state
	detail       *rollup.CompanyDetail
	detailOffset int

	width  int
	height int
}

// NewModel creates a new TUI model. listRuns may be nil when no run log is
// configured.
func NewModel(ctx context.Context, data DataSource, listRuns RunLister) Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "

	return Model{
		ctx:        ctx,
		data:       data,
		listRuns:   listRuns,
		viewMode:   ViewList,
		entityType: EntityCompanies,
		loading:    true,
		search:     search,
		sortField:  rollup.SortByTotalValue,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.loadRuns())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		payload, err := m.data.Run(m.ctx)
		return payloadMsg{payload: payload, err: err}
	}
}

func (m Model) loadRuns() tea.Cmd {
	if m.listRuns == nil {
		return nil
	}
	return func() tea.Msg {
		runs, err := m.listRuns(50)
		return runsMsg{runs: runs, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case payloadMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.payload = msg.payload
			m.clampSelection()
		}
		// A fetch adds a run to the log.
		return m, m.loadRuns()
	case runsMsg:
		if msg.err == nil {
			m.fetchRuns = msg.runs
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

// Run starts the full-screen program.
func Run(ctx context.Context, data DataSource, listRuns RunLister) error {
	p := tea.NewProgram(NewModel(ctx, data, listRuns), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)
