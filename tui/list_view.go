package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

var sortCycle = []rollup.SortField{
	rollup.SortByTotalValue,
	rollup.SortByOrderCount,
	rollup.SortByLastOrder,
	rollup.SortByName,
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("STONELEDGER"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch {
	case m.loading && m.payload == nil:
		s.WriteString(mutedStyle.Render("Fetching sheets..."))
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		if m.searching || m.search.Value() != "" {
			s.WriteString(m.search.View())
			s.WriteString("\n")
		}
		s.WriteString(m.renderTable())
	}
	s.WriteString("\n\n")

	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, tab := range tabNames {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	switch m.entityType {
	case EntityCompanies:
		return m.renderCompaniesTable()
	case EntityContacts:
		return m.renderContactsTable()
	case EntityRuns:
		return m.renderRunsView()
	}
	return ""
}

func (m Model) visibleCompanies() []models.Company {
	if m.payload == nil {
		return nil
	}
	return rollup.FilterCompanies(m.payload.Companies, rollup.ListOptions{
		Query:     m.search.Value(),
		SortField: m.sortField,
		Ascending: m.ascending,
	})
}

func (m Model) visibleContacts() []models.Contact {
	if m.payload == nil {
		return nil
	}
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	var out []models.Contact
	for _, c := range m.payload.Contacts {
		if query != "" &&
			!strings.Contains(strings.ToLower(c.FullName), query) &&
			!strings.Contains(strings.ToLower(c.CompanyName), query) &&
			!strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (m Model) rowCount() int {
	switch m.entityType {
	case EntityCompanies:
		return len(m.visibleCompanies())
	case EntityContacts:
		return len(m.visibleContacts())
	case EntityRuns:
		return len(m.fetchRuns)
	}
	return 0
}

func (m *Model) clampSelection() {
	n := m.rowCount()
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) tableHeight() int {
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderCompaniesTable() string {
	columns := []table.Column{
		{Title: "Company", Width: 30},
		{Title: "Orders", Width: 8},
		{Title: "Total", Width: 14},
		{Title: "Last order", Width: 14},
	}

	var rows []table.Row
	for _, c := range m.visibleCompanies() {
		rows = append(rows, table.Row{
			c.Name,
			strconv.Itoa(c.OrderCount),
			rollup.FormatCents(c.TotalValueCents),
			rollup.FormatDate(c.LastOrderDate),
		})
	}
	return m.renderRows(columns, rows)
}

func (m Model) renderContactsTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Phone", Width: 16},
		{Title: "Company", Width: 20},
	}

	var rows []table.Row
	for _, c := range m.visibleContacts() {
		rows = append(rows, table.Row{c.FullName, c.Email, c.Phone, c.CompanyName})
	}
	return m.renderRows(columns, rows)
}

func (m Model) renderRows(columns []table.Column, rows []table.Row) string {
	if len(rows) == 0 {
		return mutedStyle.Render("Nothing to show")
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) renderListHelp() string {
	help := []string{"↑/↓: navigate", "tab: switch", "/: search"}
	if m.entityType == EntityCompanies {
		dir := "desc"
		if m.ascending {
			dir = "asc"
		}
		help = append(help, fmt.Sprintf("s: sort (%s %s)", m.sortField, dir), "o: order")
	}
	if m.entityType != EntityRuns {
		help = append(help, "enter: view")
	}
	help = append(help, "r: refresh", "q: quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % EntityType(len(tabNames))
		m.selectedRow = 0
	case "shift+tab":
		m.entityType = (m.entityType + EntityType(len(tabNames)) - 1) % EntityType(len(tabNames))
		m.selectedRow = 0
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "s":
		m.sortField = nextSort(m.sortField)
		m.selectedRow = 0
	case "o":
		m.ascending = !m.ascending
		m.selectedRow = 0
	case "r":
		m.loading = true
		return m, m.load()
	case "enter":
		return m.openSelected()
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selectedRow = 0
	return m, cmd
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	if m.payload == nil {
		return m, nil
	}

	var ref string
	switch m.entityType {
	case EntityCompanies:
		companies := m.visibleCompanies()
		if m.selectedRow < len(companies) {
			ref = companies[m.selectedRow].ID
		}
	case EntityContacts:
		contacts := m.visibleContacts()
		if m.selectedRow < len(contacts) {
			ref = contacts[m.selectedRow].CompanyID
		}
	}
	if ref == "" {
		return m, nil
	}

	detail, ok := rollup.DetailFor(m.payload, ref)
	if !ok {
		// Contacts may name a company that has no orders.
		return m, nil
	}
	m.detail = detail
	m.detailOffset = 0
	m.viewMode = ViewDetail
	return m, nil
}

func nextSort(current rollup.SortField) rollup.SortField {
	for i, f := range sortCycle {
		if f == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}
