package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(14)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	sectionStyle = lipgloss.NewStyle().Bold(true)

	orderKindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	noteKindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func (m Model) renderDetailView() string {
	if m.detail == nil {
		return ""
	}
	d := m.detail

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(d.Company.Name)))
	s.WriteString("\n\n")

	s.WriteString(m.renderField("Orders", fmt.Sprintf("%d", d.Company.OrderCount)))
	s.WriteString(m.renderField("Total value", rollup.FormatCents(d.Company.TotalValueCents)))
	s.WriteString(m.renderField("Last order", rollup.FormatDate(d.Company.LastOrderDate)))

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("CONTACTS"))
	s.WriteString("\n")
	if len(d.Contacts) == 0 {
		s.WriteString(mutedStyle.Render("  none"))
		s.WriteString("\n")
	}
	for _, c := range d.Contacts {
		line := "  " + c.FullName
		if c.Email != "" {
			line += " <" + c.Email + ">"
		}
		if c.Phone != "" {
			line += " " + c.Phone
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("TIMELINE"))
	s.WriteString("\n")
	if len(d.Timeline) == 0 {
		s.WriteString(mutedStyle.Render("  no activity"))
		s.WriteString("\n")
	}
	for _, e := range m.visibleTimeline() {
		s.WriteString(renderEvent(e))
		s.WriteString("\n")
	}

	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) visibleTimeline() []models.TimelineEvent {
	events := m.detail.Timeline
	if m.detailOffset < len(events) {
		events = events[m.detailOffset:]
	}
	limit := m.height - 14 - len(m.detail.Contacts)
	if limit < 3 {
		limit = 3
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

func renderEvent(e models.TimelineEvent) string {
	kind := noteKindStyle.Render("note ")
	if e.Kind == models.EventOrder {
		kind = orderKindStyle.Render("order")
	}

	line := fmt.Sprintf("  %-12s %s %s", rollup.FormatDate(e.Date), kind, e.Title)
	if e.ValueCents > 0 {
		line += " " + rollup.FormatCents(e.ValueCents)
	}
	if e.Author != "" {
		line += mutedStyle.Render(" by " + e.Author)
	}
	if e.Summary != "" {
		line += "\n" + mutedStyle.Render("      "+e.Summary)
	}
	return line
}

func (m Model) renderField(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{"↑/↓: scroll", "esc: back", "q: quit"}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
		m.detail = nil
	case "up", "k":
		if m.detailOffset > 0 {
			m.detailOffset--
		}
	case "down", "j":
		if m.detail != nil && m.detailOffset < len(m.detail.Timeline)-1 {
			m.detailOffset++
		}
	}
	return m, nil
}
