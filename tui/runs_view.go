// ABOUTME: TUI view for fetch run history
// ABOUTME: Shows recent pipeline runs with status, counts, and failing sources
package tui

import (
	"fmt"
	"strings"

	"github.com/harperreed/stoneledger/models"
)

func (m Model) renderRunsView() string {
	if m.listRuns == nil {
		return mutedStyle.Render("Run log disabled. Set database.path to record runs.")
	}
	if len(m.fetchRuns) == 0 {
		return mutedStyle.Render("No runs recorded yet.")
	}

	var s strings.Builder
	for i, run := range m.fetchRuns {
		if i > m.tableHeight() {
			break
		}

		if i == m.selectedRow {
			s.WriteString("▶ ")
		} else {
			s.WriteString("  ")
		}

		status := okStyle.Render("✓ ok   ")
		if run.Status != models.RunStatusOK {
			status = errorStyle.Render("✗ error")
		}
		fmt.Fprintf(&s, "%s %s %-5s %4dms  %d companies, %d orders, %d contacts, %d notes",
			run.StartedAt.Local().Format("Jan 2 15:04:05"),
			status,
			run.Mode,
			run.Duration().Milliseconds(),
			run.Companies, run.Orders, run.Contacts, run.Notes)
		s.WriteString("\n")

		for _, src := range run.Sources {
			if src.Error == "" {
				continue
			}
			s.WriteString(errorStyle.Render(fmt.Sprintf("      %s %s: %s", src.Entity, src.Range, src.Error)))
			s.WriteString("\n")
		}
	}
	return s.String()
}
