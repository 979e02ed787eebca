// ABOUTME: Per-company timeline of orders and notes
// ABOUTME: Merges both streams into one list ordered newest first
package rollup

import (
	"sort"

	"github.com/harperreed/stoneledger/models"
)

// Timeline merges a company's orders and notes, newest first. Orders are
// dated by startDate. On equal dates orders precede notes and source order
// is kept.
func Timeline(companyID string, orders []models.Order, notes []models.Note) []models.TimelineEvent {
	events := make([]models.TimelineEvent, 0)

	for _, o := range orders {
		if o.CompanyID != companyID {
			continue
		}
		events = append(events, models.TimelineEvent{
			ID:         o.ID,
			CompanyID:  o.CompanyID,
			Kind:       models.EventOrder,
			Date:       o.StartDate,
			Title:      o.OrderName,
			Summary:    dueSummary(o),
			ValueCents: o.ValueCents,
			Link:       o.ClickupLink,
		})
	}

	for _, n := range notes {
		if n.CompanyID != companyID {
			continue
		}
		title := "Note"
		if n.Contact != "" {
			title = "Note with " + n.Contact
		}
		events = append(events, models.TimelineEvent{
			ID:        n.ID,
			CompanyID: n.CompanyID,
			Kind:      models.EventNote,
			Date:      n.Date,
			Title:     title,
			Summary:   n.Content,
			Author:    n.Author,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
	return events
}

func dueSummary(o models.Order) string {
	if o.DueDate == "" {
		return ""
	}
	return "Due " + o.DueDate
}
