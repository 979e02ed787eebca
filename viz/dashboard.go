// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of revenue, top companies, and activity
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

const (
	topCompanyCount = 5
	recentCount     = 5
	// Companies without an order for this long need attention.
	dormantAfter = 90 * 24 * time.Hour
	// Orders due within this window are listed as upcoming.
	dueWindow = 14 * 24 * time.Hour
)

type DashboardStats struct {
	Totals rollup.Totals

	TopCompanies   []models.Company
	RecentActivity []ActivityItem

	// Needs attention
	DormantCompanies []DormantCompany
	UpcomingDue      []models.Order
}

type ActivityItem struct {
	Date        string
	Description string
}

type DormantCompany struct {
	Name      string
	DaysSince int
}

func GenerateDashboardStats(p *models.Payload, now time.Time) *DashboardStats {
	stats := &DashboardStats{Totals: rollup.Summarize(p)}

	// Companies are already sorted by value.
	for i, c := range p.Companies {
		if i == topCompanyCount {
			break
		}
		stats.TopCompanies = append(stats.TopCompanies, c)
	}

	var activity []ActivityItem
	for _, o := range p.Orders {
		if o.StartDate == "" {
			continue
		}
		activity = append(activity, ActivityItem{
			Date:        o.StartDate,
			Description: fmt.Sprintf("%s ordered %s (%s)", o.CompanyName, o.OrderName, rollup.FormatCents(o.ValueCents)),
		})
	}
	for _, n := range p.Notes {
		if n.Date == "" {
			continue
		}
		desc := "Note on " + n.CompanyName
		if n.Author != "" {
			desc += " by " + n.Author
		}
		activity = append(activity, ActivityItem{Date: n.Date, Description: desc})
	}
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Date > activity[j].Date
	})
	if len(activity) > recentCount {
		activity = activity[:recentCount]
	}
	stats.RecentActivity = activity

	for _, c := range p.Companies {
		last, err := time.Parse(time.DateOnly, c.LastOrderDate)
		if err != nil {
			continue
		}
		if since := now.Sub(last); since > dormantAfter {
			stats.DormantCompanies = append(stats.DormantCompanies, DormantCompany{
				Name:      c.Name,
				DaysSince: int(since.Hours() / 24),
			})
		}
	}

	for _, o := range p.Orders {
		due, err := time.Parse(time.DateOnly, o.DueDate)
		if err != nil {
			continue
		}
		if until := due.Sub(now); until >= -24*time.Hour && until <= dueWindow {
			stats.UpcomingDue = append(stats.UpcomingDue, o)
		}
	}
	sort.SliceStable(stats.UpcomingDue, func(i, j int) bool {
		return stats.UpcomingDue[i].DueDate < stats.UpcomingDue[j].DueDate
	})

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  STONELEDGER DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  🏢 %d companies  📦 %d orders  📇 %d contacts  📝 %d notes\n",
		stats.Totals.Companies, stats.Totals.Orders, stats.Totals.Contacts, stats.Totals.Notes))
	out.WriteString(fmt.Sprintf("  💰 %s total revenue\n\n", rollup.FormatCents(stats.Totals.TotalValueCents)))

	if len(stats.TopCompanies) > 0 {
		out.WriteString("TOP COMPANIES\n")
		renderTopCompanies(&out, stats.TopCompanies)
		out.WriteString("\n")
	}

	if len(stats.RecentActivity) > 0 {
		out.WriteString("RECENT ACTIVITY\n")
		for _, a := range stats.RecentActivity {
			out.WriteString(fmt.Sprintf("  %-12s %s\n", rollup.FormatDate(a.Date), a.Description))
		}
		out.WriteString("\n")
	}

	if len(stats.DormantCompanies) > 0 || len(stats.UpcomingDue) > 0 {
		out.WriteString("NEEDS ATTENTION\n")

		for _, o := range stats.UpcomingDue {
			out.WriteString(fmt.Sprintf("  ⏰ %s for %s due %s\n", o.OrderName, o.CompanyName, rollup.FormatDate(o.DueDate)))
		}

		if len(stats.DormantCompanies) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d companies - no order in 90+ days\n", len(stats.DormantCompanies)))
		}
	}

	return out.String()
}

func renderTopCompanies(out *strings.Builder, companies []models.Company) {
	// Scale bars to the largest company
	var maxValue int64 = 1
	for _, c := range companies {
		if c.TotalValueCents > maxValue {
			maxValue = c.TotalValueCents
		}
	}

	for _, c := range companies {
		barLength := int((c.TotalValueCents * 10) / maxValue)
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		name := c.Name
		if len([]rune(name)) > 20 {
			name = string([]rune(name)[:19]) + "…"
		}
		out.WriteString(fmt.Sprintf("  %-20s %s  %3d orders  %s\n",
			name, bar, c.OrderCount, rollup.FormatCents(c.TotalValueCents)))
	}
}
