// ABOUTME: Company list search and sorting for presentation layers
// ABOUTME: Shared by the web list, terminal UI, CLI, and MCP tools
package rollup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/stoneledger/models"
)

// SortField names a sortable company column.
type SortField string

const (
	SortByName       SortField = "name"
	SortByOrderCount SortField = "orderCount"
	SortByTotalValue SortField = "totalValueCents"
	SortByLastOrder  SortField = "lastOrderDate"
)

// ListOptions control FilterCompanies.
type ListOptions struct {
	Query     string
	SortField SortField
	Ascending bool
	Limit     int
}

// ParseSortField accepts a field name; empty means total value.
func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.TrimSpace(s)) {
	case "", SortByTotalValue:
		return SortByTotalValue, nil
	case SortByName:
		return SortByName, nil
	case SortByOrderCount:
		return SortByOrderCount, nil
	case SortByLastOrder:
		return SortByLastOrder, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// ParseDirection accepts "asc" or "desc"; empty means descending.
func ParseDirection(s string) (ascending bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return false, nil
	case "asc":
		return true, nil
	}
	return false, fmt.Errorf("unknown sort direction %q", s)
}

// FilterCompanies returns a sorted copy of companies whose name contains the
// query, case-insensitively. The input slice is not modified.
func FilterCompanies(companies []models.Company, opts ListOptions) []models.Company {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	out := make([]models.Company, 0, len(companies))
	for _, c := range companies {
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		out = append(out, c)
	}

	field := opts.SortField
	if field == "" {
		field = SortByTotalValue
	}
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareCompanies(out[i], out[j], field)
		if opts.Ascending {
			return cmp < 0
		}
		return cmp > 0
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func compareCompanies(a, b models.Company, field SortField) int {
	switch field {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByOrderCount:
		return compareInt(int64(a.OrderCount), int64(b.OrderCount))
	case SortByLastOrder:
		return strings.Compare(a.LastOrderDate, b.LastOrderDate)
	default:
		return compareInt(a.TotalValueCents, b.TotalValueCents)
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
