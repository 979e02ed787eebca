// ABOUTME: Company rollup over the order stream
// ABOUTME: Folds orders into per-company count, total value, and latest start date
package rollup

import (
	"math"
	"sort"

	"github.com/harperreed/stoneledger/models"
)

// Aggregate folds orders into companies. The first order seen for a company
// fixes its display name. lastOrderDate is the greatest startDate by plain
// string comparison, which is only meaningful for zero-padded ISO dates.
// The result is sorted by total value, descending; ties keep first-seen order.
func Aggregate(orders []models.Order) []models.Company {
	index := make(map[string]int)
	companies := make([]models.Company, 0)

	for _, order := range orders {
		if order.CompanyName == "" {
			continue
		}

		if i, ok := index[order.CompanyID]; ok {
			c := &companies[i]
			c.OrderCount++
			c.TotalValueCents = addCents(c.TotalValueCents, order.ValueCents)
			if order.StartDate > c.LastOrderDate {
				c.LastOrderDate = order.StartDate
			}
			continue
		}

		index[order.CompanyID] = len(companies)
		companies = append(companies, models.Company{
			ID:              order.CompanyID,
			Name:            order.CompanyName,
			OrderCount:      1,
			TotalValueCents: order.ValueCents,
			LastOrderDate:   order.StartDate,
		})
	}

	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].TotalValueCents > companies[j].TotalValueCents
	})

	return companies
}

// addCents sums non-negative cent amounts, saturating at MaxInt64.
func addCents(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
