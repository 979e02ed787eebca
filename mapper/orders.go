// ABOUTME: Order row mapping
// ABOUTME: Converts order sheet rows into typed orders, dropping rows with no company
package mapper

import (
	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/normalize"
)

// MapOrder converts one row. The result may lack a company name; callers
// filter with MapOrders.
func MapOrder(s Schema, row Row) models.Order {
	company := s.Text(row, FieldCompanyName)
	orderName := s.Text(row, FieldOrderName)
	link := s.Text(row, FieldLink)

	order := models.Order{
		ID:          normalize.GenerateID(firstNonEmpty(link, orderName)),
		CompanyID:   normalize.CompanyID(company),
		CompanyName: company,
		OrderName:   orderName,
		ValueCents:  normalize.ParseCurrency(s.Cell(row, FieldValue)),
		ClickupLink: link,
		StartDate:   normalize.ParseDate(s.Text(row, FieldStartDate)),
		DueDate:     normalize.ParseDate(s.Text(row, FieldDueDate)),
	}
	if s.Has(FieldTurnaroundDays) {
		order.TurnaroundDays = normalize.ParseInt(s.Cell(row, FieldTurnaroundDays))
	}
	return order
}

// MapOrders maps rows in order and drops orders without a company name.
func MapOrders(s Schema, rows []Row) []models.Order {
	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order := MapOrder(s, row)
		if order.CompanyName == "" {
			continue
		}
		orders = append(orders, order)
	}
	return orders
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
