// ABOUTME: Headline totals for the dashboard
// ABOUTME: Counts companies, orders, contacts, notes and revenue from a payload
package rollup

import "github.com/harperreed/stoneledger/models"

type Totals struct {
	Companies       int   `json:"companies"`
	Orders          int   `json:"orders"`
	Contacts        int   `json:"contacts"`
	Notes           int   `json:"notes"`
	TotalValueCents int64 `json:"totalValueCents"`
}

// Summarize computes totals from the company rollup, as the list view does.
func Summarize(p *models.Payload) Totals {
	t := Totals{
		Companies: len(p.Companies),
		Contacts:  len(p.Contacts),
		Notes:     len(p.Notes),
	}
	for _, c := range p.Companies {
		t.Orders += c.OrderCount
		t.TotalValueCents += c.TotalValueCents
	}
	return t
}
