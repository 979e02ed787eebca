// ABOUTME: Company detail view assembly
// ABOUTME: Gathers one company's orders, contacts, notes and timeline from a payload
package rollup

import "github.com/harperreed/stoneledger/models"

type CompanyDetail struct {
	Company  models.Company         `json:"company"`
	Orders   []models.Order         `json:"orders"`
	Contacts []models.Contact       `json:"contacts"`
	Notes    []models.Note          `json:"notes"`
	Timeline []models.TimelineEvent `json:"timeline"`
}

// DetailFor resolves ref (a company id or name) and collects everything
// known about that company.
func DetailFor(p *models.Payload, ref string) (*CompanyDetail, bool) {
	company, ok := p.FindCompany(ref)
	if !ok {
		return nil, false
	}

	d := &CompanyDetail{
		Company:  *company,
		Orders:   nonNil(p.OrdersFor(company.ID)),
		Contacts: nonNil(p.ContactsFor(company.ID)),
		Notes:    nonNil(p.NotesFor(company.ID)),
	}
	d.Timeline = Timeline(company.ID, d.Orders, d.Notes)
	return d, true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
