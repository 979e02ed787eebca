// ABOUTME: Contact row mapping
// ABOUTME: Derives contact identity from email, phone, or company and name
package mapper

import (
	"strings"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/normalize"
)

func MapContact(s Schema, row Row) models.Contact {
	company := s.Text(row, FieldCompanyName)
	first := s.Text(row, FieldFirstName)
	last := s.Text(row, FieldLastName)
	email := s.Text(row, FieldEmail)
	phone := s.Text(row, FieldPhone)
	phoneRaw := s.Text(row, FieldPhoneRaw)

	fullName := s.Text(row, FieldFullName)
	if fullName == "" {
		fullName = strings.TrimSpace(first + " " + last)
	}
	if phone == "" {
		phone = phoneRaw
	}
	if phoneRaw == "" {
		phoneRaw = phone
	}

	id := s.Text(row, FieldID)
	if id == "" {
		id = normalize.GenerateID(firstNonEmpty(email, phone, company+"|"+fullName))
	}

	return models.Contact{
		ID:          id,
		CompanyID:   normalize.CompanyID(company),
		CompanyName: company,
		FirstName:   first,
		LastName:    last,
		FullName:    fullName,
		Email:       email,
		Phone:       phone,
		PhoneRaw:    phoneRaw,
	}
}

// MapContacts maps rows in order and drops contacts without a company name.
func MapContacts(s Schema, rows []Row) []models.Contact {
	contacts := make([]models.Contact, 0, len(rows))
	for _, row := range rows {
		contact := MapContact(s, row)
		if contact.CompanyName == "" {
			continue
		}
		contacts = append(contacts, contact)
	}
	return contacts
}
