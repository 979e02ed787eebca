// ABOUTME: Data models for StoneLedger entities
// ABOUTME: Defines Order, Contact, Note, Company, TimelineEvent and the dashboard payload
package models

import "strings"

// Order is a unit of purchased work read from the orders sheet.
type Order struct {
	ID             string `json:"id"`
	CompanyID      string `json:"companyId"`
	CompanyName    string `json:"companyName"`
	OrderName      string `json:"orderName"`
	ValueCents     int64  `json:"valueCents"`
	ClickupLink    string `json:"clickupLink"`
	StartDate      string `json:"startDate"`
	DueDate        string `json:"dueDate"`
	TurnaroundDays int    `json:"turnaroundDays,omitempty"`
}

type Contact struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PhoneRaw    string `json:"phoneRaw"`
}

// Note is a timestamped activity entry. Contact is free text, not a foreign key.
type Note struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	Contact     string `json:"contact"`
	Date        string `json:"date"`
	Author      string `json:"author"`
	Content     string `json:"content"`
}

// Company is a rollup derived from orders. It is never read from a sheet.
type Company struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	OrderCount      int    `json:"orderCount"`
	TotalValueCents int64  `json:"totalValueCents"`
	LastOrderDate   string `json:"lastOrderDate"`
}

// Timeline event kinds.
const (
	EventOrder = "order"
	EventNote  = "note"
)

// TimelineEvent is the presentation-only union of an Order and a Note.
type TimelineEvent struct {
	ID         string `json:"id"`
	CompanyID  string `json:"companyId"`
	Kind       string `json:"kind"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Summary    string `json:"summary,omitempty"`
	ValueCents int64  `json:"valueCents,omitempty"`
	Author     string `json:"author,omitempty"`
	Link       string `json:"link,omitempty"`
}

// Payload is the combined result of one pipeline run.
type Payload struct {
	Companies []Company `json:"companies"`
	Orders    []Order   `json:"orders"`
	Contacts  []Contact `json:"contacts"`
	Notes     []Note    `json:"notes"`
}

// NewPayload returns a payload whose collections marshal as [] rather than null.
func NewPayload() *Payload {
	return &Payload{
		Companies: []Company{},
		Orders:    []Order{},
		Contacts:  []Contact{},
		Notes:     []Note{},
	}
}

// FindCompany looks a company up by id, falling back to a case-insensitive name match.
func (p *Payload) FindCompany(ref string) (*Company, bool) {
	ref = strings.TrimSpace(ref)
	for i := range p.Companies {
		if p.Companies[i].ID == ref {
			return &p.Companies[i], true
		}
	}
	for i := range p.Companies {
		if strings.EqualFold(strings.TrimSpace(p.Companies[i].Name), ref) {
			return &p.Companies[i], true
		}
	}
	return nil, false
}

// OrdersFor returns the orders of one company in source order.
func (p *Payload) OrdersFor(companyID string) []Order {
	var out []Order
	for _, o := range p.Orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out
}

func (p *Payload) ContactsFor(companyID string) []Contact {
	var out []Contact
	for _, c := range p.Contacts {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out
}

func (p *Payload) NotesFor(companyID string) []Note {
	var out []Note
	for _, n := range p.Notes {
		if n.CompanyID == companyID {
			out = append(out, n)
		}
	}
	return out
}

// RawPayload holds unmapped rows keyed "raw<Entity>" for debug mode.
type RawPayload map[string][][]any

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Users is the static user list. There is no login; it only labels note authors.
var Users = []User{
	{ID: "max-cannon", Name: "Max Cannon", Email: "max@hellogravel.com", Role: RoleAdmin},
}

// UserByID returns the user with the given id.
func UserByID(id string) (User, bool) {
	for _, u := range Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// UserByName matches a display name case-insensitively.
func UserByName(name string) (User, bool) {
	for _, u := range Users {
		if strings.EqualFold(u.Name, strings.TrimSpace(name)) {
			return u, true
		}
	}
	return User{}, false
}
