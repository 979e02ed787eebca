// ABOUTME: Tests for StoneLedger data models
// ABOUTME: Validates payload lookups, JSON shape, and the static user list
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() *Payload {
	p := NewPayload()
	p.Companies = []Company{
		{ID: "a1", Name: "Acme Inc", OrderCount: 2, TotalValueCents: 15000},
		{ID: "b2", Name: "Bolt LLC", OrderCount: 1, TotalValueCents: 500},
	}
	p.Orders = []Order{
		{ID: "o1", CompanyID: "a1", OrderName: "First"},
		{ID: "o2", CompanyID: "b2", OrderName: "Other"},
		{ID: "o3", CompanyID: "a1", OrderName: "Second"},
	}
	p.Contacts = []Contact{{ID: "c1", CompanyID: "a1", FullName: "Jo Doe"}}
	p.Notes = []Note{{ID: "n1", CompanyID: "b2", Content: "called"}}
	return p
}

func TestNewPayloadMarshalsEmptyArrays(t *testing.T) {
	data, err := json.Marshal(NewPayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"companies":[],"orders":[],"contacts":[],"notes":[]}`, string(data))
}

func TestFindCompany(t *testing.T) {
	p := samplePayload()

	c, ok := p.FindCompany("b2")
	require.True(t, ok)
	assert.Equal(t, "Bolt LLC", c.Name)

	c, ok = p.FindCompany("  acme INC ")
	require.True(t, ok)
	assert.Equal(t, "a1", c.ID)

	_, ok = p.FindCompany("nobody")
	assert.False(t, ok)
}

func TestPerCompanyFilters(t *testing.T) {
	p := samplePayload()

	orders := p.OrdersFor("a1")
	require.Len(t, orders, 2)
	assert.Equal(t, "First", orders[0].OrderName)
	assert.Equal(t, "Second", orders[1].OrderName)

	assert.Len(t, p.ContactsFor("a1"), 1)
	assert.Empty(t, p.ContactsFor("b2"))
	assert.Len(t, p.NotesFor("b2"), 1)
}

func TestOrderTurnaroundOmittedWhenZero(t *testing.T) {
	data, err := json.Marshal(Order{ID: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "turnaroundDays")

	data, err = json.Marshal(Order{ID: "x", TurnaroundDays: 7})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"turnaroundDays":7`)
}

func TestUserLookup(t *testing.T) {
	u, ok := UserByName("max cannon")
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, u.Role)

	u, ok = UserByID("max-cannon")
	require.True(t, ok)
	assert.Equal(t, "Max Cannon", u.Name)

	_, ok = UserByName("someone else")
	assert.False(t, ok)
}
