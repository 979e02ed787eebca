package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/stoneledger/models"
)

func TestDetailFor(t *testing.T) {
	p := models.NewPayload()
	p.Companies = []models.Company{{ID: "a1", Name: "Acme Inc"}, {ID: "b2", Name: "Bolt LLC"}}
	p.Orders = []models.Order{
		{ID: "o1", CompanyID: "a1", OrderName: "First", StartDate: "2024-01-02"},
		{ID: "o2", CompanyID: "b2", OrderName: "Other", StartDate: "2024-01-03"},
	}
	p.Notes = []models.Note{{ID: "n1", CompanyID: "a1", Date: "2024-02-01", Content: "called"}}

	d, ok := DetailFor(p, "acme inc")
	require.True(t, ok)
	assert.Equal(t, "a1", d.Company.ID)
	assert.Len(t, d.Orders, 1)
	assert.NotNil(t, d.Contacts)
	assert.Empty(t, d.Contacts)
	require.Len(t, d.Timeline, 2)
	assert.Equal(t, "n1", d.Timeline[0].ID)
	assert.Equal(t, "o1", d.Timeline[1].ID)

	_, ok = DetailFor(p, "missing")
	assert.False(t, ok)
}
