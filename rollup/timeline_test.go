package rollup

import (
	"testing"

	"github.com/harperreed/stoneledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineMergesNewestFirst(t *testing.T) {
	orders := []models.Order{
		{ID: "o1", CompanyID: "a", OrderName: "First", StartDate: "2024-01-02", DueDate: "2024-01-10", ValueCents: 100},
		{ID: "o2", CompanyID: "a", OrderName: "Second", StartDate: "2024-03-01"},
		{ID: "ox", CompanyID: "b", OrderName: "Elsewhere", StartDate: "2024-09-09"},
	}
	notes := []models.Note{
		{ID: "n1", CompanyID: "a", Date: "2024-02-15", Content: "Followed up", Contact: "Jo", Author: "Max Cannon"},
		{ID: "n2", CompanyID: "a", Date: "2024-03-01", Content: "Same day"},
	}

	events := Timeline("a", orders, notes)
	require.Len(t, events, 4)

	ids := []string{events[0].ID, events[1].ID, events[2].ID, events[3].ID}
	assert.Equal(t, []string{"o2", "n2", "n1", "o1"}, ids)

	assert.Equal(t, models.EventOrder, events[3].Kind)
	assert.Equal(t, "Due 2024-01-10", events[3].Summary)
	assert.Equal(t, int64(100), events[3].ValueCents)

	assert.Equal(t, models.EventNote, events[2].Kind)
	assert.Equal(t, "Note with Jo", events[2].Title)
	assert.Equal(t, "Followed up", events[2].Summary)
	assert.Equal(t, "Max Cannon", events[2].Author)
}

func TestTimelineEmpty(t *testing.T) {
	events := Timeline("nobody", nil, nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
