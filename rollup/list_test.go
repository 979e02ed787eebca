package rollup

import (
	"testing"

	"github.com/harperreed/stoneledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listFixture = []models.Company{
	{ID: "1", Name: "Acme Inc", OrderCount: 3, TotalValueCents: 5000, LastOrderDate: "2024-02-01"},
	{ID: "2", Name: "bolt llc", OrderCount: 1, TotalValueCents: 9000, LastOrderDate: "2024-03-01"},
	{ID: "3", Name: "Crater Co", OrderCount: 5, TotalValueCents: 100, LastOrderDate: "2023-11-20"},
}

func names(companies []models.Company) []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Name
	}
	return out
}

func TestFilterCompaniesDefaultSort(t *testing.T) {
	out := FilterCompanies(listFixture, ListOptions{})
	assert.Equal(t, []string{"bolt llc", "Acme Inc", "Crater Co"}, names(out))
}

func TestFilterCompaniesSortFields(t *testing.T) {
	tests := []struct {
		field     SortField
		ascending bool
		expected  []string
	}{
		{SortByName, true, []string{"Acme Inc", "bolt llc", "Crater Co"}},
		{SortByName, false, []string{"Crater Co", "bolt llc", "Acme Inc"}},
		{SortByOrderCount, false, []string{"Crater Co", "Acme Inc", "bolt llc"}},
		{SortByLastOrder, true, []string{"Crater Co", "Acme Inc", "bolt llc"}},
		{SortByTotalValue, true, []string{"Crater Co", "Acme Inc", "bolt llc"}},
	}

	for _, tt := range tests {
		out := FilterCompanies(listFixture, ListOptions{SortField: tt.field, Ascending: tt.ascending})
		assert.Equal(t, tt.expected, names(out), "%s asc=%v", tt.field, tt.ascending)
	}
}

func TestFilterCompaniesQueryAndLimit(t *testing.T) {
	out := FilterCompanies(listFixture, ListOptions{Query: "A"})
	assert.Equal(t, []string{"Acme Inc", "Crater Co"}, names(out))

	out = FilterCompanies(listFixture, ListOptions{Limit: 1})
	require.Len(t, out, 1)
	assert.Equal(t, "bolt llc", out[0].Name)

	// Input untouched.
	assert.Equal(t, "Acme Inc", listFixture[0].Name)
}

func TestParseSortFieldAndDirection(t *testing.T) {
	f, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByTotalValue, f)

	f, err = ParseSortField("name")
	require.NoError(t, err)
	assert.Equal(t, SortByName, f)

	_, err = ParseSortField("colour")
	assert.Error(t, err)

	asc, err := ParseDirection("ASC")
	require.NoError(t, err)
	assert.True(t, asc)

	asc, err = ParseDirection("")
	require.NoError(t, err)
	assert.False(t, asc)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
