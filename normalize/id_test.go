// ABOUTME: Tests for deterministic id generation
// ABOUTME: Covers known hash values, determinism, and company name folding
package normalize

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIDKnownValues(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "0"},
		{"a", "2p"},   // 97
		{"ab", "2e9"}, // 97*31 + 98 = 3105
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GenerateID(tt.input), "GenerateID(%q)", tt.input)
	}
}

func TestGenerateIDIsDeterministic(t *testing.T) {
	inputs := []string{"Acme Inc", "https://app.clickup.com/t/abc123", "Ünïcödé ☃", "🚀 launch"}
	for _, in := range inputs {
		first := GenerateID(in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, GenerateID(in))
		}
	}
}

func TestGenerateIDWrapsAndStaysNonNegative(t *testing.T) {
	long := "the quick brown fox jumps over the lazy dog, repeatedly and at length"
	id := GenerateID(long)

	n, err := strconv.ParseInt(id, 36, 64)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(0))
	assert.LessOrEqual(t, n, int64(math.MaxInt32)+1)
}

func TestGenerateIDCountsUTF16Units(t *testing.T) {
	// U+1F680 is a surrogate pair: 0xD83D, 0xDE80.
	expected := int64(0xD83D)*31 + int64(0xDE80)
	assert.Equal(t, strconv.FormatInt(expected, 36), GenerateID("🚀"))
}

func TestCompanyIDIgnoresCaseAndWhitespace(t *testing.T) {
	base := CompanyID("Acme Inc")
	assert.Equal(t, base, CompanyID("ACME INC"))
	assert.Equal(t, base, CompanyID("  acme inc "))
	assert.Equal(t, base, CompanyID("ACME INC "))
	assert.NotEqual(t, base, CompanyID("Acme Incorporated"))
}
