// ABOUTME: Tests for currency parsing
// ABOUTME: Covers strings, numbers, malformed input, and rounding
package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int64
	}{
		{"formatted string", "$1,234.50", 123450},
		{"number", 1234.5, 123450},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
		{"integer", 50, 5000},
		{"int64", int64(7), 700},
		{"plain string", "100.00", 10000},
		{"whitespace", "  $42 ", 4200},
		{"trailing text", "12.50 USD", 1250},
		{"leading dot", ".5", 50},
		{"half rounds away from zero", "1.005", 101},
		{"float drift", 0.1 + 0.2, 30},
		{"sub-cent", "19.999", 2000},
		{"negative clamps", "-5.00", 0},
		{"negative number clamps", -12.0, 0},
		{"NaN", math.NaN(), 0},
		{"json number", json.Number("3.25"), 325},
		{"decimal", decimal.RequireFromString("9.99"), 999},
		{"bool falls back to text", true, 0},
		{"exponent form", "1.5E+3", 150000},
		{"largest representable", "92233720368547758.07", math.MaxInt64},
		{"overflowing exponent string", "1E+17", 0},
		{"overflowing float", 1e20, 0},
		{"overflowing formatted string", "$99,999,999,999,999,999,999", 0},
		{"huge exponent", "1e99999999", 0},
		{"tiny exponent", "1e-99999999", 0},
		{"huge exponent decimal", decimal.New(1, 99999999), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCurrency(tt.input))
		})
	}
}

func TestParseCurrencyReturnsPromptlyOnHugeExponents(t *testing.T) {
	done := make(chan int64, 1)
	go func() {
		done <- ParseCurrency("1e99999999") + int64(ParseInt("1e99999999"))
	}()

	select {
	case got := <-done:
		assert.Equal(t, int64(0), got)
	case <-time.After(5 * time.Second):
		t.Fatal("parsing a huge exponent did not return")
	}
}
