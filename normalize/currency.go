// ABOUTME: Currency cell parsing into integer minor units
// ABOUTME: Accepts numbers or strings with $ and thousands separators
package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyStripper = strings.NewReplacer("$", "", ",", "")
	leadingNumber    = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	hundred          = decimal.NewFromInt(100)
	maxCents         = decimal.NewFromInt(math.MaxInt64)
)

// maxExponent bounds the exponent a cell may carry. Rescaling a decimal
// with a huge exponent never finishes in practice.
const maxExponent = 64

// ParseCurrency converts a cell value into cents. It never fails: absent,
// empty, unparseable, negative and out-of-range values all yield 0.
func ParseCurrency(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return toCents(decimal.NewFromFloat(x))
	case float32:
		return ParseCurrency(float64(x))
	case int:
		return toCents(decimal.NewFromInt(int64(x)))
	case int64:
		return toCents(decimal.NewFromInt(x))
	case int32:
		return toCents(decimal.NewFromInt(int64(x)))
	case decimal.Decimal:
		if exp := x.Exponent(); exp > maxExponent || exp < -maxExponent {
			return 0
		}
		return toCents(x)
	case json.Number:
		return parseCurrencyString(x.String())
	case string:
		return parseCurrencyString(x)
	default:
		return parseCurrencyString(Text(v))
	}
}

func parseCurrencyString(s string) int64 {
	d, ok := parseLeadingDecimal(currencyStripper.Replace(s))
	if !ok {
		return 0
	}
	return toCents(d)
}

// parseLeadingDecimal reads the longest numeric prefix of s, the way a
// spreadsheet's "12.50 USD" still yields 12.50.
func parseLeadingDecimal(s string) (decimal.Decimal, bool) {
	match := leadingNumber.FindString(strings.TrimSpace(s))
	if match == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

func toCents(amount decimal.Decimal) int64 {
	cents := amount.Mul(hundred).Round(0)
	if cents.IsNegative() || cents.GreaterThan(maxCents) {
		return 0
	}
	return cents.IntPart()
}
