// ABOUTME: Cell-to-string coercion and integer parsing
// ABOUTME: Every cell becomes a trimmed string; absent cells become empty
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Text coerces a cell value to a trimmed string. nil becomes "".
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return strings.TrimSpace(x.String())
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

var (
	maxInt = decimal.NewFromInt(math.MaxInt32)
	minInt = decimal.NewFromInt(math.MinInt32)
)

// ParseInt reads a whole number from a cell, truncating fractions.
// Unparseable input and values outside the int32 range yield 0.
func ParseInt(v any) int {
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt32+1 || f <= math.MinInt32-1 {
			return 0
		}
		return int(f)
	}

	d, ok := parseLeadingDecimal(Text(v))
	if !ok {
		return 0
	}
	d = d.Truncate(0)
	if d.GreaterThan(maxInt) || d.LessThan(minInt) {
		return 0
	}
	return int(d.IntPart())
}
