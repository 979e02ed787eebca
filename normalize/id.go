// ABOUTME: Deterministic short identifiers derived from strings
// ABOUTME: Rolling 32-bit hash rendered in base 36, plus company identity
package normalize

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// GenerateID hashes s into a short stable identifier. The hash runs over
// UTF-16 code units with int32 wraparound, so ids match those produced by
// the dashboard's earlier JavaScript implementation for the same input.
// Collisions are possible and accepted.
func GenerateID(s string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(s)) {
		hash = hash*31 + int32(unit)
	}

	// Widen before negating: -MinInt32 does not fit in an int32.
	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 36)
}

// CompanyID derives a company id that ignores case and surrounding whitespace.
func CompanyID(name string) string {
	return GenerateID(NormalizeName(name))
}

// NormalizeName lower-cases and trims a company name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
