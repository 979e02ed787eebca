// ABOUTME: Slash-delimited date parsing into ISO YYYY-MM-DD
// ABOUTME: Unrecognized input passes through unchanged
package normalize

import "strings"

// ParseDate turns "M/D/Y" or "M/D/YY" into "YYYY-MM-DD". Two-digit years are
// read as 20YY. Empty input and anything that is not exactly three
// slash-separated parts is returned as-is, so callers must tolerate non-ISO
// values.
func ParseDate(s string) string {
	if s == "" {
		return ""
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}

	month, day, year := parts[0], parts[1], parts[2]
	if len(year) == 2 {
		year = "20" + year
	}
	return year + "-" + padLeft(month, 2) + "-" + padLeft(day, 2)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
