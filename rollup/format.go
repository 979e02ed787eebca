// ABOUTME: Display formatting for money and dates
// ABOUTME: Renders cents as dollars and ISO dates as short human dates
package rollup

import (
	"strconv"
	"strings"
	"time"
)

// FormatCents renders cents as "$1,234.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	frac := cents % 100
	pad := ""
	if frac < 10 {
		pad = "0"
	}
	return sign + "$" + b.String() + "." + pad + strconv.FormatInt(frac, 10)
}

// FormatDate renders an ISO date as "Jan 2, 2024". Values that are not ISO
// dates are returned unchanged; empty becomes "—".
func FormatDate(iso string) string {
	if iso == "" {
		return "—"
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}
