package report

import (
	"fmt"
	"strings"
)

// money formats a monetary value with the report currency symbol, thousands
// separators and exactly two decimal places, e.g. ₹1,234,567.89.
func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	grouped := groupThousands(parts[0])

	out := "₹" + grouped + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
