package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice formats a price in dollars as a string like "$45", "$9.50" or "$1,250".
// Whole amounts print without cents; uses comma as thousands separator.
func FormatPrice(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	var b strings.Builder
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}
	b.WriteString(groupThousands(strconv.FormatInt(whole, 10)))
	if frac != 0 {
		b.WriteByte('.')
		if frac < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatInt(frac, 10))
	}
	return b.String()
}

// groupThousands inserts separators from the left
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
