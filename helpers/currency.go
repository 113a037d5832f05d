package helpers

import (
	"fmt"
	"strings"
)

// FormatUSD formats whole dollars with comma thousand separators, e.g. "$12,345" or "-$980"
func FormatUSD(amount int64) string {
	negative := amount < 0
	value := amount
	if negative {
		value = -value
	}

	str := fmt.Sprintf("%d", value)
	length := len(str)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String()
}
