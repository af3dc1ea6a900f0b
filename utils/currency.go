package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatCurrencyVND formats an amount in whole dong with dot thousand
// separators. Example: 315000 -> "315.000đ"
func FormatCurrencyVND(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}

	out := strings.Join(parts, ".") + "đ"
	if neg {
		return "-" + out
	}
	return out
}
