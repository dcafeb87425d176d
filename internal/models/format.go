// format.go - Amount formatting used in user-facing messages

package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount the way the app has always shown it:
// whole numbers keep one decimal ("2000.0"), others use the shortest form
// ("1250.5", "99.99").
func FormatAmount(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "0.0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMoney renders an amount with two decimals and thousands separators,
// as in summaries: "12,500.50".
func FormatMoney(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		v = 0
	}
	fixed := decimal.NewFromFloat(v).Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
