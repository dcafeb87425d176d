// amount.go - Money parsing for chat messages and OCR text

package processor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a numeric token such as "10,000.00", "5,16,000" or
// "1.250.000". Commas are always grouping separators; a single trailing dot
// group of one or two digits is the decimal part, any other dot is grouping.
func ParseAmount(token string) (float64, bool) {
	s := strings.TrimSpace(token)
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	if strings.Contains(s, ".") {
		parts := strings.Split(s, ".")
		last := parts[len(parts)-1]
		if len(parts) == 2 && len(last) > 0 && len(last) <= 2 {
			s = parts[0] + "." + last
		} else {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

var (
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total[:\s]*[\$₹]?(\d+[,.]?\d*[,.]?\d*)`),
		regexp.MustCompile(`(?i)amount[:\s]*[\$₹]?(\d+[,.]?\d*[,.]?\d*)`),
		regexp.MustCompile(`[\$₹](\d+[,.]?\d*[,.]?\d*)`),
		regexp.MustCompile(`(\d+[,.]?\d*[,.]?\d*)\s*[\$₹]`),
		regexp.MustCompile(`(?i)(\d+[,.]?\d*[,.]?\d*)\s*rupees?`),
		regexp.MustCompile(`(?i)(\d+[,.]?\d*[,.]?\d*)\s*rs\.?`),
		regexp.MustCompile(`(?i)inr\s+(\d+[,.]?\d*[,.]?\d*)`),
		regexp.MustCompile(`(?i)(\d+[,.]?\d*[,.]?\d*)\s*only`),
	}

	writtenAmountPatterns = []struct {
		re         *regexp.Regexp
		multiplier int64
	}{
		{regexp.MustCompile(`(?i)(\d+)\s*lakh`), 100_000},
		{regexp.MustCompile(`(?i)(\d+)\s*crore`), 10_000_000},
		{regexp.MustCompile(`(?i)(\d+)\s*thousand`), 1_000},
	}
)

// FindAmounts returns every positive currency amount mentioned in text,
// including written lakh/crore/thousand amounts, in match order.
func FindAmounts(text string) []float64 {
	lower := strings.ToLower(text)
	var amounts []float64

	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if v, ok := ParseAmount(m[1]); ok && v > 0 {
				amounts = append(amounts, v)
			}
		}
	}

	for _, wp := range writtenAmountPatterns {
		for _, m := range wp.re.FindAllStringSubmatch(lower, -1) {
			base, err := decimal.NewFromString(m[1])
			if err != nil {
				continue
			}
			v, _ := base.Mul(decimal.NewFromInt(wp.multiplier)).Float64()
			if v > 0 {
				amounts = append(amounts, v)
			}
		}
	}

	return amounts
}

// MaxAmount returns the largest value, or false for an empty slice.
func MaxAmount(amounts []float64) (float64, bool) {
	if len(amounts) == 0 {
		return 0, false
	}
	largest := amounts[0]
	for _, a := range amounts[1:] {
		if a > largest {
			largest = a
		}
	}
	return largest, true
}
