// flexible.go - Lenient JSON number decoding for provider output

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// FlexibleFloat64 can unmarshal from both string and number. Currency
// symbols and thousands separators inside strings are ignored.
type FlexibleFloat64 float64

func (f *FlexibleFloat64) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		*f = 0
		return nil
	}

	// Try as number first
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexibleFloat64(num)
		return nil
	}

	// Try as string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal %s as float64 or string", string(data))
	}

	str = cleanNumeric(str)
	if str == "" {
		*f = 0
		return nil
	}

	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("cannot parse string %q as float64: %w", str, err)
	}

	*f = FlexibleFloat64(num)
	return nil
}

// Float returns the value, or def when f is nil.
func (f *FlexibleFloat64) Float(def float64) float64 {
	if f == nil {
		return def
	}
	return float64(*f)
}

// cleanNumeric keeps digits, sign and decimal point. A dot that ends an
// abbreviation such as "Rs." is not a decimal point.
func cleanNumeric(s string) string {
	var b strings.Builder
	var prev rune
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '.' && !unicode.IsLetter(prev):
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// FlexibleString accepts a JSON string or any scalar and keeps its text form.
type FlexibleString string

func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexibleString(str)
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = FlexibleString(fmt.Sprintf("%v", raw))
	return nil
}
