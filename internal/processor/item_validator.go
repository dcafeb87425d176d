// item_validator.go - Item-name validity rules that keep OCR noise out of the books

package processor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
)

const minItemNameLength = 3

var (
	nonNameChars = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-\.]`)

	// Shapes OCR produces out of smudges, stamps and torn edges.
	garbageShapes = []*regexp.Regexp{
		regexp.MustCompile(`^[a-z]{1,2}[A-Z][a-z]{0,2}(?:\s+[A-Z])?$`), // nAce A
		regexp.MustCompile(`^[A-Z]{1,2}[a-z]{1,2}[A-Za-z]?$`),          // Nonn, ABcD
		regexp.MustCompile(`^[a-zA-Z]{1,3}$`),
		regexp.MustCompile(`^\d+[a-zA-Z]{1,2}$`),
		regexp.MustCompile(`^[a-zA-Z]\d+$`),
		regexp.MustCompile(`^[^\p{L}\p{N}\s]+$`),
		regexp.MustCompile(`(?i)^(?:general|item|product|items|products|misc)$`),
	}

	// "phone" alone is a product; only a phone label or number is metadata.
	contactLabel = regexp.MustCompile(`(?i)\b(?:phone|tel|mob(?:ile)?)\s*(?:no\.?)?\s*(?::|\+?\d{5,})`)

	// Matched as substrings, so "Totals" and "GrandTotal" are caught too.
	metadataKeywords = []string{
		"invoice", "bill", "receipt", "gstin", "gst", "tax", "cgst", "sgst", "igst",
		"total", "subtotal", "amount", "date", "time", "address", "email",
		"challan", "voucher", "reference", "serial", "number", "code", "hsn",
	}
)

// ValidateItemName reports why name cannot be a real product or expense line.
// A nil error means the name is acceptable. Every rejection wraps
// common.ErrValidationRejected.
func ValidateItemName(name string) error {
	name = strings.TrimSpace(name)
	if runeLen(name) < minItemNameLength {
		return reject("name too short")
	}

	cleaned := strings.TrimSpace(nonNameChars.ReplaceAllString(name, ""))
	if runeLen(cleaned) < minItemNameLength {
		return reject("name too short after removing symbols")
	}

	for _, re := range garbageShapes {
		if re.MatchString(cleaned) {
			return reject("looks like OCR garbage")
		}
	}

	lower := strings.ToLower(cleaned)
	for _, kw := range metadataKeywords {
		if strings.Contains(lower, kw) {
			return reject(fmt.Sprintf("invoice metadata keyword %q", kw))
		}
	}

	if contactLabel.MatchString(name) {
		return reject("contact details")
	}

	var total, digits, upper int
	var vowel, nonLatin bool
	unique := map[rune]struct{}{}
	for _, r := range cleaned {
		total++
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsUpper(r):
			upper++
		}
		if strings.ContainsRune("aeiouAEIOU", r) {
			vowel = true
		}
		if unicode.IsLetter(r) && r > unicode.MaxASCII {
			nonLatin = true
		}
		if !unicode.IsSpace(r) {
			unique[unicode.ToLower(r)] = struct{}{}
		}
	}

	if float64(digits)/float64(total) > 0.7 {
		return reject("mostly digits")
	}
	if total < 10 && float64(upper)/float64(total) > 0.6 {
		return reject("short all-caps token")
	}
	// Indic scripts carry vowels as signs, so only Latin names are checked.
	if !vowel && !nonLatin {
		return reject("no vowels")
	}
	if total > 5 && len(unique) < 3 {
		return reject("too few distinct characters")
	}
	return nil
}

// IsValidItemName is the boolean form of ValidateItemName.
func IsValidItemName(name string) bool {
	return ValidateItemName(name) == nil
}

// RejectionError carries the human-readable reason an item was dropped.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return common.ErrValidationRejected.Error() + ": " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return common.ErrValidationRejected
}

func reject(reason string) error {
	return &RejectionError{Reason: reason}
}

func runeLen(s string) int {
	return len([]rune(s))
}
