// text_sanitizer.go - Line-level OCR cleanup before extraction

package processor

import (
	"regexp"
	"strings"
)

var (
	specialChars    = regexp.MustCompile(`[^\p{L}\p{M}\p{N}\s₹\-\.]`)
	bareNumericLine = regexp.MustCompile(`^[\d\s\-\.]+$`)
	multiSpace      = regexp.MustCompile(`\s+`)
	// Numbers with a letter O read in place of a zero, e.g. "5O0".
	numberWithLetterO = regexp.MustCompile(`\d[\dOo]*[Oo][\dOo]*\d`)

	metadataLines = []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}$`),                        // dates
		regexp.MustCompile(`(?i)^GST(?:IN)?\s*(?:NO\.?)?\s*:`),                           // GST numbers
		regexp.MustCompile(`(?i)^\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]$`),               // bare GSTIN
		regexp.MustCompile(`(?i)^[A-Z]{2}\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]$`),       // prefixed GSTIN
		regexp.MustCompile(`(?i)^Invoice\s*(?:#|No)`),                                     // invoice numbers
		regexp.MustCompile(`(?i)^Bill\s*No`),                                              // bill numbers
		regexp.MustCompile(`(?i)^(?:Grand\s*)?Total\s*:?\s*(?:₹|rs\.?|inr)?\s*[\d,]+(?:\.\d+)?$`), // totals
		regexp.MustCompile(`(?i)^Sub\s*Total`),
		regexp.MustCompile(`(?i)^Tax\s*:`),
		regexp.MustCompile(`(?i)^(?:CGST|SGST|IGST)`),
	}
)

const (
	minLineLength       = 2
	maxSpecialCharRatio = 0.5
	minBareNumberLength = 10
)

// CleanOCRText drops noise and invoice-metadata lines from raw OCR text and
// normalises common OCR misreads. It never fails: empty or garbage input
// yields "".
func CleanOCRText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if runeLen(line) < minLineLength {
			continue
		}
		if isNoiseLine(line) || IsMetadataLine(line) {
			continue
		}

		line = strings.ReplaceAll(line, "|", "I")
		line = numberWithLetterO.ReplaceAllStringFunc(line, zeroForLetterO)
		line = multiSpace.ReplaceAllString(line, " ")
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// IsMetadataLine reports whether a single OCR line is invoice bookkeeping
// (dates, GST numbers, totals, tax lines) rather than a purchased item.
func IsMetadataLine(line string) bool {
	line = strings.TrimSpace(line)
	for _, re := range metadataLines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isNoiseLine(line string) bool {
	n := runeLen(line)
	special := len(specialChars.FindAllStringIndex(line, -1))
	if float64(special)/float64(n) > maxSpecialCharRatio {
		return true
	}
	return bareNumericLine.MatchString(line) && n < minBareNumberLength
}

func zeroForLetterO(s string) string {
	return strings.NewReplacer("O", "0", "o", "0").Replace(s)
}
