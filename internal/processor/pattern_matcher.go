// pattern_matcher.go - Fast regex detection of plain income/expense statements

package processor

import (
	"regexp"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
)

// FastPathConfidence is the confidence reported for a pattern hit.
const FastPathConfidence = 0.95

// Localizer supplies the success message for a fast-path transaction.
type Localizer interface {
	TransactionRecorded(kind models.Intent, amount float64, language string) string
}

// TransactionGuess is a fast-path hit.
type TransactionGuess struct {
	Kind            models.Intent
	Amount          float64
	Confidence      float64
	ResponseMessage string
	Pattern         string
}

// transactionPattern maps one regex to the transaction kind it detects.
// The amount is always capture group 1.
type transactionPattern struct {
	kind models.Intent
	re   *regexp.Regexp
}

const (
	currencyPrefix = `(?:rs\.?\s*|₹\s*)?`
	amountGroup    = `(\d+(?:,\d{3})*(?:\.\d{2})?)`
)

func pattern(kind models.Intent, expr string) transactionPattern {
	expr = strings.ReplaceAll(expr, "{cur}", currencyPrefix)
	expr = strings.ReplaceAll(expr, "{amt}", amountGroup)
	return transactionPattern{kind: kind, re: regexp.MustCompile(expr)}
}

// Order matters: income templates are tried before expense templates.
var transactionPatterns = []transactionPattern{
	// English income
	pattern(models.IntentIncome, `income\s+(?:is\s+)?{cur}{amt}`),
	pattern(models.IntentIncome, `earned\s+{cur}{amt}`),
	pattern(models.IntentIncome, `received\s+{cur}{amt}`),
	pattern(models.IntentIncome, `got\s+{cur}{amt}`),
	pattern(models.IntentIncome, `made\s+{cur}{amt}`),
	// Hindi income
	pattern(models.IntentIncome, `आय\s+{cur}{amt}`),
	pattern(models.IntentIncome, `कमाई\s+{cur}{amt}`),
	pattern(models.IntentIncome, `मिला\s+{cur}{amt}`),
	pattern(models.IntentIncome, `पाया\s+{cur}{amt}`),
	// Amount first
	pattern(models.IntentIncome, `{cur}{amt}\s+(?:income|आय|कमाई)`),
	pattern(models.IntentIncome, `{cur}{amt}\s+(?:earned|कमाया)`),

	// English expense
	pattern(models.IntentExpense, `expense\s+(?:is\s+)?{cur}{amt}`),
	pattern(models.IntentExpense, `spent\s+{cur}{amt}`),
	pattern(models.IntentExpense, `paid\s+{cur}{amt}`),
	pattern(models.IntentExpense, `cost\s+{cur}{amt}`),
	// The amount must close the sentence, so "bought 5 phones for ..." is left to the AI
	pattern(models.IntentExpense, `^(?:i\s+)?bought\s+(?:for\s+)?{cur}{amt}\s*(?:rs\.?|rupees)?$`),
	// Hindi expense
	pattern(models.IntentExpense, `खर्च\s+{cur}{amt}`),
	pattern(models.IntentExpense, `खर्चा\s+{cur}{amt}`),
	pattern(models.IntentExpense, `दिया\s+{cur}{amt}`),
	pattern(models.IntentExpense, `लगा\s+{cur}{amt}`),
	// Amount first
	pattern(models.IntentExpense, `{cur}{amt}\s+(?:expense|खर्च|खर्चा)`),
	pattern(models.IntentExpense, `{cur}{amt}\s+(?:spent|खर्च किया)`),
}

// Questions and hypotheticals must never be recorded as transactions.
var (
	questionWordsLatin = regexp.MustCompile(`\b(?:how much|what|whats|calculate|loss|profit|percent|percentage|if|when|why|where|who|how|tell me|explain|suppose)\b`)
	questionMarkers    = []string{
		"?", "？",
		// Hindi
		"कितना", "कितनी", "कितने", "क्या", "कैसे", "क्यों", "कब", "कहाँ", "अगर", "मुनाफा", "नुकसान", "घाटा", "हिसाब",
		// Tamil
		"எவ்வளவு", "என்ன", "ஏன்", "எப்படி",
		// Malayalam
		"എത്ര", "എന്ത്", "എന്തുകൊണ്ട്", "എങ്ങനെ",
	}
)

// IsQuestion reports whether the message reads as a question or calculation.
func IsQuestion(message string) bool {
	lower := strings.ToLower(message)
	if questionWordsLatin.MatchString(lower) {
		return true
	}
	for _, m := range questionMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// interrogatives are the markers that make a message a real question even when
// a model read it as a transaction.
var interrogatives = []string{"?", "？", "how much", "what if", "कितना", "कितनी", "कितने", "எவ்வளவு", "എത്ര"}

// IsInterrogative is the narrow form of IsQuestion: only explicit questions
// and hypotheticals, not every message mentioning profit or a time.
func IsInterrogative(message string) bool {
	lower := strings.ToLower(message)
	for _, m := range interrogatives {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// PatternMatcher detects unambiguous income/expense statements without any AI call.
type PatternMatcher struct {
	localizer Localizer
}

// NewPatternMatcher creates a matcher that words its hits through loc.
func NewPatternMatcher(loc Localizer) *PatternMatcher {
	return &PatternMatcher{localizer: loc}
}

// Detect returns a guess for messages like "expense is Rs 2000" or
// "5000 आय". It returns nil for questions, non-positive amounts and
// anything the table does not cover.
func (pm *PatternMatcher) Detect(message, language string) *TransactionGuess {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" || IsQuestion(lower) {
		return nil
	}

	for _, p := range transactionPatterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		amount, ok := ParseAmount(m[1])
		if !ok || amount <= 0 {
			continue
		}
		guess := &TransactionGuess{
			Kind:       p.kind,
			Amount:     amount,
			Confidence: FastPathConfidence,
			Pattern:    p.re.String(),
		}
		if pm.localizer != nil {
			guess.ResponseMessage = pm.localizer.TransactionRecorded(p.kind, amount, language)
		}
		return guess
	}
	return nil
}

// ToResult converts a guess into the fast-path IntentResult.
func (g *TransactionGuess) ToResult() models.IntentResult {
	label := "Income"
	if g.Kind == models.IntentExpense {
		label = "Expense"
	}
	return models.IntentResult{
		Intent:     g.Kind,
		Action:     "add",
		Confidence: g.Confidence,
		Data: &models.TransactionData{
			Amount:      g.Amount,
			Description: label + " - ₹" + models.FormatAmount(g.Amount),
			Category:    "General",
		},
		ResponseMessage:   g.ResponseMessage,
		IsBusinessRelated: true,
		FastDetection:     true,
	}
}
