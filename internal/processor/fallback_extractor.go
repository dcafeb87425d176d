// fallback_extractor.go - Deterministic receipt extraction used when no AI provider answers

package processor

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
)

// itemLinePatterns are tried in order against each line; the first hit wins.
// Group 1 is the quantity, group 2 the name, optional group 3 the price.
var itemLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*nos\s*([a-zA-Z\s]+?)[\s-]*(?:rs\.?|₹)?\s*(\d+[,.]?\d*)`), // 500 Nos Mobile Phone Rs.50000
	regexp.MustCompile(`(?i)(\d+)\s*x\s*([a-zA-Z\s]+?)[\s-]*(?:rs\.?|₹)?\s*(\d+[,.]?\d*)`),   // 2 x Coffee - Rs.50
	regexp.MustCompile(`(?i)(\d+)\s*([a-zA-Z\s]+?)[\s-]*(?:rs\.?|₹)?\s*(\d+[,.]?\d*)`),       // 2 Notebooks Rs.100
	regexp.MustCompile(`(?i)(\d+)\s*x\s*([a-zA-Z\s]+)`),                                      // 1 x T-Shirt
	regexp.MustCompile(`(?i)(\d+)\s*nos\s*([a-zA-Z\s]+)`),                                    // 500 Nos Mobile
}

var (
	excludedItemWords = []string{"total", "amount", "receipt", "tax", "discount", "invoice", "challan", "date", "gstin"}
	garbageSubstrings = []string{"nnn", "xxx", "daten"}

	inventoryKeywords = regexp.MustCompile(`(?i)\b(?:` + strings.Join([]string{
		// stationery
		"notebook", "pen", "pencil", "book", "stationery", "paper", "file", "folder",
		// electronics
		"mobile", "phone", "smartphone", "tablet", "laptop", "computer", "electronics",
		"charger", "cable", "headphone", "earphone", "speaker", "battery",
		// clothing
		"shirt", "pant", "cloth", "fabric", "material", "dress", "shoe", "bag",
		// general goods
		"product", "item", "goods", "stock", "inventory", "supply", "equipment",
		"tool", "accessory", "component", "part", "device", "gadget",
	}, "|") + `)`)
)

// FallbackExtractor pulls amounts and item lines out of OCR text with
// regular expressions only. It is the last tier of receipt extraction and
// always returns a payload.
type FallbackExtractor struct{}

// NewFallbackExtractor creates a FallbackExtractor.
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

// Extract returns the items it could recognise, already bucketed. TotalAmount
// is the largest amount found anywhere in the text.
func (fe *FallbackExtractor) Extract(ocrText string) *models.ReceiptData {
	data := models.NewReceiptData(models.SourcePattern)

	amounts := FindAmounts(ocrText)
	if largest, ok := MaxAmount(amounts); ok {
		total := models.ClampAmount(largest)
		data.TotalAmount = &total
	}

	type candidate struct {
		quantity string
		name     string
		price    string
	}
	var candidates []candidate
	priceless := 0
	for _, line := range strings.Split(ocrText, "\n") {
		if IsMetadataLine(line) {
			continue
		}
		for _, re := range itemLinePatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			c := candidate{quantity: m[1], name: strings.TrimSpace(m[2])}
			if len(m) > 3 {
				c.price = m[3]
			} else {
				priceless++
			}
			candidates = append(candidates, c)
			break
		}
	}

	seen := map[string]bool{}
	for _, c := range candidates {
		lower := strings.ToLower(c.name)
		if c.name == "" || containsAny(lower, excludedItemWords) {
			continue
		}
		if containsAny(lower, garbageSubstrings) {
			data.RejectedItems = append(data.RejectedItems, models.RejectedItem{RawText: c.name, Reason: "known OCR garbage"})
			continue
		}
		if err := ValidateItemName(c.name); err != nil {
			data.RejectedItems = append(data.RejectedItems, models.RejectedItem{RawText: c.name, Reason: rejectionReason(err)})
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true

		quantity := 1
		if q, err := strconv.Atoi(c.quantity); err == nil {
			quantity = models.ClampQuantity(q)
		}

		var amount float64
		switch {
		case c.price != "":
			amount, _ = ParseAmount(c.price)
		case len(amounts) > 0 && priceless > 0:
			amount = amounts[0] / float64(priceless)
		}
		amount = models.ClampAmount(amount)

		category := models.CategoryExpense
		if inventoryKeywords.MatchString(c.name) {
			category = models.CategoryInventory
		}

		data.ClearItems = append(data.ClearItems, models.LineItem{
			Name:        c.name,
			Quantity:    quantity,
			Amount:      amount,
			UnitPrice:   amount / float64(quantity),
			Category:    category,
			IsInventory: models.Bool(category == models.CategoryInventory),
		})
	}

	data.Partition()
	return data
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func rejectionReason(err error) string {
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Reason
	}
	return err.Error()
}
