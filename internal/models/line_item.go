// line_item.go - Receipt line items and the receipt payload

package models

import (
	"fmt"
	"math"
	"strings"
)

// Category is the bookkeeping bucket of a line item.
type Category string

const (
	CategoryInventory Category = "inventory"
	CategoryExpense   Category = "expense"
	CategoryIncome    Category = "income"
	CategoryUnclear   Category = "unclear"
)

// ParseCategory normalises a free-form category string.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryInventory:
		return CategoryInventory, true
	case CategoryExpense:
		return CategoryExpense, true
	case CategoryIncome:
		return CategoryIncome, true
	case CategoryUnclear:
		return CategoryUnclear, true
	}
	return "", false
}

// Bounds enforced on every line item.
const (
	MinQuantity = 1
	MaxQuantity = 10000
	MaxAmount   = 10_000_000.0
)

// ClampQuantity keeps q inside [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// ClampAmount keeps a inside [0, MaxAmount].
func ClampAmount(a float64) float64 {
	if a < 0 || math.IsNaN(a) {
		return 0
	}
	if a > MaxAmount {
		return MaxAmount
	}
	return a
}

// LineItem is one validated receipt or message item. Items are values: a
// clarification answer produces a new item through Resolve.
type LineItem struct {
	Name              string     `json:"name"`
	Quantity          int        `json:"quantity"`
	Amount            float64    `json:"amount"`
	UnitPrice         float64    `json:"unit_price"`
	Unit              string     `json:"unit,omitempty"`
	Category          Category   `json:"category"`
	SuggestedCategory Category   `json:"suggested_category,omitempty"`
	IsInventory       *bool      `json:"is_inventory"`
	Reason            string     `json:"reason,omitempty"`
	Question          string     `json:"question,omitempty"`
	Options           []Category `json:"options,omitempty"`
	Description       string     `json:"description,omitempty"`
}

// Resolve returns a copy of the item settled into category c.
func (li LineItem) Resolve(c Category) (LineItem, error) {
	if c == CategoryUnclear || c == "" {
		return LineItem{}, fmt.Errorf("cannot resolve %q into %q", li.Name, c)
	}
	if _, ok := ParseCategory(string(c)); !ok {
		return LineItem{}, fmt.Errorf("unknown category %q", c)
	}
	out := li
	out.Category = c
	out.IsInventory = Bool(c == CategoryInventory)
	out.Question = ""
	out.Options = nil
	return out, nil
}

// Bool returns a pointer to b, for the tri-state IsInventory field.
func Bool(b bool) *bool {
	return &b
}

// RejectedItem records why a candidate item was dropped. Kept for audit only.
type RejectedItem struct {
	RawText string `json:"raw_text"`
	Reason  string `json:"reason"`
}

// OCRQuality is the provider's self-assessment of the OCR text.
type OCRQuality string

const (
	OCRQualityGood     OCRQuality = "good"
	OCRQualityPoor     OCRQuality = "poor"
	OCRQualityTerrible OCRQuality = "terrible"
	OCRQualityUnknown  OCRQuality = "unknown"
)

// ParseOCRQuality maps free text to a quality level.
func ParseOCRQuality(s string) OCRQuality {
	switch OCRQuality(strings.ToLower(strings.TrimSpace(s))) {
	case OCRQualityGood:
		return OCRQualityGood
	case OCRQualityPoor:
		return OCRQualityPoor
	case OCRQualityTerrible:
		return OCRQualityTerrible
	}
	return OCRQualityUnknown
}

// Sources of a receipt payload.
const (
	SourceAI         = "ai"
	SourcePattern    = "pattern"
	SourceStructured = "structured"
)

// ReceiptData is carried by business_analysis and ocr_failed results.
// ExpenseItems, InventoryItems and IncomeItems always partition ClearItems.
type ReceiptData struct {
	OCRQuality     OCRQuality     `json:"ocr_quality"`
	ClearItems     []LineItem     `json:"clear_items"`
	UnclearItems   []LineItem     `json:"unclear_items"`
	RejectedItems  []RejectedItem `json:"rejected_items"`
	ExpenseItems   []LineItem     `json:"expense_items"`
	InventoryItems []LineItem     `json:"inventory_items"`
	IncomeItems    []LineItem     `json:"income_items"`
	Questions      []string       `json:"questions"`
	TotalAmount    *float64       `json:"total_amount,omitempty"`
	Vendor         string         `json:"vendor,omitempty"`
	Source         string         `json:"source"`
}

// NewReceiptData returns an empty payload with non-nil slices.
func NewReceiptData(source string) *ReceiptData {
	return &ReceiptData{
		OCRQuality:     OCRQualityUnknown,
		ClearItems:     []LineItem{},
		UnclearItems:   []LineItem{},
		RejectedItems:  []RejectedItem{},
		ExpenseItems:   []LineItem{},
		InventoryItems: []LineItem{},
		IncomeItems:    []LineItem{},
		Questions:      []string{},
		Source:         source,
	}
}

// ItemCount is the number of clear plus unclear items.
func (d *ReceiptData) ItemCount() int {
	return len(d.ClearItems) + len(d.UnclearItems)
}

// Partition rebuilds the per-category buckets from ClearItems.
func (d *ReceiptData) Partition() {
	d.ExpenseItems = []LineItem{}
	d.InventoryItems = []LineItem{}
	d.IncomeItems = []LineItem{}
	for _, item := range d.ClearItems {
		switch item.Category {
		case CategoryInventory:
			d.InventoryItems = append(d.InventoryItems, item)
		case CategoryIncome:
			d.IncomeItems = append(d.IncomeItems, item)
		default:
			d.ExpenseItems = append(d.ExpenseItems, item)
		}
	}
}

// AllItems returns clear items followed by unclear items.
func (d *ReceiptData) AllItems() []LineItem {
	out := make([]LineItem, 0, d.ItemCount())
	out = append(out, d.ClearItems...)
	return append(out, d.UnclearItems...)
}
