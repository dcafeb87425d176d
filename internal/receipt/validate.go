// validate.go - Item rules applied to every provider receipt answer

package receipt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/processor"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/shopspring/decimal"
)

// validate builds the receipt payload from a provider answer. Items whose
// names fail the validity rules are moved to RejectedItems; the returned
// count is how many were rejected here.
func validate(raw models.RawReceiptData, composer *response.Composer, language string) (*models.ReceiptData, int) {
	data := models.NewReceiptData(models.SourceAI)
	data.OCRQuality = models.ParseOCRQuality(raw.OCRQuality)
	data.Vendor = strings.TrimSpace(string(raw.Vendor))
	for _, r := range raw.RejectedItems {
		if strings.TrimSpace(r.RawText) != "" {
			data.RejectedItems = append(data.RejectedItems, r)
		}
	}

	clearBucket, unclearBucket := raw.ClearItems, raw.UnclearItems
	if len(clearBucket) == 0 && len(unclearBucket) == 0 {
		clearBucket = raw.Items
	}

	rejected := 0
	seen := make(map[string]bool)
	accept := func(li models.LineItem) {
		if err := processor.ValidateItemName(li.Name); err != nil {
			data.RejectedItems = append(data.RejectedItems, models.RejectedItem{RawText: li.Name, Reason: reasonOf(err)})
			rejected++
			return
		}

		li = settleAmounts(li)
		key := fmt.Sprintf("%s|%.2f", strings.ToLower(li.Name), li.Amount)
		if seen[key] {
			return
		}
		seen[key] = true

		if li.Category == models.CategoryUnclear {
			data.UnclearItems = append(data.UnclearItems, askFor(li, composer, language))
			return
		}
		li.IsInventory = models.Bool(li.Category == models.CategoryInventory)
		li.Question = ""
		li.Options = nil
		data.ClearItems = append(data.ClearItems, li)
	}

	for _, ri := range clearBucket {
		accept(ri.ToLineItem(models.CategoryExpense))
	}
	for _, ri := range unclearBucket {
		li := ri.ToLineItem(models.CategoryUnclear)
		li.Category = models.CategoryUnclear
		accept(li)
	}

	data.TotalAmount = receiptTotal(raw.TotalAmount, data.AllItems())
	data.Partition()
	return data, rejected
}

// settleAmounts clamps quantity and amount and keeps unit_price equal to
// amount / quantity. A missing amount is derived from the unit price.
func settleAmounts(li models.LineItem) models.LineItem {
	li.Quantity = models.ClampQuantity(li.Quantity)
	li.Amount = models.ClampAmount(li.Amount)
	li.UnitPrice = models.ClampAmount(li.UnitPrice)

	qty := decimal.NewFromInt(int64(li.Quantity))
	if li.Amount == 0 && li.UnitPrice > 0 {
		li.Amount = models.ClampAmount(decimal.NewFromFloat(li.UnitPrice).Mul(qty).Round(2).InexactFloat64())
	}
	li.UnitPrice = decimal.NewFromFloat(li.Amount).Div(qty).Round(2).InexactFloat64()
	return li
}

// askFor gives an unclear item the question and choices shown to the user.
func askFor(li models.LineItem, composer *response.Composer, language string) models.LineItem {
	li.IsInventory = nil
	if strings.TrimSpace(li.Question) == "" {
		li.Question = composer.UnclearQuestion(li.Name, language)
	}
	if len(li.Options) == 0 {
		li.Options = []models.Category{models.CategoryExpense, models.CategoryInventory}
	}
	return li
}

// receiptTotal prefers the printed total and otherwise sums the items.
func receiptTotal(printed *models.FlexibleFloat64, items []models.LineItem) *float64 {
	if v := printed.Float(0); v > 0 {
		total := models.ClampAmount(v)
		return &total
	}
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(decimal.NewFromFloat(li.Amount))
	}
	if !sum.IsPositive() {
		return nil
	}
	total := models.ClampAmount(sum.Round(2).InexactFloat64())
	return &total
}

func reasonOf(err error) string {
	var re *processor.RejectionError
	if errors.As(err, &re) {
		return re.Reason
	}
	return err.Error()
}
