// structured.go - Receipts that arrive already structured by the OCR service

package receipt

import (
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/processor"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/shopspring/decimal"
)

// StructuredConfidence is reported for structured receipts.
const StructuredConfidence = 0.9

const defaultUnit = "pieces"

// Merchant identifies the store on a structured receipt.
type Merchant struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// StructuredItem is one printed line of a structured receipt.
type StructuredItem struct {
	Name       string                  `json:"name"`
	Quantity   *models.FlexibleFloat64 `json:"quantity"`
	UnitPrice  *models.FlexibleFloat64 `json:"unit_price"`
	TotalPrice *models.FlexibleFloat64 `json:"total_price"`
	Unit       string                  `json:"unit,omitempty"`
}

// Totals are the summary amounts printed at the bottom of the receipt.
type Totals struct {
	Subtotal *models.FlexibleFloat64 `json:"subtotal,omitempty"`
	Tax      *models.FlexibleFloat64 `json:"tax,omitempty"`
	Total    *models.FlexibleFloat64 `json:"total,omitempty"`
}

// StructuredReceipt is the shape some OCR services return instead of text.
type StructuredReceipt struct {
	Merchant Merchant         `json:"merchant"`
	Items    []StructuredItem `json:"items"`
	Totals   Totals           `json:"totals"`
}

// FromStructured asks the user to categorize every item of a structured
// receipt. Nothing is recorded until the items are confirmed.
func (e *Extractor) FromStructured(receipt StructuredReceipt, language string) models.IntentResult {
	merchant := strings.TrimSpace(receipt.Merchant.Name)
	if merchant == "" {
		merchant = "Unknown store"
	}

	items := make([]models.LineItem, 0, len(receipt.Items))
	for _, si := range receipt.Items {
		name := strings.TrimSpace(si.Name)
		if processor.ValidateItemName(name) != nil {
			continue
		}

		qty := 1
		if si.Quantity != nil {
			qty = models.ClampQuantity(int(float64(*si.Quantity)))
		}
		unitPrice := models.ClampAmount(si.UnitPrice.Float(0))
		amount := models.ClampAmount(si.TotalPrice.Float(0))
		q := decimal.NewFromInt(int64(qty))
		switch {
		case amount == 0 && unitPrice > 0:
			amount = models.ClampAmount(decimal.NewFromFloat(unitPrice).Mul(q).Round(2).InexactFloat64())
		case unitPrice == 0 && amount > 0:
			unitPrice = decimal.NewFromFloat(amount).Div(q).Round(2).InexactFloat64()
		}

		unit := strings.TrimSpace(si.Unit)
		if unit == "" {
			unit = defaultUnit
		}

		items = append(items, models.LineItem{
			Name:              name,
			Quantity:          qty,
			Amount:            amount,
			UnitPrice:         unitPrice,
			Unit:              unit,
			Category:          models.CategoryUnclear,
			SuggestedCategory: models.CategoryInventory,
			Question:          e.composer.Message(response.EventStructuredQuestion, language, name),
			Options:           []models.Category{models.CategoryExpense, models.CategoryInventory},
			Description:       "From receipt: " + merchant,
		})
	}

	if len(items) == 0 {
		total := models.ClampAmount(receipt.Totals.Total.Float(0))
		return models.IntentResult{
			Intent:            models.IntentConversational,
			Action:            models.DefaultAction,
			Confidence:        StructuredConfidence,
			Data:              models.GenericData{"merchant": merchant, "total": total},
			ResponseMessage:   e.composer.Message(response.EventStructuredNoItems, language, merchant, models.FormatAmount(total)),
			IsBusinessRelated: true,
		}
	}

	return models.IntentResult{
		Intent:             models.IntentItemClarification,
		Action:             "categorize_items",
		Confidence:         StructuredConfidence,
		Data:               &models.ClarificationData{Items: items},
		ResponseMessage:    e.composer.Message(response.EventStructuredFound, language, len(items)),
		IsBusinessRelated:  true,
		NeedsClarification: true,
	}
}
