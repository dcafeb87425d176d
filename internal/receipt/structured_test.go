package receipt

import (
	"encoding/json"
	"testing"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStructured(t *testing.T) {
	var receipt StructuredReceipt
	require.NoError(t, json.Unmarshal([]byte(`{
		"merchant": {"name": "Sharma General Store", "phone": "9876543210"},
		"items": [
			{"name": "Samsung Galaxy A54", "quantity": 2, "unit_price": 25000, "total_price": "50,000"},
			{"name": "Rice Bag", "quantity": "3", "unit_price": 400, "unit": "kg"},
			{"name": "xxx", "quantity": 1, "total_price": 10},
			{"name": "GST 18%", "total_price": 9000}
		],
		"totals": {"subtotal": 51200, "tax": 9000, "total": 60200}
	}`), &receipt))

	res := NewExtractor(nil, nil).FromStructured(receipt, "en")

	assert.Equal(t, models.IntentItemClarification, res.Intent)
	assert.Equal(t, "categorize_items", res.Action)
	assert.Equal(t, StructuredConfidence, res.Confidence)
	assert.True(t, res.NeedsClarification)
	assert.Equal(t, "I found 2 items from your receipt. Please review and confirm the categorization:", res.ResponseMessage)

	cd, ok := res.Data.(*models.ClarificationData)
	require.True(t, ok)
	require.Len(t, cd.Items, 2)

	phone := cd.Items[0]
	assert.Equal(t, 50000.0, phone.Amount)
	assert.Equal(t, 25000.0, phone.UnitPrice)
	assert.Equal(t, "pieces", phone.Unit)
	assert.Equal(t, models.CategoryUnclear, phone.Category)
	assert.Equal(t, models.CategoryInventory, phone.SuggestedCategory)
	assert.Equal(t, "How do you use Samsung Galaxy A54?", phone.Question)
	assert.Equal(t, "From receipt: Sharma General Store", phone.Description)

	rice := cd.Items[1]
	assert.Equal(t, 3, rice.Quantity)
	assert.Equal(t, 1200.0, rice.Amount)
	assert.Equal(t, "kg", rice.Unit)
}

func TestFromStructuredWithoutItems(t *testing.T) {
	receipt := StructuredReceipt{Totals: Totals{Total: flex(450)}}

	res := NewExtractor(nil, nil).FromStructured(receipt, "en")

	assert.False(t, res.NeedsClarification)
	assert.Equal(t, "I processed your receipt from Unknown store, but couldn't extract specific items. The total amount was 450.0.", res.ResponseMessage)
}

func TestFromStructuredHindi(t *testing.T) {
	receipt := StructuredReceipt{
		Merchant: Merchant{Name: "Gupta Traders"},
		Items:    []StructuredItem{{Name: "Notebook Set", TotalPrice: flex(120)}},
	}

	res := NewExtractor(nil, nil).FromStructured(receipt, "hi")

	cd, ok := res.Data.(*models.ClarificationData)
	require.True(t, ok)
	require.Len(t, cd.Items, 1)
	assert.Equal(t, "आप Notebook Set का उपयोग कैसे करते हैं?", cd.Items[0].Question)
	assert.Equal(t, 120.0, cd.Items[0].UnitPrice)
}

func flex(v float64) *models.FlexibleFloat64 {
	f := models.FlexibleFloat64(v)
	return &f
}
