package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeIntent(t *testing.T, body string) IntentResult {
	t.Helper()
	var raw RawIntentResult
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw.Normalize()
}

func TestRawIntentDefaults(t *testing.T) {
	res := decodeIntent(t, `{"response_message": "Hello!"}`)

	assert.Equal(t, IntentConversational, res.Intent)
	assert.Equal(t, DefaultAction, res.Action)
	assert.Equal(t, DefaultConfidence, res.Confidence)
	assert.Equal(t, "Hello!", res.ResponseMessage)
	assert.True(t, res.IsBusinessRelated)
	assert.Equal(t, GenericData{}, res.Data)
}

func TestRawIntentUnknownIntentAndClamp(t *testing.T) {
	res := decodeIntent(t, `{"intent": "dance", "confidence": 7, "action": "  "}`)
	assert.Equal(t, IntentConversational, res.Intent)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, DefaultAction, res.Action)

	res = decodeIntent(t, `{"intent": "OFF_TOPIC", "confidence": "-0.5"}`)
	assert.Equal(t, IntentOffTopic, res.Intent)
	assert.Equal(t, 0.0, res.Confidence)
	assert.False(t, res.IsBusinessRelated)
}

func TestRawIntentTransactionPayload(t *testing.T) {
	res := decodeIntent(t, `{
		"intent": "expense",
		"action": "add",
		"confidence": 0.9,
		"data": {"amount": "₹1,500.50", "description": "Rent", "category": "Rent", "quantity": 0}
	}`)

	td, ok := res.Transaction()
	require.True(t, ok)
	assert.Equal(t, 1500.50, td.Amount)
	assert.Equal(t, "Rent", td.Description)
	assert.Equal(t, MinQuantity, td.Quantity)
}

func TestRawIntentClarificationItems(t *testing.T) {
	res := decodeIntent(t, `{
		"intent": "item_clarification",
		"action": "clarify",
		"data": {"items": [
			{"name": "Samsung Galaxy", "quantity": 5, "amount": 125000, "cost_per_unit": 25000,
			 "unit": "pieces", "suggested_category": "inventory", "description": "phones"}
		]},
		"needs_clarification": true
	}`)

	cd, ok := res.Data.(*ClarificationData)
	require.True(t, ok)
	require.Len(t, cd.Items, 1)

	item := cd.Items[0]
	assert.Equal(t, "Samsung Galaxy", item.Name)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 25000.0, item.UnitPrice)
	assert.Equal(t, "pieces", item.Unit)
	assert.Equal(t, CategoryUnclear, item.Category)
	assert.Equal(t, CategoryInventory, item.SuggestedCategory)
	assert.True(t, res.NeedsClarification)
}

func TestRawItemQuantityBounds(t *testing.T) {
	var ri RawItem
	require.NoError(t, json.Unmarshal([]byte(`{"name": " Rice ", "quantity": 50000, "options": ["expense", "unclear", "inventory", "bogus"]}`), &ri))

	li := ri.ToLineItem(CategoryExpense)
	assert.Equal(t, "Rice", li.Name)
	assert.Equal(t, MaxQuantity, li.Quantity)
	assert.Equal(t, CategoryExpense, li.Category)
	assert.Equal(t, []Category{CategoryExpense, CategoryInventory}, li.Options)
}

func TestFlexibleFloat64(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`10000`, 10000},
		{`"10,000.00"`, 10000},
		{`"Rs 2,50,000"`, 250000},
		{`"Rs. 500"`, 500},
		{`null`, 0},
		{`""`, 0},
	}
	for _, tt := range tests {
		var f FlexibleFloat64
		require.NoError(t, json.Unmarshal([]byte(tt.in), &f), tt.in)
		assert.Equal(t, tt.want, float64(f), tt.in)
	}

	var f FlexibleFloat64
	assert.Error(t, json.Unmarshal([]byte(`{}`), &f))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "12,500.50", FormatMoney(12500.5))
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "999.99", FormatMoney(999.99))
	assert.Equal(t, "-1,234,567.00", FormatMoney(-1234567))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2000.0", FormatAmount(2000))
	assert.Equal(t, "10000.0", FormatAmount(10000.00))
	assert.Equal(t, "1250.5", FormatAmount(1250.5))
	assert.Equal(t, "99.99", FormatAmount(99.99))
}

func TestLineItemResolve(t *testing.T) {
	item := LineItem{
		Name:     "Office Supplies",
		Quantity: 10,
		Amount:   500,
		Category: CategoryUnclear,
		Question: "For business use or for selling?",
		Options:  []Category{CategoryExpense, CategoryInventory},
	}

	resolved, err := item.Resolve(CategoryInventory)
	require.NoError(t, err)
	assert.Equal(t, CategoryInventory, resolved.Category)
	require.NotNil(t, resolved.IsInventory)
	assert.True(t, *resolved.IsInventory)
	assert.Empty(t, resolved.Question)

	// The original is untouched
	assert.Equal(t, CategoryUnclear, item.Category)
	assert.Nil(t, item.IsInventory)

	_, err = item.Resolve(CategoryUnclear)
	assert.Error(t, err)
	_, err = item.Resolve("gift")
	assert.Error(t, err)
}

func TestReceiptPartitionConservesItems(t *testing.T) {
	d := NewReceiptData(SourceAI)
	d.ClearItems = []LineItem{
		{Name: "Rice", Category: CategoryExpense},
		{Name: "Phone", Category: CategoryInventory},
		{Name: "Sales", Category: CategoryIncome},
		{Name: "Fuel", Category: CategoryExpense},
	}
	d.UnclearItems = []LineItem{{Name: "Paper", Category: CategoryUnclear}}
	d.Partition()

	assert.Len(t, d.ExpenseItems, 2)
	assert.Len(t, d.InventoryItems, 1)
	assert.Len(t, d.IncomeItems, 1)
	assert.Equal(t, len(d.ClearItems), len(d.ExpenseItems)+len(d.InventoryItems)+len(d.IncomeItems))
	assert.Equal(t, 5, d.ItemCount())
	assert.Len(t, d.AllItems(), 5)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, ChatModeBusiness, ParseChatMode(" Business "))
	assert.Equal(t, ChatModeGeneral, ParseChatMode(""))
	assert.Equal(t, OCRQualityTerrible, ParseOCRQuality("TERRIBLE"))
	assert.Equal(t, OCRQualityUnknown, ParseOCRQuality("meh"))
	assert.Equal(t, MinQuantity, ClampQuantity(-5))
	assert.Equal(t, MaxQuantity, ClampQuantity(20000))
	assert.Equal(t, MaxAmount, ClampAmount(1e12))
}
