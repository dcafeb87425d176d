package response

import (
	"strings"
	"testing"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/bizsakhi/sakhi_ai_core/internal/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allLanguages = []string{"en", "hi", "ta", "ml", "te", "kn", "gu", "bn", "mr", "fr", ""}

var allIntents = []models.Intent{
	models.IntentIncome,
	models.IntentExpense,
	models.IntentInventory,
	models.IntentItemClarification,
	models.IntentQuery,
	models.IntentConversational,
	models.IntentOffTopic,
	models.IntentOCRFailed,
	models.IntentBusinessAnalysis,
	models.Intent("mystery"),
}

func TestComposeNeverEmpty(t *testing.T) {
	c := NewComposer()
	for _, intent := range allIntents {
		for _, lang := range allLanguages {
			p := c.Compose(models.IntentResult{Intent: intent}, lang)
			assert.NotEmpty(t, strings.TrimSpace(p.Message), "intent=%s lang=%s", intent, lang)
			assert.NotEmpty(t, p.Action)
			assert.NotNil(t, p.Data)
		}
	}
}

func TestEveryTemplateHasEnglish(t *testing.T) {
	for _, e := range Events() {
		assert.NotEmpty(t, templates[e][DefaultLanguage], "event %s", e)
	}
}

func TestTransactionRecorded(t *testing.T) {
	c := NewComposer()

	assert.Equal(t, "✅ Expense of ₹2000.0 recorded successfully!", c.TransactionRecorded(models.IntentExpense, 2000, "en"))
	assert.Equal(t, "✅ Income of ₹10000.0 recorded successfully!", c.TransactionRecorded(models.IntentIncome, 10000, "en"))
	assert.Equal(t, "✅ ₹500.0 की आय सफलतापूर्वक दर्ज की गई!", c.TransactionRecorded(models.IntentIncome, 500, "hi"))
	assert.Equal(t, "✅ ₹750.5 ചെലവ് വിജയകരമായി രേഖപ്പെടുത്തി!", c.TransactionRecorded(models.IntentExpense, 750.5, "ml"))

	// Unknown languages and regional tags fall back sensibly
	assert.Equal(t, "✅ Expense of ₹1.0 recorded successfully!", c.TransactionRecorded(models.IntentExpense, 1, "fr"))
	assert.Equal(t, c.TransactionRecorded(models.IntentIncome, 1, "hi"), c.TransactionRecorded(models.IntentIncome, 1, "hi-IN"))
}

func TestComposerIsLocalizer(t *testing.T) {
	var _ processor.Localizer = NewComposer()
}

func TestComposeKeepsProviderMessage(t *testing.T) {
	p := NewComposer().Compose(models.IntentResult{
		Intent:            models.IntentConversational,
		Action:            "respond",
		Confidence:        0.9,
		ResponseMessage:   "  GST is a tax on goods and services.  ",
		IsBusinessRelated: true,
	}, "en")

	assert.True(t, p.Success)
	assert.Equal(t, "GST is a tax on goods and services.", p.Message)
	assert.Equal(t, "en", p.Language)
	assert.False(t, p.NeedsClarification)
}

func TestComposeFillsTransactionMessage(t *testing.T) {
	p := NewComposer().Compose(models.IntentResult{
		Intent: models.IntentIncome,
		Action: "add",
		Data:   &models.TransactionData{Amount: 10000},
	}, "en")
	assert.Equal(t, "✅ Income of ₹10000.0 recorded successfully!", p.Message)
}

func TestComposeClarificationItems(t *testing.T) {
	items := []models.LineItem{{Name: "Samsung Galaxy", Quantity: 5, Amount: 125000, Category: models.CategoryUnclear}}
	p := NewComposer().Compose(models.IntentResult{
		Intent: models.IntentItemClarification,
		Action: "clarify",
		Data:   &models.ClarificationData{Items: items},
	}, "hi")

	require.Len(t, p.ClarificationItems, 1)
	assert.True(t, p.NeedsClarification)
	assert.Equal(t, "कृपया बताएं कि हर आइटम को कैसे दर्ज करना है:", p.Message)
}

func TestComposeOCRFailed(t *testing.T) {
	p := NewComposer().Compose(models.IntentResult{
		Intent:     models.IntentOCRFailed,
		Action:     "retry",
		Confidence: 0.1,
		Data:       models.NewReceiptData(models.SourceAI),
	}, "en")

	assert.False(t, p.Success)
	assert.Contains(t, p.Message, "clearer photo")
	assert.Empty(t, p.ClarificationItems)
}

func TestReceiptMessage(t *testing.T) {
	c := NewComposer()

	rd := models.NewReceiptData(models.SourceAI)
	assert.Equal(t, "Text extracted but no transactions found", c.ReceiptMessage(rd, "en"))

	total := 1250.0
	rd.TotalAmount = &total
	assert.Equal(t, "Receipt processed: no individual items found, total amount ₹1,250.00", c.ReceiptMessage(rd, "en"))
	rd.TotalAmount = nil

	rd.ClearItems = []models.LineItem{
		{Name: "Rice", Category: models.CategoryExpense},
		{Name: "Phone", Category: models.CategoryInventory},
	}
	rd.Partition()
	assert.Equal(t, "Receipt processed: 1 expenses, 1 inventory, 0 income", c.ReceiptMessage(rd, "en"))

	rd.UnclearItems = []models.LineItem{{Name: "Paper", Category: models.CategoryUnclear}}
	assert.Equal(t, "Found 2 clear items and 1 items that need clarification.", c.ReceiptMessage(rd, "en"))

	fallback := models.NewReceiptData(models.SourcePattern)
	fallback.ClearItems = []models.LineItem{{Name: "Milk", Category: models.CategoryExpense}}
	fallback.Partition()
	assert.Equal(t, "रसीद संसाधित: 1 खर्च, 0 स्टॉक आइटम", c.ReceiptMessage(fallback, "hi"))
}

func TestUnclearQuestion(t *testing.T) {
	c := NewComposer()
	assert.Equal(t, "How do you use Printer Paper? For your business (expense) or for selling (inventory)?", c.UnclearQuestion(" Printer Paper ", "en"))
	assert.Contains(t, c.UnclearQuestion("", "ta"), "this item")
}

func TestRenderUnknownEvent(t *testing.T) {
	assert.Empty(t, Render(Event("nope"), "en"))
	assert.Equal(t, "✅ Successfully processed 3 items!", Render(EventItemsProcessed, "en", 3))
}

func TestProfitLoss(t *testing.T) {
	c := NewComposer()

	profit := c.ProfitLoss(12500.5, 4000.25, 8500.25, 68, "en")
	assert.Contains(t, profit, "Total Income: ₹12,500.50")
	assert.Contains(t, profit, "Net Profit: ₹8,500.25")
	assert.Contains(t, profit, "Profit Margin: 68.0%")

	loss := c.ProfitLoss(1000, 1500, -500, -50, "hi")
	assert.Contains(t, loss, "शुद्ध हानि: ₹500.00")
	assert.Contains(t, loss, "50.0%")

	even := c.ProfitLoss(0, 0, 0, 0, "gu")
	assert.True(t, strings.HasPrefix(even, "📊 Your business is at break-even."))
}
