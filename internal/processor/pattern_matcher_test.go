package processor

import (
	"fmt"
	"testing"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLocalizer struct{}

func (stubLocalizer) TransactionRecorded(kind models.Intent, amount float64, language string) string {
	return fmt.Sprintf("%s:%s:%s", kind, models.FormatAmount(amount), language)
}

func TestPatternMatcher_Detect(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantKind   models.Intent
		wantAmount float64
		wantNil    bool
	}{
		{name: "expense with rs prefix", message: "expense is Rs 2000", wantKind: models.IntentExpense, wantAmount: 2000},
		{name: "income with grouping and decimals", message: "income 10,000.00", wantKind: models.IntentIncome, wantAmount: 10000},
		{name: "rupee symbol", message: "received ₹1,500", wantKind: models.IntentIncome, wantAmount: 1500},
		{name: "paid for rent", message: "paid 500 for rent", wantKind: models.IntentExpense, wantAmount: 500},
		{name: "bought for", message: "I bought for 250", wantKind: models.IntentExpense, wantAmount: 250},
		{name: "bought items", message: "I bought 5 phones for Rs.125000", wantNil: true},
		{name: "amount before hindi income word", message: "5000 आय", wantKind: models.IntentIncome, wantAmount: 5000},
		{name: "hindi expense", message: "खर्च 300", wantKind: models.IntentExpense, wantAmount: 300},
		{name: "word containing if is not a question", message: "gift shop received 300", wantKind: models.IntentIncome, wantAmount: 300},
		{name: "hypothetical", message: "what if I spend 2000", wantNil: true},
		{name: "question mark", message: "spent 2000?", wantNil: true},
		{name: "profit question", message: "profit from income 5000", wantNil: true},
		{name: "hindi question", message: "कितना खर्च 500", wantNil: true},
		{name: "zero amount", message: "spent 0", wantNil: true},
		{name: "no amount", message: "hello there", wantNil: true},
		{name: "empty", message: "   ", wantNil: true},
	}

	pm := NewPatternMatcher(stubLocalizer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guess := pm.Detect(tt.message, "en")
			if tt.wantNil {
				assert.Nil(t, guess)
				return
			}
			require.NotNil(t, guess)
			assert.Equal(t, tt.wantKind, guess.Kind)
			assert.InDelta(t, tt.wantAmount, guess.Amount, 0.001)
			assert.Equal(t, FastPathConfidence, guess.Confidence)
		})
	}
}

func TestPatternMatcher_LocalizesMessage(t *testing.T) {
	pm := NewPatternMatcher(stubLocalizer{})

	guess := pm.Detect("spent 2000", "hi")

	require.NotNil(t, guess)
	assert.Equal(t, "expense:2000.0:hi", guess.ResponseMessage)
}

func TestTransactionGuess_ToResult(t *testing.T) {
	guess := &TransactionGuess{Kind: models.IntentExpense, Amount: 2000, Confidence: FastPathConfidence, ResponseMessage: "ok"}

	res := guess.ToResult()

	assert.Equal(t, models.IntentExpense, res.Intent)
	assert.Equal(t, "add", res.Action)
	assert.True(t, res.FastDetection)
	assert.True(t, res.IsBusinessRelated)
	td, ok := res.Transaction()
	require.True(t, ok)
	assert.Equal(t, 2000.0, td.Amount)
	assert.Equal(t, "Expense - ₹2000.0", td.Description)
	assert.Equal(t, "General", td.Category)
}

func TestIsQuestion(t *testing.T) {
	assert.True(t, IsQuestion("How much did I earn"))
	assert.True(t, IsQuestion("tell me my expenses"))
	assert.True(t, IsQuestion("எவ்வளவு செலவு"))
	assert.False(t, IsQuestion("spent 200 on whitewash"))
	assert.False(t, IsQuestion("received 300"))
}

func TestIsInterrogative(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"How much did I earn today", true},
		{"what if I sell 10 more", true},
		{"sold 5 sarees?", true},
		{"आज कितना खर्च हुआ", true},
		{"Received 5000 profit from today's sales", false},
		{"Got 3000 when the customer paid for sarees", false},
		{"who bought the rice, paid 400", false},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInterrogative(tt.message))
		})
	}
}
