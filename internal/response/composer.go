// composer.go - Final payload assembly for the boundary layer

package response

import (
	"math"
	"strconv"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/models"
)

// Payload is what the boundary returns to the caller. It never carries an
// empty Message.
type Payload struct {
	Success            bool              `json:"success"`
	Message            string            `json:"message"`
	Intent             models.Intent     `json:"intent"`
	Action             string            `json:"action"`
	Confidence         float64           `json:"confidence"`
	Data               models.Payload    `json:"data"`
	ClarificationItems []models.LineItem `json:"clarification_items,omitempty"`
	NeedsClarification bool              `json:"needs_clarification"`
	IsBusinessRelated  bool              `json:"is_business_related"`
	FastDetection      bool              `json:"fast_detection,omitempty"`
	Language           string            `json:"language"`
}

// Composer owns the localized templates. It holds no state and never
// persists anything.
type Composer struct{}

// NewComposer creates a Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose turns a result into the caller-facing payload, filling a localized
// message when the result has none.
func (c *Composer) Compose(res models.IntentResult, language string) Payload {
	res.Normalize()
	if res.ResponseMessage == "" {
		res.ResponseMessage = c.DefaultMessage(res, language)
	}

	p := Payload{
		Success:            res.Intent != models.IntentOCRFailed,
		Message:            res.ResponseMessage,
		Intent:             res.Intent,
		Action:             res.Action,
		Confidence:         res.Confidence,
		Data:               res.Data,
		NeedsClarification: res.NeedsClarification,
		IsBusinessRelated:  res.IsBusinessRelated,
		FastDetection:      res.FastDetection,
		Language:           normalizeLanguage(language),
	}

	switch data := res.Data.(type) {
	case *models.ClarificationData:
		p.ClarificationItems = data.Items
	case *models.ReceiptData:
		p.ClarificationItems = data.UnclearItems
	}
	if len(p.ClarificationItems) > 0 {
		p.NeedsClarification = true
	}
	return p
}

// TransactionRecorded is the fast-path success message.
func (c *Composer) TransactionRecorded(kind models.Intent, amount float64, language string) string {
	event := EventExpenseAdded
	switch kind {
	case models.IntentIncome:
		event = EventIncomeAdded
	case models.IntentInventory:
		event = EventInventoryAdded
	}
	return Render(event, language, models.FormatAmount(amount))
}

// Message renders a standard event.
func (c *Composer) Message(event Event, language string, args ...any) string {
	return Render(event, language, args...)
}

// DefaultMessage is the localized message for a result whose provider
// answer carried none. It is never empty.
func (c *Composer) DefaultMessage(res models.IntentResult, language string) string {
	switch res.Intent {
	case models.IntentIncome, models.IntentExpense, models.IntentInventory:
		if td, ok := res.Transaction(); ok && td.Amount > 0 {
			return c.TransactionRecorded(res.Intent, td.Amount, language)
		}
		return Render(EventBusinessHelp, language)
	case models.IntentItemClarification:
		return Render(EventClarify, language)
	case models.IntentQuery:
		return Render(EventQuery, language)
	case models.IntentOffTopic:
		return Render(EventOffTopic, language)
	case models.IntentOCRFailed:
		return Render(EventOCRFailed, language)
	case models.IntentBusinessAnalysis:
		if rd, ok := res.Receipt(); ok {
			return c.ReceiptMessage(rd, language)
		}
		return Render(EventReceiptEmpty, language)
	}
	return Render(EventBusinessHelp, language)
}

// ReceiptMessage summarises a validated receipt.
func (c *Composer) ReceiptMessage(rd *models.ReceiptData, language string) string {
	switch {
	case rd.ItemCount() == 0 && rd.TotalAmount != nil && *rd.TotalAmount > 0:
		return Render(EventReceiptTotalOnly, language, models.FormatMoney(*rd.TotalAmount))
	case rd.ItemCount() == 0:
		return Render(EventReceiptEmpty, language)
	case len(rd.UnclearItems) > 0:
		return Render(EventReceiptUnclear, language, len(rd.ClearItems), len(rd.UnclearItems))
	case rd.Source == models.SourcePattern:
		return Render(EventReceiptFallback, language, len(rd.ExpenseItems), len(rd.InventoryItems))
	}
	return Render(EventReceiptSummary, language, len(rd.ExpenseItems), len(rd.InventoryItems), len(rd.IncomeItems))
}

// ProfitLoss renders a profit and loss summary. Net and margin are signed;
// the loss template shows their magnitude.
func (c *Composer) ProfitLoss(income, expenses, net, margin float64, language string) string {
	switch {
	case net > 0:
		return Render(EventProfit, language, models.FormatMoney(income), models.FormatMoney(expenses),
			models.FormatMoney(net), strconv.FormatFloat(margin, 'f', 1, 64))
	case net < 0:
		return Render(EventLoss, language, models.FormatMoney(income), models.FormatMoney(expenses),
			models.FormatMoney(math.Abs(net)), strconv.FormatFloat(math.Abs(margin), 'f', 1, 64))
	}
	return Render(EventBreakEven, language, models.FormatMoney(income), models.FormatMoney(expenses))
}

// UnclearQuestion is the default question for an item without one.
func (c *Composer) UnclearQuestion(itemName, language string) string {
	name := strings.TrimSpace(itemName)
	if name == "" {
		name = "this item"
	}
	return Render(EventUnclearItemDefault, language, name)
}
