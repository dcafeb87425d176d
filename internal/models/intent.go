// intent.go - Message and IntentResult types

package models

import "strings"

// ChatMode changes whether financial mentions are recorded or treated as questions.
type ChatMode string

const (
	ChatModeGeneral  ChatMode = "general"
	ChatModeBusiness ChatMode = "business"
)

// ParseChatMode maps caller input to a ChatMode, defaulting to general.
func ParseChatMode(s string) ChatMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ChatModeBusiness)) {
		return ChatModeBusiness
	}
	return ChatModeGeneral
}

// Message is one inbound user message.
type Message struct {
	Text     string
	Language string
	ChatMode ChatMode
}

// Intent tags the variant carried by an IntentResult.
type Intent string

const (
	IntentIncome            Intent = "income"
	IntentExpense           Intent = "expense"
	IntentInventory         Intent = "inventory"
	IntentItemClarification Intent = "item_clarification"
	IntentQuery             Intent = "query"
	IntentConversational    Intent = "conversational"
	IntentOffTopic          Intent = "off_topic"
	IntentOCRFailed         Intent = "ocr_failed"
	IntentBusinessAnalysis  Intent = "business_analysis"
)

var knownIntents = map[Intent]bool{
	IntentIncome:            true,
	IntentExpense:           true,
	IntentInventory:         true,
	IntentItemClarification: true,
	IntentQuery:             true,
	IntentConversational:    true,
	IntentOffTopic:          true,
	IntentOCRFailed:         true,
	IntentBusinessAnalysis:  true,
}

// Valid reports whether i is one of the known intents.
func (i Intent) Valid() bool {
	return knownIntents[i]
}

// IsTransaction reports whether the intent records money or stock.
func (i Intent) IsTransaction() bool {
	return i == IntentIncome || i == IntentExpense || i == IntentInventory
}

// Defaults applied when a provider omits mandatory fields.
const (
	DefaultAction     = "respond"
	DefaultConfidence = 0.8
)

// IntentResult is the single result shape produced by the resolver and the
// receipt extractor. Data holds the variant payload for the intent.
type IntentResult struct {
	Intent             Intent  `json:"intent"`
	Action             string  `json:"action"`
	Confidence         float64 `json:"confidence"`
	Data               Payload `json:"data"`
	ResponseMessage    string  `json:"response_message"`
	IsBusinessRelated  bool    `json:"is_business_related"`
	NeedsClarification bool    `json:"needs_clarification"`
	FastDetection      bool    `json:"fast_detection,omitempty"`
}

// Payload is implemented by every variant payload.
type Payload interface {
	payload()
}

// TransactionData is carried by income, expense and inventory results.
type TransactionData struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	ItemName    string  `json:"item_name,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

// ClarificationData is carried by item_clarification results.
type ClarificationData struct {
	Items     []LineItem `json:"items"`
	Questions []string   `json:"questions,omitempty"`
}

// GenericData carries free-form fields for conversational, query and
// off_topic results.
type GenericData map[string]any

func (*TransactionData) payload()   {}
func (*ClarificationData) payload() {}
func (GenericData) payload()        {}
func (*ReceiptData) payload()       {}

// Normalize coerces an already-parsed result into the closed set of intents
// and keeps confidence inside [0, 1]. Absent-field defaults are applied by
// RawIntentResult.Normalize before this runs.
func (r *IntentResult) Normalize() {
	if !r.Intent.Valid() {
		r.Intent = IntentConversational
	}
	if strings.TrimSpace(r.Action) == "" {
		r.Action = DefaultAction
	}
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	if r.Data == nil {
		r.Data = GenericData{}
	}
	r.ResponseMessage = strings.TrimSpace(r.ResponseMessage)
}

// Transaction returns the transaction payload, if any.
func (r IntentResult) Transaction() (*TransactionData, bool) {
	td, ok := r.Data.(*TransactionData)
	return td, ok && td != nil
}

// Receipt returns the receipt payload, if any.
func (r IntentResult) Receipt() (*ReceiptData, bool) {
	rd, ok := r.Data.(*ReceiptData)
	return rd, ok && rd != nil
}
