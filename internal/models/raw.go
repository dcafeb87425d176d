// raw.go - Provider JSON shapes before normalization

package models

import (
	"encoding/json"
	"strings"
)

// RawIntentResult is the loosely typed JSON a provider returns for a chat
// message. Pointers distinguish absent fields from zero values.
type RawIntentResult struct {
	Intent             *string          `json:"intent"`
	Action             *string          `json:"action"`
	Confidence         *FlexibleFloat64 `json:"confidence"`
	Data               json.RawMessage  `json:"data"`
	ResponseMessage    *string          `json:"response_message"`
	IsBusinessRelated  *bool            `json:"is_business_related"`
	NeedsClarification *bool            `json:"needs_clarification"`
}

// rawTransaction covers the data fields providers use for money intents.
type rawTransaction struct {
	Amount      *FlexibleFloat64 `json:"amount"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	ItemName    string           `json:"item_name"`
	Name        string           `json:"name"`
	Quantity    *FlexibleFloat64 `json:"quantity"`
}

type rawClarification struct {
	Items     []RawItem `json:"items"`
	Questions []string  `json:"questions"`
}

// Normalize applies the absent-field defaults (intent conversational, action
// respond, confidence 0.8) and decodes Data into the variant for the intent.
func (raw RawIntentResult) Normalize() IntentResult {
	res := IntentResult{
		Intent:     IntentConversational,
		Action:     DefaultAction,
		Confidence: DefaultConfidence,
	}
	if raw.Intent != nil && strings.TrimSpace(*raw.Intent) != "" {
		res.Intent = Intent(strings.ToLower(strings.TrimSpace(*raw.Intent)))
	}
	if raw.Action != nil && strings.TrimSpace(*raw.Action) != "" {
		res.Action = strings.TrimSpace(*raw.Action)
	}
	if raw.Confidence != nil {
		res.Confidence = float64(*raw.Confidence)
	}
	if raw.ResponseMessage != nil {
		res.ResponseMessage = *raw.ResponseMessage
	}
	if raw.NeedsClarification != nil {
		res.NeedsClarification = *raw.NeedsClarification
	}

	res.Normalize()
	res.Data = decodePayload(res.Intent, raw.Data)

	switch {
	case raw.IsBusinessRelated != nil:
		res.IsBusinessRelated = *raw.IsBusinessRelated
	default:
		res.IsBusinessRelated = res.Intent != IntentOffTopic
	}
	return res
}

func decodePayload(intent Intent, data json.RawMessage) Payload {
	if len(data) == 0 || string(data) == "null" {
		if intent.IsTransaction() {
			return &TransactionData{}
		}
		return GenericData{}
	}

	switch {
	case intent.IsTransaction():
		var rt rawTransaction
		if err := json.Unmarshal(data, &rt); err != nil {
			return &TransactionData{}
		}
		td := &TransactionData{
			Amount:      rt.Amount.Float(0),
			Description: rt.Description,
			Category:    rt.Category,
			ItemName:    rt.ItemName,
		}
		if td.ItemName == "" {
			td.ItemName = rt.Name
		}
		if rt.Quantity != nil {
			td.Quantity = quantityFromFloat(float64(*rt.Quantity))
		}
		return td

	case intent == IntentItemClarification:
		var rc rawClarification
		if err := json.Unmarshal(data, &rc); err != nil {
			return &ClarificationData{Items: []LineItem{}}
		}
		cd := &ClarificationData{Items: make([]LineItem, 0, len(rc.Items)), Questions: rc.Questions}
		for _, ri := range rc.Items {
			cd.Items = append(cd.Items, ri.ToLineItem(CategoryUnclear))
		}
		return cd
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil || generic == nil {
		return GenericData{}
	}
	return GenericData(generic)
}

// RawReceiptResult is the provider JSON for receipt extraction.
type RawReceiptResult struct {
	Intent             *string          `json:"intent"`
	Action             *string          `json:"action"`
	Confidence         *FlexibleFloat64 `json:"confidence"`
	Data               RawReceiptData   `json:"data"`
	ResponseMessage    *string          `json:"response_message"`
	NeedsClarification *bool            `json:"needs_clarification"`
}

// RawReceiptData holds the three buckets plus the quality self-report.
// Some models answer with a flat Items list instead of the buckets.
type RawReceiptData struct {
	OCRQuality    string           `json:"ocr_quality"`
	ClearItems    []RawItem        `json:"clear_items"`
	UnclearItems  []RawItem        `json:"unclear_items"`
	RejectedItems []RejectedItem   `json:"rejected_items"`
	Items         []RawItem        `json:"items"`
	TotalAmount   *FlexibleFloat64 `json:"total_amount"`
	Vendor        FlexibleString   `json:"vendor"`
}

// RawItem is one candidate item as a provider wrote it.
type RawItem struct {
	Name              FlexibleString   `json:"name"`
	Quantity          *FlexibleFloat64 `json:"quantity"`
	Amount            *FlexibleFloat64 `json:"amount"`
	UnitPrice         *FlexibleFloat64 `json:"unit_price"`
	CostPerUnit       *FlexibleFloat64 `json:"cost_per_unit"`
	Category          string           `json:"category"`
	SuggestedCategory string           `json:"suggested_category"`
	Unit              string           `json:"unit"`
	Description       string           `json:"description"`
	Reason            string           `json:"reason"`
	Question          string           `json:"question"`
	Options           []string         `json:"options"`
}

// ToLineItem converts without validation; def is used when the category is
// missing or unknown.
func (ri RawItem) ToLineItem(def Category) LineItem {
	cat, ok := ParseCategory(ri.Category)
	if !ok {
		cat = def
	}
	li := LineItem{
		Name:        strings.TrimSpace(string(ri.Name)),
		Quantity:    1,
		Amount:      ri.Amount.Float(0),
		Category:    cat,
		Unit:        strings.TrimSpace(ri.Unit),
		Description: strings.TrimSpace(ri.Description),
		Reason:      ri.Reason,
		Question:    ri.Question,
	}
	if ri.Quantity != nil {
		li.Quantity = quantityFromFloat(float64(*ri.Quantity))
	}
	switch {
	case ri.UnitPrice != nil:
		li.UnitPrice = float64(*ri.UnitPrice)
	case ri.CostPerUnit != nil:
		li.UnitPrice = float64(*ri.CostPerUnit)
	}
	if sc, ok := ParseCategory(ri.SuggestedCategory); ok && sc != CategoryUnclear {
		li.SuggestedCategory = sc
	}
	for _, o := range ri.Options {
		if c, ok := ParseCategory(o); ok && c != CategoryUnclear {
			li.Options = append(li.Options, c)
		}
	}
	return li
}

func quantityFromFloat(q float64) int {
	if q != q || q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return int(q)
}
