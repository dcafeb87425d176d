// prompt_output_format.go - JSON output formats the models must follow

package ai

// GetIntentOutputFormat returns the JSON shapes for chat intents.
func GetIntentOutputFormat() string {
	return `🎨 OUTPUT FORMAT (JSON only, no markdown):

Income (business mode):
{
  "intent": "income",
  "action": "add",
  "confidence": 0.9,
  "data": {"amount": 10000, "description": "Income", "category": "General"},
  "response_message": "✅ Income of ₹10000.0 recorded successfully!",
  "is_business_related": true
}

Expense (business mode):
{
  "intent": "expense",
  "action": "add",
  "confidence": 0.9,
  "data": {"amount": 2000, "description": "Expense", "category": "General"},
  "response_message": "✅ Expense of ₹2000.0 recorded successfully!",
  "is_business_related": true
}

Items bought or sold (business mode):
{
  "intent": "item_clarification",
  "action": "clarify",
  "confidence": 0.9,
  "data": {
    "items": [
      {"name": "Samsung Galaxy", "quantity": 5, "amount": 125000, "cost_per_unit": 25000,
       "unit": "pieces", "suggested_category": "inventory", "description": "Samsung Galaxy phones"}
    ]
  },
  "response_message": "I found 5 Samsung Galaxy phones for ₹125000. Please confirm the category below:",
  "is_business_related": true,
  "needs_clarification": true
}

Question about the user's data:
{"intent": "query", "action": "query", "confidence": 0.9, "data": {}, "response_message": "Let me check your profit and loss data...", "is_business_related": true}

Advice or app help:
{"intent": "conversational", "action": "respond", "confidence": 0.9, "data": {}, "response_message": "<helpful answer in the user's language>", "is_business_related": true}

Unrelated to business:
{"intent": "off_topic", "action": "redirect", "confidence": 0.9, "data": {}, "response_message": "I'm your BizSakhi business assistant. How can I help with your business today?", "is_business_related": false}
`
}

// GetReceiptOutputFormat returns the JSON shape for receipt extraction.
func GetReceiptOutputFormat() string {
	return `🎨 OUTPUT FORMAT (JSON only, no markdown):
{
  "intent": "business_analysis",
  "action": "categorize_items",
  "confidence": 0.9,
  "data": {
    "ocr_quality": "good|poor|terrible",
    "clear_items": [
      {"name": "Samsung Galaxy A54", "quantity": 5, "amount": 125000, "unit_price": 25000,
       "category": "inventory", "reason": "Mobile phones are usually bought for resale"}
    ],
    "unclear_items": [
      {"name": "Office Supplies", "quantity": 10, "amount": 500, "unit_price": 50, "category": "unclear",
       "options": ["expense", "inventory"], "question": "Are these office supplies for your business use or for selling?"}
    ],
    "rejected_items": [
      {"raw_text": "nAce A", "reason": "OCR garbage - not a recognizable product name"}
    ],
    "total_amount": 125000,
    "vendor": "Electronics Store"
  },
  "needs_clarification": false,
  "response_message": "Found 1 clear item. Rejected 1 OCR error."
}
`
}
