// prompt_amount_rules.go - Money and quantity rules for extraction prompts

package ai

// GetAmountRecordingRules describes how amounts and quantities must be written.
func GetAmountRecordingRules() string {
	return `💰 AMOUNT RULES:
- Amounts are plain numbers in rupees without symbols: 125000, not "₹1,25,000"
- Indian grouping "5,16,000.00" means 516000
- "2 lakh" = 200000, "1 crore" = 10000000, "5 thousand" = 5000
- quantity is a whole number between 1 and 10000; use 1 when not printed
- amount is the line total; unit_price = amount / quantity
- Never invent an amount that is not on the receipt or in the message
- Never copy the grand total onto every item
`
}

// GetItemFilteringRules lists what must never become an item.
func GetItemFilteringRules() string {
	return `🧹 STRICT FILTERING RULES:
- REJECT garbage names like "nAce A", "Nonn)", "xxx", "daten" and random characters
- REJECT invoice metadata: dates, GSTIN numbers, addresses, phone numbers, bill numbers, tax lines (CGST/SGST/IGST), totals and subtotals
- REJECT fragments that are not recognisable products or services
- ONLY ACCEPT names of at least 3 characters made of real words
- Put every rejected line in rejected_items with a short reason
`
}

// GetCategorizationRules explains inventory vs expense vs income.
func GetCategorizationRules() string {
	return `🏷️ ITEM CATEGORIZATION:
- INVENTORY: bought for resale or stock (phones, electronics, laptops, clothing, books, stationery, goods, merchandise)
- EXPENSE: consumed or used by the business (food, fuel, services, rent, utilities, office supplies for own use, consumables)
- INCOME: sales receipts and money received from customers
- When in doubt, phones, electronics, books and clothing go to INVENTORY unless marked "for office use" or "personal use"
- If the use is genuinely ambiguous, put the item in unclear_items with a question and options ["expense", "inventory"]
`
}
