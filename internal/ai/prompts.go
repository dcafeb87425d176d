// prompts.go - Prompt builders for intent resolution, receipt extraction and OCR

package ai

import (
	"fmt"
	"strings"
)

// BuildIntentPrompt assembles the chat prompt for one user message.
func BuildIntentPrompt(message, language, chatMode string) string {
	var b strings.Builder
	b.WriteString(FormatAssistantRole())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("User Message: %q\nLanguage: %s\nChat Mode: %s\n\n", message, language, chatMode))
	b.WriteString(FormatLanguageInstruction(language))
	b.WriteString("\n")
	b.WriteString(FormatChatModeRules(chatMode))
	b.WriteString("\n")
	b.WriteString(GetAmountRecordingRules())
	b.WriteString("\n")
	b.WriteString(GetIntentOutputFormat())
	b.WriteString("\nReturn exactly one JSON object.\n")
	return b.String()
}

// BuildReceiptPrompt assembles the extraction prompt for sanitized OCR text.
func BuildReceiptPrompt(cleanedOCR, language string) string {
	var b strings.Builder
	b.WriteString(`You are Sakhi, an expert business assistant. The OCR text below may contain errors and garbage. Your job is to:
1. CLEAN THE OCR TEXT: fix OCR errors, drop garbage, identify real product names
2. EXTRACT REAL ITEMS: only items that are actual products or services with valid names
3. CATEGORIZE: decide whether each item is for business use, for resale, or income
`)
	b.WriteString("\nRAW OCR TEXT (may contain errors):\n")
	b.WriteString(cleanedOCR)
	b.WriteString("\n\n")
	b.WriteString(GetItemFilteringRules())
	b.WriteString("\n")
	b.WriteString(GetCategorizationRules())
	b.WriteString("\n")
	b.WriteString(GetAmountRecordingRules())
	b.WriteString(`
🔎 QUALITY CONTROL:
- Set ocr_quality to "good", "poor" or "terrible"
- If the text is mostly garbage, return empty item arrays
- Only extract items you are confident are real products
- Try your best with poor OCR; "terrible" means no recognizable words or numbers
`)
	b.WriteString("\n")
	b.WriteString(FormatLanguageInstruction(language))
	b.WriteString("\n")
	b.WriteString(GetReceiptOutputFormat())
	return b.String()
}

// BuildLoanPrompt asks for a friendly plain-text answer about loan schemes.
// schemeContext is the details of the schemes that matched the question.
func BuildLoanPrompt(query, language, schemeContext string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are Sakhi, a friendly business assistant for Indian women entrepreneurs. A user asked about loan schemes: %q\n\n", query))
	b.WriteString("RELEVANT LOAN SCHEMES:\n")
	if strings.TrimSpace(schemeContext) == "" {
		b.WriteString("(no scheme matched; give general guidance on government loan schemes for women)\n")
	} else {
		b.WriteString(schemeContext)
	}
	b.WriteString(`
Write a warm, conversational answer that:
1. Explains the most relevant schemes in simple words
2. Gives eligibility, maximum amount and interest rate
3. Lists the steps to apply and the documents needed
4. Focuses on one scheme if the user named it, otherwise compares the best options
5. Ends by offering to help with more specific questions

Answer in plain text, not JSON.
`)
	name := "English"
	for _, l := range SupportedLanguages {
		if l.Code == language {
			name = l.Name
		}
	}
	b.WriteString(fmt.Sprintf("Respond in %s.\n", name))
	return b.String()
}

// GetOCRPrompt is the vision prompt for reading a receipt photo.
func GetOCRPrompt() string {
	return `Read this receipt or bill photo and transcribe ALL printed and handwritten text.
- Keep one receipt line per output line, in reading order
- Keep numbers, quantities and prices exactly as printed, including ₹ and Rs.
- Do not summarise, translate or correct anything
- Hindi, Tamil, Malayalam and other Indian scripts must be kept in their own script
Return JSON: {"raw_document_text": "<all text>"}`
}
