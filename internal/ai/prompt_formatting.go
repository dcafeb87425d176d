// prompt_formatting.go - Language and chat-mode sections shared by the prompts

package ai

import (
	"fmt"
	"strings"
)

// SupportedLanguages maps language codes to the names used in prompts.
var SupportedLanguages = []struct {
	Code string
	Name string
}{
	{"en", "English"},
	{"hi", "Hindi (हिन्दी)"},
	{"ta", "Tamil (தமிழ்)"},
	{"ml", "Malayalam (മലയാളം)"},
	{"te", "Telugu (తెలుగు)"},
	{"kn", "Kannada (ಕನ್ನಡ)"},
	{"gu", "Gujarati (ગુજરાતી)"},
	{"bn", "Bengali (বাংলা)"},
	{"mr", "Marathi (मराठी)"},
}

// FormatLanguageInstruction tells the model which language to answer in.
func FormatLanguageInstruction(language string) string {
	var b strings.Builder
	b.WriteString("🌐 LANGUAGE:\n")
	b.WriteString("Always write response_message in the user's language:\n")
	for _, l := range SupportedLanguages {
		b.WriteString(fmt.Sprintf("- \"%s\" → %s\n", l.Code, l.Name))
	}
	b.WriteString(fmt.Sprintf("The user's language is \"%s\". Match it exactly; use English for unknown codes.\n", language))
	return b.String()
}

// FormatChatModeRules explains when transactions may be recorded.
func FormatChatModeRules(chatMode string) string {
	return fmt.Sprintf(`🔀 CHAT MODE: %s

BUSINESS MODE (chat_mode = "business"):
1. Income statements ("I earned Rs 5000") → "intent": "income" with the amount
2. Expense statements ("I spent Rs 1500") → "intent": "expense" with the amount
3. Buying or selling items with quantities ("I bought 5 phones for Rs.125000") → "intent": "item_clarification"

GENERAL MODE (chat_mode = "general"):
1. Treat every financial mention as a question for advice or calculation
2. Answer helpfully WITHOUT recording anything
3. Hypotheticals ("what if I spend 2000", "how much loss if...") are never transactions

In both modes, questions about the user's own data ("what's my total income?", "show profit and loss") → "intent": "query".
`, chatMode)
}

// FormatAssistantRole is the persona shared by every chat prompt.
func FormatAssistantRole() string {
	return `You are Sakhi, the business assistant inside BizSakhi, a business management app for Indian small businesses.
You help with expenses, income, inventory, GST and bills, receipt scanning, and explain app features in simple words.
If a message is unrelated to business or the app, politely steer the user back.
`
}
