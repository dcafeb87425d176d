// templates.go - Localized message templates keyed by event and language

package response

import (
	"fmt"
	"strings"
)

// Event names a standard outcome with a localized message.
type Event string

const (
	EventIncomeAdded        Event = "income_added"
	EventExpenseAdded       Event = "expense_added"
	EventInventoryAdded     Event = "inventory_added"
	EventExpensesCleared    Event = "expenses_cleared"
	EventIncomeCleared      Event = "income_cleared"
	EventChatCleared        Event = "chat_cleared"
	EventAllCleared         Event = "all_cleared"
	EventItemsProcessed     Event = "items_processed"
	EventItemsNeedCategory  Event = "items_need_category"
	EventQuery              Event = "query"
	EventGreeting           Event = "greeting"
	EventBusinessHelp       Event = "business_help"
	EventOffTopic           Event = "off_topic"
	EventClarify            Event = "clarify"
	EventOCRFailed          Event = "ocr_failed"
	EventReceiptSummary     Event = "receipt_summary"
	EventReceiptUnclear     Event = "receipt_unclear"
	EventReceiptFallback    Event = "receipt_fallback"
	EventReceiptEmpty       Event = "receipt_empty"
	EventReceiptTotalOnly   Event = "receipt_total_only"
	EventUnclearItemDefault Event = "unclear_item_question"
	EventStructuredQuestion Event = "structured_question"
	EventStructuredFound    Event = "structured_found"
	EventStructuredNoItems  Event = "structured_no_items"
	EventReceiptUnreadable  Event = "receipt_unreadable"
	EventRequestFailed      Event = "request_failed"
	EventProfit             Event = "profit_summary"
	EventLoss               Event = "loss_summary"
	EventBreakEven          Event = "break_even_summary"
	EventSummaryUnavailable Event = "summary_unavailable"
)

// DefaultLanguage is used when a template has no entry for the requested language.
const DefaultLanguage = "en"

// templates holds fmt format strings. Every language of one event takes the
// same verbs in the same order.
var templates = map[Event]map[string]string{
	EventIncomeAdded: {
		"en": "✅ Income of ₹%s recorded successfully!",
		"hi": "✅ ₹%s की आय सफलतापूर्वक दर्ज की गई!",
		"ta": "✅ ₹%s வருமானம் வெற்றிகரமாக பதிவு செய்யப்பட்டது!",
		"ml": "✅ ₹%s വരുമാനം വിജയകരമായി രേഖപ്പെടുത്തി!",
		"te": "✅ ₹%s ఆదాయం విజయవంతంగా నమోదు చేయబడింది!",
		"kn": "✅ ₹%s ಆದಾಯ ಯಶಸ್ವಿಯಾಗಿ ದಾಖಲಿಸಲಾಗಿದೆ!",
		"gu": "✅ ₹%s ની આવક સફળતાપૂર્વક નોંધાઈ!",
		"bn": "✅ ₹%s আয় সফলভাবে রেকর্ড করা হয়েছে!",
		"mr": "✅ ₹%s उत्पन्न यशस्वीरित्या नोंदवले!",
	},
	EventExpenseAdded: {
		"en": "✅ Expense of ₹%s recorded successfully!",
		"hi": "✅ ₹%s का खर्च सफलतापूर्वक दर्ज किया गया!",
		"ta": "✅ ₹%s செலவு வெற்றிகரமாக பதிவு செய்யப்பட்டது!",
		"ml": "✅ ₹%s ചെലവ് വിജയകരമായി രേഖപ്പെടുത്തി!",
		"te": "✅ ₹%s ఖర్చు విజయవంతంగా నమోదు చేయబడింది!",
		"kn": "✅ ₹%s ಖರ್ಚು ಯಶಸ್ವಿಯಾಗಿ ದಾಖಲಿಸಲಾಗಿದೆ!",
		"gu": "✅ ₹%s નો ખર્ચ સફળતાપૂર્વક નોંધાયો!",
		"bn": "✅ ₹%s খরচ সফলভাবে রেকর্ড করা হয়েছে!",
		"mr": "✅ ₹%s खर्च यशस्वीरित्या नोंदवला!",
	},
	EventInventoryAdded: {
		"en": "✅ Inventory of ₹%s recorded successfully!",
		"hi": "✅ ₹%s का स्टॉक सफलतापूर्वक दर्ज किया गया!",
	},
	EventExpensesCleared: {
		"en": "✅ All expenses cleared successfully!",
		"hi": "✅ सभी खर्च साफ कर दिए गए!",
		"ta": "✅ அனைத்து செலவுகளும் அழிக்கப்பட்டன!",
		"ml": "✅ എല്ലാ ചെലവുകളും മായ്ച്ചു!",
	},
	EventIncomeCleared: {
		"en": "✅ All income cleared successfully!",
		"hi": "✅ सभी आय साफ कर दी गई!",
		"ta": "✅ அனைத்து வருமானமும் அழிக்கப்பட்டது!",
		"ml": "✅ എല്ലാ വരുമാനവും മായ്ച്ചു!",
	},
	EventChatCleared: {
		"en": "✅ Chat history cleared successfully!",
		"hi": "✅ चैट हिस्ट्री साफ कर दी गई!",
		"ta": "✅ அரட்டை வரலாறு அழிக்கப்பட்டது!",
		"ml": "✅ ചാറ്റ് ചരിത്രം മായ്ച്ചു!",
	},
	EventAllCleared: {
		"en": "✅ All data cleared successfully!",
		"hi": "✅ सभी डेटा साफ कर दिया गया!",
		"ta": "✅ அனைத்து தரவுகளும் வெற்றிகரமாக அழிக்கப்பட்டன!",
		"ml": "✅ എല്ലാ ഡാറ്റയും വിജയകരമായി മായ്ച്ചു!",
	},
	EventItemsProcessed: {
		"en": "✅ Successfully processed %d items!",
		"hi": "✅ %d आइटम सफलतापूर्वक दर्ज किए गए!",
	},
	EventItemsNeedCategory: {
		"en": "Please choose expense or inventory for %d item(s) before saving.",
		"hi": "सहेजने से पहले %d आइटम के लिए खर्च या स्टॉक चुनें।",
	},
	EventQuery: {
		"en": "Let me check your profit and loss data...",
		"hi": "मैं आपके लाभ-हानि की जानकारी देख रही हूँ...",
	},
	EventGreeting: {
		"en": "Hello! I'm Sakhi, your business assistant. I can help you track income, expenses, and inventory. Try saying 'income 500' or 'expense 200'!",
		"hi": "नमस्ते! मैं सखी हूं, आपकी व्यापारिक सहायक। मैं आपकी आय, खर्च और इन्वेंटरी ट्रैक करने में मदद कर सकती हूं। 'आय 500' या 'खर्च 200' कहकर देखें!",
		"ta": "வணக்கம்! நான் சகி, உங்கள் வணிக உதவியாளர். நான் உங்கள் வருமானம், செலவுகள் மற்றும் சரக்குகளை கண்காணிக்க உதவ முடியும். 'வருமானம் 500' அல்லது 'செலவு 200' என்று சொல்லி பாருங்கள்!",
		"ml": "ഹലോ! ഞാൻ സഖി, നിങ്ങളുടെ ബിസിനസ് അസിസ്റ്റന്റ്. എനിക്ക് നിങ്ങളുടെ വരുമാനം, ചെലവുകൾ, ഇൻവെന്ററി ട്രാക്ക് ചെയ്യാൻ സഹായിക്കാം. 'വരുമാനം 500' അല്ലെങ്കിൽ 'ചെലവ് 200' എന്ന് പറഞ്ഞു നോക്കൂ!",
	},
	EventBusinessHelp: {
		"en": "I'm your business assistant! I can help you with expenses, income, inventory management, and app features. Please let me know what you'd like to know about your business or the BizSakhi app.",
		"hi": "मैं आपका व्यापारिक सहायक हूँ। मैं खर्च, आय, और इन्वेंटरी के साथ आपकी मदद कर सकता हूँ। कृपया अपना सवाल स्पष्ट करें।",
	},
	EventOffTopic: {
		"en": "I'm your BizSakhi business assistant focused on helping with business management and app features. How can I help you with your business today?",
		"hi": "मैं BizSakhi का व्यापारिक सहायक हूँ। मैं व्यापार और ऐप की सुविधाओं के बारे में मदद कर सकता हूँ। आज आपके व्यापार में मैं कैसे मदद कर सकता हूँ?",
	},
	EventClarify: {
		"en": "Please confirm how each item should be recorded:",
		"hi": "कृपया बताएं कि हर आइटम को कैसे दर्ज करना है:",
	},
	EventOCRFailed: {
		"en": "OCR text quality is too poor to extract reliable information. Please try taking a clearer photo with better lighting.",
		"hi": "रसीद का पाठ पढ़ने योग्य नहीं है। कृपया बेहतर रोशनी में एक साफ फोटो लें।",
	},
	EventReceiptSummary: {
		"en": "Receipt processed: %d expenses, %d inventory, %d income",
		"hi": "रसीद संसाधित: %d खर्च, %d स्टॉक, %d आय",
	},
	EventReceiptUnclear: {
		"en": "Found %d clear items and %d items that need clarification.",
		"hi": "%d स्पष्ट आइटम और %d आइटम मिले जिन पर आपकी पुष्टि चाहिए।",
	},
	EventReceiptFallback: {
		"en": "Receipt processed: %d expenses, %d inventory items",
		"hi": "रसीद संसाधित: %d खर्च, %d स्टॉक आइटम",
	},
	EventReceiptEmpty: {
		"en": "Text extracted but no transactions found",
		"hi": "पाठ निकाला गया लेकिन कोई लेनदेन नहीं मिला",
	},
	EventReceiptTotalOnly: {
		"en": "Receipt processed: no individual items found, total amount ₹%s",
		"hi": "रसीद संसाधित: अलग आइटम नहीं मिले, कुल राशि ₹%s",
	},
	EventUnclearItemDefault: {
		"en": "How do you use %s? For your business (expense) or for selling (inventory)?",
		"hi": "आप %s का उपयोग कैसे करते हैं? व्यापार के लिए (खर्च) या बेचने के लिए (स्टॉक)?",
	},
	EventStructuredQuestion: {
		"en": "How do you use %s?",
		"hi": "आप %s का उपयोग कैसे करते हैं?",
	},
	EventStructuredFound: {
		"en": "I found %d items from your receipt. Please review and confirm the categorization:",
		"hi": "आपकी रसीद में %d आइटम मिले। कृपया श्रेणी जांचकर पुष्टि करें:",
	},
	EventStructuredNoItems: {
		"en": "I processed your receipt from %s, but couldn't extract specific items. The total amount was %s.",
		"hi": "%s की रसीद पढ़ ली, लेकिन कोई आइटम नहीं मिला। कुल राशि %s थी।",
	},
	EventReceiptUnreadable: {
		"en": "I couldn't process this receipt. Please make sure the image is clear and contains a valid receipt.",
		"hi": "मैं यह रसीद नहीं पढ़ सकी। कृपया साफ फोटो लें जिसमें पूरी रसीद दिखे।",
	},
	EventProfit: {
		"en": "📊 Your business is profitable!\n\n💰 Total Income: ₹%s\n💸 Total Expenses: ₹%s\n✅ Net Profit: ₹%s\n📈 Profit Margin: %s%%\n\nCongratulations! Your business is doing well. 🎉",
		"hi": "📊 आपका व्यापार लाभ में है!\n\n💰 कुल आय: ₹%s\n💸 कुल खर्च: ₹%s\n✅ शुद्ध लाभ: ₹%s\n📈 लाभ मार्जिन: %s%%\n\nबधाई हो! आपका व्यापार अच्छा चल रहा है। 🎉",
		"ta": "📊 உங்கள் வணிகம் லாபத்தில் உள்ளது!\n\n💰 மொத்த வருமானம்: ₹%s\n💸 மொத்த செலவுகள்: ₹%s\n✅ நிகர லாபம்: ₹%s\n📈 லாப விகிதம்: %s%%\n\nவாழ்த்துகள்! உங்கள் வணிகம் நன்றாக நடந்து கொண்டிருக்கிறது. 🎉",
		"ml": "📊 നിങ്ങളുടെ ബിസിനസ്സ് ലാഭത്തിലാണ്!\n\n💰 മൊത്തം വരുമാനം: ₹%s\n💸 മൊത്തം ചെലവുകൾ: ₹%s\n✅ നെറ്റ് ലാഭം: ₹%s\n📈 ലാഭ മാർജിൻ: %s%%\n\nഅഭിനന്ദനങ്ങൾ! നിങ്ങളുടെ ബിസിനസ്സ് നന്നായി പോകുന്നു. 🎉",
	},
	EventLoss: {
		"en": "📊 Your business is showing a loss.\n\n💰 Total Income: ₹%s\n💸 Total Expenses: ₹%s\n❌ Net Loss: ₹%s\n📉 Loss Margin: %s%%\n\nSuggestion: Consider ways to reduce expenses or increase income.",
		"hi": "📊 आपके व्यापार में हानि हो रही है।\n\n💰 कुल आय: ₹%s\n💸 कुल खर्च: ₹%s\n❌ शुद्ध हानि: ₹%s\n📉 हानि मार्जिन: %s%%\n\nसुझाव: खर्च कम करने या आय बढ़ाने के तरीकों पर विचार करें।",
		"ta": "📊 உங்கள் வணிகத்தில் நஷ்டம் ஏற்பட்டுள்ளது.\n\n💰 மொத்த வருமானம்: ₹%s\n💸 மொத்த செலவுகள்: ₹%s\n❌ நிகர நஷ்டம்: ₹%s\n📉 நஷ்ட விகிதம்: %s%%\n\nபரிந்துரை: செலவுகளை குறைக்க அல்லது வருமானத்தை அதிகரிக்க வழிகளை பரிசீலிக்கவும்.",
		"ml": "📊 നിങ്ങളുടെ ബിസിനസ്സിൽ നഷ്ടം സംഭവിച്ചിരിക്കുന്നു.\n\n💰 മൊത്തം വരുമാനം: ₹%s\n💸 മൊത്തം ചെലവുകൾ: ₹%s\n❌ നെറ്റ് നഷ്ടം: ₹%s\n📉 നഷ്ട മാർജിൻ: %s%%\n\nനിർദ്ദേശം: ചെലവുകൾ കുറയ്ക്കാനോ വരുമാനം വർദ്ധിപ്പിക്കാനോ ഉള്ള വഴികൾ പരിഗണിക്കുക.",
	},
	EventBreakEven: {
		"en": "📊 Your business is at break-even.\n\n💰 Total Income: ₹%s\n💸 Total Expenses: ₹%s\n⚖️ Net Result: ₹0\n\nYou're neither in profit nor loss.",
		"hi": "📊 आपका व्यापार ब्रेक-ईवन पर है।\n\n💰 कुल आय: ₹%s\n💸 कुल खर्च: ₹%s\n⚖️ शुद्ध परिणाम: ₹0\n\nआप न तो लाभ में हैं न हानि में।",
		"ta": "📊 உங்கள் வணிகம் பிரேக்-ஈவன் நிலையில் உள்ளது.\n\n💰 மொத்த வருமானம்: ₹%s\n💸 மொத்த செலவுகள்: ₹%s\n⚖️ நிகர முடிவு: ₹0\n\nநீங்கள் லாபத்திலும் இல்லை நஷ்டத்திலும் இல்லை.",
		"ml": "📊 നിങ്ങളുടെ ബിസിനസ്സ് ബ്രേക്ക്-ഈവൻ നിലയിലാണ്.\n\n💰 മൊത്തം വരുമാനം: ₹%s\n💸 മൊത്തം ചെലവുകൾ: ₹%s\n⚖️ നെറ്റ് ഫലം: ₹0\n\nനിങ്ങൾ ലാഭത്തിലോ നഷ്ടത്തിലോ അല്ല.",
	},
	EventSummaryUnavailable: {
		"en": "I'm having trouble getting your profit and loss information. Please add some income and expense data first.",
		"hi": "मुझे आपके लाभ और हानि की जानकारी पाने में समस्या हो रही है। कृपया पहले कुछ आय और खर्च जोड़ें।",
	},
	EventRequestFailed: {
		"en": "Sorry, I couldn't process that. Please try again.",
		"hi": "क्षमा करें, मैं इसे संसाधित नहीं कर सकी। कृपया फिर से प्रयास करें।",
	},
}

// Render formats the template for event in language, falling back to English.
// An unknown event renders an empty string.
func Render(event Event, language string, args ...any) string {
	byLang, ok := templates[event]
	if !ok {
		return ""
	}
	tmpl, ok := byLang[normalizeLanguage(language)]
	if !ok {
		tmpl = byLang[DefaultLanguage]
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Events lists every event with a template.
func Events() []Event {
	out := make([]Event, 0, len(templates))
	for e := range templates {
		out = append(out, e)
	}
	return out
}

// normalizeLanguage accepts "hi", "HI" and "hi-IN".
func normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(language, "-_"); i > 0 {
		language = language[:i]
	}
	if language == "" {
		return DefaultLanguage
	}
	return language
}
