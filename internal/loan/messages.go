// messages.go - Templated loan answers per language

package loan

type answerText struct {
	greeting    string
	maxAmount   string
	interest    string
	eligibility string
	closing     string
}

var answerTexts = map[string]answerText{
	"en": {
		greeting:    "Hello! Here are some useful loan schemes for your query '%s':",
		maxAmount:   "Maximum Amount",
		interest:    "Interest Rate",
		eligibility: "Eligibility",
		closing:     "If you need more information or want to ask about any specific scheme, feel free to ask me!",
	},
	"hi": {
		greeting:    "नमस्ते! आपके प्रश्न '%s' के लिए यहाँ कुछ उपयोगी लोन योजनाएं हैं:",
		maxAmount:   "अधिकतम राशि",
		interest:    "ब्याज दर",
		eligibility: "पात्रता",
		closing:     "अगर आपको और जानकारी चाहिए या कोई स्पेसिफिक स्कीम के बारे में पूछना है, तो मुझसे पूछ सकते हैं!",
	},
	"ta": {
		greeting:    "வணக்கம்! உங்கள் கேள்விக்கு '%s' இதோ சில பயனுள்ள கடன் திட்டங்கள்:",
		maxAmount:   "அதிகபட்ச தொகை",
		interest:    "வட்டி விகிதம்",
		eligibility: "தகுதி",
		closing:     "மேலும் தகவல் தேவைப்பட்டால் அல்லது குறிப்பிட்ட திட்டத்தைப் பற்றி கேட்க விரும்பினால், என்னிடம் கேள்விகள் கேட்கலாம்!",
	},
	"ml": {
		greeting:    "നമസ്കാരം! നിങ്ങളുടെ ചോദ്യത്തിന് '%s' ഇതാ ചില ഉപയോഗപ്രദമായ വായ്പ പദ്ധതികൾ:",
		maxAmount:   "പരമാവധി തുക",
		interest:    "പലിശ നിരക്ക്",
		eligibility: "യോഗ്യത",
		closing:     "കൂടുതൽ വിവരങ്ങൾ വേണമെങ്കിൽ അല്ലെങ്കിൽ ഒരു പ്രത്യേക പദ്ധതിയെക്കുറിച്ച് ചോദിക്കണമെങ്കിൽ, എന്നോട് ചോദിക്കാവുന്നതാണ്!",
	},
	"te": {
		greeting:    "నమస్కారం! మీ ప్రశ్నకు '%s' ఇక్కడ కొన్ని ఉపయోగకరమైన రుణ పథకాలు:",
		maxAmount:   "గరిష్ట మొత్తం",
		interest:    "వడ్డీ రేటు",
		eligibility: "అర్హత",
		closing:     "మరిన్ని వివరాలు కావాలంటే లేదా ఏదైనా నిర్దిష్ట పథకం గురించి అడగాలనుకుంటే, నన్ను అడగవచ్చు!",
	},
	"kn": {
		greeting:    "ನಮಸ್ಕಾರ! ನಿಮ್ಮ ಪ್ರಶ್ನೆಗೆ '%s' ಇಲ್ಲಿ ಕೆಲವು ಉಪಯುಕ್ತ ಸಾಲ ಯೋಜನೆಗಳು:",
		maxAmount:   "ಗರಿಷ್ಠ ಮೊತ್ತ",
		interest:    "ಬಡ್ಡಿ ದರ",
		eligibility: "ಅರ್ಹತೆ",
		closing:     "ಹೆಚ್ಚಿನ ಮಾಹಿತಿ ಬೇಕಾದರೆ ಅಥವಾ ಯಾವುದೇ ನಿರ್ದಿಷ್ಟ ಯೋಜನೆಯ ಬಗ್ಗೆ ಕೇಳಲು ಬಯಸಿದರೆ, ನನ್ನನ್ನು ಕೇಳಬಹುದು!",
	},
	"gu": {
		greeting:    "નમસ્તે! તમારા પ્રશ્ન માટે '%s' અહીં કેટલાક ઉપયોગી લોન યોજનાઓ છે:",
		maxAmount:   "મહત્તમ રકમ",
		interest:    "વ્યાજ દર",
		eligibility: "યોગ્યતા",
		closing:     "વધુ માહિતી જોઈએ છે અથવા કોઈ ચોક્કસ યોજના વિશે પૂછવું હોય તો, મને પૂછી શકાય છે!",
	},
	"bn": {
		greeting:    "নমস্কার! আপনার প্রশ্নের জন্য '%s' এখানে কিছু উপকারী ঋণ প্রকল্প রয়েছে:",
		maxAmount:   "সর্বোচ্চ পরিমাণ",
		interest:    "সুদের হার",
		eligibility: "যোগ্যতা",
		closing:     "আরও তথ্য প্রয়োজন হলে বা কোন নির্দিষ্ট প্রকল্প সম্পর্কে জিজ্ঞাসা করতে চাইলে, আমাকে জিজ্ঞাসা করতে পারেন!",
	},
	"mr": {
		greeting:    "नमस्कार! तुमच्या प्रश्नासाठी '%s' येथे काही उपयुक्त कर्ज योजना आहेत:",
		maxAmount:   "कमाल रक्कम",
		interest:    "व्याज दर",
		eligibility: "पात्रता",
		closing:     "अधिक माहिती हवी असेल किंवा कोणत्याही विशिष्ट योजनेबद्दल विचारणे असेल तर, मला विचारू शकता!",
	},
}
