// schemes.go - Government loan schemes for women entrepreneurs

package loan

import "strings"

// Scheme is one loan programme. The _hi fields are the Hindi text shown
// when the user asks in Hindi.
type Scheme struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	NameHi               string   `json:"name_hi"`
	Description          string   `json:"description"`
	DescriptionHi        string   `json:"description_hi"`
	Eligibility          string   `json:"eligibility"`
	EligibilityHi        string   `json:"eligibility_hi"`
	MaxAmount            string   `json:"max_amount"`
	InterestRate         string   `json:"interest_rate"`
	Tenure               string   `json:"tenure"`
	Category             string   `json:"category"`
	ApplicationProcess   string   `json:"application_process"`
	ApplicationProcessHi string   `json:"application_process_hi"`
	DocumentsRequired    []string `json:"documents_required"`
	Benefits             []string `json:"benefits"`
	BenefitsHi           []string `json:"benefits_hi"`
	Website              string   `json:"website"`
	Contact              string   `json:"contact"`
}

// LocalName is the scheme name in lang, English when no translation exists.
func (s Scheme) LocalName(lang string) string {
	if lang == "hi" && s.NameHi != "" {
		return s.NameHi
	}
	return s.Name
}

// LocalEligibility is the eligibility text in lang, English when no
// translation exists.
func (s Scheme) LocalEligibility(lang string) string {
	if lang == "hi" && s.EligibilityHi != "" {
		return s.EligibilityHi
	}
	return s.Eligibility
}

// document is the text the search index is built from.
func (s Scheme) document() string {
	return strings.Join([]string{s.Name, s.Description, s.Eligibility, s.Category, strings.Join(s.Benefits, " ")}, " ")
}

// DefaultSchemes is the built-in catalogue.
func DefaultSchemes() []Scheme {
	return []Scheme{
		{
			ID:                   "annapurna_scheme",
			Name:                 "Annapurna Scheme",
			NameHi:               "अन्नपूर्णा योजना",
			Description:          "A government scheme providing loans to women for food catering business. The scheme offers loans up to ₹50,000 for purchasing kitchen equipment and utensils.",
			DescriptionHi:        "खाद्य कैटरिंग व्यवसाय के लिए महिलाओं को ऋण प्रदान करने वाली सरकारी योजना। यह योजना रसोई उपकरण और बर्तन खरीदने के लिए ₹50,000 तक का ऋण प्रदान करती है।",
			Eligibility:          "Women aged 18-60 years, minimum 8th class education, family income less than ₹2 lakhs per annum",
			EligibilityHi:        "18-60 वर्ष की महिलाएं, न्यूनतम आठवीं कक्षा की शिक्षा, परिवार की आय ₹2 लाख प्रति वर्ष से कम",
			MaxAmount:            "₹50,000",
			InterestRate:         "2% per annum",
			Tenure:               "36 months",
			Category:             "food_business",
			ApplicationProcess:   "Apply through nearest bank branch with required documents including ID proof, address proof, income certificate, and business plan",
			ApplicationProcessHi: "आवश्यक दस्तावेजों के साथ निकटतम बैंक शाखा के माध्यम से आवेदन करें जिसमें आईडी प्रूफ, पता प्रूफ, आय प्रमाणपत्र और व्यवसाय योजना शामिल है",
			DocumentsRequired:    []string{"Aadhaar Card", "PAN Card", "Address Proof", "Income Certificate", "Business Plan", "Bank Statement"},
			Benefits:             []string{"Low interest rate", "No collateral required", "Quick processing", "Government support"},
			BenefitsHi:           []string{"कम ब्याज दर", "कोई गारंटी नहीं", "त्वरित प्रसंस्करण", "सरकारी समर्थन"},
			Website:              "https://www.nabard.org/annapurna-scheme",
			Contact:              "NABARD Head Office, Mumbai",
		},
		{
			ID:                   "mudra_yojana",
			Name:                 "Mudra Yojana",
			NameHi:               "मुद्रा योजना",
			Description:          "Micro Units Development and Refinance Agency (MUDRA) provides loans to small businesses and entrepreneurs. Three categories: Shishu (up to ₹50,000), Kishore (₹50,000 to ₹5 lakhs), and Tarun (₹5 lakhs to ₹10 lakhs).",
			DescriptionHi:        "सूक्ष्म इकाई विकास और पुनर्वित्त एजेंसी (मुद्रा) छोटे व्यवसायों और उद्यमियों को ऋण प्रदान करती है। तीन श्रेणियां: शिशु (₹50,000 तक), किशोर (₹50,000 से ₹5 लाख), और तरुण (₹5 लाख से ₹10 लाख)।",
			Eligibility:          "Small business owners, micro enterprises, women entrepreneurs, existing businesses looking to expand",
			EligibilityHi:        "छोटे व्यवसाय मालिक, सूक्ष्म उद्यम, महिला उद्यमी, विस्तार की इच्छा रखने वाले मौजूदा व्यवसाय",
			MaxAmount:            "₹10,00,000",
			InterestRate:         "8.5% - 12% per annum",
			Tenure:               "60 months",
			Category:             "micro_enterprise",
			ApplicationProcess:   "Apply through participating banks, NBFCs, or MFIs. Submit business plan, KYC documents, and financial statements.",
			ApplicationProcessHi: "सहभागी बैंकों, एनबीएफसी, या एमएफआई के माध्यम से आवेदन करें। व्यवसाय योजना, केवाईसी दस्तावेज और वित्तीय विवरण जमा करें।",
			DocumentsRequired:    []string{"Aadhaar Card", "PAN Card", "Business Registration", "Bank Statement", "Business Plan", "Income Proof"},
			Benefits:             []string{"No collateral for loans up to ₹10 lakhs", "Quick processing", "Flexible repayment", "Government guarantee"},
			BenefitsHi:           []string{"₹10 लाख तक के ऋण के लिए कोई गारंटी नहीं", "त्वरित प्रसंस्करण", "लचीली चुकौती", "सरकारी गारंटी"},
			Website:              "https://www.mudra.org.in",
			Contact:              "MUDRA Head Office, New Delhi",
		},
		{
			ID:                   "udyogini_scheme",
			Name:                 "Udyogini Scheme",
			NameHi:               "उद्योगिनी योजना",
			Description:          "A scheme specifically designed for women entrepreneurs to start or expand their businesses. Provides financial assistance and training support.",
			DescriptionHi:        "महिला उद्यमियों के लिए विशेष रूप से डिज़ाइन की गई योजना जो अपना व्यवसाय शुरू करने या विस्तार करने के लिए है। वित्तीय सहायता और प्रशिक्षण समर्थन प्रदान करती है।",
			Eligibility:          "Women aged 18-55 years, family income less than ₹3 lakhs per annum, minimum 8th class education",
			EligibilityHi:        "18-55 वर्ष की महिलाएं, परिवार की आय ₹3 लाख प्रति वर्ष से कम, न्यूनतम आठवीं कक्षा की शिक्षा",
			MaxAmount:            "₹3,00,000",
			InterestRate:         "4% per annum",
			Tenure:               "60 months",
			Category:             "women_entrepreneurs",
			ApplicationProcess:   "Apply through designated banks with required documents and business proposal",
			ApplicationProcessHi: "आवश्यक दस्तावेजों और व्यवसाय प्रस्ताव के साथ नामित बैंकों के माध्यम से आवेदन करें",
			DocumentsRequired:    []string{"Aadhaar Card", "PAN Card", "Income Certificate", "Business Plan", "Bank Statement", "Training Certificate"},
			Benefits:             []string{"Subsidized interest rate", "Training support", "No collateral", "Government backing"},
			BenefitsHi:           []string{"सब्सिडी वाली ब्याज दर", "प्रशिक्षण समर्थन", "कोई गारंटी नहीं", "सरकारी समर्थन"},
			Website:              "https://www.nabard.org/udyogini",
			Contact:              "NABARD Regional Offices",
		},
		{
			ID:                   "stand_up_india",
			Name:                 "Stand Up India Scheme",
			NameHi:               "स्टैंड अप इंडिया योजना",
			Description:          "Facilitates bank loans between ₹10 lakh and ₹1 Crore to at least one SC/ST borrower and one woman borrower per bank branch for setting up a greenfield enterprise.",
			DescriptionHi:        "हर बैंक शाखा से कम से कम एक एससी/एसटी उधारकर्ता और एक महिला उधारकर्ता को हरित क्षेत्र उद्यम स्थापित करने के लिए ₹10 लाख और ₹1 करोड़ के बीच बैंक ऋण की सुविधा प्रदान करता है।",
			Eligibility:          "Women entrepreneurs, SC/ST entrepreneurs, greenfield enterprises",
			EligibilityHi:        "महिला उद्यमी, एससी/एसटी उद्यमी, हरित क्षेत्र उद्यम",
			MaxAmount:            "₹1,00,00,000",
			InterestRate:         "MCLR + 3% + Tenor Premium",
			Tenure:               "84 months",
			Category:             "greenfield_enterprise",
			ApplicationProcess:   "Apply through any scheduled commercial bank branch with detailed project report and required documents",
			ApplicationProcessHi: "विस्तृत परियोजना रिपोर्ट और आवश्यक दस्तावेजों के साथ किसी भी अनुसूचित वाणिज्यिक बैंक शाखा के माध्यम से आवेदन करें",
			DocumentsRequired:    []string{"Aadhaar Card", "PAN Card", "Caste Certificate (if applicable)", "Project Report", "Bank Statement", "Business Plan"},
			Benefits:             []string{"High loan amount", "Greenfield enterprise support", "Government guarantee", "Quick processing"},
			BenefitsHi:           []string{"उच्च ऋण राशि", "हरित क्षेत्र उद्यम समर्थन", "सरकारी गारंटी", "त्वरित प्रसंस्करण"},
			Website:              "https://www.standupmitra.in",
			Contact:              "SIDBI, Lucknow",
		},
		{
			ID:                   "stree_shakti",
			Name:                 "Stree Shakti Yojana",
			NameHi:               "स्त्री शक्ति योजना",
			Description:          "A scheme to empower women entrepreneurs by providing them with financial assistance and training to start or expand their businesses.",
			DescriptionHi:        "महिला उद्यमियों को सशक्त बनाने के लिए एक योजना जो उन्हें अपना व्यवसाय शुरू करने या विस्तार करने के लिए वित्तीय सहायता और प्रशिक्षण प्रदान करती है।",
			Eligibility:          "Women entrepreneurs, existing business owners, new business starters",
			EligibilityHi:        "महिला उद्यमी, मौजूदा व्यवसाय मालिक, नए व्यवसाय शुरू करने वाले",
			MaxAmount:            "₹5,00,000",
			InterestRate:         "6% per annum",
			Tenure:               "60 months",
			Category:             "women_empowerment",
			ApplicationProcess:   "Apply through participating banks with business proposal and required documents",
			ApplicationProcessHi: "व्यवसाय प्रस्ताव और आवश्यक दस्तावेजों के साथ सहभागी बैंकों के माध्यम से आवेदन करें",
			DocumentsRequired:    []string{"Aadhaar Card", "PAN Card", "Business Plan", "Bank Statement", "Income Proof", "Training Certificate"},
			Benefits:             []string{"Low interest rate", "Training support", "No collateral", "Government backing"},
			BenefitsHi:           []string{"कम ब्याज दर", "प्रशिक्षण समर्थन", "कोई गारंटी नहीं", "सरकारी समर्थन"},
			Website:              "https://www.nabard.org/stree-shakti",
			Contact:              "NABARD Regional Offices",
		},
	}
}
