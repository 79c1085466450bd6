// Package i18n holds the UI string tables and the response-language mapping
// used when instructing the model. Tables are read-only after load.
package i18n

// Language is a supported UI/response language code.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Marathi Language = "mr"

	// Default is applied when a code is missing or unknown.
	Default = English
)

// Parse maps a raw code to a supported Language, falling back to English.
func Parse(code string) Language {
	switch Language(code) {
	case English, Hindi, Marathi:
		return Language(code)
	default:
		return Default
	}
}

// ResponseLanguage maps a language code to the name used in the system
// instruction sent to the model. Unknown codes map to English.
func ResponseLanguage(code string) string {
	switch Parse(code) {
	case Hindi:
		return "Hindi (हिंदी)"
	case Marathi:
		return "Marathi (मराठी)"
	default:
		return "English"
	}
}

// T looks up a dotted key in the table for lang, falling back to English,
// then to the key itself so missing strings stay visible.
func T(lang Language, key string) string {
	if table, ok := tables[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := tables[Default][key]; ok {
		return s
	}
	return key
}

// Table returns a copy of the full string table for lang (English when
// unknown), for clients that render whole sections at once.
func Table(lang Language) map[string]string {
	src, ok := tables[lang]
	if !ok {
		src = tables[Default]
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

var tables = map[Language]map[string]string{
	English: {
		"app.name":             "Agri Mitra",
		"nav.home":             "Home",
		"nav.scan":             "Scan/Upload",
		"nav.library":          "Library",
		"nav.news":             "News",
		"nav.about":            "About Us",
		"nav.signUp":           "Sign Up",
		"nav.login":            "Login",
		"hero.title":           "Protect Your Crops with AI",
		"hero.subtitle":        "Instant disease detection through smart technology",
		"hero.scan":            "Scan Leaf",
		"hero.upload":          "Upload Image",
		"features.title":       "Features",
		"features.cameraScan":  "Camera Scan",
		"features.cameraScanDesc": "Instant leaf analysis",
		"features.multiLang":   "Multi-language Support",
		"features.multiLangDesc": "Hindi, Marathi & English",
		"features.practices":   "Best Farming Practices",
		"features.practicesDesc": "Expert agricultural advice",
		"features.bots":        "Specialized Bots",
		"features.botsDesc":    "Crop-specific guidance",
		"features.accuracy":    "High Accuracy",
		"features.accuracyDesc": "95%+ disease detection",
		"features.support":     "24/7 Support",
		"features.supportDesc": "Always here to help",
		"chatbots.title":       "Specialized Crop Chatbots",
		"chatbots.chat":        "Chat Now",
		"library.title":        "Disease Library",
		"news.title":           "Latest Agricultural News",
		"about.title":          "Our Team",
		"contact.title":        "Connect With Us",
		"footer.quickLinks":    "Quick Links",
		"footer.support":       "Support",
		"footer.helpCenter":    "Help Center",
		"footer.contactUs":     "Contact Us",
		"footer.rights":        "© Agri Mitra 2025. All Rights Reserved.",
	},
	Hindi: {
		"app.name":             "एग्री मित्र",
		"nav.home":             "होम",
		"nav.scan":             "स्कैन/अपलोड",
		"nav.library":          "पुस्तकालय",
		"nav.news":             "समाचार",
		"nav.about":            "हमारे बारे में",
		"nav.signUp":           "साइन अप",
		"nav.login":            "लॉगिन",
		"hero.title":           "AI से अपनी फसल की रक्षा करें",
		"hero.subtitle":        "स्मार्ट तकनीक से तुरंत रोग का पता लगाएं",
		"hero.scan":            "पत्ती स्कैन करें",
		"hero.upload":          "छवि अपलोड करें",
		"features.title":       "विशेषताएं",
		"features.cameraScan":  "कैमरा स्कैन",
		"features.cameraScanDesc": "तुरंत पत्ती विश्लेषण",
		"features.multiLang":   "बहुभाषी समर्थन",
		"features.multiLangDesc": "हिंदी, मराठी और अंग्रेजी",
		"features.practices":   "सर्वोत्तम खेती के तरीके",
		"features.practicesDesc": "विशेषज्ञ कृषि सलाह",
		"features.bots":        "विशेष बॉट",
		"features.botsDesc":    "फसल-विशिष्ट मार्गदर्शन",
		"features.accuracy":    "उच्च सटीकता",
		"features.accuracyDesc": "95%+ रोग का पता लगाना",
		"features.support":     "24/7 सहायता",
		"features.supportDesc": "हमेशा मदद के लिए",
		"chatbots.title":       "विशेष फसल चैटबॉट",
		"chatbots.chat":        "अभी चैट करें",
		"library.title":        "रोग पुस्तकालय",
		"news.title":           "नवीनतम कृषि समाचार",
		"about.title":          "हमारी टीम",
		"contact.title":        "हमसे जुड़ें",
		"footer.quickLinks":    "त्वरित लिंक",
		"footer.support":       "सहायता",
		"footer.helpCenter":    "सहायता केंद्र",
		"footer.contactUs":     "संपर्क करें",
		"footer.rights":        "© एग्री मित्र 2025. सर्वाधिकार सुरक्षित।",
	},
	Marathi: {
		"app.name":             "एग्री मित्र",
		"nav.home":             "मुख्यपृष्ठ",
		"nav.scan":             "स्कॅन/अपलोड",
		"nav.library":          "ग्रंथालय",
		"nav.news":             "बातम्या",
		"nav.about":            "आमच्याबद्दल",
		"nav.signUp":           "साइन अप",
		"nav.login":            "लॉगिन",
		"hero.title":           "AI सह आपल्या पिकांचे संरक्षण करा",
		"hero.subtitle":        "स्मार्ट तंत्रज्ञानाद्वारे त्वरित रोग शोध",
		"hero.scan":            "पान स्कॅन करा",
		"hero.upload":          "प्रतिमा अपलोड करा",
		"features.title":       "वैशिष्ट्ये",
		"features.cameraScan":  "कॅमेरा स्कॅन",
		"features.cameraScanDesc": "त्वरित पान विश्लेषण",
		"features.multiLang":   "बहुभाषिक समर्थन",
		"features.multiLangDesc": "हिंदी, मराठी आणि इंग्रजी",
		"features.practices":   "सर्वोत्तम शेती पद्धती",
		"features.practicesDesc": "तज्ञ कृषी सल्ला",
		"features.bots":        "विशेष बॉट्स",
		"features.botsDesc":    "पीक-विशिष्ट मार्गदर्शन",
		"features.accuracy":    "उच्च अचूकता",
		"features.accuracyDesc": "95%+ रोग शोध",
		"features.support":     "24/7 समर्थन",
		"features.supportDesc": "नेहमी मदतीसाठी",
		"chatbots.title":       "विशेष पीक चॅटबॉट्स",
		"chatbots.chat":        "आता चॅट करा",
		"library.title":        "रोग ग्रंथालय",
		"news.title":           "नवीनतम कृषी बातम्या",
		"about.title":          "आमची टीम",
		"contact.title":        "आमच्याशी जुडा",
		"footer.quickLinks":    "द्रुत दुवे",
		"footer.support":       "समर्थन",
		"footer.helpCenter":    "मदत केंद्र",
		"footer.contactUs":     "संपर्क साधा",
		"footer.rights":        "© एग्री मित्र 2025. सर्व हक्क राखीव।",
	},
}
