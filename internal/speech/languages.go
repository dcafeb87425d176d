// languages.go - Language names and codes understood by Whisper

package speech

import "strings"

var languageCodes = map[string]string{
	"english":   "en",
	"hindi":     "hi",
	"tamil":     "ta",
	"malayalam": "ml",
	"telugu":    "te",
	"kannada":   "kn",
	"gujarati":  "gu",
	"bengali":   "bn",
	"marathi":   "mr",
}

// LanguageCode maps a Whisper language name ("hindi") or a code ("hi",
// "hi-IN") to the two-letter code. Unknown values map to "".
func LanguageCode(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	if code, ok := languageCodes[l]; ok {
		return code
	}
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	for _, code := range languageCodes {
		if code == l {
			return code
		}
	}
	return ""
}
