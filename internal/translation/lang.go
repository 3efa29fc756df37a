package translation

import (
	"regexp"
	"strings"
)

// DefaultLanguage is used when a caller does not name a target language
const DefaultLanguage = "Arabic"

var languageCodes = map[string]string{
	"arabic":     "ar",
	"english":    "en",
	"french":     "fr",
	"german":     "de",
	"spanish":    "es",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"russian":    "ru",
	"ukrainian":  "uk",
	"polish":     "pl",
	"bulgarian":  "bg",
	"greek":      "el",
	"turkish":    "tr",
	"persian":    "fa",
	"hebrew":     "he",
	"hindi":      "hi",
	"urdu":       "ur",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"indonesian": "id",
	"swedish":    "sv",

	"brazilian portuguese": "ptbr",
	"european spanish":     "es",
	"simplified chinese":   "zh",
	"traditional chinese":  "zhtw",
}

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// LanguageCode returns a short code for a language name, e.g. "Arabic" -> "ar".
// Unknown names are lower-cased with everything but letters and digits removed.
func LanguageCode(language string) string {
	lower := strings.ToLower(strings.TrimSpace(language))
	if code, ok := languageCodes[lower]; ok {
		return code
	}
	return nonAlnum.ReplaceAllString(lower, "")
}

// languageSlug turns "Brazilian Portuguese" into "brazilian_portuguese"
func languageSlug(language string) string {
	lower := strings.ToLower(strings.TrimSpace(language))
	return strings.Trim(nonAlnum.ReplaceAllString(lower, "_"), "_")
}

// TranslationKey is the JSON field the model is asked to put its translation in
func TranslationKey(language string) string {
	return languageSlug(language) + "_translation"
}
