package translation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Structured is a reply that matched the requested JSON schema
type Structured struct {
	Translation string
	// Notes is empty when the model sent none
	Notes string
}

// Result is the outcome of one TranslateString call. Raw is always set;
// Structured only when Raw parsed as the expected schema.
type Result struct {
	Raw        string
	Structured *Structured
}

var markdownCodeBlock = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\n?\\s*```$")

// ParseResponse extracts the translation for language from a raw model reply.
// It returns nil when the reply is not a JSON object holding a string
// translation under one of the accepted keys.
func ParseResponse(raw, language string) *Structured {
	content := strings.TrimSpace(raw)
	if m := markdownCodeBlock.FindStringSubmatch(content); len(m) > 1 {
		content = strings.TrimSpace(m[1])
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil
	}

	translation, ok := lookupTranslation(fields, language)
	if !ok {
		return nil
	}

	out := &Structured{Translation: translation}
	if notes, ok := stringField(fields, "translation_notes"); ok {
		out.Notes = notes
	}
	return out
}

func lookupTranslation(fields map[string]json.RawMessage, language string) (string, bool) {
	keys := []string{
		TranslationKey(language),
		LanguageCode(language) + "_translation",
		"translation",
	}
	for _, key := range keys {
		if s, ok := stringField(fields, key); ok {
			return s, true
		}
	}

	// a single differently named *_translation field, e.g. "ar_translation"
	// when the model abbreviated the language
	var found string
	matches := 0
	for key := range fields {
		if strings.HasSuffix(key, "_translation") {
			if s, ok := stringField(fields, key); ok {
				found = s
				matches++
			}
		}
	}
	if matches == 1 {
		return found, true
	}
	return "", false
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
