package translation

import "fmt"

const userPreamble = "Here is the content to be translated:\n\n"

// BuildSystemPrompt returns the instruction sent with every string
func BuildSystemPrompt(language string) string {
	return fmt.Sprintf(`You are an expert translator. Translate the content the user sends into %[1]s.

Follow these rules:

1. Preserve the meaning and the tone of the original.
2. Keep the formatting exactly: paragraphs, line breaks, punctuation and special characters.
3. Leave proper nouns, brand names and technical terms in their original form.
4. For idioms and culturally specific references use a natural %[1]s equivalent. When none exists, translate the meaning instead of the words.
5. Review the result for accuracy and fluency before answering.

Answer with a single JSON object and nothing else:

{
    "%[2]s": "the %[1]s translation",
    "translation_notes": "optional notes about the translation"
}`, language, TranslationKey(language))
}

// BuildUserPrompt wraps the text to translate
func BuildUserPrompt(text string) string {
	return userPreamble + text
}
