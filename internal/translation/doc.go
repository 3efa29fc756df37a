// Package translation translates single strings into a target language by
// prompting a text-generation service (OpenAI or Gemini) for a structured
// JSON answer. Replies that do not match the requested schema are kept as
// raw text so callers can decide how to degrade.
package translation
