package terraformgpt

import (
	"context"
	"strings"
)

// Explainer generates natural-language explanations of stored resources.
type Explainer interface {
	// Explain describes a resource and its attributes in the given language.
	// The language is an ISO 639-1 code such as "en" or "de".
	// Returns ENOTFOUND if the resource does not exist.
	Explain(ctx context.Context, resourceID string, language string) (string, error)
}

// DefaultLanguage is the explanation language used when none is requested.
const DefaultLanguage = "en"

// languageNames maps ISO 639-1 codes to English language names for use in
// LLM prompts. Codes not listed here pass through unchanged; models handle
// bare codes reasonably well.
var languageNames = map[string]string{
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"pl": "Polish",
	"pt": "Portuguese",
}

// LanguageName returns the English name of the language identified by an
// ISO 639-1 code. Region subtags are ignored ("de-AT" maps like "de").
// Unknown codes are returned as given.
func LanguageName(code string) string {
	if code == "" {
		code = DefaultLanguage
	}
	base := strings.ToLower(code)
	if i := strings.IndexAny(base, "-_"); i > 0 {
		base = base[:i]
	}
	if name, ok := languageNames[base]; ok {
		return name
	}
	return code
}
