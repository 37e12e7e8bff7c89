package domain

// Language is a supported UI language tag.
type Language string

const (
	LangEnglish Language = "en"
	LangSpanish Language = "es"

	// DefaultLanguage is the final fallback when neither a saved preference
	// nor the device locale resolves to a supported language.
	DefaultLanguage = LangEnglish
)

// SupportedLanguages lists every language the client ships string tables for.
func SupportedLanguages() []Language {
	return []Language{LangEnglish, LangSpanish}
}

// Supported reports whether l has a shipped string table.
func (l Language) Supported() bool {
	for _, s := range SupportedLanguages() {
		if l == s {
			return true
		}
	}
	return false
}
