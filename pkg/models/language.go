// Package models defines the core data types shared across Lazy Susan.
package models

// Language is an ISO 639-1 code for one of the supported response languages.
type Language string

const (
	// LangEnglish is the default language.
	LangEnglish Language = "en"
	// LangRussian selects Russian prompts and responses.
	LangRussian Language = "ru"
	// LangEstonian selects Estonian prompts and responses.
	LangEstonian Language = "et"
)

// Valid returns true if the language is a known value.
func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangRussian, LangEstonian:
		return true
	default:
		return false
	}
}

// ParseLanguage maps a raw language code to a supported Language.
// Unknown or empty codes fall back to English.
func ParseLanguage(code string) Language {
	l := Language(code)
	if l.Valid() {
		return l
	}
	return LangEnglish
}
