package domain

import "strings"

type Language string

const (
	LanguageThai    Language = "th"
	LanguageEnglish Language = "en"
)

// ParseLanguage falls back to English for anything it does not recognise.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageThai:
		return LanguageThai
	default:
		return LanguageEnglish
	}
}

func (l Language) Pick(th, en string) string {
	if l == LanguageThai {
		return th
	}
	return en
}
