package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is the display name picked in the UI, e.g. "Hindi".
type Language string

const (
	English Language = "English"
	Hindi   Language = "Hindi"
	Tamil   Language = "Tamil"
	Telugu  Language = "Telugu"
	Spanish Language = "Spanish"
)

// BaseLanguage is what the chat model writes in; translating into it is a no-op.
const BaseLanguage = English

var Languages = []Language{English, Hindi, Tamil, Telugu, Spanish}

var languageTags = map[Language]language.Tag{
	English: language.English,
	Hindi:   language.Hindi,
	Tamil:   language.Tamil,
	Telugu:  language.Telugu,
	Spanish: language.Spanish,
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() (language.Tag, bool) {
	t, ok := languageTags[l]
	return t, ok
}

// Code returns the two-letter code the translation and speech services take.
// Unknown languages fall back to English.
func (l Language) Code() string {
	t, ok := l.Tag()
	if !ok {
		t = language.English
	}
	base, _ := t.Base()
	return base.String()
}

func (l Language) IsBase() bool {
	return l == BaseLanguage
}

// ParseLanguage accepts a display name ("tamil") or a code ("ta").
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(string(l), s) || strings.EqualFold(l.Code(), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}
