package content

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// Language is a supported content language.
type Language string

const (
	// English content.
	English Language = "en"
	// German content.
	German Language = "de"
)

// ErrUnsupportedLanguage is returned for language tags outside the supported set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

//nolint:gochecknoglobals // Fixed language table
var supportedTags = []language.Tag{language.English, language.German}

//nolint:gochecknoglobals // Built once from supportedTags
var matcher = language.NewMatcher(supportedTags)

// Languages returns the supported languages in their canonical order.
func Languages() (langs []Language) {
	langs = []Language{English, German}
	return langs
}

// ParseLanguage maps a BCP 47 tag ("en", "de-AT", "en_GB") onto a supported language.
func ParseLanguage(input string) (lang Language, err error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		err = errors.Wrap(ErrUnsupportedLanguage, "empty language tag")
		return lang, err
	}

	var tag language.Tag
	tag, err = language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		err = errors.Wrapf(ErrUnsupportedLanguage, "invalid language tag %q", raw)
		return lang, err
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		err = errors.Wrapf(ErrUnsupportedLanguage, "%q", raw)
		return lang, err
	}

	lang = fromIndex(index)
	return lang, err
}

// ParseLanguages parses a list of tags, dropping duplicates while keeping order.
func ParseLanguages(inputs []string) (langs []Language, err error) {
	seen := make(map[Language]bool)
	for _, input := range inputs {
		var lang Language
		lang, err = ParseLanguage(input)
		if err != nil {
			return langs, err
		}
		if seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	return langs, err
}

// Negotiate picks a language from an explicit preference (query parameter,
// cookie) and falls back to an Accept-Language header, then to English.
func Negotiate(preferred, acceptLanguage string) (lang Language) {
	if preferred != "" {
		parsed, err := ParseLanguage(preferred)
		if err == nil {
			lang = parsed
			return lang
		}
	}

	lang = English
	if acceptLanguage == "" {
		return lang
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return lang
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence != language.No {
		lang = fromIndex(index)
	}
	return lang
}

func fromIndex(index int) (lang Language) {
	lang = English
	if index == 1 {
		lang = German
	}
	return lang
}

// Valid reports whether lang is one of the supported languages.
func (l Language) Valid() (ok bool) {
	ok = l == English || l == German
	return ok
}

func (l Language) String() (s string) {
	s = string(l)
	return s
}
