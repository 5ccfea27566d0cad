package domain

import "golang.org/x/text/language"

type Locale string

const (
	LocaleRu Locale = "ru"
	LocaleEn Locale = "en"

	DefaultLocale = LocaleRu
)

// ParseLocale never fails: anything but "en" is the default locale.
func ParseLocale(s string) Locale {
	switch Locale(s) {
	case LocaleEn:
		return LocaleEn
	default:
		return DefaultLocale
	}
}

func (l Locale) Other() Locale {
	if l == LocaleEn {
		return LocaleRu
	}
	return LocaleEn
}

func (l Locale) Tag() language.Tag {
	if l == LocaleEn {
		return language.English
	}
	return language.Russian
}

func (l Locale) String() string {
	return string(l)
}
