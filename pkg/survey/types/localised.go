package types

const (
	LANGUAGE_EN = "en"
	LANGUAGE_RW = "rw"
	LANGUAGE_FR = "fr"

	DEFAULT_LANGUAGE = LANGUAGE_EN
)

// Localized holds one text per language code.
type Localized map[string]string

// Get returns the text for lang, falling back to the default language.
func (l Localized) Get(lang string) string {
	if v, ok := l[lang]; ok && v != "" {
		return v
	}
	return l[DEFAULT_LANGUAGE]
}

func IsSupportedLanguage(lang string) bool {
	switch lang {
	case LANGUAGE_EN, LANGUAGE_RW, LANGUAGE_FR:
		return true
	}
	return false
}
