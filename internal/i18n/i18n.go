package i18n

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

const (
	English   = "en"
	Ukrainian = "uk"
	Russian   = "ru"

	Default = English
)

type Language struct {
	Code  string
	Label string
}

var supported = []Language{
	{Code: English, Label: "🇬🇧 English"},
	{Code: Ukrainian, Label: "🇺🇦 Українська"},
	{Code: Russian, Label: "🇷🇺 Русский"},
}

// Languages returns the supported languages in keyboard order.
func Languages() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Normalize maps a code such as "EN" or "uk-UA" onto a supported base
// language code.
func Normalize(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	b := base.String()
	if _, ok := messages[b]; !ok {
		return "", false
	}
	return b, true
}

// Lookup resolves key in lang, falling back to the default language and
// finally to the key itself.
func Lookup(lang, key string) string {
	if table, ok := messages[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := messages[Default][key]; ok {
		return s
	}
	return key
}

type LanguageStore interface {
	Language(userID int64) (string, error)
}

type Translator struct {
	store LanguageStore
}

func NewTranslator(store LanguageStore) *Translator {
	return &Translator{store: store}
}

// Lang returns the user's language. Store failures are logged and the
// default language is used for this call only.
func (t *Translator) Lang(userID int64) string {
	if t.store == nil {
		return Default
	}
	lang, err := t.store.Language(userID)
	if err != nil {
		logger.Error("Failed to read language preference", "user_id", userID, "error", err)
		return Default
	}
	if lang == "" {
		return Default
	}
	if code, ok := Normalize(lang); ok {
		return code
	}
	return Default
}

func (t *Translator) T(userID int64, key string) string {
	return Lookup(t.Lang(userID), key)
}

func (t *Translator) Tf(userID int64, key string, args ...any) string {
	return fmt.Sprintf(t.T(userID, key), args...)
}
