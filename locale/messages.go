package locale

import (
	"embed"
	"encoding/json"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var localizerMap map[string]*i18n.Localizer

func init() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, name := range []string{"locales/en.json", "locales/zh.json"} {
		data, err := localeFS.ReadFile(name)
		if err != nil {
			panic("failed to load " + name + ": " + err.Error())
		}
		bundle.MustParseMessageFileBytes(data, name)
	}

	localizerMap = map[string]*i18n.Localizer{
		English: i18n.NewLocalizer(bundle, English),
		Chinese: i18n.NewLocalizer(bundle, Chinese),
	}
}

// T resolves a message id in the given language, falling back to English
// for unknown languages and to the id itself for unknown messages.
func T(lang, messageID string) string {
	localizer := localizerMap[Normalize(lang)]

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
	})
	if err != nil {
		return messageID
	}
	return msg
}
