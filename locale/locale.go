// Package locale maps the active UI language onto request headers and
// user-facing messages.
package locale

// Supported languages.
const (
	English = "en"
	Chinese = "zh"
)

var acceptLanguage = map[string]string{
	English: "en-US,en;q=0.9",
	Chinese: "zh-CN,zh;q=0.9,en;q=0.8",
}

// Normalize collapses unknown languages onto English.
func Normalize(lang string) string {
	if _, ok := acceptLanguage[lang]; ok {
		return lang
	}
	return English
}

// AcceptLanguage returns the Accept-Language header value for lang.
// Unknown languages fall back to the English mapping.
func AcceptLanguage(lang string) string {
	return acceptLanguage[Normalize(lang)]
}
