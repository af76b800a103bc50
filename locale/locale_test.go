package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postdrop/postdrop-go/locale"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, locale.English, locale.Normalize("en"))
	require.Equal(t, locale.Chinese, locale.Normalize("zh"))
	require.Equal(t, locale.English, locale.Normalize("fr"))
	require.Equal(t, locale.English, locale.Normalize(""))
}

func TestAcceptLanguage(t *testing.T) {
	require.Equal(t, "en-US,en;q=0.9", locale.AcceptLanguage("en"))
	require.Equal(t, "zh-CN,zh;q=0.9,en;q=0.8", locale.AcceptLanguage("zh"))

	// Unknown languages fall back to the English mapping.
	require.Equal(t, "en-US,en;q=0.9", locale.AcceptLanguage("de"))
}

func TestT(t *testing.T) {
	t.Run("resolves per language", func(t *testing.T) {
		require.Equal(t, "Login successful", locale.T("en", "login.loginSuccess"))
		require.Equal(t, "登录成功", locale.T("zh", "login.loginSuccess"))
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		require.Equal(t, "Login successful", locale.T("fr", "login.loginSuccess"))
	})

	t.Run("unknown message falls back to its id", func(t *testing.T) {
		require.Equal(t, "nope.missing", locale.T("en", "nope.missing"))
	})
}
