package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	baseURLVar      = "POSTDROP_BASE_URL"
	appNameVar      = "POSTDROP_APP_NAME"
	languageVar     = "POSTDROP_LANG"
	folderVar       = "POSTDROP_FOLDER"
	callbackAddrVar = "POSTDROP_CALLBACK_ADDR"
	envVar          = "POSTDROP_ENV"
)

// EnvVars resolves configuration values from the environment and an
// optional .env file. Env vars override .env; a missing .env is ignored.
type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func NewEnvVars() EnvVars {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	v.SetDefault(baseURLVar, "http://localhost:8080")
	v.SetDefault(appNameVar, "PostDrop")
	v.SetDefault(languageVar, "en")
	v.SetDefault(callbackAddrVar, "127.0.0.1:0")
	v.SetDefault(envVar, "DEV")

	return EnvVars{v: v}
}

func (e EnvVars) GetBaseURL() string {
	return strings.TrimRight(e.v.GetString(baseURLVar), "/")
}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameVar)
}

func (e EnvVars) GetLanguage() string {
	return e.v.GetString(languageVar)
}

// GetDataFolder is where the login record and OAuth state live between runs.
func (e EnvVars) GetDataFolder() string {
	if folder := e.v.GetString(folderVar); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".postdrop"
	}
	return filepath.Join(home, ".postdrop")
}

// GetCallbackAddr is the loopback address the OAuth callback receiver
// listens on. Port 0 picks a free port.
func (e EnvVars) GetCallbackAddr() string {
	return e.v.GetString(callbackAddrVar)
}

func (e EnvVars) GetEnv() string {
	return e.v.GetString(envVar)
}
