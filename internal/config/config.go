package config

type Config interface {
	EnvConfig
	APIConfig
	FlowConfig
}

type EnvConfig interface {
	GetAppName() string
	GetBaseURL() string
	GetLanguage() string
	GetDataFolder() string
	GetCallbackAddr() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	API
	Flow
}

func New() Config {
	return mainConfig{EnvVars: NewEnvVars()}
}
