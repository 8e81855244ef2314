package config

import "time"

type Config interface {
	EnvConfig
	ClientConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
}

type ClientConfig interface {
	GetAPIBaseURL() string
	GetSessionFile() string
	GetHTTPTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	ClientVars
}

func New() Config {
	return mainConfig{}
}
