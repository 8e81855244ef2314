package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	apiBaseURLVar  = "HUB_API_BASE_URL"
	sessionFileVar = "HUB_SESSION_FILE"
	httpTimeoutVar = "HUB_HTTP_TIMEOUT"

	defaultHTTPTimeout = 15 * time.Second
)

type ClientVars struct{}

var _ ClientConfig = ClientVars{}

// GetAPIBaseURL returns the base URL of the remote Hub API, defaulting to the
// local development address.
func (ClientVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

// GetSessionFile returns the path of the persisted session blob.
func (ClientVars) GetSessionFile() string {
	if path := os.Getenv(sessionFileVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".projects-hub", "session.json")
	}
	return filepath.Join(home, ".projects-hub", "session.json")
}

// GetHTTPTimeout returns the per-request timeout for API calls.
func (ClientVars) GetHTTPTimeout() time.Duration {
	raw := os.Getenv(httpTimeoutVar)
	if raw == "" {
		return defaultHTTPTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		return defaultHTTPTimeout
	}
	return timeout
}
