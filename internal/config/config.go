// Package config resolves client settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

const (
	defaultAPIURL   = "https://api.collective.dev"
	defaultLogLevel = "info"
)

// Config holds every environment-driven setting the client uses.
type Config struct {
	// APIURL is the base URL of the COLLECTIVE API.
	APIURL string `env:"COLLECTIVE_API_URL" envDefault:"https://api.collective.dev"`
	// BaseURL is the web front end, used for browser login and share
	// links. Derived from APIURL when unset.
	BaseURL string `env:"COLLECTIVE_BASE_URL" envDefault:""`
	// Token overrides the persisted session token when set.
	Token string `env:"COLLECTIVE_TOKEN" envDefault:""`
	// LogLevel controls the file logger ("debug", "info", "warn", "error").
	LogLevel string `env:"COLLECTIVE_LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file if present, then the process environment.
func Load() (Config, error) {
	godotenv.Load() //nolint:errcheck // .env is optional

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	// A variable that is set but empty skips envDefault; treat it the
	// same as unset so the client never ends up without a base URL.
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = deriveBaseURL(cfg.APIURL)
	}
	return cfg, nil
}

// deriveBaseURL maps api.collective.dev to collective.dev, the convention
// the hosted platform uses. Anything unparseable is returned as-is.
func deriveBaseURL(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil {
		return apiURL
	}
	host := u.Hostname()
	port := u.Port()
	if strings.HasPrefix(host, "api.") {
		u.Host = strings.TrimPrefix(host, "api.")
		if port != "" {
			u.Host += ":" + port
		}
	}
	return u.String()
}
