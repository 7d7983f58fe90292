package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port                 string
	GinMode              string
	DataDir              string
	AllowedOrigins       string
	HostawayBaseURL      string
	HostawayClientID     string
	HostawayClientSecret string
	HostawayScope        string
	HostawayMock         bool
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "release"),
		DataDir:              getEnv("DATA_DIR", "./data"),
		AllowedOrigins:       strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")),
		HostawayBaseURL:      getEnv("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayClientID:     strings.TrimSpace(os.Getenv("HOSTAWAY_CLIENT_ID")),
		HostawayClientSecret: strings.TrimSpace(os.Getenv("HOSTAWAY_CLIENT_SECRET")),
		HostawayScope:        getEnv("HOSTAWAY_SCOPE", "general"),
	}

	mock, err := parseBoolEnv("HOSTAWAY_MOCK", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse HOSTAWAY_MOCK: %w", err)
	}
	cfg.HostawayMock = mock

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DataDir == "" {
		return errors.New("DATA_DIR is required")
	}
	return nil
}

// HostawayConfigured reports whether aggregator credentials are present.
// Without them every request is served from the local record store.
func (c Config) HostawayConfigured() bool {
	return c.HostawayMock || (c.HostawayClientID != "" && c.HostawayClientSecret != "")
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseBoolEnv(key string, defaultVal bool) (bool, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, err
	}
	return parsed, nil
}
