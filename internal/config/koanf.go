// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"hubtrack.yaml",
	"hubtrack.yml",
	"/etc/hubtrack/hubtrack.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "HUBTRACK_CONFIG"

// Defaults shared with callers that build settings by hand.
const (
	DefaultObjectName    = "ch"
	DefaultAPIBaseURL    = "https://api.contactlab.it/hub/v1"
	DefaultHubCookieName = "_ch"
	DefaultUTMCookieName = "_chutm"
	DefaultHubCookieTTL  = 365 * 24 * time.Hour
	DefaultUTMCookieTTL  = 30 * time.Minute
)

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		ObjectName: DefaultObjectName,
		API: APIConfig{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   30 * time.Second,
			RateLimit: 0, // Unlimited
			RateBurst: 10,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Cookies: CookieConfig{
			HubName: DefaultHubCookieName,
			UTMName: DefaultUTMCookieName,
			HubTTL:  DefaultHubCookieTTL,
			UTMTTL:  DefaultUTMCookieTTL,
			Path:    "/",
		},
		Jar: JarConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without consulting files or env.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	return LoadFromPath("")
}

// LoadFromPath is LoadWithKoanf with an explicit config file. An empty path
// falls back to HUBTRACK_CONFIG and DefaultConfigPaths.
func LoadFromPath(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional unless named explicitly)
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	} else {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HUBTRACK_API_URL -> api.base_url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Page-level globals
	"hubtrack_object_name":     "object_name",
	"hubtrack_api_url":         "api.base_url",
	"hubtrack_cookie_name":     "cookies.hub_name",
	"hubtrack_utm_cookie_name": "cookies.utm_name",

	// Cookie attributes
	"hubtrack_cookie_domain":  "cookies.domain",
	"hubtrack_cookie_path":    "cookies.path",
	"hubtrack_cookie_secure":  "cookies.secure",
	"hubtrack_hub_cookie_ttl": "cookies.hub_ttl",
	"hubtrack_utm_cookie_ttl": "cookies.utm_ttl",

	// API client
	"hubtrack_api_timeout":    "api.timeout",
	"hubtrack_api_rate_limit": "api.rate_limit",
	"hubtrack_api_rate_burst": "api.rate_burst",

	// Circuit breaker
	"hubtrack_breaker_enabled":       "api.breaker.enabled",
	"hubtrack_breaker_max_requests":  "api.breaker.max_requests",
	"hubtrack_breaker_interval":      "api.breaker.interval",
	"hubtrack_breaker_timeout":       "api.breaker.timeout",
	"hubtrack_breaker_min_requests":  "api.breaker.min_requests",
	"hubtrack_breaker_failure_ratio": "api.breaker.failure_ratio",

	// Cookie jar
	"hubtrack_jar_path": "jar.path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" so unrelated environment does not pollute config.
//
// Examples:
//   - HUBTRACK_API_URL -> api.base_url
//   - HUBTRACK_COOKIE_NAME -> cookies.hub_name
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
