// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies the built-in defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"ObjectName", cfg.ObjectName, "ch"},
		{"API.BaseURL", cfg.API.BaseURL, "https://api.contactlab.it/hub/v1"},
		{"API.Timeout", cfg.API.Timeout, 30 * time.Second},
		{"API.RateLimit", cfg.API.RateLimit, 0.0},
		{"API.RateBurst", cfg.API.RateBurst, 10},
		{"API.Breaker.Enabled", cfg.API.Breaker.Enabled, true},
		{"API.Breaker.MaxRequests", cfg.API.Breaker.MaxRequests, uint32(3)},
		{"API.Breaker.FailureRatio", cfg.API.Breaker.FailureRatio, 0.6},
		{"Cookies.HubName", cfg.Cookies.HubName, "_ch"},
		{"Cookies.UTMName", cfg.Cookies.UTMName, "_chutm"},
		{"Cookies.HubTTL", cfg.Cookies.HubTTL, 365 * 24 * time.Hour},
		{"Cookies.UTMTTL", cfg.Cookies.UTMTTL, 30 * time.Minute},
		{"Cookies.Path", cfg.Cookies.Path, "/"},
		{"Jar.Path", cfg.Jar.Path, ""},
		{"Logging.Level", cfg.Logging.Level, "info"},
		{"Logging.Format", cfg.Logging.Format, "json"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name mapping
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HUBTRACK_OBJECT_NAME", "object_name"},
		{"HUBTRACK_API_URL", "api.base_url"},
		{"HUBTRACK_COOKIE_NAME", "cookies.hub_name"},
		{"HUBTRACK_UTM_COOKIE_NAME", "cookies.utm_name"},
		{"HUBTRACK_BREAKER_FAILURE_RATIO", "api.breaker.failure_ratio"},
		{"HUBTRACK_JAR_PATH", "jar.path"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},
		{"PATH", ""},
		{"HOME", ""},
		{"HUBTRACK_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := envTransformFunc(tt.input); result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("hubtrack.yaml exists", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tmpDir, "hubtrack.yaml"), []byte("object_name: x"), 0o600); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(filepath.Join(tmpDir, "hubtrack.yaml"))

		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "hubtrack.yaml" {
			t.Errorf("findConfigFile() = %q, want hubtrack.yaml", result)
		}
	})

	t.Run("HUBTRACK_CONFIG takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("object_name: x"), 0o600); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		t.Setenv(ConfigPathEnvVar, customPath)
		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("HUBTRACK_CONFIG with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/hubtrack.yaml")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HUBTRACK_OBJECT_NAME", "hub")
	t.Setenv("HUBTRACK_API_URL", "http://localhost:8080/hub/v1")
	t.Setenv("HUBTRACK_COOKIE_NAME", "_hub")
	t.Setenv("HUBTRACK_UTM_COOKIE_NAME", "_hubutm")
	t.Setenv("HUBTRACK_API_TIMEOUT", "5s")
	t.Setenv("HUBTRACK_BREAKER_MAX_REQUESTS", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.ObjectName != "hub" {
		t.Errorf("ObjectName = %q, want hub", cfg.ObjectName)
	}
	if cfg.API.BaseURL != "http://localhost:8080/hub/v1" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Cookies.HubName != "_hub" || cfg.Cookies.UTMName != "_hubutm" {
		t.Errorf("cookie names = %q/%q", cfg.Cookies.HubName, cfg.Cookies.UTMName)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %s, want 5s", cfg.API.Timeout)
	}
	if cfg.API.Breaker.MaxRequests != 7 {
		t.Errorf("API.Breaker.MaxRequests = %d, want 7", cfg.API.Breaker.MaxRequests)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Defaults survive for unset values
	if cfg.Cookies.HubTTL != DefaultHubCookieTTL {
		t.Errorf("Cookies.HubTTL = %s, want default", cfg.Cookies.HubTTL)
	}
}

// TestLoadFromPathFile tests loading configuration from a YAML file
func TestLoadFromPathFile(t *testing.T) {
	configContent := `
object_name: tracker
api:
  base_url: "http://config-file.local/hub/v1"
  rate_limit: 5
cookies:
  hub_name: "_fromfile"
  utm_ttl: 1h
logging:
  level: warn
`
	configPath := filepath.Join(t.TempDir(), "hubtrack.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.ObjectName != "tracker" {
		t.Errorf("ObjectName = %q, want tracker", cfg.ObjectName)
	}
	if cfg.API.BaseURL != "http://config-file.local/hub/v1" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RateLimit != 5 {
		t.Errorf("API.RateLimit = %v, want 5", cfg.API.RateLimit)
	}
	if cfg.Cookies.HubName != "_fromfile" {
		t.Errorf("Cookies.HubName = %q", cfg.Cookies.HubName)
	}
	if cfg.Cookies.UTMTTL != time.Hour {
		t.Errorf("Cookies.UTMTTL = %s, want 1h", cfg.Cookies.UTMTTL)
	}
	if cfg.Cookies.UTMName != DefaultUTMCookieName {
		t.Errorf("Cookies.UTMName = %q, want default", cfg.Cookies.UTMName)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars override config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hubtrack.yaml")
	if err := os.WriteFile(configPath, []byte("cookies:\n  hub_name: _fromfile\n"), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HUBTRACK_COOKIE_NAME", "_fromenv")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Cookies.HubName != "_fromenv" {
		t.Errorf("Cookies.HubName = %q, want _fromenv", cfg.Cookies.HubName)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

// TestLoadWithKoanfValidation tests that invalid values are rejected at load time
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad api url scheme",
			env:     map[string]string{"HUBTRACK_API_URL": "ftp://example.com"},
			wantErr: "scheme must be http or https",
		},
		{
			name:    "empty object name",
			env:     map[string]string{"HUBTRACK_OBJECT_NAME": " "},
			wantErr: "HUBTRACK_OBJECT_NAME",
		},
		{
			name:    "same cookie names",
			env:     map[string]string{"HUBTRACK_COOKIE_NAME": "_x", "HUBTRACK_UTM_COOKIE_NAME": "_x"},
			wantErr: "must differ",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
