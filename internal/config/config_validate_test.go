// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"base url with path prefix", func(c *Config) { c.API.BaseURL = "https://hub.example.com/hub/v1/" }, ""},
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, "HUBTRACK_API_URL is required"},
		{"base url without host", func(c *Config) { c.API.BaseURL = "https:///path" }, "host is required"},
		{"base url with query", func(c *Config) { c.API.BaseURL = "https://x.com/v1?a=b" }, "query parameters"},
		{"base url with fragment", func(c *Config) { c.API.BaseURL = "https://x.com/v1#top" }, "fragment"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "HUBTRACK_API_TIMEOUT"},
		{"negative rate", func(c *Config) { c.API.RateLimit = -1 }, "HUBTRACK_API_RATE_LIMIT"},
		{"rate without burst", func(c *Config) { c.API.RateLimit = 2; c.API.RateBurst = 0 }, "HUBTRACK_API_RATE_BURST"},
		{"breaker ratio too high", func(c *Config) { c.API.Breaker.FailureRatio = 1.5 }, "FAILURE_RATIO"},
		{"breaker disabled skips checks", func(c *Config) {
			c.API.Breaker.Enabled = false
			c.API.Breaker.FailureRatio = 0
		}, ""},
		{"breaker zero timeout", func(c *Config) { c.API.Breaker.Timeout = 0 }, "HUBTRACK_BREAKER_TIMEOUT"},
		{"empty hub name", func(c *Config) { c.Cookies.HubName = "" }, "HUBTRACK_COOKIE_NAME"},
		{"empty utm name", func(c *Config) { c.Cookies.UTMName = "" }, "HUBTRACK_UTM_COOKIE_NAME"},
		{"zero utm ttl", func(c *Config) { c.Cookies.UTMTTL = 0 }, "HUBTRACK_UTM_COOKIE_TTL"},
		{"negative hub ttl", func(c *Config) { c.Cookies.HubTTL = -time.Hour }, "HUBTRACK_HUB_COOKIE_TTL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
