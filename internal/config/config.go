// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package config

import (
	"time"
)

// Config holds the process-wide SDK settings, the equivalent of the page-level
// globals a browser host would set before loading the tracker.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values matching the hosted API
//  2. Config File: Optional YAML file (hubtrack.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	client := hubapi.NewClient(cfg.API)
//
// Thread Safety:
// Config is read once at startup and must be treated as immutable afterwards.
type Config struct {
	// ObjectName is the name the command function is exposed under.
	// Default: ch
	ObjectName string `koanf:"object_name"`

	API     APIConfig     `koanf:"api"`
	Cookies CookieConfig  `koanf:"cookies"`
	Jar     JarConfig     `koanf:"jar"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig configures the remote customer-data API client.
type APIConfig struct {
	// BaseURL is prefixed to every request path (/workspaces/...).
	// Default: https://api.contactlab.it/hub/v1
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single HTTP round trip.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained outbound request rate per second.
	// 0 disables pacing.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the token bucket size used when RateLimit > 0.
	// Default: 10
	RateBurst int `koanf:"rate_burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of the API client.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`

	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests before FailureRatio is evaluated.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio that trips the breaker, in (0, 1].
	FailureRatio float64 `koanf:"failure_ratio"`
}

// CookieConfig names the two cookies and sets their lifetimes.
type CookieConfig struct {
	// HubName is the identity cookie name.
	// Default: _ch
	HubName string `koanf:"hub_name"`

	// UTMName is the campaign attribution cookie name.
	// Default: _chutm
	UTMName string `koanf:"utm_name"`

	// HubTTL is the Hub cookie max-age.
	// Default: 8760h (one year)
	HubTTL time.Duration `koanf:"hub_ttl"`

	// UTMTTL is the UTM cookie max-age.
	// Default: 30m
	UTMTTL time.Duration `koanf:"utm_ttl"`

	Domain string `koanf:"domain"`
	Path   string `koanf:"path"`
	Secure bool   `koanf:"secure"`
}

// JarConfig selects the cookie jar backend used by the CLI.
type JarConfig struct {
	// Path is the BadgerDB directory. Empty keeps cookies in memory.
	Path string `koanf:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes file:line in each log line.
	Caller bool `koanf:"caller"`
}
