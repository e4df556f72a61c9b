// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/hubtrack/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ObjectName) == "" {
		return fmt.Errorf("HUBTRACK_OBJECT_NAME must not be empty")
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateCookies(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	if err := validateBaseURL(c.API.BaseURL, "HUBTRACK_API_URL"); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("HUBTRACK_API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("HUBTRACK_API_RATE_LIMIT must not be negative, got %v", c.API.RateLimit)
	}
	if c.API.RateLimit > 0 && c.API.RateBurst < 1 {
		return fmt.Errorf("HUBTRACK_API_RATE_BURST must be at least 1 when rate limiting is enabled")
	}
	return c.validateBreaker()
}

func (c *Config) validateBreaker() error {
	b := c.API.Breaker
	if !b.Enabled {
		return nil
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("HUBTRACK_BREAKER_TIMEOUT must be positive, got %s", b.Timeout)
	}
	if b.Interval < 0 {
		return fmt.Errorf("HUBTRACK_BREAKER_INTERVAL must not be negative, got %s", b.Interval)
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("HUBTRACK_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", b.FailureRatio)
	}
	return nil
}

func (c *Config) validateCookies() error {
	if strings.TrimSpace(c.Cookies.HubName) == "" {
		return fmt.Errorf("HUBTRACK_COOKIE_NAME must not be empty")
	}
	if strings.TrimSpace(c.Cookies.UTMName) == "" {
		return fmt.Errorf("HUBTRACK_UTM_COOKIE_NAME must not be empty")
	}
	if c.Cookies.HubName == c.Cookies.UTMName {
		return fmt.Errorf("hub and UTM cookie names must differ, both are %q", c.Cookies.HubName)
	}
	if c.Cookies.HubTTL <= 0 {
		return fmt.Errorf("HUBTRACK_HUB_COOKIE_TTL must be positive, got %s", c.Cookies.HubTTL)
	}
	if c.Cookies.UTMTTL <= 0 {
		return fmt.Errorf("HUBTRACK_UTM_COOKIE_TTL must be positive, got %s", c.Cookies.UTMTTL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, got: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got: %s", c.Logging.Format)
	}
}
