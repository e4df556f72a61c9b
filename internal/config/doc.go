// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

/*
Package config provides centralized configuration management for Hubtrack.

A browser host configures the tracker through page-level globals; this
package is their process-wide equivalent. Settings are loaded once at
startup into an immutable Config and passed explicitly to the components
that need them.

# Configuration Sources

Koanf v2 layers, lowest to highest priority:
  - Built-in defaults
  - YAML file (hubtrack.yaml, or the path in HUBTRACK_CONFIG)
  - Environment variables listed below

# Environment Variables

Page-level globals:
  - HUBTRACK_OBJECT_NAME: command object name (default: ch)
  - HUBTRACK_API_URL: API base URL (default: https://api.contactlab.it/hub/v1)
  - HUBTRACK_COOKIE_NAME: Hub cookie name (default: _ch)
  - HUBTRACK_UTM_COOKIE_NAME: UTM cookie name (default: _chutm)

Cookies:
  - HUBTRACK_HUB_COOKIE_TTL: Hub cookie lifetime (default: 8760h)
  - HUBTRACK_UTM_COOKIE_TTL: UTM cookie lifetime (default: 30m)
  - HUBTRACK_COOKIE_DOMAIN, HUBTRACK_COOKIE_PATH, HUBTRACK_COOKIE_SECURE
  - HUBTRACK_JAR_PATH: BadgerDB cookie jar directory (default: in-memory)

API client:
  - HUBTRACK_API_TIMEOUT: per-request timeout (default: 30s)
  - HUBTRACK_API_RATE_LIMIT: requests per second, 0 = unlimited (default: 0)
  - HUBTRACK_API_RATE_BURST: limiter burst (default: 10)
  - HUBTRACK_BREAKER_ENABLED, HUBTRACK_BREAKER_MAX_REQUESTS,
    HUBTRACK_BREAKER_INTERVAL, HUBTRACK_BREAKER_TIMEOUT,
    HUBTRACK_BREAKER_MIN_REQUESTS, HUBTRACK_BREAKER_FAILURE_RATIO

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include caller file:line (default: false)
*/
package config
