// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

// Package hubapi is the HTTP client for the customer-data API.
//
// Client issues POST and PATCH requests with a bearer token and returns the
// response body as raw JSON. BreakerClient adds a sony/gobreaker circuit
// breaker; NewFromConfig assembles the stack from config.APIConfig.
package hubapi
