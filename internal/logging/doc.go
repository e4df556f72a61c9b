// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

// Package logging provides centralized zerolog-based structured logging for Hubtrack.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("workspace", ws).Msg("Tracker configured")
//	logging.Error().Err(err).Msg("Event send failed")
//
// # Context-Aware Logging
//
// The dispatcher stamps every command with a correlation id so the log lines
// of one config/customer/event call can be grouped:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Debug().Str("method", "customer").Msg("dispatching")
//
// # Sensitive Data
//
// Bearer tokens and session ids must go through SanitizeToken and
// SanitizeSessionID before being attached to a log event.
//
// # Third-Party Loggers
//
// PrintfAdapter satisfies printf-style leveled logger interfaces such as
// badger.Logger so library output lands in the same zerolog stream.
package logging
