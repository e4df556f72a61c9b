// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/models"
)

// debugEnabled reports whether the Hub cookie has debug set. A missing or
// invalid cookie counts as disabled.
func (t *Tracker) debugEnabled() bool {
	hub, err := t.cookies.GetHub(&models.HubCookie{})
	return err == nil && hub.Debug
}

// ReportError logs the failure of an asynchronous operation. Output is
// suppressed unless the Hub cookie has debug enabled.
func (t *Tracker) ReportError(ctx context.Context, op string, err error) {
	if err == nil || !t.debugEnabled() {
		return
	}
	logging.Ctx(ctx).Error().Err(err).Str("op", op).Msg("Operation failed")
}

// trace returns a debug-level event gated like ReportError. The returned
// event is nil (a no-op) when debug is disabled.
func (t *Tracker) trace(ctx context.Context, hub *models.HubCookie) *zerolog.Event {
	if hub == nil || !hub.Debug {
		return nil
	}
	return logging.Ctx(ctx).Debug()
}
