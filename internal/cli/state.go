// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"errors"
	"io"

	"github.com/tomtom215/hubtrack/internal/cookie"
	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/models"
)

// cookieState is the jar contents as printed by commands.
type cookieState struct {
	Hub *models.HubCookie `json:"hub"`
	UTM *models.UTMCookie `json:"utm"`
}

// readState reads both cookies. Absent or invalid cookies read as nil.
func readState(store *cookie.Store) (cookieState, error) {
	hub, err := store.GetHub(nil)
	if err != nil && !unreadable(err) {
		return cookieState{}, err
	}
	utm, err := store.GetUTM(nil)
	if err != nil && !unreadable(err) {
		return cookieState{}, err
	}
	return cookieState{Hub: hub, UTM: utm}, nil
}

func unreadable(err error) bool {
	return errors.Is(err, cookie.ErrMissingCookie) || cookie.IsInvalid(err)
}

// printState writes the jar contents in the selected format. Text output
// masks tokens.
func printState(w io.Writer, format string, state cookieState) error {
	if format == "json" {
		return writeJSON(w, state)
	}

	var hub map[string]interface{}
	if state.Hub != nil {
		hub = toFields(state.Hub)
		for _, key := range []string{"token", "aggregateToken"} {
			if tok, ok := hub[key].(string); ok {
				hub[key] = logging.SanitizeToken(tok)
			}
		}
	}
	writeFields(w, "hub", hub)

	var utm map[string]interface{}
	if state.UTM != nil {
		utm = toFields(state.UTM)
	}
	writeFields(w, "utm", utm)
	return nil
}

// printSessionState reads and prints the cookies of an open session.
func printSessionState(w io.Writer, opts *RootOptions, s *session) error {
	state, err := readState(s.store)
	if err != nil {
		return WrapExitError(ExitFailure, "read cookies", err)
	}
	return printState(w, opts.Format, state)
}
