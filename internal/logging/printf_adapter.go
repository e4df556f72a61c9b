// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// PrintfAdapter bridges zerolog to libraries that log through a
// printf-style leveled interface (BadgerDB's badger.Logger).
type PrintfAdapter struct {
	logger zerolog.Logger
}

// NewPrintfAdapter returns an adapter over the global logger tagged with component.
func NewPrintfAdapter(component string) *PrintfAdapter {
	return &PrintfAdapter{logger: With().Str("component", component).Logger()}
}

// NewPrintfAdapterWithLogger returns an adapter over logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPrintfAdapterWithLogger(logger zerolog.Logger) *PrintfAdapter {
	return &PrintfAdapter{logger: logger}
}

// Errorf logs at error level.
func (a *PrintfAdapter) Errorf(format string, args ...interface{}) {
	a.logger.Error().Msgf(trimNewline(format), args...)
}

// Warningf logs at warn level.
func (a *PrintfAdapter) Warningf(format string, args ...interface{}) {
	a.logger.Warn().Msgf(trimNewline(format), args...)
}

// Infof logs at debug level; library chatter is not operational info for us.
func (a *PrintfAdapter) Infof(format string, args ...interface{}) {
	a.logger.Debug().Msgf(trimNewline(format), args...)
}

// Debugf logs at trace level.
func (a *PrintfAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Trace().Msgf(trimNewline(format), args...)
}

func trimNewline(format string) string {
	return strings.TrimSuffix(format, "\n")
}
