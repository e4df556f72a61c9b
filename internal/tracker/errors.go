// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"errors"
	"fmt"

	"github.com/tomtom215/hubtrack/internal/cookie"
	"github.com/tomtom215/hubtrack/internal/hubapi"
)

var (
	// ErrValidation is returned when caller options miss a required field.
	ErrValidation = errors.New("invalid options")

	// ErrMissingIdentity is returned when an operation needs the Hub cookie
	// and it is absent or invalid.
	ErrMissingIdentity = errors.New("missing identity")

	// ErrConflict is returned when data.id differs from the stored customer
	// id and data carries nothing to update.
	ErrConflict = errors.New("customer id conflicts with current identity")

	// ErrAggregateNode is returned when target is AGGREGATE but the
	// aggregate node id or token is missing.
	ErrAggregateNode = errors.New("aggregate target requires aggregateNodeId and aggregateToken")

	// ErrSerialization is returned when a cookie value, hash input or
	// request body cannot be encoded.
	ErrSerialization = errors.New("serialization failed")

	// ErrInvalidCustomerID is returned when the create response carries no
	// string id.
	ErrInvalidCustomerID = errors.New("customer id must be a string")
)

// missingIdentity wraps a Hub cookie read failure.
func missingIdentity(err error) error {
	return fmt.Errorf("%w: %w", ErrMissingIdentity, err)
}

// classify tags encoding failures with ErrSerialization and wraps err with
// the failed step.
func classify(step string, err error) error {
	var se *cookie.SerializeError
	var ee *hubapi.EncodeError
	if errors.As(err, &se) || errors.As(err, &ee) {
		return fmt.Errorf("%s: %w: %w", step, ErrSerialization, err)
	}
	return fmt.Errorf("%s: %w", step, err)
}
