// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cookie

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCookie is returned when a cookie is absent and no fallback was given.
var ErrMissingCookie = errors.New("cookie not found")

// DecodeError reports a cookie whose JSON parsed but lacks required fields.
type DecodeError struct {
	Cookie string
	Fields []string
	Err    error
}

func (e *DecodeError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("cookie %s: invalid value: missing or invalid %s", e.Cookie, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("cookie %s: invalid value: %v", e.Cookie, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError reports a cookie value that is not valid JSON.
type ParseError struct {
	Cookie string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cookie %s: not valid JSON: %v", e.Cookie, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SerializeError reports a value that could not be encoded for storage.
type SerializeError struct {
	Cookie string
	Err    error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("cookie %s: cannot serialize value: %v", e.Cookie, e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }

// IsInvalid reports whether err means the cookie exists but is unusable.
func IsInvalid(err error) bool {
	var de *DecodeError
	var pe *ParseError
	return errors.As(err, &de) || errors.As(err, &pe)
}
