// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cookie

import "time"

// Options are the attributes of a cookie write.
type Options struct {
	// MaxAge is the cookie lifetime. Zero means a session cookie with no
	// expiry enforced by the jar.
	MaxAge time.Duration

	Path   string
	Domain string
	Secure bool
}

// Jar is a raw name -> string cookie storage.
//
// Implementations:
//   - MemoryJar: in-process map with per-entry expiry
//   - BadgerJar: persistent BadgerDB storage with native TTL
//   - HTTPJar: request cookies in, Set-Cookie headers out
type Jar interface {
	// Get returns the cookie value. ok is false when the cookie is absent
	// or expired; err reports storage failures only.
	Get(name string) (value string, ok bool, err error)

	// Set stores value under name.
	Set(name, value string, opts Options) error

	// Delete removes name. opts carries the scope (path, domain) the cookie
	// was set with. Deleting an absent cookie is not an error.
	Delete(name string, opts Options) error
}
