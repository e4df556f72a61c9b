// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

/*
Package cookie implements the typed Hub and UTM cookie store.

Store sits on top of a raw Jar:

	jar, err := cookie.OpenBadgerJar("/home/me/.hubtrack/jar")
	store := cookie.NewStore(jar, cfg.Cookies)
	hub, err := store.GetHub(nil)

Read errors:
  - ErrMissingCookie: cookie absent and no fallback given
  - *ParseError: value is not valid JSON
  - *DecodeError: JSON lacks required fields (token, workspaceId, nodeId
    for the Hub cookie; utm_source for the UTM cookie)

When a fallback is passed, an absent or invalid cookie yields a copy of the
fallback instead of an error.

Write errors:
  - *SerializeError: value cannot be encoded as JSON
*/
package cookie
