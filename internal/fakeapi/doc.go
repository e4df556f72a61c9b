// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

/*
Package fakeapi is an in-memory customer-data API.

It serves the four endpoints the tracker uses and records every request so
tests can assert on exact call sequences:

	POST  /workspaces/{workspaceID}/customers                  201 {"id": ...}
	PATCH /workspaces/{workspaceID}/customers/{customerID}     200, 404 if unknown
	POST  /workspaces/{workspaceID}/customers/{customerID}/sessions
	POST  /workspaces/{workspaceID}/events                     202, empty body

Creating or patching a customer with an externalId already used in the
workspace answers 409. Every endpoint requires an Authorization: Bearer
header; WithTokens restricts the accepted tokens.

The router uses go-chi/chi with go-chi/cors so browser pages can post
cross-origin, and go-chi/httprate for per-IP limiting when it runs as the
hubctl sandbox.

	srv := fakeapi.New()
	ts := httptest.NewServer(srv.Handler(nil))
	defer ts.Close()
*/
package fakeapi
