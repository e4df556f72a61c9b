// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

/*
Package tracker implements the three tracking operations: config, customer
and event.

A Tracker holds no state of its own. Every operation reads the Hub cookie
fresh through the injected CookieStore and writes the full merged record
back in one shot, so the cookie is the only shared resource.

# Operations

Config validates the tenant options, merges them over the current Hub
cookie, and persists it. It also copies utm_* query parameters to the UTM
cookie and links the visitor when a clabId parameter is present.

Customer reconciles local identity with the remote customer record:

	data == nil                       reset sid, clear customerId and hash
	hash(data) == cookie.hash         no-op
	no id, no customerId              create, reconcile, store
	no id, customerId                 update, store
	id, no customerId                 reconcile, update, store
	id == customerId                  update, store
	id != customerId, id only         ErrConflict, no calls
	id != customerId, with fields     new sid, reconcile, update, store

update is skipped when data carries only an id. The Hub cookie is written
only after every remote step of the branch succeeded.

Event posts one event, attaching page properties for viewedPage, a
session bring-back hint for anonymous visitors, and UTM attribution when
the UTM cookie is usable.

# Dependencies

Env bundles the capabilities an operation needs: the cookie store, the
API requester, the page reader, a UUID source and a clock. Tests replace
any of them.
*/
package tracker
