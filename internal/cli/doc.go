// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

// Package cli implements the hubctl command tree.
//
// hubctl acts as a headless page: cookies live in a BadgerDB jar (--jar or
// jar.path), the page location comes from --url, --title and --referrer,
// and operations are sent to the configured API. The sandbox command runs
// the in-memory fake API together with a /track endpoint that executes
// commands against the caller's real HTTP cookies.
package cli
