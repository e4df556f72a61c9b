// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

// Package dispatch is the command surface of the tracker.
//
// Host code calls a single entry point by method name:
//
//	d := dispatch.New(tr, cfg.ObjectName)
//	err := d.Call(ctx, "event", json.RawMessage(`{"type":"viewedPage"}`))
//
// config runs synchronously and returns its validation error. customer and
// event run as fire-and-forget tasks; their failures go to the tracker's
// debug-gated diagnostics. Wait blocks until running tasks finish.
//
// Calls recorded before the dispatcher existed (the pending queue) are
// replayed once, in order, with Drain. Queue files use the call form
// ["method", {options}].
package dispatch
