// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

/*
Package metrics provides Prometheus metrics for the tracker.

All collectors register on the default registry through promauto. The
sandbox server exposes them at /metrics:

	curl http://localhost:8089/metrics

# Available Metrics

Remote API:
  - hubtrack_api_requests_total{method,outcome}
  - hubtrack_api_request_duration_seconds{method}
  - hubtrack_api_active_requests
  - hubtrack_api_rate_limit_waits_total

Customer identity:
  - hubtrack_customer_actions_total{action,outcome}
    action: create, update, reconcile, store, reset
  - hubtrack_customer_noop_total
  - hubtrack_customer_conflicts_total

Events and cookies:
  - hubtrack_events_total{type,outcome}
  - hubtrack_cookie_writes_total{cookie,outcome}

Dispatcher:
  - hubtrack_dispatch_commands_total{method,outcome}
  - hubtrack_dispatch_in_flight

Circuit breaker:
  - hubtrack_circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - hubtrack_circuit_breaker_requests_total{name,result}
  - hubtrack_circuit_breaker_transitions_total{name,from,to}

# Usage

	start := time.Now()
	err := doRequest()
	metrics.RecordAPIRequest(http.MethodPost, time.Since(start), err)
*/
package metrics
