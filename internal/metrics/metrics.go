// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// Remote API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubtrack_api_requests_total",
			Help: "Total number of requests sent to the customer-data API",
		},
		[]string{"method", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubtrack_api_request_duration_seconds",
			Help:    "Duration of customer-data API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hubtrack_api_active_requests",
			Help: "Number of customer-data API requests currently in flight",
		},
	)

	APIRateLimitWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hubtrack_api_rate_limit_waits_total",
			Help: "Total number of requests delayed by the outbound rate limiter",
		},
	)

	// Customer Identity Metrics
	CustomerActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubtrack_customer_actions_total",
			Help: "Customer reconciliation steps by action (create, update, reconcile, store, reset)",
		},
		[]string{"action", "outcome"},
	)

	CustomerNoop = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hubtrack_customer_noop_total",
			Help: "Customer calls skipped because the payload hash was unchanged",
		},
	)

	CustomerConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hubtrack_customer_conflicts_total",
			Help: "Customer calls rejected because the id conflicted with the stored identity",
		},
	)

	// Event Metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubtrack_events_total",
			Help: "Total number of events sent by type",
		},
		[]string{"type", "outcome"},
	)

	// Cookie Metrics
	CookieWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubtrack_cookie_writes_total",
			Help: "Total number of cookie writes by cookie name",
		},
		[]string{"cookie", "outcome"},
	)

	// Dispatcher Metrics
	DispatchCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubtrack_dispatch_commands_total",
			Help: "Total number of commands dispatched by method",
		},
		[]string{"method", "outcome"},
	)

	DispatchInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hubtrack_dispatch_in_flight",
			Help: "Number of fire-and-forget commands still running",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubtrack_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubtrack_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubtrack_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubtrack_info",
			Help: "Build information",
		},
		[]string{"version", "go_version"},
	)
)

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// RecordAPIRequest records one customer-data API round trip.
func RecordAPIRequest(method string, duration time.Duration, err error) {
	APIRequestsTotal.WithLabelValues(method, outcome(err)).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCustomerAction records one step of a customer reconciliation.
func RecordCustomerAction(action string, err error) {
	CustomerActions.WithLabelValues(action, outcome(err)).Inc()
}

// RecordEvent records an event send.
func RecordEvent(eventType string, err error) {
	EventsTotal.WithLabelValues(eventType, outcome(err)).Inc()
}

// RecordCookieWrite records a cookie write.
func RecordCookieWrite(cookie string, err error) {
	CookieWrites.WithLabelValues(cookie, outcome(err)).Inc()
}

// RecordDispatch records a dispatched command's completion.
func RecordDispatch(method string, err error) {
	DispatchCommands.WithLabelValues(method, outcome(err)).Inc()
}

// TrackInFlight tracks running fire-and-forget commands.
func TrackInFlight(inc bool) {
	if inc {
		DispatchInFlight.Inc()
	} else {
		DispatchInFlight.Dec()
	}
}

// RecordCircuitBreakerTransition records a breaker state change and sets
// the current state gauge.
func RecordCircuitBreakerTransition(name, from, to string, toState float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(toState)
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
