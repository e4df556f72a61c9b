// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package hubapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/hubtrack/internal/config"
	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/metrics"
)

// Requester is the Post/Patch surface shared by Client and BreakerClient.
type Requester interface {
	Post(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error)
}

// BreakerClient wraps a Requester with a circuit breaker so that an API
// outage fails calls fast instead of stacking up timeouts.
//
// 4xx responses count as successes for the breaker: they describe the
// request, not the health of the API.
type BreakerClient struct {
	next Requester
	cb   *gobreaker.CircuitBreaker[json.RawMessage]
	name string
}

// NewBreakerClient wraps next using cfg.
func NewBreakerClient(next Requester, cfg config.BreakerConfig) *BreakerClient {
	name := "hubapi"

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			code, ok := StatusCode(err)
			return ok && code < http.StatusInternalServerError
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordCircuitBreakerTransition(name, fromStr, toStr, stateToFloat(to))
		},
	})

	return &BreakerClient{next: next, cb: cb, name: name}
}

// Post forwards to the wrapped client under breaker protection.
func (b *BreakerClient) Post(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error) {
	return b.execute(http.MethodPost, path, func() (json.RawMessage, error) {
		return b.next.Post(ctx, path, body, token)
	})
}

// Patch forwards to the wrapped client under breaker protection.
func (b *BreakerClient) Patch(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error) {
	return b.execute(http.MethodPatch, path, func() (json.RawMessage, error) {
		return b.next.Patch(ctx, path, body, token)
	})
}

// State returns the current breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerClient) execute(method, path string, fn func() (json.RawMessage, error)) (json.RawMessage, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, &NetworkError{Method: method, Path: path, Err: err}
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// NewFromConfig builds the API client stack described by cfg: the base
// client, wrapped in a breaker when enabled.
func NewFromConfig(cfg config.APIConfig) Requester {
	client := NewClientFromConfig(cfg)
	if !cfg.Breaker.Enabled {
		return client
	}
	return NewBreakerClient(client, cfg.Breaker)
}
