// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package hubapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/hubtrack/internal/config"
	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/metrics"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// maxErrorBodyBytes caps the body kept on an HTTPStatusError.
const maxErrorBodyBytes = 512

// emptyObject is returned for successful responses with no body.
var emptyObject = json.RawMessage(`{}`)

// Client sends JSON requests to the customer-data API.
//
// Every request carries Accept and Content-Type application/json and an
// Authorization: Bearer header with the per-call token. Paths are relative
// to the configured base URL (/workspaces/{id}/customers).
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit paces outbound requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a client from API settings.
func NewClientFromConfig(cfg config.APIConfig) *Client {
	return NewClient(cfg.BaseURL,
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Post sends body as JSON with POST and returns the JSON response.
func (c *Client) Post(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, path, body, token)
}

// Patch sends body as JSON with PATCH and returns the JSON response.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPatch, path, body, token)
}

// doRequest executes one request.
//
// Errors: *NetworkError on transport failure, *HTTPStatusError on non-2xx,
// *DecodeError when a non-empty body is not JSON. An empty 2xx body decodes
// to {}.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, token string) (result json.RawMessage, err error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	if err := c.wait(ctx); err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	metrics.TrackActiveRequest(true)
	defer func() {
		metrics.TrackActiveRequest(false)
		metrics.RecordAPIRequest(method, time.Since(start), err)
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: fmt.Errorf("read response: %w", err)}
	}

	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       logging.Truncate(strings.TrimSpace(string(data)), maxErrorBodyBytes),
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return emptyObject, nil
	}
	if !json.Valid(trimmed) {
		return nil, &DecodeError{Method: method, Path: path, Err: errInvalidJSON}
	}
	return json.RawMessage(trimmed), nil
}

// wait blocks until the rate limiter admits a request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if c.limiter.Tokens() < 1 {
		metrics.APIRateLimitWaits.Inc()
	}
	return c.limiter.Wait(ctx)
}
