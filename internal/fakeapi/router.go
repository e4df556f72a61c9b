// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package fakeapi

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/hubtrack/internal/logging"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler returns the API router. A nil cfg uses DefaultMiddlewareConfig.
func (s *Server) Handler(cfg *MiddlewareConfig) http.Handler {
	if cfg == nil {
		cfg = DefaultMiddlewareConfig()
	}

	r := chi.NewRouter()

	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(cfg)) // global so OPTIONS preflight is answered

	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
		r.Use(rateLimit(cfg))
		r.Use(s.recordRequests)
		r.Use(s.authenticate)

		r.Post("/customers", s.createCustomer)
		r.Patch("/customers/{customerID}", s.updateCustomer)
		r.Post("/customers/{customerID}/sessions", s.addSession)
		r.Post("/events", s.createEvent)
	})

	return r
}

// recordRequests buffers the body and appends a Call once the handler
// has written its status.
func (s *Server) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, "cannot read body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		token, _ := bearerToken(r)
		call := Call{
			Method:    r.Method,
			Path:      r.URL.Path,
			Token:     token,
			Status:    ww.Status(),
			Timestamp: start,
		}
		if len(bytes.TrimSpace(body)) > 0 {
			call.Body = body
		}
		s.record(call)

		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Fake API request")
	})
}

// authenticate requires an accepted bearer token.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if !s.acceptsToken(token) {
			respondError(w, http.StatusForbidden, "token not accepted")
			return
		}
		next.ServeHTTP(w, r)
	})
}
