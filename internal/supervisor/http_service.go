// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/hubtrack/internal/logging"
)

// HTTPServer matches the *http.Server lifecycle methods.
type HTTPServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server as a supervised service.
//
// Serve listens on addr (or takes the pre-bound listener the first time),
// serves until ctx is canceled and then shuts the server down within
// shutdownTimeout. http.ErrServerClosed is not an error.
type HTTPServerService struct {
	name            string
	server          HTTPServer
	addr            string
	shutdownTimeout time.Duration

	mu       sync.Mutex
	listener net.Listener
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout means 10s.
func NewHTTPServerService(name string, server HTTPServer, addr string, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		name:            name,
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}
}

// WithListener makes the first Serve use l. Restarts listen on l's address.
func (h *HTTPServerService) WithListener(l net.Listener) *HTTPServerService {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listener = l
	h.addr = l.Addr().String()
	return h
}

func (h *HTTPServerService) listen() (net.Listener, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener != nil {
		l := h.listener
		h.listener = nil
		return l, nil
	}
	return net.Listen("tcp", h.addr)
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	l, err := h.listen()
	if err != nil {
		return fmt.Errorf("%s: listen on %s: %w", h.name, h.addr, err)
	}

	logging.Info().Str("service", h.name).Str("addr", l.Addr().String()).Msg("HTTP server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := h.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s: http server failed: %w", h.name, err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already canceled; shutdown needs its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: http server shutdown failed: %w", h.name, err)
		}
		<-errCh
		return ctx.Err()
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (h *HTTPServerService) String() string {
	return h.name
}
