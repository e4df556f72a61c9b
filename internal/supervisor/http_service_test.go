// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package supervisor

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// failingServer returns err from Serve and counts Shutdown calls.
type failingServer struct {
	err      error
	shutdown atomic.Int32
}

func (f *failingServer) Serve(l net.Listener) error {
	_ = l.Close()
	return f.err
}

func (f *failingServer) Shutdown(ctx context.Context) error {
	f.shutdown.Add(1)
	return nil
}

func TestHTTPServerService_Interface(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ HTTPServer = (*http.Server)(nil)
}

func TestHTTPServerService_ServesAndShutsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService("track", srv, "", time.Second).WithListener(l)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestHTTPServerService_ServerError(t *testing.T) {
	fs := &failingServer{err: errors.New("boom")}
	svc := NewHTTPServerService("edge", fs, "127.0.0.1:0", 0)

	err := svc.Serve(context.Background())
	if err == nil || !strings.Contains(err.Error(), "edge: http server failed: boom") {
		t.Errorf("Serve() = %v", err)
	}
	if fs.shutdown.Load() != 0 {
		t.Error("Shutdown should not be called when Serve fails")
	}
}

func TestHTTPServerService_ServerClosedIsClean(t *testing.T) {
	svc := NewHTTPServerService("edge", &failingServer{err: http.ErrServerClosed}, "127.0.0.1:0", 0)
	if err := svc.Serve(context.Background()); err != nil {
		t.Errorf("Serve() = %v, want nil", err)
	}
}

func TestHTTPServerService_ListenError(t *testing.T) {
	svc := NewHTTPServerService("edge", &failingServer{}, "256.0.0.1:bad", 0)
	if err := svc.Serve(context.Background()); err == nil || !strings.Contains(err.Error(), "listen on") {
		t.Errorf("Serve() = %v, want listen error", err)
	}
}

func TestHTTPServerService_String(t *testing.T) {
	svc := NewHTTPServerService("fake-api", &failingServer{}, ":0", 0)
	if svc.String() != "fake-api" {
		t.Errorf("String() = %q", svc.String())
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("default shutdownTimeout = %v", svc.shutdownTimeout)
	}
}
