// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/hubtrack/internal/fakeapi"
	"github.com/tomtom215/hubtrack/internal/hubapi"
	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/supervisor"
)

// SandboxOptions holds flags for the sandbox command.
type SandboxOptions struct {
	*RootOptions
	Addr            string
	APIAddr         string
	Tokens          []string
	AllowOrigins    []string
	RateLimit       int
	Metrics         bool
	ShutdownTimeout time.Duration
}

// NewSandboxCommand creates the sandbox command.
func NewSandboxCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SandboxOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run an in-memory customer API and a /track endpoint",
		Long: `Run a local sandbox for trying the tracker from a browser.

Two servers run under one supervisor:
  - the customer-data API (in memory) on --api-addr
  - POST /track on --addr, which replays the posted commands with the
    request's cookies and answers with Set-Cookie headers

The tracker calls the sandbox API unless --api points elsewhere.
Stop with SIGINT or SIGTERM.

Example:
  hubctl sandbox --addr 127.0.0.1:8080 --api-addr 127.0.0.1:8081
  curl -i -X POST 'http://127.0.0.1:8080/track?utm_source=mail' \
    -d '[["config",{"token":"t","workspaceId":"w","nodeId":"n"}],["event",{"type":"viewedPage"}]]'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
					cancel()
				case <-ctx.Done():
				}
			}()

			return runSandbox(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:8080", "listen address of the /track endpoint")
	cmd.Flags().StringVar(&opts.APIAddr, "api-addr", "127.0.0.1:8081", "listen address of the in-memory API")
	cmd.Flags().StringSliceVar(&opts.Tokens, "accept-token", nil, "bearer tokens the API accepts (default: any)")
	cmd.Flags().StringSliceVar(&opts.AllowOrigins, "allow-origin", nil, "page origins allowed to call /track cross-origin with cookies")
	cmd.Flags().IntVar(&opts.RateLimit, "rate-limit", 0, "API requests per minute per IP (0 disables)")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", true, "serve Prometheus metrics on the API at /metrics")
	cmd.Flags().DurationVar(&opts.ShutdownTimeout, "shutdown-timeout", 5*time.Second, "graceful shutdown timeout")

	return cmd
}

func runSandbox(ctx context.Context, cmd *cobra.Command, opts *SandboxOptions) error {
	cfg, err := loadConfig(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	apiListener, err := net.Listen("tcp", opts.APIAddr)
	if err != nil {
		return WrapExitError(ExitCommandError, "listen on --api-addr", err)
	}
	edgeListener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		_ = apiListener.Close()
		return WrapExitError(ExitCommandError, "listen on --addr", err)
	}

	apiURL := "http://" + apiListener.Addr().String()
	if opts.APIURL == "" {
		cfg.API.BaseURL = apiURL
	}

	var fakeOpts []fakeapi.Option
	if len(opts.Tokens) > 0 {
		fakeOpts = append(fakeOpts, fakeapi.WithTokens(opts.Tokens...))
	}
	mw := fakeapi.DefaultMiddlewareConfig()
	mw.Metrics = opts.Metrics
	if opts.RateLimit > 0 {
		mw.RateLimitDisabled = false
		mw.RateLimitRequests = opts.RateLimit
	}

	apiServer := &http.Server{
		Handler:           fakeapi.New(fakeOpts...).Handler(mw),
		ReadHeaderTimeout: 10 * time.Second,
	}
	edgeServer := &http.Server{
		Handler:           newTrackRouter(cfg, hubapi.NewFromConfig(cfg.API), opts.AllowOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   time.Second,
		ShutdownTimeout:  opts.ShutdownTimeout,
	})
	if err != nil {
		_ = apiListener.Close()
		_ = edgeListener.Close()
		return WrapExitError(ExitFailure, "create supervisor tree", err)
	}
	tree.AddAPIService(supervisor.NewHTTPServerService("fake-api", apiServer, opts.APIAddr, opts.ShutdownTimeout).WithListener(apiListener))
	tree.AddEdgeService(supervisor.NewHTTPServerService("track", edgeServer, opts.Addr, opts.ShutdownTimeout).WithListener(edgeListener))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "API:   %s\n", apiURL)
	fmt.Fprintf(out, "Track: http://%s/track\n", edgeListener.Addr().String())
	fmt.Fprintf(out, "Tracker API base URL: %s\n", cfg.API.BaseURL)

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "sandbox stopped", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	logging.Info().Msg("Sandbox stopped")
	return nil
}
