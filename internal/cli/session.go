// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/hubtrack/internal/config"
	"github.com/tomtom215/hubtrack/internal/cookie"
	"github.com/tomtom215/hubtrack/internal/hubapi"
	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/page"
	"github.com/tomtom215/hubtrack/internal/tracker"
)

// session is everything one command invocation works with.
type session struct {
	cfg     *config.Config
	jar     *cookie.BadgerJar
	store   *cookie.Store
	tracker *tracker.Tracker
}

// loadConfig loads settings and applies flag overrides.
func loadConfig(opts *RootOptions, logOutput io.Writer) (*config.Config, error) {
	cfg, err := config.LoadFromPath(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load configuration", err)
	}
	if opts.JarPath != "" {
		cfg.Jar.Path = opts.JarPath
	}
	if opts.APIURL != "" {
		cfg.API.BaseURL = opts.APIURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    logOutput,
	})
	return cfg, nil
}

// openSession loads configuration, opens the jar and builds a tracker for
// the simulated page. Callers must close the session.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	cfg, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	pg, err := page.NewStatic(opts.PageURL, opts.Title, opts.Referrer)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid --url", err)
	}

	jar, err := cookie.OpenBadgerJar(cfg.Jar.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open cookie jar", err)
	}

	store := cookie.NewStore(jar, cfg.Cookies)
	tr, err := tracker.New(tracker.Env{
		Cookies: store,
		API:     hubapi.NewFromConfig(cfg.API),
		Page:    pg,
	})
	if err != nil {
		_ = jar.Close()
		return nil, WrapExitError(ExitCommandError, "create tracker", err)
	}

	return &session{cfg: cfg, jar: jar, store: store, tracker: tr}, nil
}

func (s *session) close() {
	if err := s.jar.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close cookie jar")
	}
}
