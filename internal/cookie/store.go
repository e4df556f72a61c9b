// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cookie

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/config"
	"github.com/tomtom215/hubtrack/internal/metrics"
	"github.com/tomtom215/hubtrack/internal/models"
	"github.com/tomtom215/hubtrack/internal/validation"
)

// Store is the typed view over the Hub and UTM cookies.
//
// Reads decode JSON and validate required fields; a cookie that is absent
// or invalid yields the fallback when one is given. Writes serialize the
// full record in one shot.
type Store struct {
	jar Jar
	cfg config.CookieConfig
}

// NewStore creates a store over jar using the names and lifetimes in cfg.
func NewStore(jar Jar, cfg config.CookieConfig) *Store {
	return &Store{jar: jar, cfg: cfg}
}

// HubName returns the Hub cookie name.
func (s *Store) HubName() string { return s.cfg.HubName }

// UTMName returns the UTM cookie name.
func (s *Store) UTMName() string { return s.cfg.UTMName }

// GetHub reads the Hub cookie.
//
// Errors: ErrMissingCookie (absent, no fallback), *ParseError (not JSON),
// *DecodeError (token, workspaceId or nodeId missing).
func (s *Store) GetHub(fallback *models.HubCookie) (*models.HubCookie, error) {
	hub, err := get[models.HubCookie](s, s.cfg.HubName, fallback)
	if err != nil {
		return nil, err
	}
	return hub.Clone(), nil
}

// SetHub writes the Hub cookie. A nil opts uses the configured Hub lifetime.
func (s *Store) SetHub(value *models.HubCookie, opts *Options) error {
	return s.set(s.cfg.HubName, value, s.options(opts, s.cfg.HubTTL))
}

// GetUTM reads the UTM cookie. Errors mirror GetHub; utm_source is required.
func (s *Store) GetUTM(fallback *models.UTMCookie) (*models.UTMCookie, error) {
	utm, err := get[models.UTMCookie](s, s.cfg.UTMName, fallback)
	if err != nil {
		return nil, err
	}
	out := *utm
	return &out, nil
}

// SetUTM writes the UTM cookie. A nil opts uses the configured UTM lifetime.
func (s *Store) SetUTM(value *models.UTMCookie, opts *Options) error {
	return s.set(s.cfg.UTMName, value, s.options(opts, s.cfg.UTMTTL))
}

// ClearHub deletes the Hub cookie.
func (s *Store) ClearHub() error {
	if err := s.jar.Delete(s.cfg.HubName, s.options(nil, 0)); err != nil {
		return fmt.Errorf("delete cookie %s: %w", s.cfg.HubName, err)
	}
	return nil
}

// ClearUTM deletes the UTM cookie.
func (s *Store) ClearUTM() error {
	if err := s.jar.Delete(s.cfg.UTMName, s.options(nil, 0)); err != nil {
		return fmt.Errorf("delete cookie %s: %w", s.cfg.UTMName, err)
	}
	return nil
}

func (s *Store) options(opts *Options, ttl time.Duration) Options {
	if opts != nil {
		return *opts
	}
	return Options{
		MaxAge: ttl,
		Path:   s.cfg.Path,
		Domain: s.cfg.Domain,
		Secure: s.cfg.Secure,
	}
}

func get[T any](s *Store, name string, fallback *T) (*T, error) {
	raw, ok, err := s.jar.Get(name)
	if err != nil {
		return nil, fmt.Errorf("read cookie %s: %w", name, err)
	}
	if !ok {
		if fallback != nil {
			return fallback, nil
		}
		return nil, fmt.Errorf("cookie %s: %w", name, ErrMissingCookie)
	}

	value, err := decode[T](name, raw)
	if err != nil {
		if fallback != nil {
			return fallback, nil
		}
		return nil, err
	}
	return value, nil
}

func decode[T any](name, raw string) (*T, error) {
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, &ParseError{Cookie: name, Err: err}
	}
	if verr := validation.ValidateStruct(&value); verr != nil {
		return nil, &DecodeError{Cookie: name, Fields: verr.Fields(), Err: verr}
	}
	return &value, nil
}

func (s *Store) set(name string, value interface{}, opts Options) error {
	data, err := json.Marshal(value)
	if err != nil {
		err = &SerializeError{Cookie: name, Err: err}
		metrics.RecordCookieWrite(name, err)
		return err
	}

	if err := s.jar.Set(name, string(data), opts); err != nil {
		err = fmt.Errorf("write cookie %s: %w", name, err)
		metrics.RecordCookieWrite(name, err)
		return err
	}

	metrics.RecordCookieWrite(name, nil)
	return nil
}
