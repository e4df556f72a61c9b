// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

// Package page reads location and document metadata of the page the
// tracker runs on.
package page

import (
	"fmt"
	"net/http"
	"net/url"
)

// Reader exposes the parts of window.location and document the tracker
// consults: query parameters for config, and page metadata for viewedPage
// events.
type Reader interface {
	// QueryParam returns the first value of name in the query string.
	QueryParam(name string) (string, bool)
	Href() string
	Pathname() string
	Title() string
	Referrer() string
}

// Static is a Reader over fixed values.
type Static struct {
	url      *url.URL
	title    string
	referrer string
}

// NewStatic parses rawURL and returns a Reader for it.
func NewStatic(rawURL, title, referrer string) (*Static, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse page URL: %w", err)
	}
	return &Static{url: u, title: title, referrer: referrer}, nil
}

// MustStatic is NewStatic that panics on a malformed URL. Intended for tests
// and fixed literals.
func MustStatic(rawURL, title, referrer string) *Static {
	s, err := NewStatic(rawURL, title, referrer)
	if err != nil {
		panic(err)
	}
	return s
}

// FromRequest builds a Reader for the page that issued r: the request URL
// as location and the Referer header as document.referrer. Title is not
// known server-side and may be supplied by the caller.
func FromRequest(r *http.Request, title string) *Static {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}
	return &Static{url: &u, title: title, referrer: r.Referer()}
}

// QueryParam returns the first value of name. A parameter present with an
// empty value reports ("", true).
func (s *Static) QueryParam(name string) (string, bool) {
	values, ok := s.url.Query()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Href returns the full page URL.
func (s *Static) Href() string { return s.url.String() }

// Pathname returns the URL path, "/" when empty.
func (s *Static) Pathname() string {
	if s.url.Path == "" {
		return "/"
	}
	return s.url.Path
}

// Title returns the document title.
func (s *Static) Title() string { return s.title }

// Referrer returns the document referrer.
func (s *Static) Referrer() string { return s.referrer }
