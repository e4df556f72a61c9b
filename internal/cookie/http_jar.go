// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cookie

import (
	"net/http"
	"net/url"
	"sync"
)

// HTTPJar reads cookies from an incoming request and writes them as
// Set-Cookie headers on the response.
//
// Writes are also remembered so that a later Get within the same request
// observes them, matching what document.cookie does in a page.
// Values are URL-escaped since raw JSON is not a valid cookie value.
type HTTPJar struct {
	r *http.Request
	w http.ResponseWriter

	mu      sync.Mutex
	pending map[string]*string // nil value = deleted
}

// NewHTTPJar binds a jar to one request/response pair.
func NewHTTPJar(w http.ResponseWriter, r *http.Request) *HTTPJar {
	return &HTTPJar{r: r, w: w, pending: make(map[string]*string)}
}

// Get returns the value written during this request, or the request cookie.
func (j *HTTPJar) Get(name string) (string, bool, error) {
	j.mu.Lock()
	v, written := j.pending[name]
	j.mu.Unlock()
	if written {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	c, err := j.r.Cookie(name)
	if err != nil {
		return "", false, nil
	}
	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		// Not written by us; hand the raw value to the decoder.
		return c.Value, true, nil
	}
	return value, true, nil
}

// Set emits a Set-Cookie header.
func (j *HTTPJar) Set(name, value string, opts Options) error {
	c := &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     opts.Path,
		Domain:   opts.Domain,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.MaxAge > 0 {
		c.MaxAge = int(opts.MaxAge.Seconds())
	}
	http.SetCookie(j.w, c)

	j.mu.Lock()
	j.pending[name] = &value
	j.mu.Unlock()
	return nil
}

// Delete emits an expiring Set-Cookie header scoped like the original.
func (j *HTTPJar) Delete(name string, opts Options) error {
	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	j.mu.Lock()
	j.pending[name] = nil
	j.mu.Unlock()
	return nil
}
