// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/hubtrack/internal/cookie"
	"github.com/tomtom215/hubtrack/internal/models"
	"github.com/tomtom215/hubtrack/internal/page"
)

// CookieStore is the typed Hub/UTM cookie contract. *cookie.Store
// implements it.
type CookieStore interface {
	GetHub(fallback *models.HubCookie) (*models.HubCookie, error)
	SetHub(value *models.HubCookie, opts *cookie.Options) error
	GetUTM(fallback *models.UTMCookie) (*models.UTMCookie, error)
	SetUTM(value *models.UTMCookie, opts *cookie.Options) error
}

// Requester sends JSON requests to the customer-data API. *hubapi.Client
// and *hubapi.BreakerClient implement it.
type Requester interface {
	Post(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error)
}

// Env is the set of capabilities the operations run against.
type Env struct {
	Cookies CookieStore
	API     Requester

	// Page defaults to an empty about:blank page.
	Page page.Reader

	// NewID returns a session id. Defaults to a random UUID v4.
	NewID func() string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Tracker runs config, customer and event against an Env.
type Tracker struct {
	cookies CookieStore
	api     Requester
	page    page.Reader
	newID   func() string
	now     func() time.Time
}

// New creates a tracker. Cookies and API are required.
func New(env Env) (*Tracker, error) {
	if env.Cookies == nil {
		return nil, errors.New("tracker: cookie store is required")
	}
	if env.API == nil {
		return nil, errors.New("tracker: API requester is required")
	}
	t := &Tracker{
		cookies: env.Cookies,
		api:     env.API,
		page:    env.Page,
		newID:   env.NewID,
		now:     env.Now,
	}
	if t.page == nil {
		t.page = page.MustStatic("about:blank", "", "")
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	if t.now == nil {
		t.now = time.Now
	}
	return t, nil
}

// WithPage returns a tracker sharing t's capabilities but reading p.
func (t *Tracker) WithPage(p page.Reader) *Tracker {
	out := *t
	out.page = p
	return &out
}

// API paths, relative to the configured base URL.

func customersPath(workspaceID string) string {
	return "/workspaces/" + url.PathEscape(workspaceID) + "/customers"
}

func customerPath(workspaceID, customerID string) string {
	return customersPath(workspaceID) + "/" + url.PathEscape(customerID)
}

func sessionsPath(workspaceID, customerID string) string {
	return customerPath(workspaceID, customerID) + "/sessions"
}

func eventsPath(workspaceID string) string {
	return "/workspaces/" + url.PathEscape(workspaceID) + "/events"
}
