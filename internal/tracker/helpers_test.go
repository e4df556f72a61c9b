// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/config"
	"github.com/tomtom215/hubtrack/internal/cookie"
	"github.com/tomtom215/hubtrack/internal/hubapi"
	"github.com/tomtom215/hubtrack/internal/models"
	"github.com/tomtom215/hubtrack/internal/page"
)

// apiCall is one request seen by recordingAPI.
type apiCall struct {
	Method string
	Path   string
	Token  string
	Body   map[string]interface{}
}

func (c apiCall) String() string { return c.Method + " " + c.Path }

// recordingAPI records requests and answers them in memory. Creates return
// {"id":"cust-new"} and everything else {} unless respond overrides.
type recordingAPI struct {
	mu      sync.Mutex
	calls   []apiCall
	respond func(call apiCall) (json.RawMessage, error)
	onCall  func(call apiCall)
}

func (a *recordingAPI) Post(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error) {
	return a.do(http.MethodPost, path, body, token)
}

func (a *recordingAPI) Patch(ctx context.Context, path string, body interface{}, token string) (json.RawMessage, error) {
	return a.do(http.MethodPatch, path, body, token)
}

func (a *recordingAPI) do(method, path string, body interface{}, token string) (json.RawMessage, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, &hubapi.EncodeError{Err: err}
	}
	call := apiCall{Method: method, Path: path, Token: token}
	if err := json.Unmarshal(raw, &call.Body); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.calls = append(a.calls, call)
	respond, onCall := a.respond, a.onCall
	a.mu.Unlock()

	if onCall != nil {
		onCall(call)
	}
	if respond != nil {
		return respond(call)
	}
	if method == http.MethodPost && strings.HasSuffix(path, "/customers") {
		return json.RawMessage(`{"id":"cust-new"}`), nil
	}
	return json.RawMessage(`{}`), nil
}

func (a *recordingAPI) Calls() []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]apiCall(nil), a.calls...)
}

// sequence returns the "METHOD path" list of recorded calls.
func (a *recordingAPI) sequence() []string {
	calls := a.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// fixture wires a tracker to an in-memory jar and a recording API.
type fixture struct {
	tracker *Tracker
	jar     *cookie.MemoryJar
	store   *cookie.Store
	api     *recordingAPI
	ids     int
}

func newFixture(t *testing.T, pg page.Reader) *fixture {
	t.Helper()

	f := &fixture{
		jar: cookie.NewMemoryJar(),
		api: &recordingAPI{},
	}
	f.store = cookie.NewStore(f.jar, config.Default().Cookies)

	tr, err := New(Env{
		Cookies: f.store,
		API:     f.api,
		Page:    pg,
		NewID: func() string {
			f.ids++
			return fmt.Sprintf("sid-%d", f.ids)
		},
		Now: func() time.Time {
			return time.Date(2026, 3, 4, 5, 6, 7, 89_000_000, time.FixedZone("CET", 3600))
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	f.tracker = tr
	return f
}

// seedHub writes a configured Hub cookie, letting mutate adjust it first.
func (f *fixture) seedHub(t *testing.T, mutate func(h *models.HubCookie)) *models.HubCookie {
	t.Helper()

	hub := &models.HubCookie{
		Token:       "tok",
		WorkspaceID: "w",
		NodeID:      "n",
		Target:      models.TargetEntry,
		SID:         "sid-0",
		Context:     models.DefaultContext,
		ContextInfo: map[string]interface{}{},
	}
	if mutate != nil {
		mutate(hub)
	}
	if err := f.store.SetHub(hub, nil); err != nil {
		t.Fatalf("SetHub() error = %v", err)
	}
	return hub
}

func (f *fixture) hub(t *testing.T) *models.HubCookie {
	t.Helper()

	hub, err := f.store.GetHub(nil)
	if err != nil {
		t.Fatalf("GetHub() error = %v", err)
	}
	return hub
}

func mustHash(t *testing.T, data *models.CustomerData) string {
	t.Helper()

	h, err := hashCustomer(data)
	if err != nil {
		t.Fatalf("hashCustomer() error = %v", err)
	}
	return h
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
