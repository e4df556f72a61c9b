// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package tracker

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/cookie"
	"github.com/tomtom215/hubtrack/internal/hubapi"
	"github.com/tomtom215/hubtrack/internal/models"
	"github.com/tomtom215/hubtrack/internal/page"
)

func productPage() page.Reader {
	return page.MustStatic("https://shop.example.com/products/42?color=red", "Red Shoes", "https://search.example.com/")
}

func sendEvent(t *testing.T, f *fixture, opts models.EventOptions) apiCall {
	t.Helper()

	if err := f.tracker.Event(context.Background(), opts); err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	calls := f.api.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want exactly 1", len(calls))
	}
	if calls[0].String() != "POST /workspaces/w/events" {
		t.Fatalf("call = %s", calls[0])
	}
	return calls[0]
}

func TestEventViewedPageAnonymous(t *testing.T) {
	t.Parallel()

	f := newFixture(t, productPage())
	f.seedHub(t, nil)

	call := sendEvent(t, f, models.EventOptions{Type: "viewedPage"})
	body := call.Body

	wantBringBack := map[string]interface{}{"type": "SESSION_ID", "value": "sid-0", "nodeId": "n"}
	if !reflect.DeepEqual(body["bringBackProperties"], wantBringBack) {
		t.Errorf("bringBackProperties = %v, want %v", body["bringBackProperties"], wantBringBack)
	}

	wantProps := map[string]interface{}{
		"title":   "Red Shoes",
		"url":     "https://shop.example.com/products/42?color=red",
		"path":    "/products/42",
		"referer": "https://search.example.com/",
	}
	if !reflect.DeepEqual(body["properties"], wantProps) {
		t.Errorf("properties = %v, want %v", body["properties"], wantProps)
	}

	if body["type"] != "viewedPage" || body["context"] != "WEB" {
		t.Errorf("type/context = %v/%v", body["type"], body["context"])
	}
	if !reflect.DeepEqual(body["contextInfo"], map[string]interface{}{}) {
		t.Errorf("contextInfo = %v, want {}", body["contextInfo"])
	}
	if body["date"] != "2026-03-04T04:06:07.089Z" {
		t.Errorf("date = %v, want UTC with milliseconds", body["date"])
	}
	if _, ok := body["customerId"]; ok {
		t.Errorf("anonymous event carries customerId: %v", body)
	}
	if _, ok := body["tracking"]; ok {
		t.Errorf("tracking present without UTM cookie: %v", body)
	}
	if call.Token != "tok" {
		t.Errorf("token = %q", call.Token)
	}
}

func TestEventProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts models.EventOptions
		want map[string]interface{}
	}{
		{
			name: "caller wins over inferred page properties",
			opts: models.EventOptions{Type: "viewedPage", Properties: map[string]interface{}{"title": "Custom", "section": "sale"}},
			want: map[string]interface{}{
				"title":   "Custom",
				"url":     "https://shop.example.com/products/42?color=red",
				"path":    "/products/42",
				"referer": "https://search.example.com/",
				"section": "sale",
			},
		},
		{
			name: "other types are not inferred",
			opts: models.EventOptions{Type: "clickedLink", Properties: map[string]interface{}{"href": "/cart"}},
			want: map[string]interface{}{"href": "/cart"},
		},
		{
			name: "nil properties send an empty object",
			opts: models.EventOptions{Type: "addedProduct"},
			want: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, productPage())
			f.seedHub(t, nil)

			call := sendEvent(t, f, tt.opts)
			if !reflect.DeepEqual(call.Body["properties"], tt.want) {
				t.Errorf("properties = %v, want %v", call.Body["properties"], tt.want)
			}
		})
	}
}

func TestEventKnownCustomer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, productPage())
	f.seedHub(t, func(h *models.HubCookie) {
		h.CustomerID = "cust-1"
		h.Context = "APP"
		h.ContextInfo = map[string]interface{}{"version": "2"}
	})

	body := sendEvent(t, f, models.EventOptions{Type: "viewedPage"}).Body
	if body["customerId"] != "cust-1" {
		t.Errorf("customerId = %v", body["customerId"])
	}
	if _, ok := body["bringBackProperties"]; ok {
		t.Errorf("bringBackProperties sent for a known customer: %v", body)
	}
	if body["context"] != "APP" || !reflect.DeepEqual(body["contextInfo"], map[string]interface{}{"version": "2"}) {
		t.Errorf("context = %v, contextInfo = %v", body["context"], body["contextInfo"])
	}
}

func TestEventTracking(t *testing.T) {
	t.Parallel()

	t.Run("utm cookie becomes campaign", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		f.seedHub(t, nil)
		utm := &models.UTMCookie{Source: "newsletter", Medium: "email", Campaign: "spring", Term: "shoes", Content: "hero"}
		if err := f.store.SetUTM(utm, nil); err != nil {
			t.Fatal(err)
		}

		body := sendEvent(t, f, models.EventOptions{Type: "viewedPage"}).Body
		want := map[string]interface{}{"campaign": map[string]interface{}{
			"name": "spring", "source": "newsletter", "medium": "email", "term": "shoes", "content": "hero",
		}}
		if !reflect.DeepEqual(body["tracking"], want) {
			t.Errorf("tracking = %v, want %v", body["tracking"], want)
		}
	})

	t.Run("invalid utm cookie is ignored", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		f.seedHub(t, nil)
		if err := f.jar.Set(f.store.UTMName(), `{"utm_medium":"email"}`, cookie.Options{}); err != nil {
			t.Fatal(err)
		}

		body := sendEvent(t, f, models.EventOptions{Type: "viewedPage"}).Body
		if _, ok := body["tracking"]; ok {
			t.Errorf("tracking sent from invalid cookie: %v", body["tracking"])
		}
	})
}

func TestEventFailures(t *testing.T) {
	t.Parallel()

	t.Run("missing type", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		f.seedHub(t, nil)
		err := f.tracker.Event(context.Background(), models.EventOptions{})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
		if n := len(f.api.Calls()); n != 0 {
			t.Errorf("calls = %d, want 0", n)
		}
	})

	t.Run("missing hub cookie", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		err := f.tracker.Event(context.Background(), models.EventOptions{Type: "viewedPage"})
		if !errors.Is(err, ErrMissingIdentity) || !errors.Is(err, cookie.ErrMissingCookie) {
			t.Fatalf("err = %v, want ErrMissingIdentity wrapping ErrMissingCookie", err)
		}
		if n := len(f.api.Calls()); n != 0 {
			t.Errorf("calls = %d, want 0", n)
		}
	})

	t.Run("network error surfaces without retry", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		f.seedHub(t, nil)
		f.api.respond = func(call apiCall) (json.RawMessage, error) {
			return nil, &hubapi.NetworkError{Method: call.Method, Path: call.Path, Err: errors.New("offline")}
		}

		err := f.tracker.Event(context.Background(), models.EventOptions{Type: "viewedPage"})
		var ne *hubapi.NetworkError
		if !errors.As(err, &ne) {
			t.Fatalf("err = %v, want *hubapi.NetworkError", err)
		}
		if n := len(f.api.Calls()); n != 1 {
			t.Errorf("calls = %d, want 1", n)
		}
	})

	t.Run("unserializable properties", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		f.seedHub(t, nil)
		err := f.tracker.Event(context.Background(), models.EventOptions{
			Type:       "custom",
			Properties: map[string]interface{}{"fn": func() {}},
		})
		if !errors.Is(err, ErrSerialization) {
			t.Fatalf("err = %v, want ErrSerialization", err)
		}
	})
}

func TestEventAggregateTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.seedHub(t, func(h *models.HubCookie) {
		h.Target = models.TargetAggregate
		h.AggregateNodeID = "agg-node"
		h.AggregateToken = "agg-tok"
	})

	call := sendEvent(t, f, models.EventOptions{Type: "viewedPage"})
	if call.Token != "agg-tok" {
		t.Errorf("token = %q, want agg-tok", call.Token)
	}
	bb, _ := call.Body["bringBackProperties"].(map[string]interface{})
	if bb["nodeId"] != "agg-node" {
		t.Errorf("bringBack nodeId = %v, want agg-node", bb["nodeId"])
	}
}
