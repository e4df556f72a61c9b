// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/config"
	"github.com/tomtom215/hubtrack/internal/cookie"
	"github.com/tomtom215/hubtrack/internal/dispatch"
	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/page"
	"github.com/tomtom215/hubtrack/internal/tracker"
)

// titleHeader carries document.title; it is not visible server-side.
const titleHeader = "X-Page-Title"

const maxTrackBody = 1 << 20

// trackHandler runs queued commands on behalf of a page, with the
// request's cookies as the jar.
//
// POST /track takes a JSON array of commands or a single command. The
// request URL plays the page location (so utm_* and clabId are read from
// its query) and Referer plays document.referrer. The response carries
// Set-Cookie headers and the resulting cookie state.
type trackHandler struct {
	cfg *config.Config
	api tracker.Requester
}

// newTrackRouter builds the /track router. Cross-origin pages are served
// only when their origin is in allowedOrigins; an empty list keeps the
// endpoint same-origin.
func newTrackRouter(cfg *config.Config, api tracker.Requester, allowedOrigins []string) http.Handler {
	h := &trackHandler{cfg: cfg, api: api}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", titleHeader},
			AllowCredentials: true,
			MaxAge:           600,
		}))
	}
	r.Post("/track", h.track)
	return r
}

type trackResponse struct {
	Commands int         `json:"commands"`
	Errors   []string    `json:"errors,omitempty"`
	State    cookieState `json:"state"`
}

func (h *trackHandler) track(w http.ResponseWriter, r *http.Request) {
	ctx := logging.ContextWithNewCorrelationID(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTrackBody))
	if err != nil {
		writeTrackError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	queue, err := parseTrackBody(body)
	if err != nil {
		writeTrackError(w, http.StatusBadRequest, err.Error())
		return
	}

	store := cookie.NewStore(cookie.NewHTTPJar(w, r), h.cfg.Cookies)
	tr, err := tracker.New(tracker.Env{
		Cookies: store,
		API:     h.api,
		Page:    page.FromRequest(r, r.Header.Get(titleHeader)),
	})
	if err != nil {
		writeTrackError(w, http.StatusInternalServerError, err.Error())
		return
	}

	d := dispatch.New(tr, h.cfg.ObjectName)
	drainErr := d.Drain(ctx, queue)
	d.Wait()

	resp := trackResponse{Commands: len(queue)}
	if drainErr != nil {
		resp.Errors = splitJoined(drainErr)
	}
	if resp.State, err = readState(store); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to read cookies after track")
	}

	data, err := json.Marshal(resp)
	if err != nil {
		writeTrackError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// parseTrackBody accepts a command array or one command.
func parseTrackBody(body []byte) ([]dispatch.Command, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var cmd dispatch.Command
		if err := json.Unmarshal(trimmed, &cmd); err != nil {
			return nil, err
		}
		return []dispatch.Command{cmd}, nil
	}
	// A single ["method", options] call is also an array; try the queue
	// form first.
	queue, err := dispatch.ParseQueue(trimmed)
	if err == nil {
		return queue, nil
	}
	var cmd dispatch.Command
	if json.Unmarshal(trimmed, &cmd) == nil {
		return []dispatch.Command{cmd}, nil
	}
	return nil, err
}

// splitJoined flattens an errors.Join result into messages.
func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func writeTrackError(w http.ResponseWriter, status int, message string) {
	data, _ := json.Marshal(map[string]string{"message": message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
