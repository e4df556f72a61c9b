// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package fakeapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/logging"
)

// errorBody is the JSON body of a failed request.
type errorBody struct {
	Message string `json:"message"`
}

// respondJSON writes data with status.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {"message": message} with status.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Message: message})
}

// decodeObject decodes a JSON object body.
func decodeObject(r *http.Request) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		return nil, fmt.Errorf("body must be a JSON object: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("body must be a JSON object")
	}
	return obj, nil
}

// createCustomer handles POST /workspaces/{workspaceID}/customers.
func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if node, _ := fields["nodeId"].(string); node == "" {
		respondError(w, http.StatusBadRequest, "nodeId is required")
		return
	}
	delete(fields, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.ws(chi.URLParam(r, "workspaceID"))
	externalID, _ := fields["externalId"].(string)
	if existing, dup := ws.findByExternalID(externalID); dup {
		respondError(w, http.StatusConflict, fmt.Sprintf("externalId already used by customer %s", existing))
		return
	}

	c := &Customer{ID: s.newID(), Fields: fields}
	ws.customers[c.ID] = c
	ws.order = append(ws.order, c.ID)

	respondJSON(w, http.StatusCreated, c.record())
}

// updateCustomer handles PATCH /workspaces/{workspaceID}/customers/{customerID}.
// Top-level fields in the body replace the stored ones.
func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	customerID := chi.URLParam(r, "customerID")
	if id, ok := patch["id"].(string); ok && id != customerID {
		respondError(w, http.StatusBadRequest, "id does not match path")
		return
	}
	delete(patch, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.ws(chi.URLParam(r, "workspaceID"))
	c, ok := ws.customers[customerID]
	if !ok {
		respondError(w, http.StatusNotFound, "customer not found")
		return
	}
	if externalID, _ := patch["externalId"].(string); externalID != "" {
		if owner, dup := ws.findByExternalID(externalID); dup && owner != customerID {
			respondError(w, http.StatusConflict, fmt.Sprintf("externalId already used by customer %s", owner))
			return
		}
	}

	for k, v := range patch {
		c.Fields[k] = v
	}
	respondJSON(w, http.StatusOK, c.record())
}

// addSession handles POST /workspaces/{workspaceID}/customers/{customerID}/sessions.
func (s *Server) addSession(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	value, _ := body["value"].(string)
	if value == "" {
		respondError(w, http.StatusBadRequest, "value is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.ws(chi.URLParam(r, "workspaceID"))
	c, ok := ws.customers[chi.URLParam(r, "customerID")]
	if !ok {
		respondError(w, http.StatusNotFound, "customer not found")
		return
	}
	c.Sessions = append(c.Sessions, value)
	respondJSON(w, http.StatusCreated, map[string]string{"value": value})
}

// createEvent handles POST /workspaces/{workspaceID}/events. It answers
// 202 with an empty body.
func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	event, err := decodeObject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if typ, _ := event["type"].(string); typ == "" {
		respondError(w, http.StatusBadRequest, "type is required")
		return
	}
	raw, err := json.Marshal(event)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cannot store event")
		return
	}

	s.mu.Lock()
	ws := s.ws(chi.URLParam(r, "workspaceID"))
	ws.events = append(ws.events, raw)
	s.mu.Unlock()

	w.WriteHeader(http.StatusAccepted)
}
