// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package fakeapi

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Call is one recorded request.
type Call struct {
	Method    string          `json:"method"`
	Path      string          `json:"path"`
	Token     string          `json:"token"`
	Body      json.RawMessage `json:"body,omitempty"`
	Status    int             `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

// Customer is a stored customer record. Fields holds every attribute
// except id.
type Customer struct {
	ID       string
	Fields   map[string]interface{}
	Sessions []string
}

// externalID returns the record's externalId, or "".
func (c *Customer) externalID() string {
	s, _ := c.Fields["externalId"].(string)
	return s
}

// record renders the customer as the API returns it.
func (c *Customer) record() map[string]interface{} {
	out := make(map[string]interface{}, len(c.Fields)+1)
	for k, v := range c.Fields {
		out[k] = v
	}
	out["id"] = c.ID
	return out
}

// workspace is the state of one workspace.
type workspace struct {
	customers map[string]*Customer
	order     []string
	events    []json.RawMessage
}

// Server is the in-memory API state.
type Server struct {
	mu         sync.Mutex
	workspaces map[string]*workspace
	calls      []Call
	tokens     map[string]struct{}
	newID      func() string
}

// Option configures a Server.
type Option func(*Server)

// WithTokens accepts only the given bearer tokens. Without it any
// non-empty token is accepted.
func WithTokens(tokens ...string) Option {
	return func(s *Server) {
		s.tokens = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			s.tokens[t] = struct{}{}
		}
	}
}

// WithIDGenerator replaces the UUID customer id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) { s.newID = fn }
}

// New creates an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		workspaces: make(map[string]*workspace),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ws returns the workspace, creating it. Callers hold s.mu.
func (s *Server) ws(id string) *workspace {
	w, ok := s.workspaces[id]
	if !ok {
		w = &workspace{customers: make(map[string]*Customer)}
		s.workspaces[id] = w
	}
	return w
}

// findByExternalID returns the id of the customer using externalID.
// Callers hold s.mu.
func (w *workspace) findByExternalID(externalID string) (string, bool) {
	if externalID == "" {
		return "", false
	}
	for id, c := range w.customers {
		if c.externalID() == externalID {
			return id, true
		}
	}
	return "", false
}

// SeedCustomer stores a customer with a known id, as if created earlier
// through another channel.
func (s *Server) SeedCustomer(workspaceID, customerID string, fields map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.ws(workspaceID)
	if fields == nil {
		fields = map[string]interface{}{}
	}
	if _, exists := w.customers[customerID]; !exists {
		w.order = append(w.order, customerID)
	}
	w.customers[customerID] = &Customer{ID: customerID, Fields: fields}
}

// Calls returns a copy of the recorded requests in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Customer returns a copy of a stored customer.
func (s *Server) Customer(workspaceID, customerID string) (Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workspaces[workspaceID]
	if !ok {
		return Customer{}, false
	}
	c, ok := w.customers[customerID]
	if !ok {
		return Customer{}, false
	}
	out := Customer{ID: c.ID, Fields: c.record(), Sessions: append([]string(nil), c.Sessions...)}
	delete(out.Fields, "id")
	return out, true
}

// Customers returns the ids of the workspace's customers in creation order.
func (s *Server) Customers(workspaceID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workspaces[workspaceID]
	if !ok {
		return nil
	}
	return append([]string(nil), w.order...)
}

// Events returns the event bodies posted to the workspace.
func (s *Server) Events(workspaceID string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workspaces[workspaceID]
	if !ok {
		return nil
	}
	return append([]json.RawMessage(nil), w.events...)
}

// Reset clears all state and recorded calls.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces = make(map[string]*workspace)
	s.calls = nil
}

func (s *Server) acceptsToken(token string) bool {
	if s.tokens == nil {
		return true
	}
	_, ok := s.tokens[token]
	return ok
}

func (s *Server) record(call Call) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}
