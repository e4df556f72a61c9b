// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package models

// Target selects which node/token pair is used for node-scoped API calls.
type Target string

const (
	// TargetEntry uses the Hub cookie's own nodeId/token (default).
	TargetEntry Target = "ENTRY"

	// TargetAggregate substitutes aggregateNodeId/aggregateToken.
	TargetAggregate Target = "AGGREGATE"
)

// Default values applied by the config operation when neither the caller
// options nor the existing cookie set a field.
const (
	DefaultTarget  = TargetEntry
	DefaultContext = "WEB"
)

// HubCookie is the JSON record persisted in the Hub cookie.
//
// Token, WorkspaceID and NodeID identify the tenant; a cookie missing any of
// them is treated as absent. SID, CustomerID and Hash carry the local view of
// the visitor's identity and are only mutated by the customer operation
// (and reset by config when the token changes).
type HubCookie struct {
	Token       string `json:"token" validate:"required"`
	WorkspaceID string `json:"workspaceId" validate:"required"`
	NodeID      string `json:"nodeId" validate:"required"`

	Target          Target `json:"target,omitempty" validate:"omitempty,oneof=ENTRY AGGREGATE"`
	AggregateNodeID string `json:"aggregateNodeId,omitempty"`
	AggregateToken  string `json:"aggregateToken,omitempty"`

	SID         string                 `json:"sid,omitempty"`
	Context     string                 `json:"context,omitempty"`
	ContextInfo map[string]interface{} `json:"contextInfo"`
	Debug       bool                   `json:"debug"`

	CustomerID string `json:"customerId,omitempty"`
	Hash       string `json:"hash,omitempty"`
}

// Clone returns a copy of the cookie that shares no mutable state with c.
func (c *HubCookie) Clone() *HubCookie {
	if c == nil {
		return nil
	}
	out := *c
	if c.ContextInfo != nil {
		out.ContextInfo = make(map[string]interface{}, len(c.ContextInfo))
		for k, v := range c.ContextInfo {
			out.ContextInfo[k] = v
		}
	}
	return &out
}

// IsAnonymous reports whether no remote customer id is known locally.
func (c *HubCookie) IsAnonymous() bool {
	return c.CustomerID == ""
}

// UTMCookie holds campaign attribution parameters copied from the page query
// string. A non-empty Source signals that attribution is present.
type UTMCookie struct {
	Source   string `json:"utm_source,omitempty" validate:"required"`
	Medium   string `json:"utm_medium,omitempty"`
	Term     string `json:"utm_term,omitempty"`
	Content  string `json:"utm_content,omitempty"`
	Campaign string `json:"utm_campaign,omitempty"`
}

// HasAttribution reports whether the cookie carries a utm_source.
func (u *UTMCookie) HasAttribution() bool {
	return u != nil && u.Source != ""
}
