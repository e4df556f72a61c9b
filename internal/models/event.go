// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package models

// EventTypeViewedPage is the event type for which page properties are inferred.
const EventTypeViewedPage = "viewedPage"

// BringBackTypeSessionID marks a bring-back hint keyed by session id.
const BringBackTypeSessionID = "SESSION_ID"

// EventPayload is the body of POST /workspaces/{w}/events.
type EventPayload struct {
	Type                string                 `json:"type"`
	Context             string                 `json:"context"`
	ContextInfo         map[string]interface{} `json:"contextInfo"`
	Properties          map[string]interface{} `json:"properties"`
	CustomerID          string                 `json:"customerId,omitempty"`
	BringBackProperties *BringBackProperties   `json:"bringBackProperties,omitempty"`
	Tracking            *Tracking              `json:"tracking,omitempty"`
	Date                string                 `json:"date"`
}

// BringBackProperties let the backend merge anonymous session activity into
// a customer once the session is reconciled.
type BringBackProperties struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	NodeID string `json:"nodeId"`
}

// Tracking carries campaign attribution for an event.
type Tracking struct {
	Campaign Campaign `json:"campaign"`
}

// Campaign mirrors the UTM cookie fields.
type Campaign struct {
	Name    string `json:"name,omitempty"`
	Source  string `json:"source,omitempty"`
	Medium  string `json:"medium,omitempty"`
	Term    string `json:"term,omitempty"`
	Content string `json:"content,omitempty"`
}

// TrackingFromUTM converts a UTM cookie to event tracking, or nil when the
// cookie carries no attribution.
func TrackingFromUTM(u *UTMCookie) *Tracking {
	if !u.HasAttribution() {
		return nil
	}
	return &Tracking{Campaign: Campaign{
		Name:    u.Campaign,
		Source:  u.Source,
		Medium:  u.Medium,
		Term:    u.Term,
		Content: u.Content,
	}}
}
