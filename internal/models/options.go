// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package models

// ConfigOptions are the caller options of the config operation.
// Pointer and nil-map fields distinguish "not set" from a zero value so that
// existing cookie values survive a config call that omits them.
type ConfigOptions struct {
	Token       string `json:"token" validate:"required"`
	WorkspaceID string `json:"workspaceId" validate:"required"`
	NodeID      string `json:"nodeId" validate:"required"`

	Target          Target `json:"target,omitempty" validate:"omitempty,oneof=ENTRY AGGREGATE"`
	AggregateNodeID string `json:"aggregateNodeId,omitempty"`
	AggregateToken  string `json:"aggregateToken,omitempty"`

	Context     string                 `json:"context,omitempty"`
	ContextInfo map[string]interface{} `json:"contextInfo,omitempty"`
	Debug       *bool                  `json:"debug,omitempty"`
}

// EventOptions are the caller options of the event operation.
type EventOptions struct {
	Type       string                 `json:"type" validate:"required"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}
