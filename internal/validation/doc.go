// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator whose field names follow
// the json tags of the validated structs, so a missing workspace id is
// reported as "workspaceId is required" exactly as callers spell the option.
//
// # Quick Start
//
//	type ConfigOptions struct {
//	    Token       string `json:"token" validate:"required"`
//	    WorkspaceID string `json:"workspaceId" validate:"required"`
//	}
//
//	if verr := validation.ValidateStruct(&opts); verr != nil {
//	    return fmt.Errorf("invalid options: %w", verr)
//	}
//
// # Where It Is Used
//
//   - Config operation options (token, workspaceId, nodeId, target)
//   - Event operation options (type)
//   - Hub and UTM cookie decode validation in package cookie
package validation
