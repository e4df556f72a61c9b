// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package dispatch

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Method names accepted by Call.
const (
	MethodConfig   = "config"
	MethodCustomer = "customer"
	MethodEvent    = "event"
)

// Command is one recorded call.
type Command struct {
	Method  string
	Options json.RawMessage
}

// commandObject is the alternative {"method":..., "options":...} encoding.
type commandObject struct {
	Method  string          `json:"method"`
	Options json.RawMessage `json:"options,omitempty"`
}

var errEmptyCommand = errors.New("command must name a method")

// UnmarshalJSON accepts ["method", options] and {"method", "options"}.
func (c *Command) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var args []json.RawMessage
		if err := json.Unmarshal(trimmed, &args); err != nil {
			return err
		}
		if len(args) == 0 || len(args) > 2 {
			return fmt.Errorf("command takes a method and optional options, got %d arguments", len(args))
		}
		if err := json.Unmarshal(args[0], &c.Method); err != nil {
			return fmt.Errorf("command method: %w", err)
		}
		c.Options = nil
		if len(args) == 2 {
			c.Options = args[1]
		}
	} else {
		var obj commandObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		c.Method, c.Options = obj.Method, obj.Options
	}
	if c.Method == "" {
		return errEmptyCommand
	}
	return nil
}

// MarshalJSON encodes the call form.
func (c Command) MarshalJSON() ([]byte, error) {
	if len(c.Options) == 0 {
		return json.Marshal([]interface{}{c.Method})
	}
	return json.Marshal([]interface{}{c.Method, c.Options})
}

// ParseQueue decodes a JSON array of commands.
func ParseQueue(data []byte) ([]Command, error) {
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("parse command queue: %w", err)
	}
	return cmds, nil
}

// isNull reports whether raw is absent or the JSON null literal.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
