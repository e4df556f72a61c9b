// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "hubctl", cmd.Use)
	assert.Contains(t, cmd.Long, "BadgerDB jar")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"config", "customer", "event", "replay", "show", "reset", "sandbox"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name string
		def  string
	}{
		{"config", ""},
		{"jar", ""},
		{"api", ""},
		{"url", "about:blank"},
		{"title", ""},
		{"referrer", ""},
		{"format", "text"},
	}
	for _, tt := range tests {
		flag := cmd.PersistentFlags().Lookup(tt.name)
		require.NotNil(t, flag, "flag --%s", tt.name)
		assert.Equal(t, tt.def, flag.DefValue, "flag --%s", tt.name)
	}
}

func TestSubcommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := map[string][]string{
		"config":   {"token", "workspace", "node", "target", "context", "context-info", "aggregate-node", "aggregate-token", "debug"},
		"customer": {"data", "file"},
		"event":    {"type", "properties"},
		"reset":    {"all"},
		"sandbox":  {"addr", "api-addr", "accept-token", "allow-origin", "rate-limit", "metrics", "shutdown-timeout"},
	}
	for name, flags := range tests {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		for _, f := range flags {
			assert.NotNil(t, sub.Flags().Lookup(f), "%s --%s", name, f)
		}
	}
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--format", "yaml", "show"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad flag", nil)))

	wrapped := WrapExitError(ExitFailure, "config failed", errors.New("boom"))
	assert.Equal(t, "config failed: boom", wrapped.Error())
	assert.Equal(t, "boom", errors.Unwrap(wrapped).Error())
}

func TestWriteFields(t *testing.T) {
	var buf bytes.Buffer
	writeFields(&buf, "hub", map[string]interface{}{
		"workspaceId": "w",
		"contextInfo": map[string]interface{}{"lang": "it"},
		"debug":       false,
	})
	assert.Equal(t, "hub:\n  contextInfo: {\"lang\":\"it\"}\n  debug: false\n  workspaceId: w\n", buf.String())

	buf.Reset()
	writeFields(&buf, "utm", nil)
	assert.Equal(t, "utm:\n  (none)\n", buf.String())
}
