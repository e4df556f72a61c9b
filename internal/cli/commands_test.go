// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cli

import (
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/hubtrack/internal/fakeapi"
)

// cliEnv is a fake API plus a persistent jar shared by successive runs.
type cliEnv struct {
	api *fakeapi.Server
	url string
	jar string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	api := fakeapi.New()
	ts := httptest.NewServer(api.Handler(nil))
	t.Cleanup(ts.Close)

	return &cliEnv{api: api, url: ts.URL, jar: t.TempDir()}
}

// run executes hubctl with the env's jar and API and returns stdout.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--jar", e.jar, "--api", e.url}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

// state runs show --format json and decodes it.
func (e *cliEnv) state(t *testing.T) cookieState {
	t.Helper()

	out, err := e.run(t, "--format", "json", "show")
	require.NoError(t, err)

	var st cookieState
	require.NoError(t, json.Unmarshal([]byte(out), &st), out)
	return st
}

func (e *cliEnv) configure(t *testing.T) {
	t.Helper()
	_, err := e.run(t, "config", "--token", "tok", "--workspace", "w", "--node", "n")
	require.NoError(t, err)
}

func TestConfigCommand(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "--format", "json",
		"--url", "https://shop.example.com/?utm_source=mail&utm_campaign=spring",
		"config", "--token", "tok", "--workspace", "w", "--node", "n",
		"--context-info", `{"lang":"it"}`, "--debug")
	require.NoError(t, err)

	var st cookieState
	require.NoError(t, json.Unmarshal([]byte(out), &st), out)
	require.NotNil(t, st.Hub)
	assert.Equal(t, "tok", st.Hub.Token)
	assert.Equal(t, "w", st.Hub.WorkspaceID)
	assert.Equal(t, "WEB", st.Hub.Context)
	assert.Equal(t, "it", st.Hub.ContextInfo["lang"])
	assert.True(t, st.Hub.Debug)
	assert.NotEmpty(t, st.Hub.SID)
	require.NotNil(t, st.UTM)
	assert.Equal(t, "mail", st.UTM.Source)
	assert.Equal(t, "spring", st.UTM.Campaign)

	// Unchanged flags keep stored values.
	_, err = env.run(t, "config", "--token", "tok", "--workspace", "w", "--node", "n")
	require.NoError(t, err)
	again := env.state(t)
	assert.Equal(t, st.Hub.SID, again.Hub.SID)
	assert.True(t, again.Hub.Debug)
	assert.Equal(t, "it", again.Hub.ContextInfo["lang"])
}

func TestConfigCommandErrors(t *testing.T) {
	env := newCLIEnv(t)

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"missing token", []string{"config", "--workspace", "w", "--node", "n"}, ExitFailure, "token is required"},
		{"bad target", []string{"config", "--token", "t", "--workspace", "w", "--node", "n", "--target", "EDGE"}, ExitFailure, "target"},
		{"bad context info", []string{"config", "--token", "t", "--workspace", "w", "--node", "n", "--context-info", "{"}, ExitCommandError, "invalid --context-info JSON"},
		{"bad url", []string{"--url", "://nope", "config", "--token", "t", "--workspace", "w", "--node", "n"}, ExitCommandError, "invalid --url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCustomerEventResetFlow(t *testing.T) {
	env := newCLIEnv(t)
	env.configure(t)

	_, err := env.run(t, "customer", "--data", `{"externalId":"ada@example.com","base":{"firstName":"Ada"}}`)
	require.NoError(t, err)

	st := env.state(t)
	require.NotEmpty(t, st.Hub.CustomerID)
	assert.NotEmpty(t, st.Hub.Hash)
	assert.Equal(t, []string{st.Hub.CustomerID}, env.api.Customers("w"))

	customer, ok := env.api.Customer("w", st.Hub.CustomerID)
	require.True(t, ok)
	assert.Equal(t, []string{st.Hub.SID}, customer.Sessions)

	out, err := env.run(t, "--url", "https://shop.example.com/cart", "--title", "Cart",
		"event", "--type", "viewedPage", "--properties", `{"extra":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, "Event viewedPage sent\n", out)

	events := env.api.Events("w")
	require.Len(t, events, 1)
	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal(events[0], &ev))
	assert.Equal(t, st.Hub.CustomerID, ev["customerId"])
	props := ev["properties"].(map[string]interface{})
	assert.Equal(t, "Cart", props["title"])
	assert.Equal(t, "/cart", props["path"])
	assert.Equal(t, "x", props["extra"])

	_, err = env.run(t, "reset")
	require.NoError(t, err)
	after := env.state(t)
	assert.Empty(t, after.Hub.CustomerID)
	assert.Empty(t, after.Hub.Hash)
	assert.NotEqual(t, st.Hub.SID, after.Hub.SID)
	assert.Equal(t, "tok", after.Hub.Token)

	_, err = env.run(t, "reset", "--all")
	require.NoError(t, err)
	cleared := env.state(t)
	assert.Nil(t, cleared.Hub)
	assert.Nil(t, cleared.UTM)
}

func TestCustomerCommandFromFile(t *testing.T) {
	env := newCLIEnv(t)
	env.configure(t)

	path := filepath.Join(t.TempDir(), "customer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"externalId":"grace@example.com"}`), 0o600))

	_, err := env.run(t, "customer", "--file", path)
	require.NoError(t, err)
	assert.Len(t, env.api.Customers("w"), 1)

	// Same data again is a no-op.
	calls := len(env.api.Calls())
	_, err = env.run(t, "customer", "-f", path)
	require.NoError(t, err)
	assert.Len(t, env.api.Calls(), calls)
}

func TestCustomerCommandErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "customer", "--data", `{"externalId":"a"}`)
	require.Error(t, err, "customer without config must fail")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = env.run(t, "customer", "--data", "{nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid customer JSON")

	_, err = env.run(t, "customer", "--data", "{}", "--file", "x.json")
	require.Error(t, err)
	assert.Empty(t, env.api.Calls())
}

func TestEventCommandErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "event")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "type" not set`)

	env.configure(t)
	_, err = env.run(t, "event", "--type", "x", "--properties", "[1]")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, env.api.Events("w"))
}

func TestShowTextMasksTokens(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "config", "--token", "0123456789abcdef", "--workspace", "w", "--node", "n")
	require.NoError(t, err)

	out, err := env.run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "hub:\n")
	assert.Contains(t, out, "  token: 0123...cdef\n")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "utm:\n  (none)\n")
}

func TestReplayCommand(t *testing.T) {
	env := newCLIEnv(t)

	queue := `[
		["config", {"token":"tok","workspaceId":"w","nodeId":"n"}],
		{"method":"customer","options":{"externalId":"ada@example.com"}},
		["event", {"type":"viewedPage"}],
		["launch", {}]
	]`
	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, []byte(queue), 0o600))

	out, err := env.run(t, "replay", path)
	require.Error(t, err, "unknown method is reported")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "launch")
	assert.Contains(t, out, "Replayed 4 commands on ch\n")

	st := env.state(t)
	assert.NotEmpty(t, st.Hub.CustomerID)
	events := env.api.Events("w")
	require.Len(t, events, 1)
	assert.Contains(t, string(events[0]), st.Hub.CustomerID)
}

func TestReplayCommandStdin(t *testing.T) {
	env := newCLIEnv(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewBufferString(`[["config",{"token":"tok","workspaceId":"w","nodeId":"n"}]]`))
	cmd.SetArgs([]string{"--jar", env.jar, "--api", env.url, "replay", "-"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "tok", env.state(t).Hub.Token)
}

func TestReplayCommandInvalidQueue(t *testing.T) {
	env := newCLIEnv(t)

	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"method":"event"}`), 0o600))

	_, err := env.run(t, "replay", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = env.run(t, "replay", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
