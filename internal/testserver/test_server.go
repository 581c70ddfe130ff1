// Package testserver runs the full HTTP stack over a temporary database for
// end-to-end tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rpggio/voicenotes/internal/app"
	"github.com/rpggio/voicenotes/internal/config"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Config config.Config
}

// New starts a server on a fresh database file. opts are passed to app.Open.
func New(t *testing.T, opts ...app.Option) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = filepath.Join(t.TempDir(), "notes.db")

	a, err := app.Open(context.Background(), cfg, nil, opts...)
	require.NoError(t, err)

	server := httptest.NewServer(a.HTTPHandler())

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a, Config: cfg}
}

// Restart reopens the database behind a new App, as a process restart would.
func (ts *TestServer) Restart(t *testing.T, opts ...app.Option) *TestServer {
	t.Helper()
	ts.Server.Close()
	require.NoError(t, ts.App.Close())

	a, err := app.Open(context.Background(), ts.Config, nil, opts...)
	require.NoError(t, err)
	server := httptest.NewServer(a.HTTPHandler())
	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})
	return &TestServer{Server: server, App: a, Config: ts.Config}
}

type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type RPCError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Call posts one JSON-RPC request to /rpc.
func (ts *TestServer) Call(t *testing.T, method string, params any) RPCResponse {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(ts.Server.URL+"/rpc", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// MustCall is Call that fails the test on a JSON-RPC error and decodes the
// result into out.
func (ts *TestServer) MustCall(t *testing.T, method string, params any, out any) {
	t.Helper()
	resp := ts.Call(t, method, params)
	require.Nil(t, resp.Error, "rpc error: %+v", resp.Error)
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Result, out))
	}
}
