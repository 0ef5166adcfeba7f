// Package testserver starts a fully wired po-manager HTTP server for tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ganot/po-manager/internal/app"
	"github.com/ganot/po-manager/internal/config"
	"github.com/ganot/po-manager/internal/mcp"
	"github.com/ganot/po-manager/internal/metrics"
	"github.com/ganot/po-manager/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	App     *app.App
	Store   config.StoreConfig
	Metrics *metrics.Recorder
}

// Envelope is a decoded response with the payload left raw.
type Envelope struct {
	Status int             `json:"-"`
	Code   transport.Code  `json:"code"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// New starts a server over JSON files in a temporary directory.
func New(t *testing.T) *TestServer {
	t.Helper()
	return start(t, config.StoreConfig{Driver: config.DriverJSON, DataDir: t.TempDir()})
}

// NewSQLite starts a server over a private in-memory SQLite database.
func NewSQLite(t *testing.T) *TestServer {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	return start(t, config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: dsn})
}

func start(t *testing.T, store config.StoreConfig) *TestServer {
	t.Helper()

	recorder := metrics.NewRecorder()
	a, err := app.New(context.Background(), store, nil, recorder)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{Resources: a.Resources, Version: "test"})
	server := httptest.NewServer(transport.NewServer(transport.Config{
		Resources: a.Resources,
		MCP:       mcp.NewHTTPHandler(mcpServer),
		Metrics:   recorder,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a, Store: store, Metrics: recorder}
}

// Post sends body as JSON to path.
func (ts *TestServer) Post(t *testing.T, path string, body any) Envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	resp, err := http.Post(ts.Server.URL+path, "application/json", &buf)
	require.NoError(t, err)
	return decode(t, resp)
}

// Get requests path with query.
func (ts *TestServer) Get(t *testing.T, path string, query url.Values) Envelope {
	t.Helper()
	target := ts.Server.URL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	resp, err := http.Get(target)
	require.NoError(t, err)
	return decode(t, resp)
}

// Into decodes the payload of an Ok envelope into out.
func (e Envelope) Into(t *testing.T, out any) {
	t.Helper()
	require.Equal(t, transport.CodeOk, e.Code, "msg: %s", e.Msg)
	require.NoError(t, json.Unmarshal(e.Data, out))
}

func decode(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	defer resp.Body.Close()
	env := Envelope{Status: resp.StatusCode}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
