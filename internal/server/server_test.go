package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapreport/internal/config"
	"github.com/leapstack-labs/leapreport/internal/testutil"
	"github.com/leapstack-labs/leapreport/pkg/report"
)

type stubHeaders struct {
	header report.Header
	err    error
}

func (s stubHeaders) Header(context.Context) (report.Header, error) {
	return s.header, s.err
}

func newTestServer(t *testing.T, headers report.HeaderProvider) *Server {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	return New(Config{
		Generator: report.New(report.Config{Headers: headers, Logger: logger}),
		Logger:    logger,
	})
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHandleGenerate(t *testing.T) {
	h := newTestServer(t, stubHeaders{header: report.Header{EN: "Sample Bank"}}).Handler()

	code, env := do(t, h, http.MethodPost, "/api/report-structure/generate-jrxml",
		`{"base_query": "SELECT a AS \"Col 1\" FROM t WHERE id = $P{uid} ORDER BY a DESC"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, MsgGenerated, env.Message)

	var d report.Descriptor
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "SELECT a AS `Col 1` FROM t WHERE id = $P{uid} ORDER BY a DESC", d.BaseQuery)
	assert.Equal(t, "Sample Bank", d.InstituteHeader.EN)
	require.Len(t, d.Parameters, 1)
	assert.Equal(t, "uid", d.Parameters[0].Name)
}

func TestHandleGenerate_BadRequests(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing base_query", `{}`, MsgBaseQueryRequired},
		{"invalid json", `{"base_query":`, MsgBaseQueryRequired},
		{"missing alias", `{"base_query": "SELECT a FROM t"}`, "Field 'a' must have an alias. All SELECT fields require unique aliases."},
		{"duplicate alias", `{"base_query": "SELECT a AS x, b AS X FROM t"}`, "Duplicate alias found: 'X'. Each field must have a unique alias."},
		{"dml on permanent table", `{"base_query": "INSERT INTO customers VALUES (1)"}`, "DML statement 'INSERT INTO' is only allowed on temporary tables prefixed with __temp_. Found: customers"},
		{"no from", `{"base_query": "SELECT 1"}`, "parse error"},
		{"empty query", `{"base_query": ""}`, "base query is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, h, http.MethodPost, "/api/report-structure/generate-jrxml", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Message, tt.message)
		})
	}
}

func TestHandleGenerate_HeaderFailureStillSucceeds(t *testing.T) {
	h := newTestServer(t, stubHeaders{err: errors.New("db down")}).Handler()

	code, env := do(t, h, http.MethodPost, "/api/report-structure/generate-jrxml",
		`{"base_query": "SELECT a AS x FROM t"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestHandleValidate(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{"valid", `{"query": "SELECT a FROM t"}`, http.StatusOK, MsgValid},
		{"temp insert", `{"query": "INSERT INTO __temp_a SELECT 1"}`, http.StatusOK, MsgValid},
		{"temp insert read only", `{"query": "INSERT INTO __temp_a SELECT 1", "read_only": true}`, http.StatusBadRequest, "Query contains potentially unsafe operations: INSERT"},
		{"drop without read only", `{"query": "DROP TABLE t"}`, http.StatusOK, MsgValid},
		{"drop read only", `{"query": "DROP TABLE t", "read_only": true}`, http.StatusBadRequest, "unsafe operations: DROP"},
		{"permanent update", `{"query": "UPDATE t SET a = 1", "read_only": true}`, http.StatusBadRequest, "DML statement 'UPDATE'"},
		{"missing query", `{}`, http.StatusBadRequest, MsgQueryRequired},
		{"blank query", `{"query": "  "}`, http.StatusBadRequest, MsgQueryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, h, http.MethodPost, "/api/sql/validate", tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.code == http.StatusOK, env.Success)
			assert.Contains(t, env.Message, tt.message)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	code, env := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/sql/validate", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeListener_GracefulShutdown(t *testing.T) {
	s := New(Config{
		Server: config.ServerConfig{ShutdownTimeout: time.Second},
		Logger: testutil.NewTestLogger(t),
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_ListenError(t *testing.T) {
	s := New(Config{Server: config.ServerConfig{Addr: "127.0.0.1:-1"}})
	err := s.Serve(context.Background())
	assert.ErrorContains(t, err, "failed to listen")
}
