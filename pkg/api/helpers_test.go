package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/samvad-hq/storefront-client/internal/logger"
	"github.com/samvad-hq/storefront-client/pkg/httpclient"
)

// mapTokens is an in-memory TokenStore.
type mapTokens map[string]string

func (m mapTokens) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

type failingTokens struct{}

func (failingTokens) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }

// recordedRequest captures what the test server saw.
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// apiServer answers every request with the configured status/body and records requests.
type apiServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
	srv      *httptest.Server
}

func newAPIServer(t *testing.T, status int, body string) *apiServer {
	t.Helper()
	s := &apiServer{status: status, body: body}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   string(raw),
		})
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = io.WriteString(w, s.body)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *apiServer) last(t *testing.T) recordedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatalf("server received no requests")
	}
	return s.requests[len(s.requests)-1]
}

// stubResponse / stubHTTP let tests control status lines net/http would normalize.
type stubResponse struct {
	status int
	text   string
	body   []byte
}

func (s stubResponse) Body() []byte       { return s.body }
func (s stubResponse) StatusCode() int    { return s.status }
func (s stubResponse) StatusText() string { return s.text }

type stubHTTP struct {
	resp httpclient.Response
	err  error
	last httpclient.Request
}

func (s *stubHTTP) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

// captureLogger records ErrorObj calls.
type captureLogger struct {
	logger.NopLogger
	mu     sync.Mutex
	errors []map[string]any
}

func (c *captureLogger) ErrorObj(_ string, _ string, obj interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := obj.(map[string]any); ok {
		c.errors = append(c.errors, m)
	}
}
