// Package testutil provides common testing utilities and mock implementations.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/R3E-Network/wallet_layer/internal/api"
)

// SessionCall records one SessionProvider.Session invocation.
type SessionCall struct {
	WithoutJWT bool
	Domain     api.Domain
}

// MockSessionProvider is a test implementation of api.SessionProvider.
type MockSessionProvider struct {
	mu        sync.RWMutex
	tokens    map[api.Domain]string
	calls     []SessionCall
	deletes   int
	errSess   error
	errDelete error
}

// NewMockSessionProvider creates a provider holding token for both domains.
// An empty token models the absent-session case.
func NewMockSessionProvider(token string) *MockSessionProvider {
	m := &MockSessionProvider{tokens: make(map[api.Domain]string)}
	if token != "" {
		for _, d := range api.Domains() {
			m.tokens[d] = token
		}
	}
	return m
}

// SetToken sets the token returned for domain.
func (m *MockSessionProvider) SetToken(domain api.Domain, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[domain] = token
}

// FailSession makes Session return err.
func (m *MockSessionProvider) FailSession(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errSess = err
}

// FailDelete makes DeleteSession return err.
func (m *MockSessionProvider) FailDelete(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errDelete = err
}

// Session returns the configured token.
func (m *MockSessionProvider) Session(_ context.Context, withoutJWT bool, domain api.Domain) (api.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SessionCall{WithoutJWT: withoutJWT, Domain: domain})
	if m.errSess != nil {
		return api.Session{}, m.errSess
	}
	return api.Session{AccessToken: m.tokens[domain]}, nil
}

// DeleteSession forgets every token and counts the call.
func (m *MockSessionProvider) DeleteSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.errDelete != nil {
		return m.errDelete
	}
	m.tokens = make(map[api.Domain]string)
	return nil
}

// Calls returns the recorded Session invocations.
func (m *MockSessionProvider) Calls() []SessionCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SessionCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Deletes returns how often DeleteSession was called.
func (m *MockSessionProvider) Deletes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.deletes
}

// RecordedRequest is a request seen by a Backend.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Backend is an httptest server that records requests.
type Backend struct {
	*httptest.Server
	mu       sync.Mutex
	requests []RecordedRequest
}

// NewBackend starts a recording server in front of handler and closes it
// when the test ends.
func NewBackend(t testing.TB, handler http.HandlerFunc) *Backend {
	t.Helper()
	b := &Backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		b.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		handler(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

// Requests returns the recorded requests.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Last returns the most recent request. It fails the test when none was seen.
func (b *Backend) Last(t testing.TB) RecordedRequest {
	t.Helper()
	reqs := b.Requests()
	if len(reqs) == 0 {
		t.Fatal("backend received no requests")
	}
	return reqs[len(reqs)-1]
}

// JSON returns a handler replying with status and v encoded as JSON.
func JSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

// Raw returns a handler replying with status and body verbatim.
func Raw(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// NewClient builds an api.Client whose DFX and LOCK domains both point at
// backend, with metrics disabled.
func NewClient(t testing.TB, backend *Backend, sessions api.SessionProvider) *api.Client {
	t.Helper()
	return NewSplitClient(t, backend.URL, backend.URL, sessions)
}

// NewSplitClient builds an api.Client with distinct DFX and LOCK base URLs.
func NewSplitClient(t testing.TB, dfxURL, lockURL string, sessions api.SessionProvider) *api.Client {
	t.Helper()
	client, err := api.New(api.Config{
		DFXBaseURL:     dfxURL,
		LOCKBaseURL:    lockURL,
		DisableMetrics: true,
	}, sessions)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return client
}
