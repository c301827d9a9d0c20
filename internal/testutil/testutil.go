// Package testutil provides test utilities for the select box packages
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/config"
)

// TestEnv is a scratch directory holding settings and data files
type TestEnv struct {
	T   *testing.T
	Dir string
}

// NewTestEnv creates a new test environment in a temporary directory
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{T: t, Dir: t.TempDir()}
}

// Path returns the absolute path of name inside the environment
func (e *TestEnv) Path(name string) string {
	return filepath.Join(e.Dir, name)
}

// WriteFile writes content to name, creating parent directories
func (e *TestEnv) WriteFile(name, content string) string {
	e.T.Helper()

	path := e.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// CopyFixture copies an embedded fixture into the environment
func (e *TestEnv) CopyFixture(name string) string {
	e.T.Helper()
	return e.WriteFile(name, string(MustFixture(e.T, name)))
}

// WriteSettings saves s as name; the format follows the extension
func (e *TestEnv) WriteSettings(name string, s *config.Settings) string {
	e.T.Helper()

	path := e.Path(name)
	if err := config.Save(path, s); err != nil {
		e.T.Fatalf("Failed to save settings: %v", err)
	}
	return path
}

// RemoteServer serves a fixed JSON payload and records the q parameter of
// every request
type RemoteServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
	auth    []string
	status  int
}

// NewRemoteServer starts a server answering every request with payload.
// It is closed when the test ends.
func NewRemoteServer(t *testing.T, payload []byte) *RemoteServer {
	t.Helper()

	rs := &RemoteServer{status: http.StatusOK}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.queries = append(rs.queries, r.URL.Query().Get("q"))
		rs.auth = append(rs.auth, r.Header.Get("Authorization"))
		status := rs.status
		rs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(payload)
	}))
	t.Cleanup(rs.Close)
	return rs
}

// SearchURL returns the server URL with the query placeholder in q
func (rs *RemoteServer) SearchURL() string {
	return rs.URL + "/search?q=SEARCH_VALUE"
}

// SetStatus changes the status code of later responses
func (rs *RemoteServer) SetStatus(code int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.status = code
}

// Queries returns the queries received so far
func (rs *RemoteServer) Queries() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.queries...)
}

// Authorizations returns the Authorization headers received so far
func (rs *RemoteServer) Authorizations() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.auth...)
}
