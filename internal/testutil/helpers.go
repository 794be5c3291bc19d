// Package testutil provides shared helpers for rulebridge tests.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// RuleServer starts a test HTTP server serving fixed rule-list bodies per
// path. Unregistered paths return 404. The server is closed with the test.
func RuleServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, body)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// ReadFile reads a file, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// FileExists reports whether path exists as a regular file.
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	return !info.IsDir()
}
