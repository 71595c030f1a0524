package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crestline/huddle/backend/internal/middleware"
	"github.com/crestline/huddle/backend/pkg/validators"
	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
)

// newTestServer starts an httptest server with the identity middleware and
// validator wired the way the router does it.
func newTestServer(t *testing.T, register func(g *echo.Group)) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	g := e.Group("/api", middleware.RequireUser())
	register(g)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

// doRequest issues a request as the given user.
func doRequest(t *testing.T, method, url, userID, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func checkStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("Got HTTP status %d, want %d", got, want)
	}
}

func checkBody(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Could not read body: %v", err)
	}
	var got, expected any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Could not decode body %q: %v", raw, err)
	}
	if err := json.Unmarshal([]byte(want), &expected); err != nil {
		t.Fatalf("Could not decode want body: %v", err)
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Body does not match (-want +got):\n%s", diff)
	}
}
