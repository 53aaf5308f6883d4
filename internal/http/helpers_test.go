package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		DBDriver:  config.DriverSQLite,
		DBDSN:     ":memory:",
		RateLimit: 1000,
		BodyLimit: 1 << 20,
	}
}

// newSeededApp builds the real app over a seeded in-memory sqlite store:
// categories 1 Kalemler and 2 Defterler, products 1 "kalem 10" and 2 "kalem 20".
func newSeededApp(t *testing.T, cfg config.Config) (*fiber.App, *repos.Store) {
	t.Helper()
	store, err := repos.NewStore(cfg.DBDriver, cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, repos.SeedIfEmpty(context.Background(), store))

	app, err := handlers.NewApp(cfg, store)
	require.NoError(t, err)
	return app, store
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func jsonRequest(method, target string, v any) *http.Request {
	var body io.Reader
	if v != nil {
		b, _ := json.Marshal(v)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// csrfToken fetches a form page so the CSRF middleware issues its cookie.
func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/products/create", nil))
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Name == "csrf_" {
			return c.Value
		}
	}
	t.Fatal("csrf token missing")
	return ""
}

func formRequest(target, tok string, form url.Values) *http.Request {
	if tok != "" {
		form.Set("csrf", tok)
	}
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if tok != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	}
	return req
}

type logEntry struct {
	Action string         `json:"action"`
	Level  string         `json:"level"`
	Audit  bool           `json:"audit"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the structured entries written while fn runs. Plain
// access-log lines are skipped.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.SetOutput(buf)
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
