package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/mpdash/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

// captureLog points the global logger at a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_PRETTY", "false")
	t.Cleanup(logger.Init)

	var buf bytes.Buffer
	logger.InitWriter(&buf)
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	return entry
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusBadRequest, "warn"},
		{http.StatusNotFound, "warn"},
		{http.StatusServiceUnavailable, "error"},
		{http.StatusBadGateway, "error"},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			buf := captureLog(t)
			router := gin.New()
			router.Use(RequestID(), RequestLogger())
			router.GET("/api/v1/orders", func(c *gin.Context) { c.Status(tc.status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

			entry := lastLine(t, buf)
			if entry["level"] != tc.level {
				t.Fatalf("level=%v want %s", entry["level"], tc.level)
			}
			if entry["status"] != float64(tc.status) || entry["path"] != "/api/v1/orders" || entry["method"] != "GET" {
				t.Fatalf("unexpected entry: %v", entry)
			}
		})
	}
}

func TestRequestLogger_OmitsQueryAndCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/api/v1/sales", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?dateFrom=2024-01-01&key=top-secret", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	router.ServeHTTP(w, req)

	if strings.Contains(buf.String(), "top-secret") {
		t.Fatalf("query string leaked into the log: %s", buf.String())
	}
	entry := lastLine(t, buf)
	if entry["request_id"] != "rid-42" || entry["path"] != "/api/v1/sales" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if w.Header().Get("X-Request-ID") != "rid-42" {
		t.Fatalf("response should echo the inbound request id")
	}
}
