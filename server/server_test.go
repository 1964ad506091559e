package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/imaging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubScraper struct {
	recipe *core.Recipe
	err    error
	gotURL string
}

func (s *stubScraper) Scrape(_ context.Context, url string) (*core.Recipe, error) {
	s.gotURL = url
	return s.recipe, s.err
}

type stubImages struct {
	data []byte
	err  error
}

func (s *stubImages) Convert(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

func newTestServer(sc *stubScraper, im *stubImages) (*Server, *bytes.Buffer) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	return New(sc, im, "secret", log), &logs
}

func do(s *Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(&stubScraper{}, &stubImages{})
	rec := do(s, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "ok" || body["service"] != "recipe-scraper" {
		t.Errorf("unexpected body %v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("expected a generated request ID")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s, _ := newTestServer(&stubScraper{}, &stubImages{})
	rec := do(s, http.MethodGet, "/health", map[string]string{"X-Request-ID": "abc-123"})
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected propagated request ID, got %q", got)
	}
}

func TestScrapeRequiresAPIKey(t *testing.T) {
	sc := &stubScraper{}
	s, logs := newTestServer(sc, &stubImages{})

	for _, key := range []string{"", "wrong"} {
		rec := do(s, http.MethodGet, "/scrape?url=https://example.com/r", map[string]string{"X-API-Key": key})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("key %q: expected 403, got %d", key, rec.Code)
		}
		if body := decode(t, rec); body["error"] != "Unauthorized" {
			t.Errorf("unexpected body %v", body)
		}
	}
	if sc.gotURL != "" {
		t.Errorf("scraper must not run without a valid key")
	}
	if !strings.Contains(logs.String(), "unauthorized request") || !strings.Contains(logs.String(), "remote=") {
		t.Errorf("expected warning with remote address, got %q", logs.String())
	}
}

func TestScrapeOptionsBypassesKey(t *testing.T) {
	s, _ := newTestServer(&stubScraper{}, &stubImages{})
	rec := do(s, http.MethodOptions, "/scrape", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestScrapeMissingURL(t *testing.T) {
	s, _ := newTestServer(&stubScraper{}, &stubImages{})
	rec := do(s, http.MethodGet, "/scrape", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decode(t, rec); body["error"] != "Missing URL parameter" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestScrapeSuccess(t *testing.T) {
	sc := &stubScraper{recipe: &core.Recipe{
		Title:       "Carbonara",
		CookTime:    15,
		PrepTime:    core.MinutesNA,
		TotalTime:   core.MinutesNA,
		Yields:      "4",
		Ingredients: []core.Ingredient{{Quantity: "320 g", Name: "spaghetti"}},
		URL:         "https://example.com/carbonara",
	}}
	s, _ := newTestServer(sc, &stubImages{})

	rec := do(s, http.MethodGet, "/scrape?url=https://example.com/carbonara", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if sc.gotURL != "https://example.com/carbonara" {
		t.Errorf("scraper got %q", sc.gotURL)
	}
	body := decode(t, rec)
	if body["title"] != "Carbonara" || body["prep_time"] != "N/A" || body["cook_time"] != float64(15) {
		t.Errorf("unexpected body %v", body)
	}
}

func TestScrapeFailure(t *testing.T) {
	sc := &stubScraper{err: errors.New("fetch: status 404")}
	s, _ := newTestServer(sc, &stubImages{})

	rec := do(s, http.MethodGet, "/scrape?url=https://example.com/x", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != "fetch: status 404" || body["url"] != "https://example.com/x" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestImageProxy(t *testing.T) {
	s, _ := newTestServer(&stubScraper{}, &stubImages{data: []byte{0xff, 0xd8, 0xff}})

	rec := do(s, http.MethodGet, "/image-proxy?url=https://example.com/a.webp", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `inline; filename="image.jpg"` {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if !bytes.Equal(rec.Body.Bytes(), []byte{0xff, 0xd8, 0xff}) {
		t.Errorf("unexpected body")
	}
}

func TestImageProxyErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		want   string
	}{
		{"missing url", "/image-proxy", nil, http.StatusBadRequest, "Missing URL parameter"},
		{"download", "/image-proxy?url=x", fmt.Errorf("%w: %w", imaging.ErrDownload, errors.New("timeout")),
			http.StatusInternalServerError, "Failed to download image: timeout"},
		{"process", "/image-proxy?url=x", fmt.Errorf("%w: %w", imaging.ErrProcess, errors.New("unknown format")),
			http.StatusInternalServerError, "Failed to process image: unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(&stubScraper{}, &stubImages{err: tt.err})
			rec := do(s, http.MethodGet, tt.target, nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("expected JSON error, got content type %q", ct)
			}
			if body := decode(t, rec); body["error"] != tt.want {
				t.Errorf("error: got %v, want %q", body["error"], tt.want)
			}
		})
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(&stubScraper{}, &stubImages{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, "127.0.0.1:0", time.Second); err != nil {
		t.Fatalf("run: %v", err)
	}
}
