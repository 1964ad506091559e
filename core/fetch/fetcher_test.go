package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><title>Torta</title></html>"))
	}))
	defer srv.Close()

	f := New(WithUserAgent("test-agent"))
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(res.HTML, "<title>Torta</title>") {
		t.Fatalf("unexpected body %q", res.HTML)
	}
}

func TestFetchDecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "Unità" in Latin-1.
		w.Write([]byte("<html><body>Unit\xe0</body></html>"))
	}))
	defer srv.Close()

	res, err := New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(res.HTML, "Unità") {
		t.Fatalf("expected decoded text, got %q", res.HTML)
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", se.Code)
	}
}

func TestFetchRejectsOversizedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>" + strings.Repeat("x", 200) + "</body></html>"))
	}))
	defer srv.Close()

	_, err := New(WithMaxPageBytes(100)).Fetch(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "exceeds 100 bytes") {
		t.Fatalf("expected size error, got %v", err)
	}

	res, err := New(WithMaxPageBytes(1000)).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("page within the limit: %v", err)
	}
	if !strings.HasSuffix(res.HTML, "</body></html>") {
		t.Errorf("page was truncated: %q", res.HTML[len(res.HTML)-20:])
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if _, err := New(WithTimeout(20*time.Millisecond)).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "https://example.com/img" {
			t.Errorf("missing referer, got %q", r.Header.Get("Referer"))
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	f := New()
	headers := map[string]string{"Referer": "https://example.com/img"}

	data, ct, err := f.Download(context.Background(), srv.URL, headers, 10)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(data) != "0123456789" || ct != "image/png" {
		t.Fatalf("unexpected result %q %q", data, ct)
	}

	if _, _, err := f.Download(context.Background(), srv.URL, headers, 5); err == nil {
		t.Fatalf("expected size limit error")
	}
}
