package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

type stubDownloader struct {
	data    []byte
	err     error
	headers map[string]string
}

func (d *stubDownloader) Download(_ context.Context, _ string, headers map[string]string, _ int64) ([]byte, string, error) {
	d.headers = headers
	return d.data, "", d.err
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestConvertResizesAndFlattens(t *testing.T) {
	dl := &stubDownloader{data: pngBytes(t, 300, 150, color.NRGBA{0, 0, 0, 0})}
	c := New(dl, Config{MaxSide: 100})

	out, err := c.Convert(context.Background(), "https://cdn.example.com/img/photo.png")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("expected 100x50, got %dx%d", b.Dx(), b.Dy())
	}

	// Fully transparent input must come out white.
	r, g, b, _ := img.At(50, 25).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("expected white pixel, got %d %d %d", r>>8, g>>8, b>>8)
	}

	if dl.headers["Referer"] != "https://cdn.example.com/img" {
		t.Errorf("unexpected referer %q", dl.headers["Referer"])
	}
	if dl.headers["Accept"] == "" || dl.headers["Accept-Language"] == "" {
		t.Errorf("missing browser headers: %v", dl.headers)
	}
}

func TestConvertKeepsSmallImages(t *testing.T) {
	c := New(&stubDownloader{data: pngBytes(t, 40, 80, color.NRGBA{200, 10, 10, 255})}, DefaultConfig())

	out, err := c.Convert(context.Background(), "https://example.com/a.png")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 80 {
		t.Fatalf("expected 40x80, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestConvertErrors(t *testing.T) {
	c := New(&stubDownloader{err: errors.New("timeout")}, DefaultConfig())
	if _, err := c.Convert(context.Background(), "https://example.com/a.png"); !errors.Is(err, ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}

	c = New(&stubDownloader{data: []byte("not an image")}, DefaultConfig())
	if _, err := c.Convert(context.Background(), "https://example.com/a.png"); !errors.Is(err, ErrProcess) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
}

func TestConvertRejectsOversizedImages(t *testing.T) {
	// The header declares 1500x1000; the pixel budget is checked before decoding.
	dl := &stubDownloader{data: pngBytes(t, 1500, 1000, color.NRGBA{0, 0, 0, 0})}
	c := New(dl, Config{MaxPixels: 1_000_000})

	_, err := c.Convert(context.Background(), "https://example.com/huge.png")
	if !errors.Is(err, ErrProcess) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if !strings.Contains(err.Error(), "1500x1000") {
		t.Errorf("expected dimensions in error, got %v", err)
	}

	c = New(dl, Config{MaxPixels: 2_000_000, MaxSide: 100})
	if _, err := c.Convert(context.Background(), "https://example.com/huge.png"); err != nil {
		t.Fatalf("image within the limit: %v", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{2400, 1200, 1200, 1200, 600},
		{1200, 2400, 1200, 600, 1200},
		{800, 600, 1200, 800, 600},
		{5000, 1, 1200, 1200, 1},
	}
	for _, tt := range tests {
		got := fit(image.Rect(0, 0, tt.w, tt.h), tt.max)
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("fit(%dx%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}
