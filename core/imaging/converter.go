// Package imaging implements the ImageConverter interface.
// It downloads a remote image, flattens it onto white, shrinks it to fit a
// bounding box and re-encodes it as JPEG, so clients only ever see one format.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"time"

	// Registered decoders.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// Errors returned by Convert, wrapped around the underlying cause.
var (
	ErrDownload = errors.New("failed to download image")
	ErrProcess  = errors.New("failed to process image")
)

const (
	defaultMaxSide   = 1200
	defaultQuality   = 85
	defaultMaxBytes  = 20 << 20
	defaultMaxPixels = 50_000_000
	defaultTimeout   = 10 * time.Second
)

// Downloader fetches raw bytes; fetch.HTTPFetcher satisfies it.
type Downloader interface {
	Download(ctx context.Context, url string, headers map[string]string, limit int64) ([]byte, string, error)
}

// Config tunes the conversion.
type Config struct {
	MaxSide   int           // longest allowed side in pixels
	Quality   int           // JPEG quality, 1-100
	MaxBytes  int64         // largest accepted download
	MaxPixels int64         // largest accepted decoded width*height
	Timeout   time.Duration // per-download deadline
}

// DefaultConfig returns the standard conversion settings.
func DefaultConfig() Config {
	return Config{
		MaxSide:   defaultMaxSide,
		Quality:   defaultQuality,
		MaxBytes:  defaultMaxBytes,
		MaxPixels: defaultMaxPixels,
		Timeout:   defaultTimeout,
	}
}

// Converter re-encodes remote images as JPEG.
type Converter struct {
	dl  Downloader
	cfg Config
}

var _ core.ImageConverter = (*Converter)(nil)

// New creates a Converter. Zero config fields take their defaults.
func New(dl Downloader, cfg Config) *Converter {
	def := DefaultConfig()
	if cfg.MaxSide <= 0 {
		cfg.MaxSide = def.MaxSide
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = def.Quality
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = def.MaxBytes
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = def.MaxPixels
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Converter{dl: dl, cfg: cfg}
}

// Convert downloads url and returns it as JPEG bytes.
func (c *Converter) Convert(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	data, _, err := c.dl.Download(ctx, url, requestHeaders(url), c.cfg.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	out, err := c.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcess, err)
	}
	return out, nil
}

// Encode decodes any registered image format and re-encodes it as JPEG.
// Images whose declared size exceeds MaxPixels are refused before any
// pixel data is decoded.
func (c *Converter) Encode(data []byte) ([]byte, error) {
	hdr, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	if pixels := int64(hdr.Width) * int64(hdr.Height); pixels > c.cfg.MaxPixels {
		return nil, fmt.Errorf("image is %dx%d, above the %d pixel limit", hdr.Width, hdr.Height, c.cfg.MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img := flatten(src, fit(src.Bounds(), c.cfg.MaxSide))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.cfg.Quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fit returns the size that bounds shrinks to so its longest side is at
// most maxSide, keeping the aspect ratio. Smaller images keep their size.
func fit(bounds image.Rectangle, maxSide int) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSide && h <= maxSide {
		return image.Rect(0, 0, w, h)
	}
	if w >= h {
		return image.Rect(0, 0, maxSide, max(1, h*maxSide/w))
	}
	return image.Rect(0, 0, max(1, w*maxSide/h), maxSide)
}

// flatten draws src onto a white canvas of the given size, dropping any
// transparency and palette.
func flatten(src image.Image, size image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(size)
	draw.Draw(dst, size, image.NewUniform(color.White), image.Point{}, draw.Src)
	if size.Dx() == src.Bounds().Dx() && size.Dy() == src.Bounds().Dy() {
		draw.Draw(dst, size, src, src.Bounds().Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, size, src, src.Bounds(), draw.Over, nil)
	return dst
}

// requestHeaders mimics a browser loading the image from its own site;
// many CDNs refuse hotlinks without a Referer.
func requestHeaders(url string) map[string]string {
	referer := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		referer = url[:i]
	}
	return map[string]string{
		"Accept":          "image/avif,image/webp,image/apng,image/*,*/*;q=0.8",
		"Accept-Language": "it-IT,it;q=0.9,en-US;q=0.8,en;q=0.7",
		"Referer":         referer,
	}
}
