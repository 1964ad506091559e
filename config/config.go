// Package config reads runtime settings from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIKey          = "SCRAPER_API_KEY"
	EnvAddr            = "SCRAPER_ADDR"
	EnvFetchTimeout    = "SCRAPER_FETCH_TIMEOUT"
	EnvImageTimeout    = "SCRAPER_IMAGE_TIMEOUT"
	EnvImageMaxSide    = "SCRAPER_IMAGE_MAX_SIDE"
	EnvImageQuality    = "SCRAPER_IMAGE_QUALITY"
	EnvImageMaxBytes   = "SCRAPER_IMAGE_MAX_BYTES"
	EnvImageMaxPixels  = "SCRAPER_IMAGE_MAX_PIXELS"
	EnvLogLevel        = "SCRAPER_LOG_LEVEL"
	EnvLogFormat       = "SCRAPER_LOG_FORMAT"
	EnvShutdownTimeout = "SCRAPER_SHUTDOWN_TIMEOUT"
)

// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured.
var ErrMissingAPIKey = errors.New(EnvAPIKey + " is not set")

// Config holds every setting the commands need.
type Config struct {
	APIKey          string
	Addr            string
	FetchTimeout    time.Duration
	ImageTimeout    time.Duration
	ImageMaxSide    int
	ImageQuality    int
	ImageMaxBytes   int64
	ImageMaxPixels  int64
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:            "0.0.0.0:5000",
		FetchTimeout:    30 * time.Second,
		ImageTimeout:    10 * time.Second,
		ImageMaxSide:    1200,
		ImageQuality:    85,
		ImageMaxBytes:   20 << 20,
		ImageMaxPixels:  50_000_000,
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads .env (if any) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from defaults overridden by lookup.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvAPIKey); ok {
		cfg.APIKey = v
	}
	if v, ok := get(EnvAddr); ok {
		cfg.Addr = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvLogFormat); ok {
		cfg.LogFormat = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvFetchTimeout, &cfg.FetchTimeout},
		{EnvImageTimeout, &cfg.ImageTimeout},
		{EnvShutdownTimeout, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok := get(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("%s: invalid duration %q", d.key, v)
		}
		*d.dst = parsed
	}

	ints := []struct {
		key      string
		dst      *int
		min, max int
	}{
		{EnvImageMaxSide, &cfg.ImageMaxSide, 1, 1 << 14},
		{EnvImageQuality, &cfg.ImageQuality, 1, 100},
	}
	for _, n := range ints {
		v, ok := get(n.key)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < n.min || parsed > n.max {
			return Config{}, fmt.Errorf("%s: expected integer in [%d, %d], got %q", n.key, n.min, n.max, v)
		}
		*n.dst = parsed
	}

	sizes := []struct {
		key string
		dst *int64
	}{
		{EnvImageMaxBytes, &cfg.ImageMaxBytes},
		{EnvImageMaxPixels, &cfg.ImageMaxPixels},
	}
	for _, n := range sizes {
		v, ok := get(n.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("%s: expected positive integer, got %q", n.key, v)
		}
		*n.dst = parsed
	}

	return cfg, nil
}

// RequireAPIKey fails when the service would start without a key.
func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
