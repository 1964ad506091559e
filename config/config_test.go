package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if !errors.Is(cfg.RequireAPIKey(), ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey without a key")
	}
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		EnvAPIKey:          " secret ",
		EnvAddr:            "127.0.0.1:8080",
		EnvFetchTimeout:    "5s",
		EnvImageTimeout:    "1500ms",
		EnvImageMaxSide:    "800",
		EnvImageQuality:    "70",
		EnvImageMaxBytes:   "1048576",
		EnvImageMaxPixels:  "1000000",
		EnvLogLevel:        "debug",
		EnvLogFormat:       "json",
		EnvShutdownTimeout: "2s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		APIKey:          "secret",
		Addr:            "127.0.0.1:8080",
		FetchTimeout:    5 * time.Second,
		ImageTimeout:    1500 * time.Millisecond,
		ImageMaxSide:    800,
		ImageQuality:    70,
		ImageMaxBytes:   1 << 20,
		ImageMaxPixels:  1_000_000,
		LogLevel:        "debug",
		LogFormat:       "json",
		ShutdownTimeout: 2 * time.Second,
	}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFromLookupBlankKeepsDefault(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{EnvAddr: "  ", EnvImageQuality: ""}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "0.0.0.0:5000" || cfg.ImageQuality != 85 {
		t.Errorf("blank values should keep defaults, got %+v", cfg)
	}
}

func TestFromLookupInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvFetchTimeout, "soon"},
		{EnvImageTimeout, "-1s"},
		{EnvImageMaxSide, "big"},
		{EnvImageQuality, "101"},
		{EnvImageMaxBytes, "0"},
		{EnvImageMaxPixels, "many"},
		{EnvShutdownTimeout, "10"},
	}
	for _, tt := range tests {
		_, err := FromLookup(lookupFrom(map[string]string{tt.key: tt.value}))
		if err == nil {
			t.Errorf("%s=%q: expected error", tt.key, tt.value)
			continue
		}
		if !strings.Contains(err.Error(), tt.key) {
			t.Errorf("%s=%q: error should name the variable, got %v", tt.key, tt.value, err)
		}
	}
}
