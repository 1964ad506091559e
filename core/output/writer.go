// Package output handles file naming and writing for exported recipes.
// A single recipe is named after its URL (e.g. example_com_ricette_carbonara.json);
// batch exports mirror the site's path structure under a per-host directory.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered recipes to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores a single recipe under a flat name derived from its URL.
func (w *Writer) Write(rawURL string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FilenameFromURL(rawURL)+ext)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteTree stores one recipe of a batch, mirroring the URL path.
// Example: https://site.com/ricette/pasta → <dir>/site_com/ricette/pasta.json
func (w *Writer) WriteTree(rawURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	segments := []string{sanitize(parsed.Host)}
	urlPath := strings.Trim(parsed.Path, "/")
	if urlPath == "" {
		urlPath = "index"
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segments = append(segments, sanitize(seg))
	}

	fullPath := filepath.Join(append([]string{w.OutputDir}, segments...)...) + ext

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// FilenameFromURL converts a URL into a flat filename.
// Example: https://example.com/ricette/carbonara.html → example_com_ricette_carbonara_html
func FilenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
