// Package crawl — URL filtering rules.
// Decides which discovered links are worth fetching as recipe candidates.
package crawl

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// staticExtensions are file extensions to skip during crawling.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".avif": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true, ".json": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// skippedSections are path prefixes that never hold recipes.
var skippedSections = []string{
	"/tag/", "/author/", "/wp-admin/", "/wp-login", "/login", "/cart", "/feed",
}

// IsSameSite checks if rawURL is on the given host, treating a leading
// "www." as insignificant.
func IsSameSite(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.TrimPrefix(parsed.Host, "www.") == strings.TrimPrefix(host, "www.")
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// IsSkippedSection reports whether the URL is in a non-recipe section.
func IsSkippedSection(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	p := strings.ToLower(parsed.Path)
	for _, prefix := range skippedSections {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// NormalizeURL strips fragments, tracking parameters and trailing slashes
// for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""

	if q := parsed.Query(); len(q) > 0 {
		for key := range q {
			if strings.HasPrefix(key, "utm_") {
				q.Del(key)
			}
		}
		parsed.RawQuery = q.Encode()
	}

	// Keep root "/".
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}

// Filter decides whether a discovered URL is a recipe candidate.
type Filter struct {
	Host  string
	Match *regexp.Regexp // optional path pattern, e.g. "/ricette/"
}

// Accept applies the host, asset, section and pattern checks.
func (f Filter) Accept(rawURL string) bool {
	if !IsSameSite(rawURL, f.Host) || IsStaticAsset(rawURL) || IsSkippedSection(rawURL) {
		return false
	}
	if f.Match == nil {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return f.Match.MatchString(parsed.Path)
}
