// Package core defines the recipe types and pipeline interfaces for RecipePipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"errors"
	"strconv"
)

// NotAvailable is the marker used for every field a page does not provide.
const NotAvailable = "N/A"

// Errors a RecipeSource returns instead of a value.
var (
	// ErrNoSchema means the page carries no structured recipe data at all.
	ErrNoSchema = errors.New("no structured recipe data")
	// ErrNotSupported means the recipe data exists but lacks this field.
	ErrNotSupported = errors.New("field not supported")
	// ErrNotImplemented means the source cannot provide this field.
	ErrNotImplemented = errors.New("not implemented")
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	HTML        string
}

// Ingredient is one ingredient line split into quantity and name.
// Both are display strings; Quantity keeps the unit exactly as written.
type Ingredient struct {
	Quantity string `json:"quantity" yaml:"quantity"`
	Name     string `json:"name" yaml:"name"`
}

// Minutes is a duration in whole minutes. Negative values mean the
// duration is not available.
type Minutes int

// MinutesNA is the not-available Minutes value.
const MinutesNA Minutes = -1

// Valid reports whether m holds a real duration.
func (m Minutes) Valid() bool { return m >= 0 }

// String returns the number of minutes or NotAvailable.
func (m Minutes) String() string {
	if !m.Valid() {
		return NotAvailable
	}
	return strconv.Itoa(int(m))
}

// MarshalJSON encodes a number, or the NotAvailable string.
func (m Minutes) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte(strconv.Quote(NotAvailable)), nil
	}
	return []byte(strconv.Itoa(int(m))), nil
}

// MarshalYAML mirrors MarshalJSON.
func (m Minutes) MarshalYAML() (any, error) {
	if !m.Valid() {
		return NotAvailable, nil
	}
	return int(m), nil
}

// Recipe is the structured payload returned for one scraped page.
type Recipe struct {
	Title        string       `json:"title" yaml:"title"`
	CookTime     Minutes      `json:"cook_time" yaml:"cook_time"`
	PrepTime     Minutes      `json:"prep_time" yaml:"prep_time"`
	TotalTime    Minutes      `json:"total_time" yaml:"total_time"`
	Yields       string       `json:"yields" yaml:"yields"`
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients"`
	Instructions string       `json:"instructions" yaml:"instructions"`
	URL          string       `json:"url" yaml:"url"`
	FetchedAt    string       `json:"fetched_at" yaml:"fetched_at"` // local time, no zone
	Author       string       `json:"author" yaml:"author"`
	Category     string       `json:"category" yaml:"category"`
	Cuisine      string       `json:"cuisine" yaml:"cuisine"`
	Description  string       `json:"description" yaml:"description"`
	Image        string       `json:"image" yaml:"image"`
}

// HasData reports whether any recipe-specific field was found.
func (r *Recipe) HasData() bool {
	return len(r.Ingredients) > 0 || r.Instructions != NotAvailable || r.Yields != NotAvailable
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// RecipeSource exposes each recipe field a page can provide, one method per
// field. Methods return ErrNoSchema, ErrNotSupported or ErrNotImplemented
// when the value is absent.
type RecipeSource interface {
	Title() (string, error)
	CookTime() (Minutes, error)
	PrepTime() (Minutes, error)
	TotalTime() (Minutes, error)
	Yields() (string, error)
	// Ingredients returns raw values in page order. Entries are usually
	// strings but may be any decoded JSON value.
	Ingredients() ([]any, error)
	Instructions() (string, error)
	Author() (string, error)
	Category() (string, error)
	Cuisine() (string, error)
	Description() (string, error)
	Image() (string, error)
}

// Extractor builds a RecipeSource from a full HTML page.
type Extractor interface {
	Extract(html string) (RecipeSource, error)
}

// Renderer converts a Recipe into a final output format.
type Renderer interface {
	Render(recipe *Recipe) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// ImageConverter downloads a remote image and re-encodes it as JPEG.
type ImageConverter interface {
	Convert(ctx context.Context, url string) ([]byte, error)
}
