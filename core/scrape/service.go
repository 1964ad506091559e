// Package scrape turns a recipe URL into a core.Recipe: fetch the page,
// extract its structured data, then normalize ingredients and yields.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/ingredient"
)

// fetchedAtLayout is local time without a zone, e.g. 2024-05-01T12:30:00.
const fetchedAtLayout = "2006-01-02T15:04:05"

// Service runs the scrape pipeline. It is safe for concurrent use.
type Service struct {
	fetcher   core.Fetcher
	extractor core.Extractor
	log       *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for fetched_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service. A nil logger discards output.
func New(fetcher core.Fetcher, extractor core.Extractor, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		fetcher:   fetcher,
		extractor: extractor,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches rawURL and builds its Recipe. Only fetch and parse
// failures are errors; missing fields come back as core.NotAvailable.
func (s *Service) Scrape(ctx context.Context, rawURL string) (*core.Recipe, error) {
	recipe, _, err := s.ScrapePage(ctx, rawURL)
	return recipe, err
}

// ScrapePage is Scrape that also returns the fetched page, for callers
// that fall back to the raw HTML when the page has no recipe data.
func (s *Service) ScrapePage(ctx context.Context, rawURL string) (*core.Recipe, *core.FetchResult, error) {
	result, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}

	src, err := s.extractor.Extract(result.HTML)
	if err != nil {
		return nil, nil, fmt.Errorf("extract: %w", err)
	}

	return s.Build(rawURL, src), result, nil
}

// Build assembles a Recipe from a source, reading every field through the
// not-available fallback.
func (s *Service) Build(rawURL string, src core.RecipeSource) *core.Recipe {
	log := s.log.With("url", rawURL)
	na := core.NotAvailable

	rawIngredients := field(log, "ingredients", src.Ingredients, nil)
	ingredients := make([]core.Ingredient, 0, len(rawIngredients))
	for _, raw := range rawIngredients {
		ingredients = append(ingredients, ingredient.ParseValue(raw))
	}

	return &core.Recipe{
		Title:        field(log, "title", src.Title, na),
		CookTime:     field(log, "cook_time", src.CookTime, core.MinutesNA),
		PrepTime:     field(log, "prep_time", src.PrepTime, core.MinutesNA),
		TotalTime:    field(log, "total_time", src.TotalTime, core.MinutesNA),
		Yields:       ingredient.LeadingNumber(field(log, "yields", src.Yields, na)),
		Ingredients:  ingredients,
		Instructions: field(log, "instructions", src.Instructions, na),
		URL:          rawURL,
		FetchedAt:    s.now().Format(fetchedAtLayout),
		Author:       field(log, "author", src.Author, na),
		Category:     field(log, "category", src.Category, na),
		Cuisine:      field(log, "cuisine", src.Cuisine, na),
		Description:  field(log, "description", src.Description, na),
		Image:        field(log, "image", src.Image, na),
	}
}
