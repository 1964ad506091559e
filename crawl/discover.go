// Package crawl provides recipe URL discovery for batch scraping.
// It discovers candidate pages via sitemap.xml (including sitemap indexes)
// and falls back to breadth-first link extraction, keeping crawling logic
// separate from the scrape pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/recipepipe/core"
)

const (
	defaultMaxPages = 100
	maxSitemaps     = 20
)

// Options bound a discovery run.
type Options struct {
	Match    *regexp.Regexp // only return URLs whose path matches
	MaxPages int            // pages fetched while link crawling
	Limit    int            // URLs returned; 0 means no limit
}

// sitemapLoc holds a location from a sitemap or sitemap index.
type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// sitemapDoc covers both <urlset> and <sitemapindex> roots.
type sitemapDoc struct {
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

// DiscoverRecipes finds candidate recipe URLs starting from baseURL.
// It first tries sitemap.xml, then falls back to link crawling.
func DiscoverRecipes(ctx context.Context, baseURL string, fetcher core.Fetcher, opts Options) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("parsing base URL %q: invalid", baseURL)
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	filter := Filter{Host: parsed.Host, Match: opts.Match}

	sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	urls, err := discoverFromSitemap(ctx, sitemapURL, filter, fetcher)
	if err == nil && len(urls) > 0 {
		return limit(urls, opts.Limit), nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	urls, err = discoverFromLinks(ctx, baseURL, filter, fetcher, opts.MaxPages)
	if err != nil {
		return nil, err
	}
	return limit(urls, opts.Limit), nil
}

// discoverFromSitemap reads a sitemap, following one level of sitemap
// index entries.
func discoverFromSitemap(ctx context.Context, sitemapURL string, filter Filter, fetcher core.Fetcher) ([]string, error) {
	doc, err := fetchSitemap(ctx, sitemapURL, fetcher)
	if err != nil {
		return nil, err
	}

	seen := NewQueue()
	collect := func(d *sitemapDoc) {
		for _, u := range d.URLs {
			if loc := strings.TrimSpace(u.Loc); filter.Accept(loc) {
				seen.Add(loc)
			}
		}
	}
	collect(doc)

	for i, child := range doc.Sitemaps {
		if i >= maxSitemaps {
			break
		}
		childDoc, err := fetchSitemap(ctx, strings.TrimSpace(child.Loc), fetcher)
		if err != nil {
			continue // Skip broken child sitemaps.
		}
		collect(childDoc)
	}
	return seen.URLs(), nil
}

func fetchSitemap(ctx context.Context, sitemapURL string, fetcher core.Fetcher) (*sitemapDoc, error) {
	result, err := fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	var doc sitemapDoc
	if err := xml.Unmarshal([]byte(result.HTML), &doc); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	return &doc, nil
}

// discoverFromLinks performs BFS crawling over the site and returns the
// pages the filter accepts. Pages outside the filter's pattern are still
// followed, since listing pages link to recipes.
func discoverFromLinks(ctx context.Context, startURL string, filter Filter, fetcher core.Fetcher, maxPages int) ([]string, error) {
	queue := NewQueue()
	queue.Add(startURL)

	var found []string
	for queue.Taken() < maxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		currentURL, ok := queue.Next()
		if !ok {
			break
		}
		if filter.Accept(currentURL) {
			found = append(found, currentURL)
		}

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			continue // Skip failed pages, don't block the crawl.
		}

		links, err := extractLinks(result.HTML, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if IsSameSite(link, filter.Host) && !IsStaticAsset(link) && !IsSkippedSection(link) {
				queue.Add(link)
			}
		}
	}

	return found, nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(href, base)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	// Skip mailto, javascript, etc.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}

func limit(urls []string, n int) []string {
	if n > 0 && len(urls) > n {
		return urls[:n]
	}
	return urls
}
