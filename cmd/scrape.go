// Package cmd — scrape command.
// Orchestrates the export pipeline:
// scrape (fetch → extract → build recipe) → render → write.
//
// It handles flag validation, renderer selection, and single or --all runs.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/extract"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/normalize"
	"github.com/gaurav-prasanna/recipepipe/core/output"
	"github.com/gaurav-prasanna/recipepipe/core/render"
	"github.com/gaurav-prasanna/recipepipe/core/scrape"
	"github.com/gaurav-prasanna/recipepipe/crawl"
)

// Flag variables.
var (
	flagAll       bool
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagYAML      bool
	flagMatch     string
	flagMaxPages  int
	flagLimit     int
	flagOutputDir string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a recipe URL to the specified output format",
	Long: `Scrape fetches a recipe page, reads its structured data, parses the
ingredients and writes the recipe as JSON, YAML, Markdown or PDF.

Examples:
  recipepipe scrape https://example.com/carbonara --json
  recipepipe scrape https://example.com/carbonara --markdown --output_dir ./out
  recipepipe scrape https://example.com --all --match '^/ricette/' --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().BoolVar(&flagAll, "all", false, "Discover and scrape every recipe page of the site")

	// Output format flags (mutually exclusive).
	scrapeCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	scrapeCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	scrapeCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	scrapeCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Output structured YAML")

	// Discovery flags.
	scrapeCmd.Flags().StringVar(&flagMatch, "match", "", "Path regexp recipe pages must match (with --all)")
	scrapeCmd.Flags().IntVar(&flagMaxPages, "max_pages", 100, "Maximum pages crawled when no sitemap is available")
	scrapeCmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum recipes scraped with --all (0 means no limit)")

	scrapeCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

// pipeline bundles the components a scrape run needs.
type pipeline struct {
	fetcher  core.Fetcher
	service  *scrape.Service
	renderer core.Renderer
	markdown *normalize.MarkdownNormalizer
	writer   *output.Writer
}

func runScrape(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	if err := validateFlags(); err != nil {
		return err
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	var match *regexp.Regexp
	if flagMatch != "" {
		if match, err = regexp.Compile(flagMatch); err != nil {
			return fmt.Errorf("invalid --match pattern: %w", err)
		}
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fetcher := fetch.New(fetch.WithTimeout(cfg.FetchTimeout))
	p := &pipeline{
		fetcher:  fetcher,
		service:  scrape.New(fetcher, extract.New(), logger),
		renderer: renderer,
		markdown: normalize.New(),
		writer:   writer,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagAll {
		return p.runAll(ctx, rawURL, crawl.Options{Match: match, MaxPages: flagMaxPages, Limit: flagLimit})
	}
	return p.runOnly(ctx, rawURL)
}

// runOnly processes a single URL through the pipeline.
func (p *pipeline) runOnly(ctx context.Context, rawURL string) error {
	data, err := p.process(ctx, rawURL)
	if err != nil {
		return err
	}

	path, err := p.writer.Write(rawURL, data, p.renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers recipe pages and processes each through the pipeline.
func (p *pipeline) runAll(ctx context.Context, rawURL string, opts crawl.Options) error {
	fmt.Fprintf(os.Stdout, "Discovering recipes from %s...\n", rawURL)

	urls, err := crawl.DiscoverRecipes(ctx, rawURL, p.fetcher, opts)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d pages to process\n", len(urls))

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)

		data, err := p.process(ctx, pageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := p.writer.WriteTree(pageURL, data, p.renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	return nil
}

// process scrapes a single URL and renders it. Markdown output of a page
// without recipe data falls back to the page's main content.
func (p *pipeline) process(ctx context.Context, rawURL string) ([]byte, error) {
	recipe, result, err := p.service.ScrapePage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if _, isMarkdown := p.renderer.(*render.MarkdownRenderer); isMarkdown && !recipe.HasData() {
		logger.Info("no recipe data, exporting main content", "url", rawURL)
		return p.mainContent(recipe, result.HTML)
	}

	data, err := p.renderer.Render(recipe)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

func (p *pipeline) mainContent(recipe *core.Recipe, html string) ([]byte, error) {
	content, err := extract.MainContent(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	md, err := p.markdown.Normalize(content)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return render.MainContentMarkdown(recipe, md), nil
}

// validateFlags checks that exactly one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON, flagYAML} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, --json, or --yaml")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	if flagMaxPages <= 0 {
		return fmt.Errorf("--max_pages must be positive")
	}
	if flagLimit < 0 {
		return fmt.Errorf("--limit cannot be negative")
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagYAML:
		return render.NewYAMLRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
