// Package normalize cleans HTML fragments found inside recipe data.
// Text flattens a fragment to a single plain-text line; the Markdown
// normalizer keeps structure for the Markdown export.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// Text strips tags, decodes entities, and collapses whitespace.
// Plain text passes through with only whitespace collapsed.
func Text(fragment string) string {
	if strings.ContainsAny(fragment, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err == nil {
			doc.Find("br").ReplaceWithHtml(" ")
			doc.Find("p, li, div, h1, h2, h3, h4, h5, h6").AppendHtml(" ")
			fragment = doc.Text()
		}
	}
	return strings.Join(strings.Fields(fragment), " ")
}

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
