// Package render provides output renderers for scraped recipes.
// This file implements the Markdown renderer.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// MarkdownRenderer writes a recipe as a Markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render lays out title, metadata, ingredients, then numbered steps.
// Fields that are not available are left out.
func (r *MarkdownRenderer) Render(recipe *core.Recipe) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", orDefault(recipe.Title, "Untitled recipe"))
	if available(recipe.Description) {
		fmt.Fprintf(&b, "%s\n\n", recipe.Description)
	}
	if available(recipe.Image) {
		fmt.Fprintf(&b, "![%s](%s)\n\n", orDefault(recipe.Title, "image"), recipe.Image)
	}

	for _, line := range detailLines(recipe) {
		fmt.Fprintf(&b, "- **%s:** %s\n", line[0], line[1])
	}
	fmt.Fprintf(&b, "- **Source:** %s\n\n", recipe.URL)

	if len(recipe.Ingredients) > 0 {
		b.WriteString("## Ingredients\n\n")
		for _, ing := range recipe.Ingredients {
			b.WriteString("- " + ingredientLine(ing) + "\n")
		}
		b.WriteString("\n")
	}

	if steps := instructionSteps(recipe); len(steps) > 0 {
		b.WriteString("## Instructions\n\n")
		for i, step := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// MainContentMarkdown renders page content for pages without recipe data.
func MainContentMarkdown(recipe *core.Recipe, markdown string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orDefault(recipe.Title, recipe.URL))
	fmt.Fprintf(&b, "_No structured recipe found. Source: %s_\n\n", recipe.URL)
	b.WriteString(strings.TrimSpace(markdown))
	b.WriteString("\n")
	return []byte(b.String())
}
