// Package extract implements the Extractor interface.
// It reads schema.org Recipe data from a page, preferring JSON-LD blocks and
// falling back to microdata, and exposes each field through core.RecipeSource.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// Compile-time interface checks.
var (
	_ core.Extractor    = (*SchemaExtractor)(nil)
	_ core.RecipeSource = (*Source)(nil)
)

// SchemaExtractor finds structured recipe data in HTML pages.
type SchemaExtractor struct{}

// New creates a SchemaExtractor.
func New() *SchemaExtractor {
	return &SchemaExtractor{}
}

// Extract parses the page and returns a Source over its recipe data.
// A page without recipe data still yields a Source; its fields report
// core.ErrNoSchema, apart from the few that page metadata can fill.
func (e *SchemaExtractor) Extract(html string) (core.RecipeSource, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	recipe := fromJSONLD(doc)
	if recipe == nil {
		recipe = fromMicrodata(doc)
	}

	return &Source{
		recipe: recipe,
		meta:   readPageMeta(doc),
	}, nil
}

// pageMeta holds the generic page metadata used when the recipe data
// lacks a title, image, or description.
type pageMeta struct {
	title       string
	image       string
	description string
}

func readPageMeta(doc *goquery.Document) pageMeta {
	metaContent := func(sel string) string {
		v, _ := doc.Find(sel).First().Attr("content")
		return strings.TrimSpace(v)
	}

	m := pageMeta{
		title:       metaContent(`meta[property="og:title"]`),
		image:       metaContent(`meta[property="og:image"]`),
		description: metaContent(`meta[name="description"]`),
	}
	if m.title == "" {
		m.title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if m.description == "" {
		m.description = metaContent(`meta[property="og:description"]`)
	}
	return m
}

// fromJSONLD returns the first Recipe node found in the page's JSON-LD
// blocks, or nil.
func fromJSONLD(doc *goquery.Document) map[string]any {
	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		// Raw newlines inside strings are invalid JSON but common in the wild.
		raw := strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s.Text())

		var v any
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
			return true
		}
		found = findRecipe(v)
		return found == nil
	})
	return found
}

// findRecipe walks arrays, @graph containers and mainEntity links looking
// for a node typed Recipe.
func findRecipe(v any) map[string]any {
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if r := findRecipe(item); r != nil {
				return r
			}
		}
	case map[string]any:
		if isRecipeType(x["@type"]) {
			return x
		}
		for _, key := range []string{"@graph", "mainEntity", "mainEntityOfPage"} {
			if inner, ok := x[key]; ok {
				if r := findRecipe(inner); r != nil {
					return r
				}
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch x := t.(type) {
	case string:
		return x == "Recipe" || strings.HasSuffix(x, "/Recipe") || strings.HasSuffix(x, ":Recipe")
	case []any:
		for _, item := range x {
			if isRecipeType(item) {
				return true
			}
		}
	}
	return false
}

// fromMicrodata builds a JSON-LD shaped map from an itemscope typed Recipe.
func fromMicrodata(doc *goquery.Document) map[string]any {
	root := doc.Find(`[itemscope][itemtype*="schema.org/Recipe"]`).First()
	if root.Length() == 0 {
		return nil
	}

	item := map[string]any{"@type": "Recipe"}
	root.Find("[itemprop]").Each(func(_ int, s *goquery.Selection) {
		// Properties of nested items belong to those items.
		if owner := s.Parent().Closest("[itemscope]"); !owner.IsSelection(root) {
			return
		}
		val := itempropValue(s)
		for _, name := range strings.Fields(s.AttrOr("itemprop", "")) {
			addProp(item, name, val)
		}
	})
	return item
}

func itempropValue(s *goquery.Selection) any {
	if _, nested := s.Attr("itemscope"); nested {
		name := s.Find(`[itemprop="name"]`).First()
		if name.Length() > 0 {
			return map[string]any{"name": itempropValue(name)}
		}
		return map[string]any{"name": strings.TrimSpace(s.Text())}
	}

	var attr string
	switch goquery.NodeName(s) {
	case "meta":
		attr = "content"
	case "img", "audio", "video", "source", "embed", "iframe":
		attr = "src"
	case "a", "link", "area":
		attr = "href"
	case "time":
		attr = "datetime"
	case "data", "meter":
		attr = "value"
	default:
		attr = "content"
	}
	if v, ok := s.Attr(attr); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(s.Text())
}

// addProp sets name on item, turning repeated properties into a list.
func addProp(item map[string]any, name string, val any) {
	existing, ok := item[name]
	if !ok {
		item[name] = val
		return
	}
	if list, isList := existing.([]any); isList {
		item[name] = append(list, val)
		return
	}
	item[name] = []any{existing, val}
}
