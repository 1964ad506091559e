// Package render — YAML renderer.
// Same fields as the JSON payload, for recipe collections kept as text files.
package render

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// YAMLRenderer produces block-style YAML from a Recipe.
type YAMLRenderer struct{}

// NewYAMLRenderer creates a YAMLRenderer.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Render marshals the recipe.
func (r *YAMLRenderer) Render(recipe *core.Recipe) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(recipe, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for YAML output.
func (r *YAMLRenderer) Extension() string {
	return ".yaml"
}
