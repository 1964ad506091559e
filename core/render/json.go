// Package render — JSON renderer.
// Produces the same payload the HTTP API returns for a scraped recipe.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// JSONRenderer produces indented JSON output from a Recipe.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the recipe.
func (r *JSONRenderer) Render(recipe *core.Recipe) ([]byte, error) {
	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
