package render

import (
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

func available(s string) bool {
	return s != "" && s != core.NotAvailable
}

func orDefault(s, def string) string {
	if available(s) {
		return s
	}
	return def
}

// detailLines lists label/value pairs for the metadata block.
func detailLines(r *core.Recipe) [][2]string {
	var lines [][2]string
	add := func(label, value string) {
		if available(value) {
			lines = append(lines, [2]string{label, value})
		}
	}
	addTime := func(label string, m core.Minutes) {
		if m.Valid() {
			add(label, m.String()+" min")
		}
	}

	add("Author", r.Author)
	add("Servings", r.Yields)
	addTime("Prep time", r.PrepTime)
	addTime("Cook time", r.CookTime)
	addTime("Total time", r.TotalTime)
	add("Category", r.Category)
	add("Cuisine", r.Cuisine)
	return lines
}

func ingredientLine(ing core.Ingredient) string {
	if ing.Quantity == "" {
		return ing.Name
	}
	return ing.Quantity + " " + ing.Name
}

func instructionSteps(r *core.Recipe) []string {
	if !available(r.Instructions) {
		return nil
	}
	var steps []string
	for _, line := range strings.Split(r.Instructions, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
