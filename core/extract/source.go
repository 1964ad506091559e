package extract

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/normalize"
)

// Source answers field lookups against one page's recipe data.
type Source struct {
	recipe map[string]any // nil when the page has no recipe data
	meta   pageMeta
}

// value returns the raw value stored under the first present key.
func (s *Source) value(keys ...string) (any, error) {
	if s.recipe == nil {
		return nil, core.ErrNoSchema
	}
	for _, k := range keys {
		if v, ok := s.recipe[k]; ok && !isBlank(v) {
			return v, nil
		}
	}
	return nil, core.ErrNotSupported
}

func (s *Source) text(keys ...string) (string, error) {
	v, err := s.value(keys...)
	if err != nil {
		return "", err
	}
	if t := joinText(v); t != "" {
		return t, nil
	}
	return "", core.ErrNotSupported
}

// withFallback returns the recipe field, or the page metadata value when
// the recipe lacks it.
func (s *Source) withFallback(fallback string, keys ...string) (string, error) {
	t, err := s.text(keys...)
	if err == nil {
		return t, nil
	}
	if fallback != "" {
		return normalize.Text(fallback), nil
	}
	return "", err
}

func (s *Source) Title() (string, error) {
	return s.withFallback(s.meta.title, "name", "headline")
}

func (s *Source) Description() (string, error) {
	return s.withFallback(s.meta.description, "description")
}

func (s *Source) Image() (string, error) {
	v, err := s.value("image", "thumbnailUrl")
	if err == nil {
		if u := imageURL(v); u != "" {
			return u, nil
		}
		err = core.ErrNotSupported
	}
	if s.meta.image != "" {
		return s.meta.image, nil
	}
	return "", err
}

func (s *Source) Author() (string, error) { return s.text("author", "creator") }
func (s *Source) Category() (string, error) { return s.text("recipeCategory") }
func (s *Source) Cuisine() (string, error) { return s.text("recipeCuisine") }

func (s *Source) CookTime() (core.Minutes, error) { return s.minutes("cookTime") }
func (s *Source) PrepTime() (core.Minutes, error) { return s.minutes("prepTime") }

// TotalTime falls back to prep plus cook time when the page omits it.
func (s *Source) TotalTime() (core.Minutes, error) {
	total, err := s.minutes("totalTime")
	if !errors.Is(err, core.ErrNotSupported) {
		return total, err
	}

	prep, perr := s.minutes("prepTime")
	cook, cerr := s.minutes("cookTime")
	switch {
	case perr == nil && cerr == nil:
		return prep + cook, nil
	case perr == nil:
		return prep, nil
	case cerr == nil:
		return cook, nil
	}
	return core.MinutesNA, core.ErrNotSupported
}

func (s *Source) minutes(key string) (core.Minutes, error) {
	v, err := s.value(key)
	if err != nil {
		return core.MinutesNA, err
	}
	return parseMinutes(v)
}

// Yields returns the first yield value as text.
func (s *Source) Yields() (string, error) {
	v, err := s.value("recipeYield", "yield")
	if err != nil {
		return "", err
	}
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if t := scalarText(item); t != "" {
				return t, nil
			}
		}
		return "", core.ErrNotSupported
	}
	if t := scalarText(v); t != "" {
		return t, nil
	}
	return "", core.ErrNotSupported
}

// Ingredients returns the ingredient lines in page order. String entries
// are cleaned; other values are passed through untouched.
func (s *Source) Ingredients() ([]any, error) {
	v, err := s.value("recipeIngredient", "ingredients")
	if err != nil {
		return nil, err
	}

	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}
	out := make([]any, 0, len(list))
	for _, item := range list {
		if str, isStr := item.(string); isStr {
			str = normalize.Text(str)
			if str == "" {
				continue
			}
			item = str
		}
		out = append(out, item)
	}
	return out, nil
}

// Instructions flattens strings, HowToStep and HowToSection nodes into one
// line per step.
func (s *Source) Instructions() (string, error) {
	v, err := s.value("recipeInstructions")
	if err != nil {
		return "", err
	}
	lines := instructionLines(v, nil)
	if len(lines) == 0 {
		return "", core.ErrNotSupported
	}
	return strings.Join(lines, "\n"), nil
}

func instructionLines(v any, lines []string) []string {
	switch x := v.(type) {
	case string:
		if t := normalize.Text(x); t != "" {
			lines = append(lines, t)
		}
	case []any:
		for _, item := range x {
			lines = instructionLines(item, lines)
		}
	case map[string]any:
		if items, ok := x["itemListElement"]; ok {
			return instructionLines(items, lines)
		}
		for _, key := range []string{"text", "name"} {
			if t, ok := x[key].(string); ok {
				return instructionLines(t, lines)
			}
		}
	}
	return lines
}

// joinText renders a value as display text: lists are joined with ", "
// and objects contribute their name.
func joinText(v any) string {
	if list, ok := v.([]any); ok {
		var parts []string
		for _, item := range list {
			if t := scalarText(item); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, ", ")
	}
	return scalarText(v)
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return normalize.Text(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case map[string]any:
		for _, key := range []string{"name", "@value", "text"} {
			if t, ok := x[key].(string); ok {
				return normalize.Text(t)
			}
		}
	}
	return ""
}

func imageURL(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case []any:
		for _, item := range x {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	case map[string]any:
		for _, key := range []string{"url", "contentUrl", "@id"} {
			if u, ok := x[key].(string); ok && u != "" {
				return strings.TrimSpace(u)
			}
		}
	}
	return ""
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	}
	return false
}
