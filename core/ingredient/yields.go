package ingredient

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// digitRun matches decimal digits in any script, e.g. "4" or "٤".
var digitRun = regexp.MustCompile(`\p{Nd}+`)

// LeadingNumber returns the first run of decimal digits in text, so
// "4 servings" gives "4". Empty input, the NotAvailable marker, and text
// without digits all give NotAvailable.
func LeadingNumber(text string) string {
	if text == "" || text == core.NotAvailable {
		return core.NotAvailable
	}
	if n := digitRun.FindString(strings.TrimSpace(text)); n != "" {
		return n
	}
	return core.NotAvailable
}

// NormalizeYield is LeadingNumber for decoded JSON values: numbers and
// lists are rendered as text first, and zero values count as absent.
func NormalizeYield(v any) string {
	if isEmptyValue(v) {
		return core.NotAvailable
	}
	if s, ok := v.(string); ok {
		return LeadingNumber(s)
	}
	return LeadingNumber(fmt.Sprint(v))
}

// isEmptyValue covers the shapes encoding/json produces plus plain Go
// numbers.
func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}
