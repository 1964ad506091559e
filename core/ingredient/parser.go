package ingredient

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// numeral matches one token like "200", "1/2", "1-2", "0,5", "½", or a
// whole number followed by a fraction ("2 1/2", "1 ½"). A second bare
// number is never joined, so "Farina 00 300 g" keeps "00" in the name.
const numeral = `(?:[0-9]+\s+(?:[0-9]+/[0-9]+|[½¼¾⅓⅔⅛⅜⅝⅞])|[0-9½¼¾⅓⅔⅛⅜⅝⅞/\-.,]+)`

// connective is the optional "of" between a unit and the ingredient name.
const connective = `(?:(?:of|di)\s+)?`

// minNameLen is the shortest name a split may leave; anything at or below
// this length means the split consumed too much.
const minNameLen = 2

// Rule is one entry of the matching cascade.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// QuantityGroup and NameGroup index Pattern's submatches.
	QuantityGroup int
	NameGroup     int
}

// rules are tried in order; the first match whose name passes the length
// guard wins. End-anchored rules precede start-anchored ones, and numeric
// rules precede descriptive ones.
var rules = buildRules()

func buildRules() []Rule {
	units := unitAlternation(false)
	special := unitAlternation(true)

	return []Rule{
		{
			Name:          "quantity-at-end",
			Pattern:       regexp.MustCompile(`(?i)^(.+?)\s+(` + numeral + `\s*(?:` + units + `))$`),
			QuantityGroup: 2,
			NameGroup:     1,
		},
		{
			Name:          "special-at-end",
			Pattern:       regexp.MustCompile(`(?i)^(.+?)\s+(` + special + `)$`),
			QuantityGroup: 2,
			NameGroup:     1,
		},
		{
			Name:          "unit-at-start",
			Pattern:       regexp.MustCompile(`(?i)^(` + units + `)\s+` + connective + `(.+)$`),
			QuantityGroup: 1,
			NameGroup:     2,
		},
		{
			Name:          "quantity-at-start",
			Pattern:       regexp.MustCompile(`(?i)^(` + numeral + `\s*(?:` + units + `)?)\s+` + connective + `(.+)$`),
			QuantityGroup: 1,
			NameGroup:     2,
		},
	}
}

// Rules returns the matching cascade in priority order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// FallbackRule names the outcome where no rule split the line.
const FallbackRule = "fallback"

// Parse splits an ingredient line into quantity and name. It never fails:
// a line no rule can split comes back whole as the name.
func Parse(text string) core.Ingredient {
	ing, _ := Explain(text)
	return ing
}

// Explain is Parse that also reports which rule produced the split.
func Explain(text string) (core.Ingredient, string) {
	text = strings.TrimSpace(normalizeSpace(text))
	if text == "" {
		return core.Ingredient{}, FallbackRule
	}

	for _, r := range rules {
		if ing, ok := r.apply(text); ok {
			return ing, r.Name
		}
	}
	return core.Ingredient{Name: text}, FallbackRule
}

// ParseValue parses a decoded JSON value. Anything but a string yields an
// empty Ingredient.
func ParseValue(v any) core.Ingredient {
	s, ok := v.(string)
	if !ok {
		return core.Ingredient{}
	}
	return Parse(s)
}

func (r Rule) apply(text string) (core.Ingredient, bool) {
	m := r.Pattern.FindStringSubmatch(text)
	if m == nil {
		return core.Ingredient{}, false
	}
	name := strings.TrimSpace(m[r.NameGroup])
	if utf8.RuneCountInString(name) <= minNameLen {
		return core.Ingredient{}, false
	}
	return core.Ingredient{
		Quantity: strings.TrimSpace(m[r.QuantityGroup]),
		Name:     name,
	}, true
}

// normalizeSpace maps every Unicode space (NBSP, thin space, tabs) to an
// ASCII space; \s in the patterns matches ASCII only.
func normalizeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}
