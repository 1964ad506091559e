// Package ingredient splits free-text ingredient lines into a quantity and a
// name, and reduces yield strings to a bare number.
//
// The unit vocabulary and the rule table are compiled once at package init
// and never mutated, so every function here is safe for concurrent use.
package ingredient

import "strings"

// UnitClass groups unit tokens of one kind. Tokens are regexp fragments;
// most carry an optional plural suffix.
type UnitClass struct {
	Name    string
	Special bool // a quantity that needs no numeral, like "to taste"
	Tokens  []string
}

// vocabulary lists English and Italian units. Longer tokens come before
// their prefixes so the alternation prefers the full word.
var vocabulary = []UnitClass{
	{
		Name: "volume",
		Tokens: []string{
			`cups?`, `tablespoons?`, `tbsps?`, `teaspoons?`, `tsps?`,
			`tazz[ae]`, `cucchiaini?`, `cucchiai[oi]?`,
		},
	},
	{
		Name: "mass",
		Tokens: []string{
			`kilograms?`, `milligrams?`, `grams?`, `grammi`, `kg`, `mg`, `g`,
			`ounces?`, `oz`, `pounds?`, `lbs?`,
		},
	},
	{
		Name: "liquid",
		Tokens: []string{
			`milliliters?`, `millilitres?`, `liters?`, `litres?`, `litri`, `litro`,
			`ml`, `cl`, `dl`, `l`,
		},
	},
	{
		Name: "count",
		Tokens: []string{
			`pieces?`, `slices?`, `cloves?`, `units?`,
			`pezz[oi]`, `fett[ae]`, `spicchi[oi]?`, `foglie?`, `ramett[oi]?`,
			`unità`, `unitá`, `pz\.?`, `n\.?`,
		},
	},
	{
		Name:    "special",
		Special: true,
		Tokens: []string{
			`q\.?\s?b\.?`, `to taste`,
			`a pinch`, `pinch(?:es)?`, `pizzic[oi]`,
			`a handful`, `handfuls?`, `manciat[ae]`,
			`a bunch`, `bunch(?:es)?`, `mazz[oi]`,
		},
	},
}

// Vocabulary returns a copy of the unit table.
func Vocabulary() []UnitClass {
	out := make([]UnitClass, len(vocabulary))
	for i, c := range vocabulary {
		c.Tokens = append([]string(nil), c.Tokens...)
		out[i] = c
	}
	return out
}

// unitAlternation joins the tokens of the selected classes into one
// alternation body. With specialOnly set, only special classes are used.
func unitAlternation(specialOnly bool) string {
	var parts []string
	for _, c := range vocabulary {
		if specialOnly && !c.Special {
			continue
		}
		parts = append(parts, c.Tokens...)
	}
	return strings.Join(parts, "|")
}
