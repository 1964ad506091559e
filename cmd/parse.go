// Package cmd — parse command.
// Runs ingredient lines (or yield strings) through the normalizers and
// prints the result as JSON.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/core/ingredient"
)

var (
	flagYield   bool
	flagExplain bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <line>...",
	Short: "Split ingredient lines into quantity and name",
	Long: `Parse applies the ingredient rules to each argument and prints a JSON
array of {"quantity", "name"} objects in input order.

Examples:
  recipepipe parse "200 g flour" "salt to taste"
  recipepipe parse --explain "sale q.b."
  recipepipe parse --yield "4 servings"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&flagYield, "yield", false, "Normalize yield strings instead of ingredients")
	parseCmd.Flags().BoolVar(&flagExplain, "explain", false, "Include the rule that matched each line")
}

// parsedLine is an ingredient with the rule that produced it.
type parsedLine struct {
	Quantity string `json:"quantity"`
	Name     string `json:"name"`
	Rule     string `json:"rule,omitempty"`
}

func runParse(w io.Writer, args []string) error {
	var out any
	switch {
	case flagYield:
		yields := make([]string, len(args))
		for i, arg := range args {
			yields[i] = ingredient.NormalizeYield(arg)
		}
		out = yields
	default:
		lines := make([]parsedLine, len(args))
		for i, arg := range args {
			ing, rule := ingredient.Explain(arg)
			lines[i] = parsedLine{Quantity: ing.Quantity, Name: ing.Name}
			if flagExplain {
				lines[i].Rule = rule
			}
		}
		out = lines
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
