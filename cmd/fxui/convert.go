package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/fxui/internal/core"
	"github.com/jmylchreest/fxui/internal/model"
)

var convertOpts struct {
	format   string
	template string
}

var convertCmd = &cobra.Command{
	Use:   "convert <amount> [from] [to]",
	Short: "Convert an amount between currencies",
	Long: `Convert an amount between two currencies and print the result.

Currencies can be given as codes (case-insensitive) or as the 1-based index
shown by 'fxui currencies --index' in the default order. Missing currencies default to the
configured pair (EUR and USD unless changed).

Examples:
  # Convert 100 EUR to USD
  fxui convert 100

  # Convert between explicit currencies
  fxui convert 250 gbp jpy

  # Output as JSON
  fxui convert 100 EUR CHF --format json

  # Only the converted value
  fxui convert 100 --format template --template '{{.Result}}'`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, template; default from config)")
	convertCmd.Flags().StringVar(&convertOpts.template, "template", "",
		"Go template for output (fields: Amount, From, To, Result, Date, Text)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(convertOpts.format, convertOpts.template, false, nil)
	if err != nil {
		return err
	}

	// Validate before any request is made
	amount := args[0]
	if _, err := model.ParseAmount(amount); err != nil {
		return err
	}

	source, err := newSource()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	loader := core.NewCatalogLoader(source, cfg.DefaultSelection(), logger)
	state, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch currencies: %w", err)
	}

	sel := state.Selection
	currencies := state.Catalog.All()
	if len(args) > 1 {
		c := core.Resolve(currencies, args[1])
		if c == nil {
			return unknownCurrencyError(args[1], state.Catalog)
		}
		sel.From = c.Code
	}
	if len(args) > 2 {
		c := core.Resolve(currencies, args[2])
		if c == nil {
			return unknownCurrencyError(args[2], state.Catalog)
		}
		sel.To = c.Code
	}

	logger.Debug("converting", "amount", amount, "from", sel.From, "to", sel.To)

	result, err := core.NewConverter(source).Convert(ctx, amount, sel)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	return formatter.FormatConversion(os.Stdout, result)
}

// unknownCurrencyError lists the catalog codes so the user can pick one.
func unknownCurrencyError(arg string, catalog *model.Catalog) error {
	return fmt.Errorf("unknown currency: %s (available: %s)", arg, strings.Join(catalog.Codes(), ", "))
}
