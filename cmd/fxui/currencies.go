package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/fxui/internal/core"
	"github.com/jmylchreest/fxui/internal/model"
)

var currenciesOpts struct {
	// Filter options
	search string

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format    string
	template  string
	showIndex bool
}

var currenciesCmd = &cobra.Command{
	Use:     "currencies",
	Aliases: []string{"list"},
	Short:   "List supported currencies",
	Long: `List the currencies supported by the exchange rate service.

Currencies are listed in the order the service returns them unless a sort
field is given.

Examples:
  # List all currencies
  fxui currencies

  # Find currencies by code or name
  fxui currencies --search dollar

  # Show indexes usable with 'fxui convert'
  fxui currencies --index

  # Sort by name, descending
  fxui currencies --sort name --order desc

  # Output as YAML
  fxui currencies --format yaml`,
	Args: cobra.NoArgs,
	RunE: runCurrencies,
}

func init() {
	rootCmd.AddCommand(currenciesCmd)

	currenciesCmd.Flags().StringVarP(&currenciesOpts.search, "search", "s", "",
		"Only show currencies whose code or name contains this text")
	defaults := core.DefaultSortOptions()
	currenciesCmd.Flags().StringVar(&currenciesOpts.sortBy, "sort", string(defaults.Field),
		"Sort field (source, code, name)")
	currenciesCmd.Flags().StringVar(&currenciesOpts.sortOrder, "order", string(defaults.Order),
		"Sort order (asc, desc)")
	currenciesCmd.Flags().StringVarP(&currenciesOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, template; default from config)")
	currenciesCmd.Flags().StringVar(&currenciesOpts.template, "template", "",
		"Go template for each currency (fields: Index, Code, Name, Label)")
	currenciesCmd.Flags().BoolVarP(&currenciesOpts.showIndex, "index", "i", false,
		"Prefix each currency with its catalog index, usable with 'fxui convert'")
}

func runCurrencies(cmd *cobra.Command, args []string) error {
	source, err := newSource()
	if err != nil {
		return err
	}

	fetched, err := source.Currencies(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch currencies: %w", err)
	}

	// Same normalized catalog 'fxui convert' resolves indexes against
	currencies := model.NewCatalog(fetched).All()
	indexes := core.IndexMap(currencies)

	formatter, err := newFormatter(currenciesOpts.format, currenciesOpts.template, currenciesOpts.showIndex, indexes)
	if err != nil {
		return err
	}

	currencies = core.Search(currencies, currenciesOpts.search)
	core.Sort(currencies, core.SortOptions{
		Field: core.ParseSortField(currenciesOpts.sortBy),
		Order: core.ParseSortOrder(currenciesOpts.sortOrder),
	})

	logger.Debug("listing currencies", "count", len(currencies))

	return formatter.FormatCurrencies(os.Stdout, currencies)
}
