package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/fxui/internal/store"
	"github.com/jmylchreest/fxui/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive converter",
	Long: `Launch the interactive terminal currency converter.

The TUI provides:
  - Amount entry with validation
  - Filterable source and target currency pickers
  - Live conversion with the rate date
  - Dark mode, remembered between runs
  - Copy result to clipboard

Key bindings:
  tab/shift+tab  Move between fields
  enter          Convert / open currency picker
  ↑/↓            Step through currencies on a currency field
  ctrl+s         Swap currencies
  ctrl+t         Toggle dark mode
  ctrl+r         Reload currencies
  ctrl+y         Copy result to clipboard
  f1             Show help
  ctrl+c         Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	source, err := newSource()
	if err != nil {
		return err
	}

	// Pick up preference changes made by other fxui processes
	watcher, err := store.NewFileWatcher(prefStore)
	if err != nil {
		logger.Warn("failed to create preference watcher", "error", err)
		watcher = nil
	}

	return tui.Run(tui.RunOptions{
		Config:  cfg,
		Source:  source,
		Prefs:   prefStore,
		Logger:  logger,
		Watcher: watcher,
	})
}
