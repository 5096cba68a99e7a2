package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/fxui/internal/adapter/output"
	"github.com/jmylchreest/fxui/internal/adapter/rates"
	"github.com/jmylchreest/fxui/internal/config"
	"github.com/jmylchreest/fxui/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		stateFile  string
		configPath string
		apiURL     string
	}
	logger *slog.Logger

	// prefStore holds the persisted display preference
	prefStore *store.PreferenceStore
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fxui",
	Short: "Terminal currency converter",
	Long: `fxui converts amounts between currencies using live exchange rates.

Currencies and rates come from the Frankfurter API (https://www.frankfurter.app)
unless another base URL is configured.

Running fxui without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.apiURL != "" {
			cfg.API.BaseURL = strings.TrimRight(globalOpts.apiURL, "/")
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		// Use custom state file path if specified, otherwise use default
		statePath := globalOpts.stateFile
		if statePath == "" {
			if err := config.EnsureDataDir(); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			statePath = config.StatePath()
		}

		prefStore, err = store.NewPreferenceStore(statePath)
		if err != nil {
			return fmt.Errorf("failed to load preferences: %w", err)
		}

		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.stateFile, "state-file", "",
		"Path to preference file (default: ~/.local/share/fxui/state.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/fxui/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.apiURL, "api-url", "",
		"Exchange rate API base URL (overrides config)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newSource creates the configured rates source.
func newSource() (rates.Source, error) {
	return rates.NewSource(cfg.API.Source, rates.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.RequestTimeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Logger:            logger,
	})
}

// newFormatter creates the output formatter, falling back to config defaults.
// indexes, when non-nil, supplies the catalog index printed for each currency.
func newFormatter(format, template string, showIndex bool, indexes map[string]int) (output.Formatter, error) {
	if format == "" {
		format = cfg.Output.Format
	}
	if template == "" {
		template = cfg.Output.Template
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = template
	opts.ShowIndex = showIndex
	opts.Indexes = indexes

	return output.NewFormatter(output.FormatType(strings.ToLower(format)), opts)
}
