package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/fxui/internal/config"
)

var configOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
	Long: `Inspect or create the fxui configuration file.

Without a subcommand, prints the effective configuration as TOML.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(configFilePath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file")

	rootCmd.AddCommand(configCmd)
}

// configFilePath returns the --config path or the default location.
func configFilePath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()
	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
