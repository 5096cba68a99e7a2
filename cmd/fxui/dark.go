package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var darkOpts struct {
	quiet bool // Suppress output, return exit code only
}

// darkCmd represents the dark command group.
var darkCmd = &cobra.Command{
	Use:   "dark",
	Short: "Manage dark mode",
	Long: `Manage the dark mode preference used by the fxui TUI.

The preference is stored in the state file and picked up immediately by
any running TUI.

Use 'fxui dark status' to check the current state.
Use 'fxui dark on' to enable dark mode.
Use 'fxui dark off' to disable dark mode.
Use 'fxui dark toggle' to toggle dark mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to showing status
		return darkStatusRun(cmd, args)
	},
}

// darkOnCmd enables dark mode.
var darkOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable dark mode",
	RunE:  darkOnRun,
}

// darkOffCmd disables dark mode.
var darkOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable dark mode",
	RunE:  darkOffRun,
}

// darkToggleCmd toggles dark mode.
var darkToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle dark mode",
	RunE:  darkToggleRun,
}

// darkStatusCmd shows dark mode status.
var darkStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dark mode status",
	RunE:  darkStatusRun,
}

func init() {
	// Add subcommands
	darkCmd.AddCommand(darkOnCmd)
	darkCmd.AddCommand(darkOffCmd)
	darkCmd.AddCommand(darkToggleCmd)
	darkCmd.AddCommand(darkStatusCmd)

	// Add flags to all subcommands
	for _, cmd := range []*cobra.Command{darkCmd, darkOnCmd, darkOffCmd, darkToggleCmd, darkStatusCmd} {
		cmd.Flags().BoolVarP(&darkOpts.quiet, "quiet", "q", false,
			"Suppress output, return exit code only (0=off, 1=on)")
	}

	// Add to root
	rootCmd.AddCommand(darkCmd)
}

func darkOnRun(cmd *cobra.Command, args []string) error {
	return setDark(true)
}

func darkOffRun(cmd *cobra.Command, args []string) error {
	return setDark(false)
}

func setDark(enabled bool) error {
	if err := prefStore.SetDarkMode(enabled); err != nil {
		if !darkOpts.quiet {
			fmt.Fprintf(os.Stderr, "Failed to save preference: %v\n", err)
		}
		return err
	}

	printDark(enabled)
	exitForDark(enabled)
	return nil
}

func darkToggleRun(cmd *cobra.Command, args []string) error {
	enabled, err := prefStore.ToggleDarkMode()
	if err != nil {
		if !darkOpts.quiet {
			fmt.Fprintf(os.Stderr, "Failed to save preference: %v\n", err)
		}
		return err
	}

	printDark(enabled)
	exitForDark(enabled)
	return nil
}

func darkStatusRun(cmd *cobra.Command, args []string) error {
	enabled := prefStore.DarkMode()
	printDark(enabled)

	if !darkOpts.quiet {
		if mod := prefStore.ModTime(); mod > 0 {
			fmt.Printf("  Last change: %s\n", formatChangeTime(mod))
		}
		fmt.Printf("  State file: %s\n", prefStore.Path())
	}

	exitForDark(enabled)
	return nil
}

func printDark(enabled bool) {
	if darkOpts.quiet {
		return
	}
	if enabled {
		fmt.Println("Dark mode: enabled")
	} else {
		fmt.Println("Dark mode: disabled")
	}
}

// exitForDark exits with code 1 when dark mode is on.
func exitForDark(enabled bool) {
	if enabled {
		os.Exit(1)
	}
}

// formatChangeTime formats a unix timestamp as a human-readable relative time.
func formatChangeTime(timestamp int64) string {
	return humanize.Time(time.Unix(timestamp, 0))
}
