// Package theme provides the light and dark lipgloss styles for the fxui TUI.
// The active theme follows the persisted dark mode preference.
package theme
