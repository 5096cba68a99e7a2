package tui

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/jmylchreest/fxui/internal/config"
)

// copyText copies text to the system clipboard.
// A configured clipboard command takes precedence over auto-detection.
func copyText(text string, cfg *config.Config) error {
	if cfg == nil || cfg.Clipboard.Command == "" {
		if clipboard.Unsupported {
			return fmt.Errorf("no clipboard command available")
		}
		return clipboard.WriteAll(text)
	}

	parts := strings.Fields(cfg.Clipboard.Command)
	if len(parts) == 0 {
		return fmt.Errorf("invalid clipboard command")
	}

	// Execute with text as stdin
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)

	return c.Run()
}
