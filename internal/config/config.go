// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/fxui/internal/model"
)

// AppName is used for XDG directory names.
const AppName = "fxui"

// Default configuration values.
const (
	DefaultAPIBaseURL        = "https://api.frankfurter.app"
	DefaultSource            = "frankfurter"
	DefaultTimeout           = "10s"
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 2
	DefaultAlertDuration     = "4s"
	DefaultFormat            = "plain"
)

// Config represents the fxui configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Defaults  DefaultsConfig  `toml:"defaults"`
	TUI       TUIConfig       `toml:"tui"`
	Output    OutputConfig    `toml:"output"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// APIConfig holds rates source settings.
type APIConfig struct {
	Source            string  `toml:"source" validate:"required,oneof=frankfurter"`
	BaseURL           string  `toml:"base_url" validate:"required,url"`
	Timeout           string  `toml:"timeout" validate:"required,duration"`
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gt=0"`
	Burst             int     `toml:"burst" validate:"gte=1"`
}

// DefaultsConfig holds the currency pair selected after the catalog loads.
type DefaultsConfig struct {
	From string `toml:"from" validate:"omitempty,len=3,alpha"`
	To   string `toml:"to" validate:"omitempty,len=3,alpha"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	AlertDuration string `toml:"alert_duration" validate:"required,duration"`
	ShowHelp      bool   `toml:"show_help"`
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	Format   string `toml:"format" validate:"oneof=plain json yaml template"`
	Template string `toml:"template"` // Used when format is "template"
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Source:            DefaultSource,
			BaseURL:           DefaultAPIBaseURL,
			Timeout:           DefaultTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Defaults: DefaultsConfig{
			From: model.DefaultFromCode,
			To:   model.DefaultToCode,
		},
		TUI: TUIConfig{
			AlertDuration: DefaultAlertDuration,
			ShowHelp:      true,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// StatePath returns the path to the persisted preference file.
func StatePath() string {
	return filepath.Join(DataPath(), "state.json")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("duration", validateDuration); err != nil {
		return err
	}

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validateDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d > 0
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// RequestTimeout returns the parsed API timeout, falling back to the default.
func (c *Config) RequestTimeout() time.Duration {
	return parseDurationOr(c.API.Timeout, DefaultTimeout)
}

// AlertTTL returns how long transient alerts stay visible.
func (c *Config) AlertTTL() time.Duration {
	d := parseDurationOr(c.TUI.AlertDuration, DefaultAlertDuration)
	if d <= 0 {
		return model.DefaultAlertDuration
	}
	return d
}

// DefaultSelection returns the preferred initial currency pair.
func (c *Config) DefaultSelection() model.Selection {
	return model.Selection{From: c.Defaults.From, To: c.Defaults.To}
}

func parseDurationOr(s, fallback string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
