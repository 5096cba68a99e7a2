// Package rates provides clients for exchange rate services.
package rates

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmylchreest/fxui/internal/model"
)

// Source fetches the currency catalog and performs conversions.
type Source interface {
	// Name returns the source identifier (e.g., "frankfurter").
	Name() string

	// Currencies returns the supported currencies in the order the service lists them.
	Currencies(ctx context.Context) ([]model.Currency, error)

	// Convert converts req.Amount from req.From into req.To.
	Convert(ctx context.Context, req model.ConversionRequest) (*model.ConversionResult, error)
}

// Options configures a Source.
type Options struct {
	BaseURL           string
	Timeout           time.Duration // Per-request timeout (0 = none)
	RequestsPerSecond float64       // Outbound throttle (0 = unlimited)
	Burst             int
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// NewSource creates a Source by name.
func NewSource(name string, opts Options) (Source, error) {
	switch name {
	case "", "frankfurter":
		return NewFrankfurterSource(opts), nil
	default:
		return nil, fmt.Errorf("unknown rates source %q", name)
	}
}
