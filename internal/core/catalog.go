// Package core provides the catalog loading and conversion workflows.
package core

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/fxui/internal/adapter/rates"
	"github.com/jmylchreest/fxui/internal/model"
)

// CatalogState is the outcome of a successful catalog load.
type CatalogState struct {
	Catalog   *model.Catalog
	Selection model.Selection
}

// CatalogLoader fetches the currency catalog and resolves the default pair.
type CatalogLoader struct {
	source    rates.Source
	preferred model.Selection
	logger    *slog.Logger
}

// NewCatalogLoader creates a loader. preferred is the pair selected after
// loading when both codes exist; see model.Catalog.DefaultPair.
func NewCatalogLoader(source rates.Source, preferred model.Selection, logger *slog.Logger) *CatalogLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogLoader{source: source, preferred: preferred, logger: logger}
}

// Load fetches the catalog. It is safe to call repeatedly; the same
// response always yields the same catalog and selection.
func (l *CatalogLoader) Load(ctx context.Context) (*CatalogState, error) {
	currencies, err := l.source.Currencies(ctx)
	if err != nil {
		return nil, err
	}

	catalog := model.NewCatalog(currencies)
	sel, ok := catalog.DefaultPair(l.preferred.From, l.preferred.To)
	if !ok {
		return nil, model.ErrEmptyCatalog
	}

	if sel != l.preferred {
		l.logger.Debug("preferred currencies unavailable, using fallback",
			"preferred_from", l.preferred.From, "preferred_to", l.preferred.To,
			"from", sel.From, "to", sel.To)
	}

	return &CatalogState{Catalog: catalog, Selection: sel}, nil
}
