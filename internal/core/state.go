package core

import (
	"sync"

	"github.com/jmylchreest/fxui/internal/model"
)

// AppState holds the state shared by the UI handlers: the loaded
// catalog, the current selection, the display preference and the last
// conversion result.
type AppState struct {
	mu        sync.RWMutex
	catalog   *model.Catalog
	selection model.Selection
	darkMode  bool
	result    *model.ConversionResult
}

// NewAppState creates an empty state with the given initial preference.
func NewAppState(darkMode bool) *AppState {
	return &AppState{darkMode: darkMode}
}

// Catalog returns the loaded catalog, or nil before the first load.
func (s *AppState) Catalog() *model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// CatalogLoaded reports whether a non-empty catalog is available.
func (s *AppState) CatalogLoaded() bool {
	return s.Catalog().Len() > 0
}

// ApplyCatalog stores a freshly loaded catalog and its default selection.
// A previous selection is kept when both codes still exist.
func (s *AppState) ApplyCatalog(cs *CatalogState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.selection
	s.catalog = cs.Catalog
	s.selection = cs.Selection
	if !prev.IsZero() && cs.Catalog.Contains(prev.From) && cs.Catalog.Contains(prev.To) {
		s.selection = prev
	}
}

// Selection returns the current currency pair.
func (s *AppState) Selection() model.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// ConversionSelection returns the pair to convert between.
// Fails with model.ErrCatalogNotLoaded before a catalog is applied.
func (s *AppState) ConversionSelection() (model.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog.Len() == 0 {
		return model.Selection{}, model.ErrCatalogNotLoaded
	}
	return s.selection, nil
}

// Select sets one side of the selection. Codes missing from the catalog are ignored.
func (s *AppState) Select(from bool, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.catalog.Lookup(code)
	if !ok {
		return false
	}
	if from {
		s.selection.From = cur.Code
	} else {
		s.selection.To = cur.Code
	}
	return true
}

// Swap exchanges source and target and returns the new selection.
func (s *AppState) Swap() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = s.selection.Swap()
	return s.selection
}

// DarkMode returns the display preference.
func (s *AppState) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// SetDarkMode sets the display preference.
func (s *AppState) SetDarkMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = enabled
}

// Result returns the last applied conversion result.
func (s *AppState) Result() *model.ConversionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// SetResult records the last conversion result.
func (s *AppState) SetResult(r *model.ConversionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
}
