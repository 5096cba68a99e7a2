// Package model defines the core data structures for fxui.
package model

import (
	"strings"
)

// Default currency pair selected after the catalog loads.
const (
	DefaultFromCode = "EUR"
	DefaultToCode   = "USD"
)

// Currency is a single entry of the currency catalog.
type Currency struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Label returns the picker label, e.g. "EUR - Euro".
func (c Currency) Label() string {
	return c.Code + " - " + c.Name
}

// Selection is the currently chosen source and target currency codes.
type Selection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Swap returns the selection with source and target exchanged.
func (s Selection) Swap() Selection {
	return Selection{From: s.To, To: s.From}
}

// IsZero reports whether neither side has been selected.
func (s Selection) IsZero() bool {
	return s.From == "" && s.To == ""
}

// Catalog is the ordered set of currencies available for conversion.
// Order is the order returned by the rates source. A Catalog is never
// mutated after construction.
type Catalog struct {
	currencies []Currency
	index      map[string]int
}

// NewCatalog builds a catalog from currencies, keeping source order.
// Codes are normalized to upper case; the first occurrence of a
// duplicate code wins.
func NewCatalog(currencies []Currency) *Catalog {
	c := &Catalog{
		currencies: make([]Currency, 0, len(currencies)),
		index:      make(map[string]int, len(currencies)),
	}

	for _, cur := range currencies {
		code := strings.ToUpper(strings.TrimSpace(cur.Code))
		if code == "" {
			continue
		}
		if _, exists := c.index[code]; exists {
			continue
		}
		c.index[code] = len(c.currencies)
		c.currencies = append(c.currencies, Currency{Code: code, Name: cur.Name})
	}

	return c
}

// All returns a copy of the catalog entries in source order.
func (c *Catalog) All() []Currency {
	if c == nil {
		return nil
	}
	out := make([]Currency, len(c.currencies))
	copy(out, c.currencies)
	return out
}

// Len returns the number of currencies.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.currencies)
}

// At returns the currency at position i (0-based).
func (c *Catalog) At(i int) (Currency, bool) {
	if c == nil || i < 0 || i >= len(c.currencies) {
		return Currency{}, false
	}
	return c.currencies[i], true
}

// IndexOf returns the position of code, or -1.
func (c *Catalog) IndexOf(code string) int {
	if c == nil {
		return -1
	}
	if i, ok := c.index[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return i
	}
	return -1
}

// Contains reports whether code is in the catalog (case-insensitive).
func (c *Catalog) Contains(code string) bool {
	return c.IndexOf(code) >= 0
}

// Lookup returns the currency for code (case-insensitive).
func (c *Catalog) Lookup(code string) (Currency, bool) {
	return c.At(c.IndexOf(code))
}

// Codes returns the currency codes in source order.
func (c *Catalog) Codes() []string {
	if c == nil {
		return nil
	}
	codes := make([]string, len(c.currencies))
	for i, cur := range c.currencies {
		codes[i] = cur.Code
	}
	return codes
}

// DefaultPair resolves the initial selection.
//
// Each preferred code is used when present in the catalog. A side whose
// preferred code is missing falls back to the first entry that differs
// from the other side, or to the only entry of a single-currency catalog.
// Returns false for an empty catalog.
func (c *Catalog) DefaultPair(preferFrom, preferTo string) (Selection, bool) {
	if c.Len() == 0 {
		return Selection{}, false
	}

	var sel Selection
	if cur, ok := c.Lookup(preferFrom); ok {
		sel.From = cur.Code
	}
	if cur, ok := c.Lookup(preferTo); ok {
		sel.To = cur.Code
	}

	if sel.From == "" {
		sel.From = c.firstExcept(sel.To)
	}
	if sel.To == "" {
		sel.To = c.firstExcept(sel.From)
	}

	return sel, true
}

// firstExcept returns the first code that is not code, falling back to
// the first entry when the catalog holds nothing else.
func (c *Catalog) firstExcept(code string) string {
	for _, cur := range c.currencies {
		if cur.Code != code {
			return cur.Code
		}
	}
	return c.currencies[0].Code
}
