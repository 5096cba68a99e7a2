package core

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/fxui/internal/model"
)

// LookupByCode finds a currency by code (case-insensitive).
// Returns nil if not found.
func LookupByCode(currencies []model.Currency, code string) *model.Currency {
	code = strings.TrimSpace(code)
	for i := range currencies {
		if strings.EqualFold(currencies[i].Code, code) {
			return &currencies[i]
		}
	}
	return nil
}

// LookupByIndex finds a currency by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(currencies []model.Currency, index int) *model.Currency {
	idx := index - 1
	if idx < 0 || idx >= len(currencies) {
		return nil
	}
	return &currencies[idx]
}

// Resolve finds a currency by code, or by 1-based index when arg is numeric.
func Resolve(currencies []model.Currency, arg string) *model.Currency {
	if c := LookupByCode(currencies, arg); c != nil {
		return c
	}
	if idx, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		return LookupByIndex(currencies, idx)
	}
	return nil
}

// IndexMap maps each code to its 1-based position in currencies, the
// index Resolve accepts for it.
func IndexMap(currencies []model.Currency) map[string]int {
	m := make(map[string]int, len(currencies))
	for i, c := range currencies {
		if _, ok := m[c.Code]; !ok {
			m[c.Code] = i + 1
		}
	}
	return m
}

// Search returns currencies whose code or name contains term.
// Case-insensitive substring match; an empty term returns the input.
func Search(currencies []model.Currency, term string) []model.Currency {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return currencies
	}

	var result []model.Currency
	for _, c := range currencies {
		if strings.Contains(strings.ToLower(c.Code), term) ||
			strings.Contains(strings.ToLower(c.Name), term) {
			result = append(result, c)
		}
	}

	return result
}
