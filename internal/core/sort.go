package core

import (
	"sort"
	"strings"

	"github.com/jmylchreest/fxui/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortBySource SortField = "source" // Order returned by the rates source
	SortByCode   SortField = "code"
	SortByName   SortField = "name"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions keeps the source order.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortBySource,
		Order: SortAsc,
	}
}

// Sort sorts currencies in place based on the provided options.
func Sort(currencies []model.Currency, opts SortOptions) {
	if len(currencies) == 0 {
		return
	}

	if opts.Field == SortBySource {
		if opts.Order == SortDesc {
			for i, j := 0, len(currencies)-1; i < j; i, j = i+1, j-1 {
				currencies[i], currencies[j] = currencies[j], currencies[i]
			}
		}
		return
	}

	sort.SliceStable(currencies, func(i, j int) bool {
		var a, b string
		switch opts.Field {
		case SortByName:
			a, b = strings.ToLower(currencies[i].Name), strings.ToLower(currencies[j].Name)
		default:
			a, b = currencies[i].Code, currencies[j].Code
		}

		if opts.Order == SortDesc {
			return a > b
		}
		return a < b
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "code", "c":
		return SortByCode
	case "name", "n":
		return SortByName
	default:
		return SortBySource
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "d":
		return SortDesc
	default:
		return SortAsc
	}
}
