package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog([]Currency{
		{Code: "AUD", Name: "Australian Dollar"},
		{Code: "EUR", Name: "Euro"},
		{Code: "GBP", Name: "British Pound"},
		{Code: "USD", Name: "US Dollar"},
	})
}

func TestCurrency_Label(t *testing.T) {
	c := Currency{Code: "EUR", Name: "Euro"}
	assert.Equal(t, "EUR - Euro", c.Label())
}

func TestNewCatalog_PreservesOrder(t *testing.T) {
	c := NewCatalog([]Currency{
		{Code: "USD", Name: "US Dollar"},
		{Code: "EUR", Name: "Euro"},
		{Code: "JPY", Name: "Japanese Yen"},
	})

	assert.Equal(t, []string{"USD", "EUR", "JPY"}, c.Codes())
	assert.Equal(t, 3, c.Len())
}

func TestNewCatalog_DeduplicatesAndNormalizes(t *testing.T) {
	c := NewCatalog([]Currency{
		{Code: "eur", Name: "Euro"},
		{Code: "EUR", Name: "Duplicate Euro"},
		{Code: " ", Name: "Blank"},
		{Code: "USD", Name: "US Dollar"},
	})

	require.Equal(t, 2, c.Len())
	cur, ok := c.Lookup("EUR")
	require.True(t, ok)
	assert.Equal(t, "Euro", cur.Name)
}

func TestCatalog_Lookup(t *testing.T) {
	c := testCatalog()

	t.Run("exact", func(t *testing.T) {
		cur, ok := c.Lookup("GBP")
		require.True(t, ok)
		assert.Equal(t, "British Pound", cur.Name)
	})

	t.Run("case insensitive", func(t *testing.T) {
		cur, ok := c.Lookup("gbp")
		require.True(t, ok)
		assert.Equal(t, "GBP", cur.Code)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := c.Lookup("XYZ")
		assert.False(t, ok)
		assert.False(t, c.Contains("XYZ"))
		assert.Equal(t, -1, c.IndexOf("XYZ"))
	})

	t.Run("nil catalog", func(t *testing.T) {
		var nilCatalog *Catalog
		_, ok := nilCatalog.Lookup("EUR")
		assert.False(t, ok)
		assert.Equal(t, 0, nilCatalog.Len())
		assert.Nil(t, nilCatalog.All())
	})
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := testCatalog()
	all := c.All()
	all[0].Name = "changed"

	cur, _ := c.At(0)
	assert.Equal(t, "Australian Dollar", cur.Name)
}

func TestCatalog_DefaultPair(t *testing.T) {
	tests := []struct {
		name       string
		currencies []Currency
		from, to   string
		expected   Selection
		ok         bool
	}{
		{
			name:       "both present",
			currencies: []Currency{{"EUR", "Euro"}, {"USD", "US Dollar"}},
			from:       "EUR", to: "USD",
			expected: Selection{From: "EUR", To: "USD"},
			ok:       true,
		},
		{
			name:       "from missing",
			currencies: []Currency{{"GBP", "British Pound"}, {"USD", "US Dollar"}},
			from:       "EUR", to: "USD",
			expected: Selection{From: "GBP", To: "USD"},
			ok:       true,
		},
		{
			name:       "to missing",
			currencies: []Currency{{"EUR", "Euro"}, {"JPY", "Japanese Yen"}},
			from:       "EUR", to: "USD",
			expected: Selection{From: "EUR", To: "JPY"},
			ok:       true,
		},
		{
			name:       "both missing",
			currencies: []Currency{{"AUD", "Australian Dollar"}, {"JPY", "Japanese Yen"}, {"CHF", "Swiss Franc"}},
			from:       "EUR", to: "USD",
			expected: Selection{From: "AUD", To: "JPY"},
			ok:       true,
		},
		{
			name:       "single entry",
			currencies: []Currency{{"CHF", "Swiss Franc"}},
			from:       "EUR", to: "USD",
			expected: Selection{From: "CHF", To: "CHF"},
			ok:       true,
		},
		{
			name: "empty",
			from: "EUR", to: "USD",
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, ok := NewCatalog(tt.currencies).DefaultPair(tt.from, tt.to)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, sel)
		})
	}
}

func TestSelection_SwapIsItsOwnInverse(t *testing.T) {
	sel := Selection{From: "EUR", To: "USD"}

	swapped := sel.Swap()
	assert.Equal(t, Selection{From: "USD", To: "EUR"}, swapped)
	assert.Equal(t, sel, swapped.Swap())
}
