package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/fxui/internal/model"
	"github.com/jmylchreest/fxui/internal/theme"
)

// currencyItem wraps a currency for the list component.
type currencyItem struct {
	currency model.Currency
}

func (i currencyItem) Title() string       { return i.currency.Label() }
func (i currencyItem) Description() string { return "" }
func (i currencyItem) FilterValue() string { return i.currency.Code + " " + i.currency.Name }

// currencyDelegate renders one single-line currency option.
type currencyDelegate struct {
	theme theme.Theme
}

func (d currencyDelegate) Height() int                             { return 1 }
func (d currencyDelegate) Spacing() int                            { return 0 }
func (d currencyDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a list item, highlighting the cursor row.
func (d currencyDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(currencyItem)
	if !ok {
		return
	}

	label := ci.currency.Label()
	width := m.Width() - 2
	if runes := []rune(label); width > 1 && len(runes) > width {
		label = string(runes[:width-1]) + "…"
	}

	if index == m.Index() {
		fmt.Fprint(w, d.theme.Key.Bold(true).Render("> "+label))
		return
	}
	fmt.Fprint(w, "  "+label)
}

// newPicker builds a filterable currency list with the cursor on selected.
func newPicker(catalog *model.Catalog, selected string, title string, th theme.Theme, width, height int) list.Model {
	currencies := catalog.All()
	items := make([]list.Item, len(currencies))
	for i, c := range currencies {
		items[i] = currencyItem{currency: c}
	}

	l := list.New(items, currencyDelegate{theme: th}, width, height)
	l.Title = title
	l.Styles.Title = th.Title
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	if idx := catalog.IndexOf(selected); idx >= 0 {
		l.Select(idx)
	}
	return l
}
