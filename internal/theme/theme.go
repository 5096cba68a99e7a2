package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/fxui/internal/model"
)

// Names of the bundled themes.
const (
	LightName = "light"
	DarkName  = "dark"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
}

// LightPalette is used when dark mode is off.
var LightPalette = Palette{
	Background: lipgloss.Color("#f8f9fa"),
	Foreground: lipgloss.Color("#212529"),
	Muted:      lipgloss.Color("#6c757d"),
	Accent:     lipgloss.Color("#0d6efd"),
	Border:     lipgloss.Color("#ced4da"),
	Info:       lipgloss.Color("#0aa2c0"),
	Success:    lipgloss.Color("#198754"),
	Warning:    lipgloss.Color("#b58100"),
	Danger:     lipgloss.Color("#dc3545"),
}

// DarkPalette is used when dark mode is on.
var DarkPalette = Palette{
	Background: lipgloss.Color("#1e1e2e"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Muted:      lipgloss.Color("#7f849c"),
	Accent:     lipgloss.Color("#89b4fa"),
	Border:     lipgloss.Color("#45475a"),
	Info:       lipgloss.Color("#89dceb"),
	Success:    lipgloss.Color("#a6e3a1"),
	Warning:    lipgloss.Color("#f9e2af"),
	Danger:     lipgloss.Color("#f38ba8"),
}

// Theme holds the rendered styles for the TUI.
type Theme struct {
	Name    string
	Dark    bool
	Palette Palette

	App          lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	Field        lipgloss.Style
	FocusedField lipgloss.Style
	Result       lipgloss.Style
	ResultValue  lipgloss.Style
	Muted        lipgloss.Style
	Key          lipgloss.Style
	alerts       map[model.AlertLevel]lipgloss.Style
}

// New builds a theme from a palette.
func New(name string, dark bool, p Palette) Theme {
	base := lipgloss.NewStyle().Foreground(p.Foreground)

	alert := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			Foreground(c).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(c).
			PaddingLeft(1)
	}

	return Theme{
		Name:    name,
		Dark:    dark,
		Palette: p,

		App:   base.Padding(1, 2),
		Title: base.Bold(true).Foreground(p.Accent).MarginBottom(1),
		Label: lipgloss.NewStyle().Foreground(p.Muted).Width(8),
		Field: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		FocusedField: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		Result: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Success).
			Padding(0, 1),
		ResultValue: lipgloss.NewStyle().Bold(true).Foreground(p.Success),
		Muted:       lipgloss.NewStyle().Foreground(p.Muted),
		Key:         lipgloss.NewStyle().Foreground(p.Accent),
		alerts: map[model.AlertLevel]lipgloss.Style{
			model.AlertInfo:    alert(p.Info),
			model.AlertSuccess: alert(p.Success),
			model.AlertWarning: alert(p.Warning),
			model.AlertDanger:  alert(p.Danger),
		},
	}
}

// Light returns the light theme.
func Light() Theme {
	return New(LightName, false, LightPalette)
}

// Dark returns the dark theme.
func Dark() Theme {
	return New(DarkName, true, DarkPalette)
}

// ForMode returns the dark theme when dark is true, otherwise the light one.
func ForMode(dark bool) Theme {
	if dark {
		return Dark()
	}
	return Light()
}

// Alert returns the style for an alert level. Unknown levels use info.
func (t Theme) Alert(level model.AlertLevel) lipgloss.Style {
	if s, ok := t.alerts[level]; ok {
		return s
	}
	return t.alerts[model.AlertInfo]
}
