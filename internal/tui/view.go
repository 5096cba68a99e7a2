package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/fxui/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModePicker:
		return m.viewPicker()
	case ModeHelp:
		return m.viewHelp()
	default:
		return m.viewForm()
	}
}

func (m Model) viewForm() string {
	t := m.theme
	var b strings.Builder

	mode := "light"
	if m.state.DarkMode() {
		mode = "dark"
	}
	b.WriteString(t.Title.Render("Currency Converter") + "  " + t.Muted.Render("["+mode+"]"))
	b.WriteString("\n")

	sel := m.state.Selection()
	b.WriteString(m.renderField(FieldAmount, "Amount", m.amount.View()))
	b.WriteString("\n")
	b.WriteString(m.renderField(FieldFrom, "From", m.currencyLabel(sel.From)))
	b.WriteString("\n")
	b.WriteString(m.renderField(FieldTo, "To", m.currencyLabel(sel.To)))
	b.WriteString("\n")

	if status := m.statusLine(); status != "" {
		b.WriteString(t.Muted.Render(status) + "\n")
	}

	if result := m.state.Result(); result != nil {
		b.WriteString(m.renderResult(result) + "\n")
	}

	for _, a := range m.alerts {
		b.WriteString(t.Alert(a.Level).Render(a.Message) + "\n")
	}

	if m.cfg.TUI.ShowHelp {
		b.WriteString("\n" + m.buildKeybindBar(m.width, "form"))
	}
	return t.App.Render(b.String())
}

// renderField renders one labelled form field, highlighting the focused one.
func (m Model) renderField(f Field, label, value string) string {
	style := m.theme.Field
	if m.mode == ModeForm && m.focus == f {
		style = m.theme.FocusedField
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.Label.Render(label),
		style.Width(fieldWidth(m.width)).Render(value),
	)
}

// currencyLabel renders a selected code, or a placeholder before loading.
func (m Model) currencyLabel(code string) string {
	if cur, ok := m.state.Catalog().Lookup(code); ok {
		return cur.Label()
	}
	if m.loading {
		return m.theme.Muted.Render("Loading currencies...")
	}
	return m.theme.Muted.Render("No currencies")
}

func (m Model) statusLine() string {
	switch {
	case m.loading:
		return "Fetching currencies..."
	case m.converting:
		return "Converting..."
	}
	return ""
}

func (m Model) renderResult(r *model.ConversionResult) string {
	t := m.theme
	line := r.FromText() + " = " + t.ResultValue.Render(r.ToText())
	if age := rateAge(r.Date, time.Now()); age != "" {
		line += "\n" + t.Muted.Render(age)
	}
	return t.Result.Render(line)
}

// rateAge describes the rate date, e.g. "rates as of 2024-01-05 (3 days ago)".
func rateAge(date string, now time.Time) string {
	if date == "" {
		return ""
	}
	parsed, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "rates as of " + date
	}
	if now.Sub(parsed) < 24*time.Hour {
		return "rates as of " + date + " (today)"
	}
	return "rates as of " + date + " (" + humanize.RelTime(parsed, now, "ago", "from now") + ")"
}

func fieldWidth(width int) int {
	const maxWidth = 40
	if width <= 0 {
		return maxWidth
	}
	w := width - 16
	if w > maxWidth {
		return maxWidth
	}
	if w < 10 {
		return 10
	}
	return w
}

func (m Model) viewPicker() string {
	return m.picker.View() + "\n" + m.buildKeybindBar(m.width, "picker")
}

func (m Model) viewHelp() string {
	t := m.theme
	s := t.Title.Render("Keyboard Shortcuts") + "\n\n"

	// Section names follow the column order of KeyMap.FullHelp
	sections := []string{"Navigation", "Actions", "General"}

	bindings := m.keys.FullHelp()
	for i, section := range sections {
		s += t.Muted.Render(section) + "\n"
		for _, kb := range bindings[i] {
			h := kb.Help()
			s += t.Key.Render("  "+padRight(h.Key, 12)) + " " + h.Desc + "\n"
		}
		s += "\n"
	}

	s += t.Muted.Render("Press f1 or esc to return")
	return t.App.Render(s)
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "form", "picker"
func (m Model) buildKeybindBar(width int, mode string) string {
	var binds []keybind

	switch mode {
	case "form":
		binds = []keybind{
			{"ctrl+c", "quit", 1},
			{"enter", "convert", 2},
			{"tab", "next", 3},
			{"ctrl+s", "swap", 4},
			{"ctrl+t", "theme", 5},
			{"f1", "help", 6},
			{"ctrl+y", "copy", 7},
			{"ctrl+r", "reload", 8},
		}
	case "picker":
		binds = []keybind{
			{"enter", "select", 1},
			{"esc", "back", 2},
			{"/", "filter", 3},
			{"↑/↓", "navigate", 4},
		}
	}

	// Build the bar, adding keybinds until we run out of space
	const separator = "  "
	result := ""
	for _, b := range binds {
		item := m.theme.Key.Render(b.key) + " " + b.desc
		testLen := lipgloss.Width(result) + lipgloss.Width(item)
		if result != "" {
			testLen += len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return m.theme.Muted.Render(result)
}
