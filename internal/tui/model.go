// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/fxui/internal/adapter/rates"
	"github.com/jmylchreest/fxui/internal/config"
	"github.com/jmylchreest/fxui/internal/core"
	"github.com/jmylchreest/fxui/internal/model"
	"github.com/jmylchreest/fxui/internal/store"
	"github.com/jmylchreest/fxui/internal/theme"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeForm Mode = iota
	ModePicker
	ModeHelp
)

// Field identifies a focusable form field.
type Field int

const (
	FieldAmount Field = iota
	FieldFrom
	FieldTo
	fieldCount
)

// Alert message prefixes for failed actions.
const (
	catalogFailedPrefix    = "Failed to fetch currencies"
	conversionFailedPrefix = "Conversion failed"
	preferenceFailedPrefix = "Failed to save preference"
	copyFailedPrefix       = "Copy failed"

	notLoadedMessage = "Currencies are not loaded yet"
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	cfg       *config.Config
	prefs     *store.PreferenceStore
	loader    *core.CatalogLoader
	converter *core.Converter
	tracker   *core.RequestTracker
	logger    *slog.Logger

	// Application state shared by all handlers
	state *core.AppState

	// Current mode and focus
	mode        Mode
	focus       Field
	pickingFrom bool

	// Components
	amount textinput.Model
	picker list.Model

	// UI state
	theme      theme.Theme
	alerts     []model.Alert
	alertTTL   time.Duration
	loading    bool
	converting bool
	width      int
	height     int
	ready      bool

	// Key bindings
	keys KeyMap

	// Preference file change notifications
	prefChanges <-chan struct{}
}

// Options configures the TUI model.
type Options struct {
	Config *config.Config
	Source rates.Source
	Prefs  *store.PreferenceStore
	Logger *slog.Logger

	// PrefChanges delivers a value whenever the preference file changes on disk (optional).
	PrefChanges <-chan struct{}
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	darkMode := false
	if opts.Prefs != nil {
		darkMode = opts.Prefs.DarkMode()
	}

	amount := textinput.New()
	amount.Placeholder = "Amount"
	amount.CharLimit = 32
	amount.Prompt = ""
	amount.Focus()

	return Model{
		cfg:         cfg,
		prefs:       opts.Prefs,
		loader:      core.NewCatalogLoader(opts.Source, cfg.DefaultSelection(), logger),
		converter:   core.NewConverter(opts.Source),
		tracker:     &core.RequestTracker{},
		logger:      logger,
		state:       core.NewAppState(darkMode),
		mode:        ModeForm,
		focus:       FieldAmount,
		amount:      amount,
		theme:       theme.ForMode(darkMode),
		alertTTL:    cfg.AlertTTL(),
		loading:     true,
		keys:        DefaultKeyMap(),
		prefChanges: opts.PrefChanges,
	}
}

// State returns the application state.
func (m Model) State() *core.AppState {
	return m.state
}

// Alerts returns the currently visible alerts, oldest first.
func (m Model) Alerts() []model.Alert {
	return m.alerts
}

// Init loads the catalog and starts watching for preference changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalog(),
		m.watchPreferences(),
		textinput.Blink,
	)
}

// Messages

type catalogLoadedMsg struct {
	state *core.CatalogState
	err   error
}

type conversionDoneMsg struct {
	token  uint64
	result *model.ConversionResult
	err    error
}

type alertMsg struct {
	alert model.Alert
}

type alertExpiredMsg struct {
	id string
}

type preferencesChangedMsg struct{}

type copyResultMsg struct {
	err error
}

// loadCatalog fetches the currency catalog.
func (m Model) loadCatalog() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		state, err := loader.Load(context.Background())
		return catalogLoadedMsg{state: state, err: err}
	}
}

// watchPreferences waits for the next preference file change.
func (m Model) watchPreferences() tea.Cmd {
	ch := m.prefChanges
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return preferencesChangedMsg{}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.mode == ModePicker {
			m.picker.SetSize(msg.Width, pickerHeight(msg.Height))
		}
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Warn("failed to load currencies", "error", msg.err)
			cmd := m.addAlert(model.AlertFromError(catalogFailedPrefix, msg.err))
			return m, cmd
		}
		m.state.ApplyCatalog(msg.state)
		return m, nil

	case conversionDoneMsg:
		return m.handleConversionDone(msg)

	case alertMsg:
		cmd := m.addAlert(msg.alert)
		return m, cmd

	case alertExpiredMsg:
		m.removeAlert(msg.id)
		return m, nil

	case preferencesChangedMsg:
		if m.prefs != nil {
			m.state.SetDarkMode(m.prefs.DarkMode())
			m.applyTheme()
		}
		return m, m.watchPreferences()

	case copyResultMsg:
		if msg.err != nil {
			cmd := m.addAlert(model.AlertFromError(copyFailedPrefix, msg.err))
			return m, cmd
		}
		cmd := m.addAlert(model.NewAlert(model.AlertSuccess, "Copied to clipboard"))
		return m, cmd
	}

	// Update child components
	var cmd tea.Cmd
	switch m.mode {
	case ModePicker:
		m.picker, cmd = m.picker.Update(msg)
	case ModeForm:
		if m.focus == FieldAmount {
			m.amount, cmd = m.amount.Update(msg)
		}
	}
	return m, cmd
}

// addAlert shows an alert and schedules its removal after the alert TTL.
// Each alert has its own timer.
func (m *Model) addAlert(a model.Alert) tea.Cmd {
	m.alerts = append(m.alerts, a)
	id := a.ID
	return tea.Tick(m.alertTTL, func(time.Time) tea.Msg {
		return alertExpiredMsg{id: id}
	})
}

// removeAlert drops the alert with id, if still shown.
func (m *Model) removeAlert(id string) {
	kept := make([]model.Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.alerts = kept
}

// applyTheme rebuilds styles for the current dark mode preference.
func (m *Model) applyTheme() {
	m.theme = theme.ForMode(m.state.DarkMode())
	if m.mode == ModePicker {
		m.picker.SetDelegate(currencyDelegate{theme: m.theme})
		m.picker.Styles.Title = m.theme.Title
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tracker.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeForm
		} else if m.mode == ModeForm {
			m.mode = ModeHelp
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleDark):
		return m.handleToggleDark()
	}

	switch m.mode {
	case ModePicker:
		return m.handlePickerKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeForm
		}
		return m, nil
	default:
		return m.handleFormKey(msg)
	}
}

// handleFormKey handles keys on the converter form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Swap):
		return m.handleSwap()

	case key.Matches(msg, m.keys.Reload):
		return m.handleReload()

	case key.Matches(msg, m.keys.Copy):
		return m.handleCopy()

	case key.Matches(msg, m.keys.Submit):
		if m.focus == FieldAmount {
			return m.handleConvert()
		}
		return m.openPicker(m.focus == FieldFrom)

	case m.focus != FieldAmount && (key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down)):
		step := 1
		if key.Matches(msg, m.keys.Up) {
			step = -1
		}
		m.stepSelection(m.focus == FieldFrom, step)
		return m, nil
	}

	if m.focus == FieldAmount {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handlePickerKey handles keys while a currency picker is open.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While typing a filter, the list owns enter and esc
	if m.picker.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		if item, ok := m.picker.SelectedItem().(currencyItem); ok {
			m.state.Select(m.pickingFrom, item.currency.Code)
		}
		m.mode = ModeForm
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.picker.FilterState() == list.FilterApplied {
			m.picker.ResetFilter()
			return m, nil
		}
		m.mode = ModeForm
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// setFocus moves focus to f, focusing the amount input only when selected.
func (m *Model) setFocus(f Field) {
	m.focus = f
	if f == FieldAmount {
		m.amount.Focus()
	} else {
		m.amount.Blur()
	}
}

// openPicker shows the currency list for one side.
// Precondition: the catalog is loaded.
func (m Model) openPicker(from bool) (tea.Model, tea.Cmd) {
	if !m.state.CatalogLoaded() {
		cmd := m.addAlert(model.NewAlert(model.AlertWarning, notLoadedMessage))
		return m, cmd
	}
	catalog := m.state.Catalog()

	sel := m.state.Selection()
	current, title := sel.To, "Convert to"
	if from {
		current, title = sel.From, "Convert from"
	}

	m.pickingFrom = from
	m.picker = newPicker(catalog, current, title, m.theme, m.width, pickerHeight(m.height))
	m.mode = ModePicker
	return m, nil
}

// stepSelection moves one side of the selection through the catalog.
func (m *Model) stepSelection(from bool, step int) {
	catalog := m.state.Catalog()
	n := catalog.Len()
	if n == 0 {
		return
	}

	sel := m.state.Selection()
	code := sel.To
	if from {
		code = sel.From
	}

	idx := catalog.IndexOf(code)
	next := ((idx+step)%n + n) % n
	if cur, ok := catalog.At(next); ok {
		m.state.Select(from, cur.Code)
	}
}

// handleConvert submits the amount for conversion.
// Precondition: the catalog is loaded. Invalid amounts raise a warning
// and never reach the network. A newer submission supersedes any
// conversion still in flight.
func (m Model) handleConvert() (tea.Model, tea.Cmd) {
	text := m.amount.Value()
	if _, err := model.ParseAmount(text); err != nil {
		cmd := m.addAlert(model.AlertFromError(conversionFailedPrefix, err))
		return m, cmd
	}

	sel, err := m.state.ConversionSelection()
	if err != nil {
		cmd := m.addAlert(model.NewAlert(model.AlertWarning, notLoadedMessage))
		return m, cmd
	}

	token, ctx := m.tracker.Begin(context.Background())
	m.converting = true

	converter := m.converter
	return m, func() tea.Msg {
		result, err := converter.Convert(ctx, text, sel)
		return conversionDoneMsg{token: token, result: result, err: err}
	}
}

// handleConversionDone applies a conversion response unless a newer
// request has been issued since.
func (m Model) handleConversionDone(msg conversionDoneMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Finish(msg.token) {
		m.logger.Debug("discarding stale conversion response", "token", msg.token)
		return m, nil
	}
	m.converting = false

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		if model.IsNetwork(msg.err) {
			m.logger.Warn("conversion request failed", "error", msg.err)
		} else {
			m.logger.Debug("conversion rejected", "error", msg.err)
		}
		cmd := m.addAlert(model.AlertFromError(conversionFailedPrefix, msg.err))
		return m, cmd
	}

	m.state.SetResult(msg.result)
	return m, nil
}

// handleSwap exchanges the source and target currencies.
func (m Model) handleSwap() (tea.Model, tea.Cmd) {
	m.state.Swap()
	return m, nil
}

// handleToggleDark flips and persists the dark mode preference.
func (m Model) handleToggleDark() (tea.Model, tea.Cmd) {
	enabled := !m.state.DarkMode()
	m.state.SetDarkMode(enabled)
	m.applyTheme()

	if m.prefs == nil {
		return m, nil
	}
	if err := m.prefs.SetDarkMode(enabled); err != nil {
		m.logger.Warn("failed to persist dark mode", "error", err)
		cmd := m.addAlert(model.AlertFromError(preferenceFailedPrefix, err))
		return m, cmd
	}
	return m, nil
}

// handleReload fetches the catalog again.
func (m Model) handleReload() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	return m, m.loadCatalog()
}

// handleCopy copies the last result to the clipboard.
func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	result := m.state.Result()
	if result == nil {
		cmd := m.addAlert(model.NewAlert(model.AlertInfo, "Nothing to copy yet"))
		return m, cmd
	}

	text := result.String()
	cfg := m.cfg
	return m, func() tea.Msg {
		return copyResultMsg{err: copyText(text, cfg)}
	}
}

// pickerHeight leaves room for the title and key bar.
func pickerHeight(height int) int {
	if height <= 4 {
		return 10
	}
	return height - 4
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config  *config.Config
	Source  rates.Source
	Prefs   *store.PreferenceStore
	Logger  *slog.Logger
	Watcher *store.FileWatcher // Optional; started and stopped by Run
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var changes <-chan struct{}
	if opts.Watcher != nil {
		if err := opts.Watcher.Start(); err != nil {
			logger.Warn("failed to start preference watcher", "error", err)
			opts.Watcher.Stop()
		} else {
			changes = opts.Watcher.Changes()
			defer opts.Watcher.Stop()
		}
	}

	m := New(Options{
		Config:      opts.Config,
		Source:      opts.Source,
		Prefs:       opts.Prefs,
		Logger:      logger,
		PrefChanges: changes,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
