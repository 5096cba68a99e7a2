package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jmylchreest/fxui/internal/adapter/rates/mocks"
	"github.com/jmylchreest/fxui/internal/model"
	"github.com/jmylchreest/fxui/internal/store"
)

func twoCurrencies() []model.Currency {
	return []model.Currency{
		{Code: "EUR", Name: "Euro"},
		{Code: "USD", Name: "US Dollar"},
	}
}

func newTestModel(t *testing.T, src *mocks.MockSource) Model {
	t.Helper()
	prefs, err := store.NewPreferenceStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return New(Options{Source: src, Prefs: prefs})
}

// update applies msg and returns the concrete model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// loaded returns a model with the two-currency catalog applied.
func loaded(t *testing.T, src *mocks.MockSource) Model {
	t.Helper()
	src.EXPECT().Currencies(gomock.Any()).Return(twoCurrencies(), nil)

	m := newTestModel(t, src)
	m, _ = update(t, m, m.loadCatalog()())
	return m
}

func typeAmount(t *testing.T, m Model, text string) Model {
	t.Helper()
	m.amount.SetValue(text)
	return m
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestModel_CatalogLoadSelectsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))

	assert.False(t, m.loading)
	assert.Equal(t, 2, m.State().Catalog().Len())
	assert.Equal(t, model.Selection{From: "EUR", To: "USD"}, m.State().Selection())
	assert.Empty(t, m.Alerts())
}

func TestModel_CatalogFailureShowsDangerAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().Currencies(gomock.Any()).
		Return(nil, &model.NetworkError{Op: "currencies", StatusCode: 503})

	m := newTestModel(t, src)
	m, cmd := update(t, m, m.loadCatalog()())

	assert.NotNil(t, cmd)
	assert.False(t, m.State().CatalogLoaded())
	require.Len(t, m.Alerts(), 1)
	assert.Equal(t, model.AlertDanger, m.Alerts()[0].Level)
	assert.Contains(t, m.Alerts()[0].Message, "Failed to fetch currencies")

	// The picker cannot open without a catalog
	m.setFocus(FieldFrom)
	m, _ = update(t, m, enter())
	assert.Equal(t, ModeForm, m.mode)
}

func TestModel_ConvertShowsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	m := loaded(t, src)

	src.EXPECT().Convert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req model.ConversionRequest) (*model.ConversionResult, error) {
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(100)))
			return &model.ConversionResult{Request: req, Value: decimal.RequireFromString("108.23"), Date: "2024-01-05"}, nil
		})

	m = typeAmount(t, m, "100")
	m, cmd := update(t, m, enter())
	require.NotNil(t, cmd)
	assert.True(t, m.converting)

	m, _ = update(t, m, cmd())
	assert.False(t, m.converting)

	result := m.State().Result()
	require.NotNil(t, result)
	assert.Equal(t, "100.00 EUR = 108.23 USD", result.String())
	assert.Empty(t, m.Alerts())
}

func TestModel_InvalidAmountWarnsWithoutRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No Convert expectation: a request would fail the test
	m := loaded(t, mocks.NewMockSource(ctrl))

	m = typeAmount(t, m, "-5")
	m, cmd := update(t, m, enter())

	assert.NotNil(t, cmd)
	assert.False(t, m.converting)
	assert.Nil(t, m.State().Result())
	require.Len(t, m.Alerts(), 1)
	assert.Equal(t, model.AlertWarning, m.Alerts()[0].Level)
	assert.Equal(t, model.InvalidAmountMessage, m.Alerts()[0].Message)
}

func TestModel_ConvertBeforeCatalogLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestModel(t, mocks.NewMockSource(ctrl))

	m = typeAmount(t, m, "10")
	m, _ = update(t, m, enter())

	require.Len(t, m.Alerts(), 1)
	assert.Equal(t, model.AlertWarning, m.Alerts()[0].Level)
}

func TestModel_InvalidAmountReportedAfterCatalogFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().Currencies(gomock.Any()).
		Return(nil, &model.NetworkError{Op: "currencies", StatusCode: 503})

	m := newTestModel(t, src)
	m, _ = update(t, m, m.loadCatalog()())
	require.False(t, m.State().CatalogLoaded())

	m = typeAmount(t, m, "-5")
	m, _ = update(t, m, enter())

	assert.False(t, m.converting)
	require.Len(t, m.Alerts(), 2)
	last := m.Alerts()[1]
	assert.Equal(t, model.AlertWarning, last.Level)
	assert.Equal(t, model.InvalidAmountMessage, last.Message)
}

func TestModel_ConversionFailureShowsDangerAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	m := loaded(t, src)

	src.EXPECT().Convert(gomock.Any(), gomock.Any()).
		Return(nil, &model.NetworkError{Op: "convert", Err: errors.New("connection refused")})

	m = typeAmount(t, m, "1")
	m, cmd := update(t, m, enter())
	m, _ = update(t, m, cmd())

	assert.Nil(t, m.State().Result())
	require.Len(t, m.Alerts(), 1)
	assert.Equal(t, model.AlertDanger, m.Alerts()[0].Level)
	assert.Contains(t, m.Alerts()[0].Message, "Conversion failed")
	assert.Contains(t, m.Alerts()[0].Message, "connection refused")
}

func TestModel_StaleConversionDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))

	first, _ := m.tracker.Begin(context.Background())
	second, _ := m.tracker.Begin(context.Background())

	sel := m.State().Selection()
	stale := &model.ConversionResult{
		Request: model.ConversionRequest{Amount: decimal.NewFromInt(1), From: sel.From, To: sel.To},
		Value:   decimal.NewFromInt(1),
	}
	fresh := &model.ConversionResult{
		Request: model.ConversionRequest{Amount: decimal.NewFromInt(2), From: sel.From, To: sel.To},
		Value:   decimal.NewFromInt(2),
	}

	// The newer response arrives first, then the older one
	m, _ = update(t, m, conversionDoneMsg{token: second, result: fresh})
	m, _ = update(t, m, conversionDoneMsg{token: first, result: stale})

	assert.Same(t, fresh, m.State().Result())
}

func TestModel_CancelledConversionIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))

	token, _ := m.tracker.Begin(context.Background())
	m, _ = update(t, m, conversionDoneMsg{token: token, err: context.Canceled})

	assert.Empty(t, m.Alerts())
}

func TestModel_AlertExpires(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestModel(t, mocks.NewMockSource(ctrl))

	first := model.NewAlert(model.AlertInfo, "first")
	second := model.NewAlert(model.AlertWarning, "second")
	m, cmd := update(t, m, alertMsg{alert: first})
	assert.NotNil(t, cmd)
	m, _ = update(t, m, alertMsg{alert: second})
	require.Len(t, m.Alerts(), 2)

	// Each alert expires on its own timer
	m, _ = update(t, m, alertExpiredMsg{id: first.ID})
	require.Len(t, m.Alerts(), 1)
	assert.Equal(t, "second", m.Alerts()[0].Message)

	// Expiring an already removed alert is a no-op
	m, _ = update(t, m, alertExpiredMsg{id: first.ID})
	assert.Len(t, m.Alerts(), 1)
}

func TestModel_SwapExchangesSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, model.Selection{From: "USD", To: "EUR"}, m.State().Selection())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, model.Selection{From: "EUR", To: "USD"}, m.State().Selection())
}

func TestModel_ToggleDarkPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestModel(t, mocks.NewMockSource(ctrl))
	require.False(t, m.State().DarkMode())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, m.State().DarkMode())
	assert.True(t, m.theme.Dark)

	reloaded, err := store.NewPreferenceStore(m.prefs.Path())
	require.NoError(t, err)
	assert.True(t, reloaded.DarkMode())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.State().DarkMode())
	require.NoError(t, reloaded.Reload())
	assert.False(t, reloaded.DarkMode())
}

func TestModel_StartsWithPersistedDarkMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	prefs, err := store.NewPreferenceStore(path)
	require.NoError(t, err)
	require.NoError(t, prefs.SetDarkMode(true))

	m := New(Options{Prefs: prefs})
	assert.True(t, m.State().DarkMode())
	assert.True(t, m.theme.Dark)
}

func TestModel_PreferencesChangedExternally(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestModel(t, mocks.NewMockSource(ctrl))

	other, err := store.NewPreferenceStore(m.prefs.Path())
	require.NoError(t, err)
	require.NoError(t, other.SetDarkMode(true))
	require.NoError(t, m.prefs.Reload())

	m, _ = update(t, m, preferencesChangedMsg{})
	assert.True(t, m.State().DarkMode())
}

func TestModel_PickerSelectsCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	// Open the "to" picker; the cursor starts on USD
	m.setFocus(FieldTo)
	m, _ = update(t, m, enter())
	require.Equal(t, ModePicker, m.mode)
	assert.False(t, m.pickingFrom)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, enter())

	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, model.Selection{From: "EUR", To: "EUR"}, m.State().Selection())
}

func TestModel_PickerEscapeKeepsSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m.setFocus(FieldFrom)
	m, _ = update(t, m, enter())
	require.Equal(t, ModePicker, m.mode)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, model.Selection{From: "EUR", To: "USD"}, m.State().Selection())
}

func TestModel_ArrowKeysCycleCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FieldFrom, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "USD", m.State().Selection().From)

	// Wraps around
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "EUR", m.State().Selection().From)
}

func TestModel_ReloadKeepsSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	m := loaded(t, src)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	src.EXPECT().Currencies(gomock.Any()).Return(twoCurrencies(), nil)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	m, _ = update(t, m, cmd())
	assert.Equal(t, model.Selection{From: "USD", To: "EUR"}, m.State().Selection())
}

func TestModel_CopyWithoutResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Len(t, m.Alerts(), 1)
	assert.Equal(t, model.AlertInfo, m.Alerts()[0].Level)
}

func TestModel_HelpToggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newTestModel(t, mocks.NewMockSource(ctrl))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, ModeHelp, m.mode)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeForm, m.mode)
}

func TestModel_View(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := loaded(t, mocks.NewMockSource(ctrl))
	assert.Equal(t, "Initializing...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m.State().SetResult(&model.ConversionResult{
		Request: model.ConversionRequest{Amount: decimal.NewFromInt(100), From: "EUR", To: "USD"},
		Value:   decimal.RequireFromString("108.23"),
	})

	view := m.View()
	assert.Contains(t, view, "Currency Converter")
	assert.Contains(t, view, "EUR - Euro")
	assert.Contains(t, view, "USD - US Dollar")
	assert.Contains(t, view, "100.00 EUR")
	assert.Contains(t, view, "108.23 USD")
}
