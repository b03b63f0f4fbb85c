package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/tui/components"
)

func newTestModel(gross int64) Model {
	return NewModel(calculation.NewDefaultEngine(), calculation.Request{
		Income: domain.IncomeSnapshot{GrossIncome: decimal.NewFromInt(gross), FiscalYear: "2023-24", Category: domain.CategoryIndividual},
		Claims: []domain.DeductionClaim{{Section: domain.Section80C, ClaimedAmount: decimal.NewFromInt(150000)}},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func fieldValue(m Model, label string) string {
	for _, f := range m.fields {
		if f.label == label {
			return f.input.Value()
		}
	}
	return ""
}

func TestNewModel_Prefill(t *testing.T) {
	m := newTestModel(900000)

	assert.Equal(t, "900000", fieldValue(m, "Gross income"))
	assert.Equal(t, "2023-24", fieldValue(m, "Fiscal year"))
	assert.Equal(t, "individual", fieldValue(m, "Category"))
	assert.Equal(t, "150000", fieldValue(m, "80C"))
	assert.Equal(t, "", fieldValue(m, "80D"))
	assert.True(t, m.fields[0].input.Focused())
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(calculation.NewDefaultEngine(), calculation.Request{})

	assert.Equal(t, "", fieldValue(m, "Gross income"))
	assert.Equal(t, "2025-26", fieldValue(m, "Fiscal year"))
	assert.Equal(t, "individual", fieldValue(m, "Category"))
}

func TestModel_Request(t *testing.T) {
	m := newTestModel(900000)

	req, err := m.request()
	require.NoError(t, err)
	assert.True(t, req.Income.GrossIncome.Equal(decimal.NewFromInt(900000)))
	assert.Equal(t, domain.FiscalYear("2023-24"), req.Income.FiscalYear)
	require.Len(t, req.Claims, 1)
	assert.Equal(t, domain.Section80C, req.Claims[0].Section)
}

func TestModel_RequestErrors(t *testing.T) {
	m := newTestModel(900000)
	m.fields[0].input.SetValue("lots")
	m.fields[1].input.SetValue("2024")

	_, err := m.request()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gross income")
	assert.Contains(t, err.Error(), "fiscal_year")
}

func TestModel_FocusNavigation(t *testing.T) {
	m := newTestModel(900000)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.fields[1].input.Focused())
	assert.False(t, m.fields[0].input.Focused())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(m.fields)-1, m.focus, "focus wraps to the last field")
}

func TestModel_CompareOnEnter(t *testing.T) {
	m := newTestModel(900000)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.computing)

	msg, ok := cmd().(ComparisonCompleteMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, domain.RegimeNew, msg.Result.RecommendedRegime)
	require.NotNil(t, msg.BreakEven)
	assert.True(t, msg.BreakEven.BreakEvenDeduction.Equal(decimal.NewFromInt(237500)))

	m, _ = update(t, m, msg)
	assert.False(t, m.computing)

	view := m.View()
	assert.Contains(t, view, "Recommended: NEW regime, saves ₹18,200")
	assert.Contains(t, view, "₹2,37,500")
	assert.Contains(t, view, "24(b)")
}

func TestModel_CompareError(t *testing.T) {
	m := newTestModel(900000)
	m.fields[1].input.SetValue("2030-31")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
	assert.Nil(t, m.result)
}

func TestModel_TypingEditsFocusedField(t *testing.T) {
	m := NewModel(calculation.NewDefaultEngine(), calculation.Request{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	assert.Equal(t, "50", fieldValue(m, "Gross income"))
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := newTestModel(900000)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, SceneHelp, m.scene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneForm, m.scene)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := update(t, newTestModel(900000), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, components.MetricGrid(nil, 2))

	out := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("A").AddRow("x", "1"),
		components.NewMetricCard("B").AddRow("y", "2").WithDescription("note").WithHighlight(true).WithWidth(20),
	}, 1)
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "note")
}
