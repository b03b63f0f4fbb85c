package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/tui/components"
)

// maxSuggestions is how many headroom hints fit under the cards
const maxSuggestions = 3

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderForm(), "  ", m.renderResults())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Income Tax Regime Comparison"),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderForm() string {
	var sb strings.Builder
	for i, f := range m.fields {
		label := FieldLabelStyle.Render(f.label)
		if i == m.focus {
			label = FocusedFieldLabelStyle.Render("› " + f.label)
		}
		sb.WriteString(label + f.input.View())
		if i < len(m.fields)-1 {
			sb.WriteString("\n")
		}
	}
	return BorderStyle.Render(sb.String())
}

func regimeCard(r domain.TaxComputationResult, recommended bool) *components.MetricCard {
	title := strings.ToUpper(r.Regime.String()) + " REGIME"
	if recommended {
		title += " ✓"
	}
	return components.NewMetricCard(title).
		AddRow("Deductions", FormatCurrency(r.TotalDeductions)).
		AddRow("Taxable", FormatCurrency(r.TaxableIncome)).
		AddRow("Slab tax", FormatCurrency(r.BaseTax)).
		AddRow("Surcharge", FormatCurrency(r.Surcharge)).
		AddRow("Cess", FormatCurrency(r.Cess)).
		AddRow("Total tax", FormatCurrency(r.TotalTax)).
		AddRow("Effective", domain.FormatPercent(r.EffectiveRate)).
		WithHighlight(recommended)
}

func (m Model) renderResults() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	if m.computing {
		return SubtitleStyle.Render("Comparing…")
	}
	if m.result == nil {
		return SubtitleStyle.Render("Enter gross income and press enter to compare.")
	}

	res := m.result
	cards := components.MetricGrid([]*components.MetricCard{
		regimeCard(res.OldRegime, res.RecommendedRegime == domain.RegimeOld),
		regimeCard(res.NewRegime, res.RecommendedRegime == domain.RegimeNew),
	}, 2)

	lines := []string{cards}
	verdict := fmt.Sprintf("Recommended: %s regime", strings.ToUpper(res.RecommendedRegime.String()))
	if res.Savings.IsPositive() {
		verdict += ", saves " + FormatCurrency(res.Savings)
	} else {
		verdict += " (both regimes cost the same)"
	}
	lines = append(lines, MetricPositiveStyle.Render(verdict))

	if m.breakEven != nil {
		be := fmt.Sprintf("Old regime breaks even at %s of deductions", FormatCurrency(m.breakEven.BreakEvenDeduction))
		if !m.breakEven.WithinStatutoryCaps {
			be += " (beyond statutory caps)"
		}
		lines = append(lines, SubtitleStyle.Render(be))
	}

	if len(res.OptimizationSuggestions) > 0 {
		lines = append(lines, "", "Unused old regime headroom:")
		for i, s := range res.OptimizationSuggestions {
			if i == maxSuggestions {
				break
			}
			lines = append(lines, fmt.Sprintf("  %-20s %12s  saves up to %s",
				s.Section, FormatCurrency(s.AvailableHeadroom), FormatCurrency(s.PotentialSavings)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next"),
		formatShortcut("shift+tab", "prev"),
		formatShortcut("enter", "compare"),
		formatShortcut("f1", "help"),
		formatShortcut("esc", "quit"),
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHelp() string {
	helpText := `KEYBOARD SHORTCUTS:
  tab / down        Next field
  shift+tab / up    Previous field
  enter             Compare both regimes
  f1                Toggle this help
  esc / ctrl+c      Quit

FIELDS:
  Amounts accept 1200000, 12,00,000 or ₹12,00,000.
  Category is individual, senior_citizen, super_senior_citizen or huf.
  Leave a deduction blank to skip it.`
	return BorderStyle.Render(helpText)
}
