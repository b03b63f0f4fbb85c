package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FAFFF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#007A3D", Dark: "#5FD787"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	goodStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	recommendedCardStyle = cardStyle.BorderForeground(colorSuccess)
)

// ConsoleFormatter renders human-readable reports styled with lipgloss
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func rupee(d decimal.Decimal) string {
	return "₹" + domain.FormatRupees(d)
}

// regimeLines lists the headline figures of one computation
func regimeLines(r domain.TaxComputationResult) [][2]string {
	return [][2]string{
		{"Gross income", rupee(r.GrossIncome)},
		{"Deductions", rupee(r.TotalDeductions)},
		{"Taxable income", rupee(r.TaxableIncome)},
		{"Tax on slabs", rupee(r.BaseTax)},
		{"Surcharge", fmt.Sprintf("%s (%s)", rupee(r.Surcharge), domain.FormatPercent(r.SurchargeRate))},
		{"Cess", rupee(r.Cess)},
		{"Total tax", rupee(r.TotalTax)},
		{"Effective rate", domain.FormatPercent(r.EffectiveRate)},
	}
}

func renderPairs(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]); w > width {
			width = w
		}
	}
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-*s  %s", width, p[0], p[1]))
	}
	return sb.String()
}

func regimeCard(r domain.TaxComputationResult, recommended bool) string {
	title := strings.ToUpper(r.Regime.String()) + " REGIME"
	style := cardStyle
	if recommended {
		title += " ✓"
		style = recommendedCardStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		renderPairs(regimeLines(r)),
	))
}

func writeSlabs(sb *strings.Builder, r domain.TaxComputationResult) {
	if len(r.SlabBreakdown) == 0 {
		sb.WriteString(mutedStyle.Render("  no taxable income") + "\n")
		return
	}
	for _, s := range r.SlabBreakdown {
		sb.WriteString(fmt.Sprintf("  %-26s %14s @ %-7s %12s\n",
			s.Label, rupee(s.TaxableAmount), domain.FormatPercent(s.Rate), rupee(s.Tax)))
	}
}

func writeDeductions(sb *strings.Builder, r domain.TaxComputationResult) {
	if len(r.DeductionBreakdown) == 0 {
		sb.WriteString(mutedStyle.Render("  none allowed") + "\n")
		return
	}
	for _, d := range r.DeductionBreakdown {
		line := fmt.Sprintf("  %-20s claimed %12s  allowed %12s", d.Section, rupee(d.ClaimedAmount), rupee(d.CappedAmount))
		if d.CappedAmount.LessThan(d.ClaimedAmount) {
			line += mutedStyle.Render("  (capped)")
		}
		sb.WriteString(line + "\n")
	}
}

func writeAssumptions(sb *strings.Builder) {
	sb.WriteString("\n" + sectionStyle.Render("Assumptions") + "\n")
	for _, a := range DefaultAssumptions {
		sb.WriteString(mutedStyle.Render("• "+a) + "\n")
	}
}

func (c ConsoleFormatter) FormatComparison(result *domain.RegimeComparisonResult) ([]byte, error) {
	var sb strings.Builder
	oldR, newR := result.OldRegime, result.NewRegime

	sb.WriteString(titleStyle.Render(fmt.Sprintf("INCOME TAX REGIME COMPARISON  FY %s (%s)", oldR.FiscalYear, oldR.Category)) + "\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		regimeCard(oldR, result.RecommendedRegime == domain.RegimeOld),
		"  ",
		regimeCard(newR, result.RecommendedRegime == domain.RegimeNew),
	) + "\n\n")

	verdict := fmt.Sprintf("Recommended: %s regime", strings.ToUpper(result.RecommendedRegime.String()))
	if result.Savings.IsPositive() {
		verdict += fmt.Sprintf(", saves %s", rupee(result.Savings))
	} else {
		verdict += " (both regimes cost the same)"
	}
	sb.WriteString(goodStyle.Render(verdict) + "\n\n")

	for _, r := range []domain.TaxComputationResult{oldR, newR} {
		sb.WriteString(sectionStyle.Render(fmt.Sprintf("Deductions, %s regime", r.Regime)) + "\n")
		writeDeductions(&sb, r)
		sb.WriteString(sectionStyle.Render(fmt.Sprintf("Slabs, %s regime", r.Regime)) + "\n")
		writeSlabs(&sb, r)
		sb.WriteString("\n")
	}

	sb.WriteString(sectionStyle.Render("Unused old regime headroom") + "\n")
	if len(result.OptimizationSuggestions) == 0 {
		sb.WriteString(mutedStyle.Render("  every capped section is fully used") + "\n")
	}
	for _, s := range result.OptimizationSuggestions {
		sb.WriteString(fmt.Sprintf("  %-20s used %12s  headroom %12s  saves up to %10s\n",
			s.Section, rupee(s.CurrentlyUsed), rupee(s.AvailableHeadroom), rupee(s.PotentialSavings)))
	}

	writeAssumptions(&sb)
	return []byte(sb.String()), nil
}

func (c ConsoleFormatter) FormatComputation(result *domain.TaxComputationResult) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("INCOME TAX  FY %s (%s)", result.FiscalYear, result.Category)) + "\n\n")
	sb.WriteString(regimeCard(*result, false) + "\n\n")
	sb.WriteString(sectionStyle.Render("Deductions") + "\n")
	writeDeductions(&sb, *result)
	sb.WriteString(sectionStyle.Render("Slabs") + "\n")
	writeSlabs(&sb, *result)
	writeAssumptions(&sb)
	return []byte(sb.String()), nil
}

func (c ConsoleFormatter) FormatBatch(rows []BatchRow) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("BATCH REGIME COMPARISON") + "\n")
	header := fmt.Sprintf("%-28s %-8s %-11s %14s %14s %-6s %12s", "Taxpayer", "FY", "Category", "Old tax", "New tax", "Pick", "Saves")
	sb.WriteString(sectionStyle.Render(header) + "\n")

	failed := 0
	for _, r := range rows {
		label := truncate(r.Label, 28)
		if r.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("%-28s %s\n", label, errorStyle.Render("error: "+r.Err.Error())))
			continue
		}
		cmp := r.Comparison
		sb.WriteString(fmt.Sprintf("%-28s %-8s %-11s %14s %14s %-6s %12s\n",
			label,
			cmp.OldRegime.FiscalYear,
			truncate(cmp.OldRegime.Category.String(), 11),
			rupee(cmp.OldRegime.TotalTax),
			rupee(cmp.NewRegime.TotalTax),
			cmp.RecommendedRegime,
			rupee(cmp.Savings)))
	}
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d taxpayers, %d failed", len(rows), failed)) + "\n")
	return []byte(sb.String()), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
