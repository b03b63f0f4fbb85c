package compare

import (
	"fmt"
	"strings"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats plan comparisons as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(set *PlanSet) string {
	var sb strings.Builder

	sb.WriteString("TAX PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", set.BaseName))
	if set.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", set.InputPath))
	}
	if set.Base != nil && set.Base.Comparison != nil {
		old := set.Base.Comparison.OldRegime
		sb.WriteString(fmt.Sprintf("Fiscal Year: %s (%s), gross ₹%s\n", old.FiscalYear, old.Category, domain.FormatRupees(old.GrossIncome)))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %6s\n",
		nameWidth, "Plan",
		numWidth, "Claimed",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		"Pick"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if set.Base != nil {
		sb.WriteString(tf.formatRow(set.Base, nameWidth, numWidth, true))
	}
	if len(set.Alternatives) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range set.Alternatives {
			sb.WriteString(tf.formatRow(&set.Alternatives[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(set.Alternatives) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range set.Alternatives {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Extra Claims:  %s₹%s\n", tf.deltaSymbol(alt.ClaimDiff), domain.FormatRupees(alt.ClaimDiff.Abs())))
			sb.WriteString(fmt.Sprintf("  Best Tax:      %s₹%s (%s%%)\n",
				tf.deltaSymbol(alt.TaxDiffFromBase), domain.FormatRupees(alt.TaxDiffFromBase.Abs()), alt.TaxPctFromBase.StringFixed(1)))
			if alt.RegimeChanged {
				sb.WriteString(fmt.Sprintf("  Regime:        switches to %s\n", alt.RecommendedRegime))
			}
		}
		sb.WriteString("\n")
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result *PlanResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %6s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "₹"+domain.FormatRupees(result.TotalClaimed),
		numWidth, "₹"+domain.FormatRupees(result.OldRegimeTax),
		numWidth, "₹"+domain.FormatRupees(result.NewRegimeTax),
		result.RecommendedRegime)
}

// deltaSymbol returns the sign prefix for a delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a single-line summary of every plan's tax change
func (tf *TableFormatter) FormatCompact(set *PlanSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", set.BaseName))
	for i, alt := range set.Alternatives {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.TaxDiffFromBase.IsPositive() {
			change = "+₹" + domain.FormatRupees(alt.TaxDiffFromBase)
		} else if alt.TaxDiffFromBase.IsNegative() {
			change = "-₹" + domain.FormatRupees(alt.TaxDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}
	return sb.String()
}
