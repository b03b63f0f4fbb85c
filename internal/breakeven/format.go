package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Fiscal Year:         %s\n", result.Income.FiscalYear))
	sb.WriteString(fmt.Sprintf("Category:            %s\n", result.Income.Category))
	sb.WriteString(fmt.Sprintf("Gross Income:        ₹%s\n", domain.FormatRupees(result.Income.GrossIncome)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("TAX\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("New regime:                    ₹%s\n", domain.FormatRupees(result.NewRegimeTax)))
	sb.WriteString(fmt.Sprintf("Old regime, no deductions:     ₹%s\n", domain.FormatRupees(result.OldRegimeTaxAt0)))
	sb.WriteString(fmt.Sprintf("Old regime at break-even:      ₹%s\n", domain.FormatRupees(result.OldRegimeTaxAtBE)))
	sb.WriteString("\n")

	sb.WriteString("DEDUCTIONS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Break-even deduction:          ₹%s\n", domain.FormatRupees(result.BreakEvenDeduction)))
	sb.WriteString(fmt.Sprintf("Capped deductions available:   ₹%s\n", domain.FormatRupees(result.BoundedHeadroom)))
	if result.WithinStatutoryCaps {
		sb.WriteString("The old regime can be made cheaper with capped deductions alone.\n")
	} else {
		sb.WriteString("Capped deductions alone cannot close the gap; uncapped sections (HRA, 80E, LTA) would be needed.\n")
	}

	return sb.String()
}

// FormatCurve formats an income sweep
func (tf *TableFormatter) FormatCurve(curve *Curve) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN CURVE\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %18s %16s %7s\n", "Gross Income", "Break-even Ded.", "New Regime Tax", "Capped"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, p := range curve.Points {
		reach := "yes"
		if !p.WithinStatutoryCaps {
			reach = "no"
		}
		sb.WriteString(fmt.Sprintf("%-16s %18s %16s %7s\n",
			domain.FormatRupees(p.GrossIncome),
			domain.FormatRupees(p.BreakEvenDeduction),
			domain.FormatRupees(p.NewRegimeTax),
			reach))
	}
	if curve.FirstOutOfReach != nil {
		sb.WriteString(fmt.Sprintf("\nFrom ₹%s the old regime needs more than the capped deductions.\n",
			domain.FormatRupees(*curve.FirstOutOfReach)))
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatCurve generates JSON output for an income sweep
func (jf *JSONFormatter) FormatCurve(curve *Curve) (string, error) {
	return jf.marshal(curve)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
