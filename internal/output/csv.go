package output

import (
	"bytes"
	"encoding/csv"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

// CSVFormatter writes one row per regime computation
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Label", "Regime", "FiscalYear", "Category", "GrossIncome", "TotalDeductions", "TaxableIncome",
	"BaseTax", "SurchargeRate", "Surcharge", "Cess", "TotalTax", "EffectiveRate", "Recommended", "Savings", "Error",
}

func computationRow(label string, r domain.TaxComputationResult) []string {
	return []string{
		label,
		r.Regime.String(),
		r.FiscalYear.String(),
		r.Category.String(),
		r.GrossIncome.StringFixed(2),
		r.TotalDeductions.StringFixed(2),
		r.TaxableIncome.StringFixed(2),
		r.BaseTax.StringFixed(2),
		r.SurchargeRate.StringFixed(4),
		r.Surcharge.StringFixed(2),
		r.Cess.StringFixed(2),
		r.TotalTax.StringFixed(2),
		r.EffectiveRate.StringFixed(4),
		"",
		"",
		"",
	}
}

func comparisonRows(label string, result *domain.RegimeComparisonResult) [][]string {
	rows := make([][]string, 0, 2)
	for _, regime := range domain.AllRegimes {
		row := computationRow(label, result.Result(regime))
		if regime == result.RecommendedRegime {
			row[13] = "true"
			row[14] = result.Savings.StringFixed(2)
		} else {
			row[13] = "false"
		}
		rows = append(rows, row)
	}
	return rows
}

func (c CSVFormatter) write(rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c CSVFormatter) FormatComparison(result *domain.RegimeComparisonResult) ([]byte, error) {
	return c.write(comparisonRows("", result))
}

func (c CSVFormatter) FormatComputation(result *domain.TaxComputationResult) ([]byte, error) {
	return c.write([][]string{computationRow("", *result)})
}

func (c CSVFormatter) FormatBatch(rows []BatchRow) ([]byte, error) {
	var out [][]string
	for _, r := range rows {
		if r.Err != nil {
			row := make([]string, len(csvHeader))
			row[0] = r.Label
			row[len(row)-1] = r.Err.Error()
			out = append(out, row)
			continue
		}
		out = append(out, comparisonRows(r.Label, r.Comparison)...)
	}
	return c.write(out)
}
