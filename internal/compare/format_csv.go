package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats plan comparisons as CSV
type CSVFormatter struct{}

// Format generates CSV output with one row per plan
func (cf *CSVFormatter) Format(set *PlanSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Plan",
		"Type",
		"Total Claimed",
		"Old Regime Tax",
		"New Regime Tax",
		"Best Tax",
		"Recommended",
		"Tax Diff from Base",
		"Tax % Change",
		"Claim Diff from Base",
		"Regime Changed",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if set.Base != nil {
		if err := writer.Write(cf.formatRow(set.Base, "base")); err != nil {
			return "", err
		}
	}
	for i := range set.Alternatives {
		if err := writer.Write(cf.formatRow(&set.Alternatives[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a plan as a CSV row
func (cf *CSVFormatter) formatRow(result *PlanResult, planType string) []string {
	return []string{
		result.Name,
		planType,
		result.TotalClaimed.StringFixed(2),
		result.OldRegimeTax.StringFixed(2),
		result.NewRegimeTax.StringFixed(2),
		result.BestTax.StringFixed(2),
		result.RecommendedRegime.String(),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
		result.ClaimDiff.StringFixed(2),
		strconv.FormatBool(result.RegimeChanged),
	}
}
