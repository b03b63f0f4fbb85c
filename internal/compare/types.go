package compare

import (
	"fmt"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanResult is one taxpayer variant with the metrics used to rank it
type PlanResult struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description,omitempty"`
	Comparison  *domain.RegimeComparisonResult `json:"comparison,omitempty"`

	// Key Metrics
	TotalClaimed      decimal.Decimal `json:"totalClaimed"`
	OldRegimeTax      decimal.Decimal `json:"oldRegimeTax"`
	NewRegimeTax      decimal.Decimal `json:"newRegimeTax"`
	BestTax           decimal.Decimal `json:"bestTax"`
	RecommendedRegime domain.Regime   `json:"recommendedRegime"`

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
	ClaimDiff       decimal.Decimal `json:"claimDiffFromBase"`
	RegimeChanged   bool            `json:"regimeChanged"`
}

// PlanSet is a base taxpayer and the variants compared against it
type PlanSet struct {
	BaseName        string       `json:"baseName"`
	Base            *PlanResult  `json:"base"`
	Alternatives    []PlanResult `json:"alternatives"`
	Recommendations []string     `json:"recommendations"`
	InputPath       string       `json:"inputPath,omitempty"`
}

// MetricsCalculator extracts ranking metrics from comparisons
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics summarises one request and its regime comparison
func (mc *MetricsCalculator) CalculateMetrics(name string, req calculation.Request, cmp *domain.RegimeComparisonResult) PlanResult {
	claimed := decimal.Zero
	for _, c := range req.Claims {
		claimed = claimed.Add(c.ClaimedAmount)
	}
	return PlanResult{
		Name:              name,
		Comparison:        cmp,
		TotalClaimed:      claimed,
		OldRegimeTax:      cmp.OldRegime.TotalTax,
		NewRegimeTax:      cmp.NewRegime.TotalTax,
		BestTax:           cmp.Recommended().TotalTax,
		RecommendedRegime: cmp.RecommendedRegime,
	}
}

// CalculateComparison fills the deltas of plan against base. A negative
// TaxDiffFromBase means the plan pays less.
func (mc *MetricsCalculator) CalculateComparison(plan, base PlanResult) PlanResult {
	plan.TaxDiffFromBase = plan.BestTax.Sub(base.BestTax)
	if !base.BestTax.IsZero() {
		plan.TaxPctFromBase = plan.TaxDiffFromBase.Div(base.BestTax).Mul(decimal.NewFromInt(100))
	}
	plan.ClaimDiff = plan.TotalClaimed.Sub(base.TotalClaimed)
	plan.RegimeChanged = plan.RecommendedRegime != base.RecommendedRegime
	return plan
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(set *PlanSet) []string {
	recommendations := []string{}
	if len(set.Alternatives) == 0 || set.Base == nil {
		return recommendations
	}

	lowest := set.Base
	for i := range set.Alternatives {
		if set.Alternatives[i].BestTax.LessThan(lowest.BestTax) {
			lowest = &set.Alternatives[i]
		}
	}
	if lowest != set.Base {
		recommendations = append(recommendations, fmt.Sprintf("Lowest tax: %s saves ₹%s under the %s regime",
			lowest.Name, domain.FormatRupees(set.Base.BestTax.Sub(lowest.BestTax)), lowest.RecommendedRegime))
	} else {
		recommendations = append(recommendations, "None of the plans lowers the tax below the base")
	}

	// best return per rupee of extra deductions
	var efficient *PlanResult
	var bestRatio decimal.Decimal
	for i := range set.Alternatives {
		alt := &set.Alternatives[i]
		if !alt.ClaimDiff.IsPositive() || !alt.TaxDiffFromBase.IsNegative() {
			continue
		}
		ratio := alt.TaxDiffFromBase.Neg().Div(alt.ClaimDiff)
		if efficient == nil || ratio.GreaterThan(bestRatio) {
			efficient, bestRatio = alt, ratio
		}
	}
	if efficient != nil {
		recommendations = append(recommendations, fmt.Sprintf("Most efficient: %s saves %s paise per extra rupee claimed",
			efficient.Name, bestRatio.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}

	for _, alt := range set.Alternatives {
		if alt.RegimeChanged {
			recommendations = append(recommendations, fmt.Sprintf("Regime switch: %s makes the %s regime cheaper",
				alt.Name, alt.RecommendedRegime))
		}
	}
	return recommendations
}
