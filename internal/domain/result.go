package domain

import (
	"github.com/shopspring/decimal"
)

// DeductionLine records a claim before and after cap clamping
type DeductionLine struct {
	Section       DeductionSection `json:"section"`
	ClaimedAmount decimal.Decimal  `json:"claimedAmount"`
	CappedAmount  decimal.Decimal  `json:"cappedAmount"`
}

// SlabLine is one row of the slab-by-slab breakdown
type SlabLine struct {
	Label         string          `json:"label"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	Rate          decimal.Decimal `json:"rate"`
	Tax           decimal.Decimal `json:"tax"`
}

// TaxComputationResult is the liability under one regime
type TaxComputationResult struct {
	Regime             Regime           `json:"regime"`
	FiscalYear         FiscalYear       `json:"fiscalYear"`
	Category           TaxpayerCategory `json:"category"`
	GrossIncome        decimal.Decimal  `json:"grossIncome"`
	TotalDeductions    decimal.Decimal  `json:"totalDeductions"`
	TaxableIncome      decimal.Decimal  `json:"taxableIncome"`
	DeductionBreakdown []DeductionLine  `json:"deductionBreakdown"`
	BaseTax            decimal.Decimal  `json:"baseTax"`
	SurchargeRate      decimal.Decimal  `json:"surchargeRate"`
	Surcharge          decimal.Decimal  `json:"surcharge"`
	Cess               decimal.Decimal  `json:"cess"`
	TotalTax           decimal.Decimal  `json:"totalTax"`
	EffectiveRate      decimal.Decimal  `json:"effectiveRate"`
	SlabBreakdown      []SlabLine       `json:"slabBreakdown"`
}

// MarginalRate returns the rate of the highest slab reached with a nonzero rate,
// or zero when income sits entirely in nil-rate slabs.
func (r TaxComputationResult) MarginalRate() decimal.Decimal {
	for i := len(r.SlabBreakdown) - 1; i >= 0; i-- {
		if r.SlabBreakdown[i].Rate.IsPositive() {
			return r.SlabBreakdown[i].Rate
		}
	}
	return decimal.Zero
}

// Suggestion points at unused headroom under a section in the old regime
type Suggestion struct {
	Section           DeductionSection `json:"section"`
	CurrentlyUsed     decimal.Decimal  `json:"currentlyUsed"`
	AvailableHeadroom decimal.Decimal  `json:"availableHeadroom"`
	PotentialSavings  decimal.Decimal  `json:"potentialSavingsAtMarginalRate"`
}

// RegimeComparisonResult holds both regimes side by side
type RegimeComparisonResult struct {
	OldRegime               TaxComputationResult `json:"oldRegime"`
	NewRegime               TaxComputationResult `json:"newRegime"`
	Savings                 decimal.Decimal      `json:"savings"`
	RecommendedRegime       Regime               `json:"recommendedRegime"`
	OptimizationSuggestions []Suggestion         `json:"optimizationSuggestions"`
}

// Result returns the computation for the given regime
func (c RegimeComparisonResult) Result(r Regime) TaxComputationResult {
	if r == RegimeOld {
		return c.OldRegime
	}
	return c.NewRegime
}

// Recommended returns the computation for the recommended regime
func (c RegimeComparisonResult) Recommended() TaxComputationResult {
	return c.Result(c.RecommendedRegime)
}
