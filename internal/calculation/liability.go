package calculation

import (
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeLiability applies a slab table to taxable income.
//
// Base tax is progressive over the slabs; only slabs the income actually reaches
// appear in the breakdown. Surcharge is a flat rate on the whole base tax taken from
// the highest band whose threshold the taxable income has reached. Cess applies last,
// on base tax plus surcharge. Marginal relief at surcharge thresholds is not applied.
//
// GrossIncome, DeductionBreakdown and EffectiveRate are left for the caller
// (see withGrossIncome).
func ComputeLiability(taxableIncome decimal.Decimal, table domain.RegimeSlabTable) domain.TaxComputationResult {
	result := domain.TaxComputationResult{
		Regime:        table.Regime,
		FiscalYear:    table.FiscalYear,
		Category:      table.Category,
		TaxableIncome: decimal.Zero,
		BaseTax:       decimal.Zero,
		SurchargeRate: decimal.Zero,
		Surcharge:     decimal.Zero,
		Cess:          decimal.Zero,
		TotalTax:      decimal.Zero,
		EffectiveRate: decimal.Zero,
		SlabBreakdown: []domain.SlabLine{},
	}
	if !taxableIncome.IsPositive() {
		return result
	}
	result.TaxableIncome = taxableIncome

	baseTax := decimal.Zero
	for _, slab := range table.Slabs {
		top := taxableIncome
		if !slab.Unbounded() {
			top = decimal.Min(taxableIncome, *slab.UpperBound)
		}
		inSlab := top.Sub(slab.LowerBound)
		if !inSlab.IsPositive() {
			// slabs ascend, nothing above this one is reached either
			break
		}
		tax := inSlab.Mul(slab.Rate)
		baseTax = baseTax.Add(tax)
		result.SlabBreakdown = append(result.SlabBreakdown, domain.SlabLine{
			Label:         slabLabel(slab),
			TaxableAmount: inSlab,
			Rate:          slab.Rate,
			Tax:           tax,
		})
	}

	surchargeRate := decimal.Zero
	for _, band := range table.SurchargeBands {
		if band.Threshold.LessThanOrEqual(taxableIncome) {
			surchargeRate = band.Rate
		}
	}
	surcharge := baseTax.Mul(surchargeRate)
	cess := baseTax.Add(surcharge).Mul(table.CessRate)

	result.BaseTax = baseTax
	result.SurchargeRate = surchargeRate
	result.Surcharge = surcharge
	result.Cess = cess
	result.TotalTax = baseTax.Add(surcharge).Add(cess)
	return result
}

// withGrossIncome fills the caller-owned fields of a liability result
func withGrossIncome(r domain.TaxComputationResult, gross, totalDeductions decimal.Decimal, lines []domain.DeductionLine) domain.TaxComputationResult {
	r.GrossIncome = gross
	r.TotalDeductions = totalDeductions
	r.DeductionBreakdown = lines
	r.EffectiveRate = decimal.Zero
	if gross.IsPositive() {
		r.EffectiveRate = r.TotalTax.Div(gross)
	}
	return r
}

func slabLabel(s domain.TaxSlab) string {
	if s.Unbounded() {
		return "Above " + domain.FormatRupees(s.LowerBound)
	}
	return domain.FormatRupees(s.LowerBound) + " - " + domain.FormatRupees(*s.UpperBound)
}
