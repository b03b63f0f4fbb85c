package calculation

import (
	"fmt"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// validateClaims rejects unknown sections and negative amounts before any arithmetic
func validateClaims(catalog domain.DeductionCatalog, claims []domain.DeductionClaim) error {
	for i, c := range claims {
		if !c.Section.Valid() {
			return &domain.UnknownDeductionSectionError{Section: c.Section.String()}
		}
		if _, ok := catalog.Rule(c.Section); !ok {
			return &domain.UnknownDeductionSectionError{Section: c.Section.String()}
		}
		if err := domain.RequireNonNegative(fmt.Sprintf("deductions[%d].amount", i), c.ClaimedAmount); err != nil {
			return err
		}
	}
	return nil
}

// mergeClaims sums repeated claims for the same section, keeping first-seen order
func mergeClaims(claims []domain.DeductionClaim) []domain.DeductionClaim {
	index := make(map[domain.DeductionSection]int, len(claims))
	merged := make([]domain.DeductionClaim, 0, len(claims))
	for _, c := range claims {
		if i, ok := index[c.Section]; ok {
			merged[i].ClaimedAmount = merged[i].ClaimedAmount.Add(c.ClaimedAmount)
			continue
		}
		index[c.Section] = len(merged)
		merged = append(merged, c)
	}
	return merged
}

// applyDeductions filters claims by regime eligibility and clamps each to its cap.
// Ineligible sections are dropped without error; the new regime simply allows fewer.
func applyDeductions(catalog domain.DeductionCatalog, income domain.IncomeSnapshot, claims []domain.DeductionClaim, regime domain.Regime) ([]domain.DeductionLine, decimal.Decimal) {
	lines := []domain.DeductionLine{}
	total := decimal.Zero
	for _, c := range claims {
		rule, ok := catalog.Rule(c.Section)
		if !ok || !rule.EligibleUnder(regime) {
			continue
		}
		capped := rule.CapFor(income.Category).Clamp(c.ClaimedAmount, income.GrossIncome)
		lines = append(lines, domain.DeductionLine{
			Section:       c.Section,
			ClaimedAmount: c.ClaimedAmount,
			CappedAmount:  capped,
		})
		total = total.Add(capped)
	}
	return lines, total
}

// taxableIncome floors gross minus deductions at zero
func taxableIncome(gross, deductions decimal.Decimal) decimal.Decimal {
	t := gross.Sub(deductions)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}
