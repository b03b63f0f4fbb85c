package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusliketht/bbofficial-sub003/internal/breakeven"
	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/config"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/output"
)

func loadBatch(t *testing.T) []calculation.Request {
	t.Helper()
	reqs, err := config.NewInputParser().LoadBatchFromFile("../testdata/taxpayers.yaml")
	require.NoError(t, err)
	require.Len(t, reqs, 5)
	return reqs
}

// checkIdentities verifies the arithmetic that must hold for every computation
func checkIdentities(t *testing.T, label string, r domain.TaxComputationResult) {
	t.Helper()
	sumSlabs := decimal.Zero
	for _, s := range r.SlabBreakdown {
		sumSlabs = sumSlabs.Add(s.Tax)
	}
	assert.True(t, sumSlabs.Equal(r.BaseTax), "%s %s: slab taxes sum to base tax", label, r.Regime)
	assert.True(t, r.BaseTax.Add(r.Surcharge).Add(r.Cess).Equal(r.TotalTax), "%s %s: total tax", label, r.Regime)
	assert.True(t, r.Surcharge.Equal(r.BaseTax.Mul(r.SurchargeRate)), "%s %s: surcharge", label, r.Regime)

	want := r.GrossIncome.Sub(r.TotalDeductions)
	if want.IsNegative() {
		want = decimal.Zero
	}
	assert.True(t, r.TaxableIncome.Equal(want), "%s %s: taxable income", label, r.Regime)
	assert.False(t, r.TotalTax.IsNegative())
	assert.False(t, r.TotalTax.GreaterThan(r.GrossIncome))
}

func TestEndToEndComparison(t *testing.T) {
	req, err := config.NewInputParser().LoadFromFile("../testdata/taxpayer.yaml")
	require.NoError(t, err)
	assert.Equal(t, "salaried-metro", req.Label)

	engine := calculation.NewDefaultEngine()
	result, err := engine.Compare(req.Income, req.Claims)
	require.NoError(t, err)

	checkIdentities(t, req.Label, result.OldRegime)
	checkIdentities(t, req.Label, result.NewRegime)
	assert.Equal(t, domain.RegimeOld, result.RecommendedRegime, "heavy deductions favour the old regime")
	assert.True(t, result.Savings.Equal(result.NewRegime.TotalTax.Sub(result.OldRegime.TotalTax)))

	for _, name := range output.AvailableFormatterNames() {
		f, err := output.GetFormatterByName(name)
		require.NoError(t, err)
		data, err := f.FormatComparison(result)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestBatchConsistency(t *testing.T) {
	reqs := loadBatch(t)
	engine := calculation.NewDefaultEngine()

	results, err := engine.CompareBatch(context.Background(), reqs, 3)
	require.NoError(t, err)

	for i, r := range results {
		require.NoError(t, r.Err, r.Label)
		sequential, err := engine.Compare(reqs[i].Income, reqs[i].Claims)
		require.NoError(t, err)
		assert.Equal(t, sequential.RecommendedRegime, r.Comparison.RecommendedRegime, r.Label)
		assert.True(t, sequential.Savings.Equal(r.Comparison.Savings), r.Label)

		checkIdentities(t, r.Label, r.Comparison.OldRegime)
		checkIdentities(t, r.Label, r.Comparison.NewRegime)
	}

	huf := results[3].Comparison
	assert.True(t, huf.OldRegime.Surcharge.IsPositive(), "income above 50 lakh attracts surcharge")
}

func TestBreakEvenAgreesWithComparison(t *testing.T) {
	engine := calculation.NewDefaultEngine()
	solver := breakeven.NewDefaultSolver(engine)

	for _, req := range loadBatch(t) {
		be, err := solver.DeductionBreakEven(context.Background(), req.Income, req.Claims)
		require.NoError(t, err, req.Label)

		// claiming exactly the break-even amount makes the old regime no dearer
		claims := []domain.DeductionClaim{{Section: domain.SectionHRA, ClaimedAmount: be.BreakEvenDeduction}}
		old, err := engine.ComputeRegime(req.Income, claims, domain.RegimeOld)
		require.NoError(t, err, req.Label)
		assert.False(t, old.TotalTax.GreaterThan(be.NewRegimeTax), "%s: old %s new %s", req.Label, old.TotalTax, be.NewRegimeTax)
	}
}

func TestTablesCoverBuiltinYears(t *testing.T) {
	engine := calculation.NewDefaultEngine()
	for _, fy := range []domain.FiscalYear{"2023-24", "2024-25", "2025-26"} {
		for _, category := range domain.AllCategories {
			_, err := engine.Compare(domain.IncomeSnapshot{
				GrossIncome: decimal.NewFromInt(1500000),
				FiscalYear:  fy,
				Category:    category,
			}, nil)
			assert.NoError(t, err, "%s %s", fy, category)
		}
	}
}
