package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(gross int64, fy domain.FiscalYear) domain.IncomeSnapshot {
	return domain.IncomeSnapshot{
		GrossIncome: decimal.NewFromInt(gross),
		FiscalYear:  fy,
		Category:    domain.CategoryIndividual,
	}
}

func rupees(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewDefaultEngine()

	solver := NewDefaultSolver(engine)

	require.NotNil(t, solver)
	assert.Same(t, engine, solver.Engine)
	assert.Equal(t, DefaultSolverOptions().MaxIterations, solver.Options.MaxIterations)
}

func TestSolver_DeductionBreakEven(t *testing.T) {
	tests := []struct {
		name      string
		gross     int64
		fy        domain.FiscalYear
		claims    []domain.DeductionClaim
		deduction int64
		newTax    int64
		within    bool
	}{
		{name: "mid income", gross: 900000, fy: "2023-24", deduction: 237500, newTax: 46800, within: true},
		{name: "new regime standard deduction", gross: 900000, fy: "2023-24",
			claims:    []domain.DeductionClaim{{Section: domain.SectionStandardDeduction, ClaimedAmount: rupees(50000)}},
			deduction: 262500, newTax: 41600, within: true},
		{name: "new regime nil band", gross: 300000, fy: "2023-24", deduction: 50000, newTax: 0, within: true},
		{name: "already matching", gross: 250000, fy: "2024-25", deduction: 0, newTax: 0, within: true},
		{name: "beyond capped sections", gross: 2400000, fy: "2025-26", deduction: 775000, newTax: 312000, within: false},
	}

	solver := NewDefaultSolver(calculation.NewDefaultEngine())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.DeductionBreakEven(context.Background(), snapshot(tt.gross, tt.fy), tt.claims)
			require.NoError(t, err)

			assert.True(t, rupees(tt.deduction).Equal(result.BreakEvenDeduction), "break-even %s", result.BreakEvenDeduction)
			assert.True(t, rupees(tt.newTax).Equal(result.NewRegimeTax), "new regime tax %s", result.NewRegimeTax)
			assert.Equal(t, tt.within, result.WithinStatutoryCaps)
			assert.False(t, result.OldRegimeTaxAtBE.GreaterThan(result.NewRegimeTax))
		})
	}
}

func TestSolver_DeductionBreakEven_IsSmallest(t *testing.T) {
	engine := calculation.NewDefaultEngine()
	solver := NewDefaultSolver(engine)
	income := snapshot(1350000, "2024-25")

	result, err := solver.DeductionBreakEven(context.Background(), income, nil)
	require.NoError(t, err)
	require.True(t, result.BreakEvenDeduction.IsPositive())

	table, err := engine.Tables.Lookup(domain.RegimeOld, income.Category, income.FiscalYear)
	require.NoError(t, err)
	oneLess := income.GrossIncome.Sub(result.BreakEvenDeduction).Add(decimal.NewFromInt(1))
	assert.True(t, calculation.ComputeLiability(oneLess, table).TotalTax.GreaterThan(result.NewRegimeTax),
		"one rupee less deduction should leave the old regime dearer")
}

func TestSolver_DeductionBreakEven_BoundedHeadroom(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultEngine())

	result, err := solver.DeductionBreakEven(context.Background(), snapshot(900000, "2023-24"), nil)
	require.NoError(t, err)

	// 80C + 80CCD(1B) + 80D + 10% of gross + 80TTA + 24(b) + conveyance + standard
	assert.True(t, rupees(594200).Equal(result.BoundedHeadroom), "headroom %s", result.BoundedHeadroom)
}

func TestSolver_DeductionBreakEven_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultEngine())

	_, err := solver.DeductionBreakEven(context.Background(), snapshot(900000, "2030-31"), nil)
	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "deduction_break_even", beErr.Operation)
	var notFound *domain.NotFoundError
	assert.True(t, errors.As(err, &notFound), "cause should stay reachable")

	_, err = solver.DeductionBreakEven(context.Background(), snapshot(-5, "2023-24"), nil)
	var invalid *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalid))

	bad := NewSolver(calculation.NewDefaultEngine(), SolverOptions{MaxIterations: 0, Tolerance: rupees(1)})
	_, err = bad.DeductionBreakEven(context.Background(), snapshot(900000, "2023-24"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")

	empty := &Solver{Options: DefaultSolverOptions()}
	_, err = empty.DeductionBreakEven(context.Background(), snapshot(900000, "2023-24"), nil)
	assert.Error(t, err)
}

func TestSolver_DeductionBreakEven_MaxIterations(t *testing.T) {
	solver := NewSolver(calculation.NewDefaultEngine(), SolverOptions{MaxIterations: 3, Tolerance: rupees(1)})

	result, err := solver.DeductionBreakEven(context.Background(), snapshot(900000, "2023-24"), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Iterations)
	assert.Contains(t, result.ConvergenceInfo, "Max iterations")
	assert.False(t, result.OldRegimeTaxAtBE.GreaterThan(result.NewRegimeTax), "upper bracket still meets the target")
}

func TestSolver_DeductionBreakEven_Cancelled(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.DeductionBreakEven(ctx, snapshot(900000, "2023-24"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_Curve(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultEngine())

	curve, err := solver.Curve(context.Background(), snapshot(0, "2025-26"), nil, rupees(1200000), rupees(2400000), rupees(1200000))
	require.NoError(t, err)

	require.Len(t, curve.Points, 2)
	assert.True(t, rupees(462500).Equal(curve.Points[0].BreakEvenDeduction))
	assert.True(t, curve.Points[0].WithinStatutoryCaps)
	assert.False(t, curve.Points[1].WithinStatutoryCaps)
	require.NotNil(t, curve.FirstOutOfReach)
	assert.True(t, rupees(2400000).Equal(*curve.FirstOutOfReach))
}

func TestSolver_Curve_InvalidRange(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultEngine())
	base := snapshot(0, "2024-25")

	_, err := solver.Curve(context.Background(), base, nil, rupees(0), rupees(100), rupees(0))
	assert.Error(t, err)
	_, err = solver.Curve(context.Background(), base, nil, rupees(200), rupees(100), rupees(10))
	assert.Error(t, err)
	_, err = solver.Curve(context.Background(), base, nil, rupees(0), rupees(100000000), rupees(1))
	assert.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultEngine())
	result, err := solver.DeductionBreakEven(context.Background(), snapshot(900000, "2023-24"), nil)
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "DEDUCTION BREAK-EVEN")
	assert.Contains(t, out, "₹2,37,500")
	assert.Contains(t, out, "₹46,800")
	assert.True(t, strings.Contains(out, "capped deductions alone"))

	js, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"breakEvenDeduction": "237500"`)
}
