package breakeven

import (
	"context"
	"fmt"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// maxCurvePoints bounds a single income sweep
const maxCurvePoints = 10000

// Solver finds how much old-regime deduction it takes to match the new regime
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// DeductionBreakEven bisects over whole rupees of total old-regime deduction in
// [0, gross]. Old-regime tax never rises as deductions grow and is zero once they
// cover the whole gross, so the search always terminates. newRegimeClaims are
// applied to the new regime as usual.
func (s *Solver) DeductionBreakEven(ctx context.Context, income domain.IncomeSnapshot, newRegimeClaims []domain.DeductionClaim) (*Result, error) {
	if s.Engine == nil {
		return nil, &BreakEvenError{Operation: "deduction_break_even", Message: "solver has no engine"}
	}
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}

	newResult, err := s.Engine.ComputeRegime(income, newRegimeClaims, domain.RegimeNew)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "deduction_break_even",
			Message:   "failed to compute new regime",
			Cause:     err,
		}
	}
	oldTable, err := s.Engine.Tables.Lookup(domain.RegimeOld, income.Category, income.FiscalYear)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "deduction_break_even",
			Message:   "failed to load old regime table",
			Cause:     err,
		}
	}

	target := newResult.TotalTax
	oldTaxAt := func(deduction decimal.Decimal) decimal.Decimal {
		taxable := income.GrossIncome.Sub(deduction)
		return calculation.ComputeLiability(taxable, oldTable).TotalTax
	}
	meets := func(deduction decimal.Decimal) bool {
		return !oldTaxAt(deduction).GreaterThan(target)
	}

	result := &Result{
		Income:          income,
		NewRegimeTax:    target,
		OldRegimeTaxAt0: oldTaxAt(decimal.Zero),
		BoundedHeadroom: s.boundedHeadroom(income),
	}

	two := decimal.NewFromInt(2)
	lo := decimal.Zero
	hi := income.GrossIncome.Ceil()
	iterations := 0

	if meets(lo) {
		hi = lo
		result.ConvergenceInfo = "old regime already matches without deductions"
	} else {
		// invariant: meets(hi) && !meets(lo)
		for hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
			if iterations >= s.Options.MaxIterations {
				break
			}
			iterations++

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			mid := lo.Add(hi).Div(two).Floor()
			if meets(mid) {
				hi = mid
			} else {
				lo = mid
			}
		}
		if hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations)
		} else {
			result.ConvergenceInfo = fmt.Sprintf("Bisection converged within %s", domain.FormatRupees(s.Options.Tolerance))
		}
	}

	result.BreakEvenDeduction = hi
	result.OldRegimeTaxAtBE = oldTaxAt(hi)
	result.WithinStatutoryCaps = !hi.GreaterThan(result.BoundedHeadroom)
	result.Iterations = iterations

	s.Engine.Logger.Debugf("break-even fy=%s gross=%s deduction=%s iterations=%d",
		income.FiscalYear, income.GrossIncome.String(), hi.String(), iterations)
	return result, nil
}

// boundedHeadroom sums the finite old-regime caps for the snapshot
func (s *Solver) boundedHeadroom(income domain.IncomeSnapshot) decimal.Decimal {
	total := decimal.Zero
	for _, rule := range s.Engine.Catalog.Rules() {
		if !rule.EligibleUnder(domain.RegimeOld) {
			continue
		}
		if limit, bounded := rule.CapFor(income.Category).Limit(income.GrossIncome); bounded {
			total = total.Add(limit)
		}
	}
	return total
}

// Curve runs DeductionBreakEven for every gross income from..to in steps of step,
// keeping the snapshot's year and category.
func (s *Solver) Curve(ctx context.Context, base domain.IncomeSnapshot, newRegimeClaims []domain.DeductionClaim, from, to, step decimal.Decimal) (*Curve, error) {
	if !step.IsPositive() {
		return nil, &BreakEvenError{Operation: "curve", Message: "step must be positive"}
	}
	if from.IsNegative() || to.LessThan(from) {
		return nil, &BreakEvenError{Operation: "curve", Message: fmt.Sprintf("invalid income range %s..%s", from, to)}
	}
	if to.Sub(from).Div(step).GreaterThan(decimal.NewFromInt(maxCurvePoints)) {
		return nil, &BreakEvenError{Operation: "curve", Message: fmt.Sprintf("range yields more than %d points", maxCurvePoints)}
	}

	curve := &Curve{}
	for gross := from; !gross.GreaterThan(to); gross = gross.Add(step) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap := base
		snap.GrossIncome = gross
		res, err := s.DeductionBreakEven(ctx, snap, newRegimeClaims)
		if err != nil {
			return nil, err
		}
		curve.Points = append(curve.Points, CurvePoint{
			GrossIncome:         gross,
			BreakEvenDeduction:  res.BreakEvenDeduction,
			NewRegimeTax:        res.NewRegimeTax,
			WithinStatutoryCaps: res.WithinStatutoryCaps,
		})
		if !res.WithinStatutoryCaps && curve.FirstOutOfReach == nil {
			g := gross
			curve.FirstOutOfReach = &g
		}
	}
	return curve, nil
}
