package breakeven

import (
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations int             // Upper bound on bisection steps
	Tolerance     decimal.Decimal // Search stops once the bracket is this narrow (rupees)
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 64,
		Tolerance:     decimal.NewFromInt(1),
	}
}

// Validate checks the options are usable
func (o SolverOptions) Validate() error {
	if o.MaxIterations <= 0 {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "max iterations must be positive",
		}
	}
	if o.Tolerance.LessThan(decimal.NewFromInt(1)) {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "tolerance must be at least one rupee",
		}
	}
	return nil
}

// Result is the outcome of a deduction break-even search
type Result struct {
	Income          domain.IncomeSnapshot `json:"income"`
	NewRegimeTax    decimal.Decimal       `json:"newRegimeTax"`
	OldRegimeTaxAt0 decimal.Decimal       `json:"oldRegimeTaxWithoutDeductions"`

	// BreakEvenDeduction is the smallest total old-regime deduction at which the
	// old regime costs no more than the new one.
	BreakEvenDeduction decimal.Decimal `json:"breakEvenDeduction"`
	OldRegimeTaxAtBE   decimal.Decimal `json:"oldRegimeTaxAtBreakEven"`

	// BoundedHeadroom sums every finite old-regime cap for this snapshot
	BoundedHeadroom     decimal.Decimal `json:"boundedHeadroom"`
	WithinStatutoryCaps bool            `json:"withinStatutoryCaps"`

	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergenceInfo"`
}

// CurvePoint is one break-even result on an income sweep
type CurvePoint struct {
	GrossIncome         decimal.Decimal `json:"grossIncome"`
	BreakEvenDeduction  decimal.Decimal `json:"breakEvenDeduction"`
	NewRegimeTax        decimal.Decimal `json:"newRegimeTax"`
	WithinStatutoryCaps bool            `json:"withinStatutoryCaps"`
}

// Curve is a break-even sweep across gross incomes
type Curve struct {
	Points []CurvePoint `json:"points"`

	// FirstOutOfReach is the lowest swept income whose break-even exceeds the
	// bounded caps, nil when every point is reachable.
	FirstOutOfReach *decimal.Decimal `json:"firstOutOfReach,omitempty"`
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
