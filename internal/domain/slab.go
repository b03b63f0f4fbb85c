package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxSlab is one progressive bracket. A nil UpperBound means the slab is unbounded.
type TaxSlab struct {
	LowerBound decimal.Decimal  `yaml:"lower" json:"lower"`
	UpperBound *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the slab has no upper limit
func (s TaxSlab) Unbounded() bool {
	return s.UpperBound == nil
}

// SurchargeBand applies Rate to the whole base tax once taxable income reaches Threshold
type SurchargeBand struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// TableKey identifies a slab table
type TableKey struct {
	Regime     Regime
	Category   TaxpayerCategory
	FiscalYear FiscalYear
}

func (k TableKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.FiscalYear, k.Regime, k.Category)
}

// RegimeSlabTable holds the reference data for one regime, category and fiscal year
type RegimeSlabTable struct {
	Regime         Regime
	Category       TaxpayerCategory
	FiscalYear     FiscalYear
	Slabs          []TaxSlab
	CessRate       decimal.Decimal
	SurchargeBands []SurchargeBand
}

// Key returns the registry key of the table
func (t RegimeSlabTable) Key() TableKey {
	return TableKey{Regime: t.Regime, Category: t.Category, FiscalYear: t.FiscalYear}
}

// Validate checks the structural invariants: contiguous ascending slabs starting at zero,
// a single unbounded final slab, non-negative rates and ascending surcharge thresholds.
func (t RegimeSlabTable) Validate() error {
	if !t.Regime.Valid() {
		return &InvalidInputError{Field: "regime", Value: t.Regime.String(), Reason: "unknown regime"}
	}
	if !t.Category.Valid() {
		return &InvalidInputError{Field: "category", Value: t.Category.String(), Reason: "unknown category"}
	}
	if _, err := ParseFiscalYear(string(t.FiscalYear)); err != nil {
		return err
	}
	if len(t.Slabs) == 0 {
		return &InvalidInputError{Field: "slabs", Reason: "at least one slab is required"}
	}
	if !t.Slabs[0].LowerBound.IsZero() {
		return &InvalidInputError{Field: "slabs[0].lower", Value: t.Slabs[0].LowerBound.String(), Reason: "first slab must start at 0"}
	}

	for i, s := range t.Slabs {
		field := fmt.Sprintf("slabs[%d]", i)
		if s.Rate.IsNegative() {
			return &InvalidInputError{Field: field + ".rate", Value: s.Rate.String(), Reason: "rate must not be negative"}
		}
		last := i == len(t.Slabs)-1
		if s.Unbounded() {
			if !last {
				return &InvalidInputError{Field: field + ".upper", Reason: "only the final slab may be unbounded"}
			}
			continue
		}
		if last {
			return &InvalidInputError{Field: field + ".upper", Value: s.UpperBound.String(), Reason: "final slab must be unbounded"}
		}
		if !s.UpperBound.GreaterThan(s.LowerBound) {
			return &InvalidInputError{Field: field + ".upper", Value: s.UpperBound.String(), Reason: "upper bound must exceed lower bound"}
		}
		next := t.Slabs[i+1]
		if !next.LowerBound.Equal(*s.UpperBound) {
			return &InvalidInputError{
				Field:  fmt.Sprintf("slabs[%d].lower", i+1),
				Value:  next.LowerBound.String(),
				Reason: fmt.Sprintf("slabs must be contiguous, expected %s", s.UpperBound.String()),
			}
		}
	}

	if t.CessRate.IsNegative() {
		return &InvalidInputError{Field: "cess_rate", Value: t.CessRate.String(), Reason: "rate must not be negative"}
	}
	for i, b := range t.SurchargeBands {
		field := fmt.Sprintf("surcharge_bands[%d]", i)
		if b.Rate.IsNegative() {
			return &InvalidInputError{Field: field + ".rate", Value: b.Rate.String(), Reason: "rate must not be negative"}
		}
		if b.Threshold.IsNegative() {
			return &InvalidInputError{Field: field + ".threshold", Value: b.Threshold.String(), Reason: "threshold must not be negative"}
		}
		if i > 0 && !b.Threshold.GreaterThan(t.SurchargeBands[i-1].Threshold) {
			return &InvalidInputError{Field: field + ".threshold", Value: b.Threshold.String(), Reason: "thresholds must be strictly ascending"}
		}
	}
	return nil
}

// Clone returns a deep copy so callers can never alias registry data
func (t RegimeSlabTable) Clone() RegimeSlabTable {
	out := t
	out.Slabs = make([]TaxSlab, len(t.Slabs))
	for i, s := range t.Slabs {
		out.Slabs[i] = s
		if s.UpperBound != nil {
			upper := *s.UpperBound
			out.Slabs[i].UpperBound = &upper
		}
	}
	out.SurchargeBands = append([]SurchargeBand(nil), t.SurchargeBands...)
	return out
}

// NewSlabs builds a contiguous slab list from ascending boundaries and one rate per slab.
// len(rates) must be len(bounds)+1; the last rate applies above the final boundary.
func NewSlabs(bounds []int64, rates []float64) []TaxSlab {
	if len(rates) != len(bounds)+1 {
		panic(fmt.Sprintf("domain.NewSlabs: %d bounds need %d rates, got %d", len(bounds), len(bounds)+1, len(rates)))
	}
	slabs := make([]TaxSlab, 0, len(rates))
	lower := decimal.Zero
	for i, r := range rates {
		s := TaxSlab{LowerBound: lower, Rate: decimal.NewFromFloat(r)}
		if i < len(bounds) {
			upper := decimal.NewFromInt(bounds[i])
			s.UpperBound = &upper
			lower = upper
		}
		slabs = append(slabs, s)
	}
	return slabs
}
