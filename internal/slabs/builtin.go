package slabs

import (
	"fmt"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// BUILT-IN TABLE ASSUMPTIONS:
//
// 1. Old regime slabs are unchanged across the built-in years.
//    Basic exemption: 2.5L (individual, HUF), 3L (senior), 5L (super senior).
//
// 2. New regime slabs are identical for every category.
//
// 3. Surcharge is a flat multiplier on base tax once taxable income reaches a
//    threshold. The new regime caps the surcharge at 25%. Marginal relief is not
//    modelled.
//
// 4. Health and education cess is 4% of base tax plus surcharge.

// BuiltinFiscalYears are the years shipped with the binary
var BuiltinFiscalYears = []domain.FiscalYear{"2023-24", "2024-25", "2025-26"}

var (
	cessRate = decimal.NewFromFloat(0.04)

	oldSurcharge = []domain.SurchargeBand{
		band(5000000, 0.10),
		band(10000000, 0.15),
		band(20000000, 0.25),
		band(50000000, 0.37),
	}
	newSurcharge = []domain.SurchargeBand{
		band(5000000, 0.10),
		band(10000000, 0.15),
		band(20000000, 0.25),
	}
)

func band(threshold int64, rate float64) domain.SurchargeBand {
	return domain.SurchargeBand{Threshold: decimal.NewFromInt(threshold), Rate: decimal.NewFromFloat(rate)}
}

func oldRegimeSlabs(category domain.TaxpayerCategory) []domain.TaxSlab {
	switch category {
	case domain.CategorySeniorCitizen:
		return domain.NewSlabs([]int64{300000, 500000, 1000000}, []float64{0, 0.05, 0.20, 0.30})
	case domain.CategorySuperSeniorCitizen:
		return domain.NewSlabs([]int64{500000, 1000000}, []float64{0, 0.20, 0.30})
	default:
		return domain.NewSlabs([]int64{250000, 500000, 1000000}, []float64{0, 0.05, 0.20, 0.30})
	}
}

func newRegimeSlabs(fy domain.FiscalYear) []domain.TaxSlab {
	switch fy {
	case "2023-24":
		return domain.NewSlabs(
			[]int64{300000, 600000, 900000, 1200000, 1500000},
			[]float64{0, 0.05, 0.10, 0.15, 0.20, 0.30})
	case "2024-25":
		return domain.NewSlabs(
			[]int64{300000, 700000, 1000000, 1200000, 1500000},
			[]float64{0, 0.05, 0.10, 0.15, 0.20, 0.30})
	case "2025-26":
		return domain.NewSlabs(
			[]int64{400000, 800000, 1200000, 1600000, 2000000, 2400000},
			[]float64{0, 0.05, 0.10, 0.15, 0.20, 0.25, 0.30})
	}
	return nil
}

// BuiltinTables returns every built-in table
func BuiltinTables() []domain.RegimeSlabTable {
	var tables []domain.RegimeSlabTable
	for _, fy := range BuiltinFiscalYears {
		for _, cat := range domain.AllCategories {
			tables = append(tables,
				domain.RegimeSlabTable{
					Regime:         domain.RegimeOld,
					Category:       cat,
					FiscalYear:     fy,
					Slabs:          oldRegimeSlabs(cat),
					CessRate:       cessRate,
					SurchargeBands: oldSurcharge,
				},
				domain.RegimeSlabTable{
					Regime:         domain.RegimeNew,
					Category:       cat,
					FiscalYear:     fy,
					Slabs:          newRegimeSlabs(fy),
					CessRate:       cessRate,
					SurchargeBands: newSurcharge,
				},
			)
		}
	}
	return tables
}

// Builtin returns a registry loaded with the built-in tables
func Builtin() *Registry {
	r := NewRegistry()
	if err := r.Register(BuiltinTables()...); err != nil {
		panic(fmt.Sprintf("built-in slab tables: %v", err))
	}
	return r
}
