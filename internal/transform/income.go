package transform

import (
	"fmt"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// SetIncome replaces the gross income
type SetIncome struct {
	Amount decimal.Decimal
}

func (si *SetIncome) Name() string {
	return "set_income"
}

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Set gross income to ₹%s", domain.FormatRupees(si.Amount))
}

func (si *SetIncome) Validate(base calculation.Request) error {
	if err := domain.RequireNonNegative("amount", si.Amount); err != nil {
		return NewTransformError(si.Name(), "validate", "gross income cannot be negative", err)
	}
	return nil
}

func (si *SetIncome) Apply(base calculation.Request) (calculation.Request, error) {
	modified := base.Clone()
	modified.Income.GrossIncome = si.Amount
	return modified, nil
}

// SetCategory changes the taxpayer category
type SetCategory struct {
	Category domain.TaxpayerCategory
}

func (sc *SetCategory) Name() string {
	return "set_category"
}

func (sc *SetCategory) Description() string {
	return fmt.Sprintf("Treat the taxpayer as %s", sc.Category)
}

func (sc *SetCategory) Validate(base calculation.Request) error {
	if !sc.Category.Valid() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("unknown category %s", sc.Category), nil)
	}
	return nil
}

func (sc *SetCategory) Apply(base calculation.Request) (calculation.Request, error) {
	modified := base.Clone()
	modified.Income.Category = sc.Category
	return modified, nil
}

// SetFiscalYear moves the request to another fiscal year
type SetFiscalYear struct {
	Year domain.FiscalYear
}

func (sf *SetFiscalYear) Name() string {
	return "set_fiscal_year"
}

func (sf *SetFiscalYear) Description() string {
	return fmt.Sprintf("Compute for fiscal year %s", sf.Year)
}

func (sf *SetFiscalYear) Validate(base calculation.Request) error {
	if _, err := domain.ParseFiscalYear(string(sf.Year)); err != nil {
		return NewTransformError(sf.Name(), "validate", "malformed fiscal year", err)
	}
	return nil
}

func (sf *SetFiscalYear) Apply(base calculation.Request) (calculation.Request, error) {
	modified := base.Clone()
	modified.Income.FiscalYear = sf.Year
	return modified, nil
}
