package domain

import "fmt"

// InvalidInputError reports non-numeric, negative or out-of-domain input.
// Callers map it to a field-level validation message.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that no slab table is registered for a regime/category/year tuple
type NotFoundError struct {
	Regime     Regime
	Category   TaxpayerCategory
	FiscalYear FiscalYear
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s regime slab table for %s in fiscal year %s", e.Regime, e.Category, e.FiscalYear)
}

// UnknownDeductionSectionError reports a claim for a section outside the closed enumeration
type UnknownDeductionSectionError struct {
	Section string
}

func (e *UnknownDeductionSectionError) Error() string {
	return fmt.Sprintf("unknown deduction section %q", e.Section)
}
