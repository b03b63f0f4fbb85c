package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Regime identifies one of the two mutually exclusive statutory computation modes
type Regime int

const (
	RegimeOld Regime = iota + 1
	RegimeNew
)

// AllRegimes lists the regimes in presentation order
var AllRegimes = []Regime{RegimeOld, RegimeNew}

func (r Regime) String() string {
	switch r {
	case RegimeOld:
		return "old"
	case RegimeNew:
		return "new"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// Valid reports whether r is one of the declared regimes
func (r Regime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// ParseRegime parses "old" or "new" (case-insensitive)
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old":
		return RegimeOld, nil
	case "new":
		return RegimeNew, nil
	}
	return 0, &InvalidInputError{Field: "regime", Value: s, Reason: "must be old or new"}
}

func (r Regime) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, &InvalidInputError{Field: "regime", Value: r.String(), Reason: "unknown regime"}
	}
	return []byte(r.String()), nil
}

func (r *Regime) UnmarshalText(text []byte) error {
	parsed, err := ParseRegime(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// TaxpayerCategory selects the slab table variant for age or entity type
type TaxpayerCategory int

const (
	CategoryIndividual TaxpayerCategory = iota + 1
	CategorySeniorCitizen
	CategorySuperSeniorCitizen
	CategoryHUF
)

// AllCategories lists every taxpayer category
var AllCategories = []TaxpayerCategory{
	CategoryIndividual,
	CategorySeniorCitizen,
	CategorySuperSeniorCitizen,
	CategoryHUF,
}

func (c TaxpayerCategory) String() string {
	switch c {
	case CategoryIndividual:
		return "individual"
	case CategorySeniorCitizen:
		return "senior_citizen"
	case CategorySuperSeniorCitizen:
		return "super_senior_citizen"
	case CategoryHUF:
		return "huf"
	default:
		return fmt.Sprintf("TaxpayerCategory(%d)", int(c))
	}
}

func (c TaxpayerCategory) Valid() bool {
	return c >= CategoryIndividual && c <= CategoryHUF
}

// ParseCategory parses a category name. An empty string means individual.
func ParseCategory(s string) (TaxpayerCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "individual":
		return CategoryIndividual, nil
	case "senior_citizen", "senior":
		return CategorySeniorCitizen, nil
	case "super_senior_citizen", "super_senior":
		return CategorySuperSeniorCitizen, nil
	case "huf":
		return CategoryHUF, nil
	}
	return 0, &InvalidInputError{
		Field:  "category",
		Value:  s,
		Reason: "must be one of individual, senior_citizen, super_senior_citizen, huf",
	}
}

func (c TaxpayerCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &InvalidInputError{Field: "category", Value: c.String(), Reason: "unknown category"}
	}
	return []byte(c.String()), nil
}

func (c *TaxpayerCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FiscalYear is an Indian financial year label such as "2024-25"
type FiscalYear string

var fiscalYearPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ParseFiscalYear validates the YYYY-YY form and that the second year follows the first
func ParseFiscalYear(s string) (FiscalYear, error) {
	s = strings.TrimSpace(s)
	m := fiscalYearPattern.FindStringSubmatch(s)
	if m == nil {
		return "", &InvalidInputError{Field: "fiscal_year", Value: s, Reason: "expected YYYY-YY"}
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return "", &InvalidInputError{Field: "fiscal_year", Value: s, Reason: "second year must follow the first"}
	}
	return FiscalYear(s), nil
}

// StartYear returns the calendar year the fiscal year begins in
func (fy FiscalYear) StartYear() int {
	m := fiscalYearPattern.FindStringSubmatch(string(fy))
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	return y
}

func (fy FiscalYear) String() string { return string(fy) }
