package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DeductionSection is the closed set of statutory provisions a claim may reference
type DeductionSection int

const (
	Section80C DeductionSection = iota + 1
	Section80CCD1B
	Section80D
	Section80E
	Section80G
	Section80TTA
	Section24B
	SectionHRA
	SectionConveyanceAllowance
	SectionLTA
	SectionStandardDeduction

	sectionSentinel
)

var sectionCodes = map[DeductionSection]string{
	Section80C:                 "80C",
	Section80CCD1B:             "80CCD(1B)",
	Section80D:                 "80D",
	Section80E:                 "80E",
	Section80G:                 "80G",
	Section80TTA:               "80TTA",
	Section24B:                 "24(b)",
	SectionHRA:                 "HRA",
	SectionConveyanceAllowance: "ConveyanceAllowance",
	SectionLTA:                 "LTA",
	SectionStandardDeduction:   "StandardDeduction",
}

var sectionAliases = map[string]DeductionSection{
	"24":                   Section24B,
	"24b":                  Section24B,
	"80ccd1b":              Section80CCD1B,
	"conveyance":           SectionConveyanceAllowance,
	"conveyance_allowance": SectionConveyanceAllowance,
	"standard":             SectionStandardDeduction,
	"standard_deduction":   SectionStandardDeduction,
}

// AllSections lists every section in declaration order
func AllSections() []DeductionSection {
	out := make([]DeductionSection, 0, len(sectionCodes))
	for s := Section80C; s < sectionSentinel; s++ {
		out = append(out, s)
	}
	return out
}

func (s DeductionSection) String() string {
	if code, ok := sectionCodes[s]; ok {
		return code
	}
	return fmt.Sprintf("DeductionSection(%d)", int(s))
}

// Valid reports whether s is a declared section. Values built by integer
// conversion can fall outside the enumeration.
func (s DeductionSection) Valid() bool {
	return s >= Section80C && s < sectionSentinel
}

// ParseDeductionSection resolves a section code case-insensitively
func ParseDeductionSection(code string) (DeductionSection, error) {
	key := strings.ToLower(strings.TrimSpace(code))
	for s, c := range sectionCodes {
		if strings.ToLower(c) == key {
			return s, nil
		}
	}
	if s, ok := sectionAliases[key]; ok {
		return s, nil
	}
	return 0, &UnknownDeductionSectionError{Section: code}
}

func (s DeductionSection) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &UnknownDeductionSectionError{Section: s.String()}
	}
	return []byte(s.String()), nil
}

func (s *DeductionSection) UnmarshalText(text []byte) error {
	parsed, err := ParseDeductionSection(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CapKind selects how a section's statutory limit is expressed
type CapKind int

const (
	CapFixed CapKind = iota + 1
	CapUnbounded
	CapPercentOfIncome
)

func (k CapKind) String() string {
	switch k {
	case CapFixed:
		return "fixed"
	case CapUnbounded:
		return "unbounded"
	case CapPercentOfIncome:
		return "percent_of_income"
	default:
		return fmt.Sprintf("CapKind(%d)", int(k))
	}
}

// ParseCapKind parses the onboarding spelling of a cap kind
func ParseCapKind(s string) (CapKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return CapFixed, nil
	case "unbounded":
		return CapUnbounded, nil
	case "percent_of_income", "percent":
		return CapPercentOfIncome, nil
	}
	return 0, &InvalidInputError{Field: "cap.kind", Value: s, Reason: "must be fixed, unbounded or percent_of_income"}
}

// Cap is a statutory limit on a single section
type Cap struct {
	Kind    CapKind
	Amount  decimal.Decimal // CapFixed
	Percent decimal.Decimal // CapPercentOfIncome, as a fraction of gross income
}

func FixedCap(amount int64) Cap {
	return Cap{Kind: CapFixed, Amount: decimal.NewFromInt(amount)}
}

func PercentCap(fraction float64) Cap {
	return Cap{Kind: CapPercentOfIncome, Percent: decimal.NewFromFloat(fraction)}
}

func Unbounded() Cap {
	return Cap{Kind: CapUnbounded}
}

// Limit evaluates the cap for a gross income. bounded is false for unbounded caps.
func (c Cap) Limit(grossIncome decimal.Decimal) (limit decimal.Decimal, bounded bool) {
	switch c.Kind {
	case CapFixed:
		return c.Amount, true
	case CapPercentOfIncome:
		if grossIncome.IsNegative() {
			return decimal.Zero, true
		}
		return grossIncome.Mul(c.Percent), true
	default:
		return decimal.Zero, false
	}
}

// Clamp limits claimed to the cap evaluated against grossIncome
func (c Cap) Clamp(claimed, grossIncome decimal.Decimal) decimal.Decimal {
	limit, bounded := c.Limit(grossIncome)
	if bounded && claimed.GreaterThan(limit) {
		return limit
	}
	return claimed
}

func (c Cap) Validate() error {
	switch c.Kind {
	case CapFixed:
		if c.Amount.IsNegative() {
			return &InvalidInputError{Field: "cap.amount", Value: c.Amount.String(), Reason: "must not be negative"}
		}
	case CapPercentOfIncome:
		if c.Percent.IsNegative() || c.Percent.GreaterThan(decimal.NewFromInt(1)) {
			return &InvalidInputError{Field: "cap.percent", Value: c.Percent.String(), Reason: "must be between 0 and 1"}
		}
	case CapUnbounded:
	default:
		return &InvalidInputError{Field: "cap.kind", Value: c.Kind.String(), Reason: "unknown cap kind"}
	}
	return nil
}

func (c Cap) String() string {
	switch c.Kind {
	case CapFixed:
		return FormatRupees(c.Amount)
	case CapPercentOfIncome:
		return FormatPercent(c.Percent) + " of gross income"
	default:
		return "unbounded"
	}
}

// DeductionRule carries the cap and regime eligibility for one section
type DeductionRule struct {
	Section         DeductionSection
	Cap             Cap
	CategoryCaps    map[TaxpayerCategory]Cap
	EligibleRegimes []Regime
}

// CapFor returns the cap that applies to a taxpayer category
func (r DeductionRule) CapFor(category TaxpayerCategory) Cap {
	if c, ok := r.CategoryCaps[category]; ok {
		return c
	}
	return r.Cap
}

// EligibleUnder reports whether the section may be claimed under regime
func (r DeductionRule) EligibleUnder(regime Regime) bool {
	for _, e := range r.EligibleRegimes {
		if e == regime {
			return true
		}
	}
	return false
}

func (r DeductionRule) Validate() error {
	if !r.Section.Valid() {
		return &UnknownDeductionSectionError{Section: r.Section.String()}
	}
	if err := r.Cap.Validate(); err != nil {
		return fmt.Errorf("section %s: %w", r.Section, err)
	}
	for cat, c := range r.CategoryCaps {
		if !cat.Valid() {
			return &InvalidInputError{Field: "category_caps", Value: cat.String(), Reason: "unknown category"}
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("section %s (%s): %w", r.Section, cat, err)
		}
	}
	for _, reg := range r.EligibleRegimes {
		if !reg.Valid() {
			return &InvalidInputError{Field: "eligible_regimes", Value: reg.String(), Reason: "unknown regime"}
		}
	}
	return nil
}

// DeductionCatalog is the immutable rule set indexed by section.
// Construct it with NewDeductionCatalog or DefaultDeductionCatalog.
type DeductionCatalog struct {
	rules map[DeductionSection]DeductionRule
}

// NewDeductionCatalog validates rules and builds a catalog. Every declared section
// must have a rule so that lookups for a valid section never miss.
func NewDeductionCatalog(rules []DeductionRule) (DeductionCatalog, error) {
	m := make(map[DeductionSection]DeductionRule, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return DeductionCatalog{}, err
		}
		if _, dup := m[r.Section]; dup {
			return DeductionCatalog{}, &InvalidInputError{Field: "deductions", Value: r.Section.String(), Reason: "duplicate rule"}
		}
		m[r.Section] = cloneRule(r)
	}
	for _, s := range AllSections() {
		if _, ok := m[s]; !ok {
			return DeductionCatalog{}, &InvalidInputError{Field: "deductions", Value: s.String(), Reason: "missing rule"}
		}
	}
	return DeductionCatalog{rules: m}, nil
}

// DefaultDeductionCatalog returns the built-in statutory caps
func DefaultDeductionCatalog() DeductionCatalog {
	oldOnly := []Regime{RegimeOld}
	seniorHealth := map[TaxpayerCategory]Cap{
		CategorySeniorCitizen:      FixedCap(50000),
		CategorySuperSeniorCitizen: FixedCap(50000),
	}
	cat, err := NewDeductionCatalog([]DeductionRule{
		{Section: Section80C, Cap: FixedCap(150000), EligibleRegimes: oldOnly},
		{Section: Section80CCD1B, Cap: FixedCap(50000), EligibleRegimes: oldOnly},
		{Section: Section80D, Cap: FixedCap(25000), CategoryCaps: seniorHealth, EligibleRegimes: oldOnly},
		{Section: Section80E, Cap: Unbounded(), EligibleRegimes: oldOnly},
		{Section: Section80G, Cap: PercentCap(0.10), EligibleRegimes: oldOnly},
		{Section: Section80TTA, Cap: FixedCap(10000), EligibleRegimes: oldOnly},
		{Section: Section24B, Cap: FixedCap(200000), EligibleRegimes: oldOnly},
		{Section: SectionHRA, Cap: Unbounded(), EligibleRegimes: oldOnly},
		{Section: SectionConveyanceAllowance, Cap: FixedCap(19200), EligibleRegimes: oldOnly},
		{Section: SectionLTA, Cap: Unbounded(), EligibleRegimes: oldOnly},
		{Section: SectionStandardDeduction, Cap: FixedCap(50000), EligibleRegimes: []Regime{RegimeOld, RegimeNew}},
	})
	if err != nil {
		panic(fmt.Sprintf("default deduction catalog: %v", err))
	}
	return cat
}

// Rule returns the rule for a section
func (c DeductionCatalog) Rule(s DeductionSection) (DeductionRule, bool) {
	r, ok := c.rules[s]
	return r, ok
}

// Rules returns every rule in section declaration order
func (c DeductionCatalog) Rules() []DeductionRule {
	out := make([]DeductionRule, 0, len(c.rules))
	for _, s := range AllSections() {
		if r, ok := c.rules[s]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Empty reports whether the catalog is the zero value
func (c DeductionCatalog) Empty() bool {
	return len(c.rules) == 0
}

// WithOverrides returns a new catalog with the given rules replacing existing ones
func (c DeductionCatalog) WithOverrides(overrides []DeductionRule) (DeductionCatalog, error) {
	merged := make(map[DeductionSection]DeductionRule, len(c.rules))
	for s, r := range c.rules {
		merged[s] = r
	}
	for _, o := range overrides {
		if !o.Section.Valid() {
			return DeductionCatalog{}, &UnknownDeductionSectionError{Section: o.Section.String()}
		}
		merged[o.Section] = o
	}
	rules := make([]DeductionRule, 0, len(merged))
	for _, s := range AllSections() {
		if r, ok := merged[s]; ok {
			rules = append(rules, r)
		}
	}
	return NewDeductionCatalog(rules)
}

func cloneRule(r DeductionRule) DeductionRule {
	out := r
	out.EligibleRegimes = append([]Regime(nil), r.EligibleRegimes...)
	if r.CategoryCaps != nil {
		out.CategoryCaps = make(map[TaxpayerCategory]Cap, len(r.CategoryCaps))
		for k, v := range r.CategoryCaps {
			out.CategoryCaps[k] = v
		}
	}
	return out
}

// DeductionClaim is an amount claimed under one section
type DeductionClaim struct {
	Section       DeductionSection `yaml:"section" json:"section"`
	ClaimedAmount decimal.Decimal  `yaml:"amount" json:"amount"`
}

// IncomeSnapshot is the per-request income context supplied by the caller
type IncomeSnapshot struct {
	GrossIncome decimal.Decimal  `json:"grossIncome"`
	FiscalYear  FiscalYear       `json:"fiscalYear"`
	Category    TaxpayerCategory `json:"category"`
}

// Validate checks the snapshot before any computation starts
func (s IncomeSnapshot) Validate() error {
	if err := RequireNonNegative("gross_income", s.GrossIncome); err != nil {
		return err
	}
	fy, err := ParseFiscalYear(string(s.FiscalYear))
	if err != nil {
		return err
	}
	if fy != s.FiscalYear {
		return &InvalidInputError{Field: "fiscal_year", Value: string(s.FiscalYear), Reason: "must not contain surrounding whitespace"}
	}
	if !s.Category.Valid() {
		return &InvalidInputError{Field: "category", Value: s.Category.String(), Reason: "unknown category"}
	}
	return nil
}
