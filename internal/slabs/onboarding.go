package slabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// onboardingValidate checks onboarding documents before they are converted
// into domain types. Initialized in init() with the fiscal year validator.
var onboardingValidate *validator.Validate

func init() {
	onboardingValidate = validator.New()
	_ = onboardingValidate.RegisterValidation("fiscalyear", validateFiscalYear)
}

func validateFiscalYear(fl validator.FieldLevel) bool {
	_, err := domain.ParseFiscalYear(fl.Field().String())
	return err == nil
}

// Document is the YAML layout used to onboard a fiscal year
type Document struct {
	Tables     []TableSpec     `yaml:"tables" validate:"dive"`
	Deductions []DeductionSpec `yaml:"deductions" validate:"dive"`
}

// TableSpec describes one slab table
type TableSpec struct {
	Regime         string                 `yaml:"regime" validate:"required,oneof=old new"`
	Category       string                 `yaml:"category" validate:"required,oneof=individual senior_citizen super_senior_citizen huf"`
	FiscalYear     string                 `yaml:"fiscal_year" validate:"required,fiscalyear"`
	CessRate       decimal.Decimal        `yaml:"cess_rate"`
	Slabs          []domain.TaxSlab       `yaml:"slabs" validate:"required,min=1"`
	SurchargeBands []domain.SurchargeBand `yaml:"surcharge_bands"`
}

// DeductionSpec overrides the cap and eligibility of one section
type DeductionSpec struct {
	Section         string             `yaml:"section" validate:"required"`
	Cap             CapSpec            `yaml:"cap"`
	CategoryCaps    map[string]CapSpec `yaml:"category_caps" validate:"omitempty,dive,keys,oneof=individual senior_citizen super_senior_citizen huf,endkeys"`
	EligibleRegimes []string           `yaml:"eligible_regimes" validate:"required,min=1,dive,oneof=old new"`
}

// CapSpec is the YAML form of domain.Cap
type CapSpec struct {
	Kind    string          `yaml:"kind" validate:"required,oneof=fixed unbounded percent_of_income"`
	Amount  decimal.Decimal `yaml:"amount"`
	Percent decimal.Decimal `yaml:"percent"`
}

// Onboarding is a validated document converted to domain values
type Onboarding struct {
	Tables     []domain.RegimeSlabTable
	Deductions []domain.DeductionRule
}

// LoadFile reads and validates an onboarding document
func LoadFile(path string) (*Onboarding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	ob, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ob, nil
}

// Parse decodes and validates an onboarding document
func Parse(data []byte) (*Onboarding, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := onboardingValidate.Struct(doc); err != nil {
		return nil, fmt.Errorf("onboarding validation failed: %w", err)
	}
	return doc.convert()
}

func (d Document) convert() (*Onboarding, error) {
	ob := &Onboarding{}
	for i, ts := range d.Tables {
		t, err := ts.toDomain()
		if err != nil {
			return nil, fmt.Errorf("tables[%d]: %w", i, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("tables[%d] (%s): %w", i, t.Key(), err)
		}
		ob.Tables = append(ob.Tables, t)
	}
	for i, ds := range d.Deductions {
		r, err := ds.toDomain()
		if err != nil {
			return nil, fmt.Errorf("deductions[%d]: %w", i, err)
		}
		ob.Deductions = append(ob.Deductions, r)
	}
	return ob, nil
}

func (ts TableSpec) toDomain() (domain.RegimeSlabTable, error) {
	regime, err := domain.ParseRegime(ts.Regime)
	if err != nil {
		return domain.RegimeSlabTable{}, err
	}
	category, err := domain.ParseCategory(ts.Category)
	if err != nil {
		return domain.RegimeSlabTable{}, err
	}
	fy, err := domain.ParseFiscalYear(ts.FiscalYear)
	if err != nil {
		return domain.RegimeSlabTable{}, err
	}
	return domain.RegimeSlabTable{
		Regime:         regime,
		Category:       category,
		FiscalYear:     fy,
		Slabs:          ts.Slabs,
		CessRate:       ts.CessRate,
		SurchargeBands: ts.SurchargeBands,
	}, nil
}

func (ds DeductionSpec) toDomain() (domain.DeductionRule, error) {
	section, err := domain.ParseDeductionSection(ds.Section)
	if err != nil {
		return domain.DeductionRule{}, err
	}
	c, err := ds.Cap.toDomain()
	if err != nil {
		return domain.DeductionRule{}, err
	}
	rule := domain.DeductionRule{Section: section, Cap: c}
	for name, spec := range ds.CategoryCaps {
		cat, err := domain.ParseCategory(name)
		if err != nil {
			return domain.DeductionRule{}, err
		}
		cc, err := spec.toDomain()
		if err != nil {
			return domain.DeductionRule{}, fmt.Errorf("category_caps[%s]: %w", name, err)
		}
		if rule.CategoryCaps == nil {
			rule.CategoryCaps = map[domain.TaxpayerCategory]domain.Cap{}
		}
		rule.CategoryCaps[cat] = cc
	}
	for _, name := range ds.EligibleRegimes {
		r, err := domain.ParseRegime(name)
		if err != nil {
			return domain.DeductionRule{}, err
		}
		rule.EligibleRegimes = append(rule.EligibleRegimes, r)
	}
	if err := rule.Validate(); err != nil {
		return domain.DeductionRule{}, err
	}
	return rule, nil
}

func (cs CapSpec) toDomain() (domain.Cap, error) {
	kind, err := domain.ParseCapKind(cs.Kind)
	if err != nil {
		return domain.Cap{}, err
	}
	c := domain.Cap{Kind: kind, Amount: cs.Amount, Percent: cs.Percent}
	return c, c.Validate()
}

// Apply registers the onboarded tables and returns catalog with the deduction
// overrides merged in. The registry is left untouched when any step fails.
func (ob *Onboarding) Apply(reg *Registry, catalog domain.DeductionCatalog) (domain.DeductionCatalog, error) {
	updated := catalog
	if len(ob.Deductions) > 0 {
		var err error
		updated, err = catalog.WithOverrides(ob.Deductions)
		if err != nil {
			return catalog, fmt.Errorf("deduction overrides: %w", err)
		}
	}
	if len(ob.Tables) > 0 {
		if err := reg.Register(ob.Tables...); err != nil {
			return catalog, err
		}
	}
	return updated, nil
}
