package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var inputValidate = validator.New()

// Amount is a rupee value in an input file. It accepts bare numbers as well as
// strings such as "12,00,000" or "₹1,50,000".
type Amount struct {
	decimal.Decimal
}

// UnmarshalYAML parses the scalar through domain.ParseMoney
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", value.Line)
	}
	d, err := domain.ParseMoney("amount", value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	a.Decimal = d
	return nil
}

// ClaimEntry is one deduction claim in an input file
type ClaimEntry struct {
	Section string  `yaml:"section" validate:"required"`
	Amount  *Amount `yaml:"amount" validate:"required"`
}

// TaxpayerFile is the YAML layout of a single taxpayer
type TaxpayerFile struct {
	Label       string       `yaml:"label"`
	FiscalYear  string       `yaml:"fiscal_year" validate:"required"`
	Category    string       `yaml:"category"`
	GrossIncome *Amount      `yaml:"gross_income" validate:"required"`
	Deductions  []ClaimEntry `yaml:"deductions" validate:"dive"`
}

// BatchFile holds several taxpayers
type BatchFile struct {
	Taxpayers []TaxpayerFile `yaml:"taxpayers" validate:"required,min=1,dive"`
}

// InputParser handles parsing of taxpayer input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a single taxpayer from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (calculation.Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return calculation.Request{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	req, err := ip.Parse(data)
	if err != nil {
		return calculation.Request{}, fmt.Errorf("%s: %w", filename, err)
	}
	if req.Label == "" {
		req.Label = filename
	}
	return req, nil
}

// Parse decodes a single taxpayer document
func (ip *InputParser) Parse(data []byte) (calculation.Request, error) {
	var file TaxpayerFile
	if err := decodeStrict(data, &file); err != nil {
		return calculation.Request{}, err
	}
	if err := inputValidate.Struct(file); err != nil {
		return calculation.Request{}, fmt.Errorf("input validation failed: %w", err)
	}
	return file.ToRequest()
}

// LoadBatchFromFile loads every taxpayer from a batch file
func (ip *InputParser) LoadBatchFromFile(filename string) ([]calculation.Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file BatchFile
	if err := decodeStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := inputValidate.Struct(file); err != nil {
		return nil, fmt.Errorf("%s: input validation failed: %w", filename, err)
	}

	reqs := make([]calculation.Request, 0, len(file.Taxpayers))
	for i, tp := range file.Taxpayers {
		req, err := tp.ToRequest()
		if err != nil {
			return nil, fmt.Errorf("%s: taxpayers[%d]: %w", filename, i, err)
		}
		if req.Label == "" {
			req.Label = fmt.Sprintf("%s#%d", filename, i+1)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// ToRequest converts the file form into an engine request
func (tf TaxpayerFile) ToRequest() (calculation.Request, error) {
	fy, err := domain.ParseFiscalYear(tf.FiscalYear)
	if err != nil {
		return calculation.Request{}, err
	}
	category, err := domain.ParseCategory(tf.Category)
	if err != nil {
		return calculation.Request{}, err
	}
	if tf.GrossIncome == nil {
		return calculation.Request{}, &domain.InvalidInputError{Field: "gross_income", Reason: "required"}
	}

	claims := make([]domain.DeductionClaim, 0, len(tf.Deductions))
	for i, d := range tf.Deductions {
		section, err := domain.ParseDeductionSection(d.Section)
		if err != nil {
			return calculation.Request{}, fmt.Errorf("deductions[%d]: %w", i, err)
		}
		if d.Amount == nil {
			return calculation.Request{}, &domain.InvalidInputError{Field: fmt.Sprintf("deductions[%d].amount", i), Reason: "required"}
		}
		claims = append(claims, domain.DeductionClaim{Section: section, ClaimedAmount: d.Amount.Decimal})
	}

	return calculation.Request{
		Label: tf.Label,
		Income: domain.IncomeSnapshot{
			GrossIncome: tf.GrossIncome.Decimal,
			FiscalYear:  fy,
			Category:    category,
		},
		Claims: claims,
	}, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("input is empty")
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
