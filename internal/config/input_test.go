package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInputParser_LoadFromFile(t *testing.T) {
	path := writeFile(t, "taxpayer.yaml", `
label: asha
fiscal_year: "2023-24"
category: senior
gross_income: "₹12,00,000"
deductions:
  - section: 80C
    amount: 150000
  - section: 80d
    amount: "50,000"
  - section: standard_deduction
    amount: 50000.50
`)

	req, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "asha", req.Label)
	assert.Equal(t, domain.FiscalYear("2023-24"), req.Income.FiscalYear)
	assert.Equal(t, domain.CategorySeniorCitizen, req.Income.Category)
	assert.True(t, decimal.NewFromInt(1200000).Equal(req.Income.GrossIncome))
	require.Len(t, req.Claims, 3)
	assert.Equal(t, domain.Section80C, req.Claims[0].Section)
	assert.Equal(t, domain.Section80D, req.Claims[1].Section)
	assert.True(t, decimal.NewFromInt(50000).Equal(req.Claims[1].ClaimedAmount))
	assert.True(t, decimal.RequireFromString("50000.5").Equal(req.Claims[2].ClaimedAmount))
}

func TestInputParser_DefaultsLabelAndCategory(t *testing.T) {
	path := writeFile(t, "plain.yaml", "fiscal_year: 2024-25\ngross_income: 900000\n")

	req, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, req.Label)
	assert.Equal(t, domain.CategoryIndividual, req.Income.Category)
	assert.Empty(t, req.Claims)
}

func TestInputParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "negative income",
			input: "fiscal_year: 2024-25\ngross_income: -5\n",
			check: func(t *testing.T, err error) {
				var invalid *domain.InvalidInputError
				assert.True(t, errors.As(err, &invalid))
			},
		},
		{
			name:  "non numeric amount",
			input: "fiscal_year: 2024-25\ngross_income: lots\n",
			check: func(t *testing.T, err error) {
				var invalid *domain.InvalidInputError
				assert.True(t, errors.As(err, &invalid))
				assert.Contains(t, err.Error(), "line 2")
			},
		},
		{
			name:  "unknown section",
			input: "fiscal_year: 2024-25\ngross_income: 100\ndeductions:\n  - section: 80Z\n    amount: 10\n",
			check: func(t *testing.T, err error) {
				var unknown *domain.UnknownDeductionSectionError
				require.True(t, errors.As(err, &unknown))
				assert.Equal(t, "80Z", unknown.Section)
			},
		},
		{
			name:  "bad fiscal year",
			input: "fiscal_year: 2024-26\ngross_income: 100\n",
			check: func(t *testing.T, err error) {
				var invalid *domain.InvalidInputError
				assert.True(t, errors.As(err, &invalid))
			},
		},
		{
			name:  "missing gross income",
			input: "fiscal_year: 2024-25\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "GrossIncome")
			},
		},
		{
			name:  "claim without amount",
			input: "fiscal_year: \"2024-25\"\ngross_income: 1200000\ndeductions:\n  - section: 80C\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "Deductions[0].Amount")
			},
		},
		{
			name:  "unknown field",
			input: "fiscal_year: 2024-25\ngross_income: 100\nsalary: 5\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "salary")
			},
		},
		{
			name:  "empty document",
			input: "",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "empty")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.input))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestInputParser_LoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInputParser_LoadBatchFromFile(t *testing.T) {
	path := writeFile(t, "batch.yaml", `
taxpayers:
  - label: first
    fiscal_year: "2023-24"
    gross_income: 900000
    deductions:
      - section: 80C
        amount: 150000
  - fiscal_year: "2025-26"
    category: huf
    gross_income: "25,00,000"
`)

	reqs, err := NewInputParser().LoadBatchFromFile(path)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "first", reqs[0].Label)
	assert.Equal(t, path+"#2", reqs[1].Label)
	assert.Equal(t, domain.CategoryHUF, reqs[1].Income.Category)
	assert.True(t, decimal.NewFromInt(2500000).Equal(reqs[1].Income.GrossIncome))
}

func TestInputParser_LoadBatchFromFile_Errors(t *testing.T) {
	empty := writeFile(t, "empty.yaml", "taxpayers: []\n")
	_, err := NewInputParser().LoadBatchFromFile(empty)
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "taxpayers:\n  - fiscal_year: 2024-25\n    gross_income: 1\n    category: company\n")
	_, err = NewInputParser().LoadBatchFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taxpayers[0]")
}

func TestTaxpayerFile_ToRequest_MissingClaimAmount(t *testing.T) {
	gross := &Amount{Decimal: decimal.NewFromInt(1200000)}
	tf := TaxpayerFile{
		FiscalYear:  "2024-25",
		GrossIncome: gross,
		Deductions: []ClaimEntry{
			{Section: "80C", Amount: &Amount{Decimal: decimal.NewFromInt(150000)}},
			{Section: "80D"},
		},
	}

	_, err := tf.ToRequest()
	require.Error(t, err)
	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "deductions[1].amount", invalid.Field)
}
