package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "900000", "900000"},
		{"indian grouping", "12,34,567", "1234567"},
		{"western grouping", "1,234,567.50", "1234567.5"},
		{"rupee symbol", "₹ 1,50,000", "150000"},
		{"rs prefix", "Rs. 2500", "2500"},
		{"thousand", "1,000", "1000"},
		{"crore", "10,00,00,000", "100000000"},
		{"surrounding spaces", "  42  ", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney("amount", tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseMoney_Rejects(t *testing.T) {
	for _, input := range []string{"", "  ", "abc", "NaN", "Inf", "-500", "12.3.4", "1e6", "₹",
		"1,,,,", "1__2", "1_00_000", ",100", "100,", "12,3456", "1,00,0000", "1234,567", "1,2,3"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMoney("gross_income", input)
			require.Error(t, err)
			var invalid *InvalidInputError
			assert.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %T", err)
			assert.Equal(t, "gross_income", invalid.Field)
		})
	}
}

func TestFormatRupees(t *testing.T) {
	tests := map[string]string{
		"0":         "0",
		"999":       "999",
		"1000":      "1,000",
		"250000":    "2,50,000",
		"1234567":   "12,34,567",
		"100000000": "10,00,00,000",
		"1500.5":    "1,500.50",
		"-65000":    "-65,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatRupees(decimal.RequireFromString(in)), in)
	}
}

func TestParseDeductionSection(t *testing.T) {
	tests := map[string]DeductionSection{
		"80C":               Section80C,
		"80c":               Section80C,
		" 80D ":             Section80D,
		"80CCD(1B)":         Section80CCD1B,
		"24":                Section24B,
		"24(b)":             Section24B,
		"hra":               SectionHRA,
		"StandardDeduction": SectionStandardDeduction,
	}
	for code, want := range tests {
		got, err := ParseDeductionSection(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, got, code)
	}

	_, err := ParseDeductionSection("80Z")
	var unknown *UnknownDeductionSectionError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "80Z", unknown.Section)
}

func TestDeductionSection_Valid(t *testing.T) {
	for _, s := range AllSections() {
		assert.True(t, s.Valid(), s.String())
	}
	assert.False(t, DeductionSection(0).Valid())
	assert.False(t, DeductionSection(99).Valid())
}

func TestCap_Clamp(t *testing.T) {
	gross := decimal.NewFromInt(1000000)

	assert.True(t, FixedCap(150000).Clamp(decimal.NewFromInt(200000), gross).Equal(decimal.NewFromInt(150000)))
	assert.True(t, FixedCap(150000).Clamp(decimal.NewFromInt(90000), gross).Equal(decimal.NewFromInt(90000)))
	assert.True(t, PercentCap(0.10).Clamp(decimal.NewFromInt(250000), gross).Equal(decimal.NewFromInt(100000)))
	assert.True(t, Unbounded().Clamp(decimal.NewFromInt(750000), gross).Equal(decimal.NewFromInt(750000)))

	_, bounded := Unbounded().Limit(gross)
	assert.False(t, bounded)
}

func TestDefaultDeductionCatalog(t *testing.T) {
	cat := DefaultDeductionCatalog()
	require.Len(t, cat.Rules(), len(AllSections()))

	rule, ok := cat.Rule(Section80C)
	require.True(t, ok)
	assert.True(t, rule.EligibleUnder(RegimeOld))
	assert.False(t, rule.EligibleUnder(RegimeNew))

	std, _ := cat.Rule(SectionStandardDeduction)
	assert.True(t, std.EligibleUnder(RegimeNew))

	health, _ := cat.Rule(Section80D)
	limit, _ := health.CapFor(CategorySeniorCitizen).Limit(decimal.Zero)
	assert.True(t, limit.Equal(decimal.NewFromInt(50000)))
	limit, _ = health.CapFor(CategoryIndividual).Limit(decimal.Zero)
	assert.True(t, limit.Equal(decimal.NewFromInt(25000)))
}

func TestDeductionCatalog_WithOverrides(t *testing.T) {
	cat := DefaultDeductionCatalog()
	updated, err := cat.WithOverrides([]DeductionRule{
		{Section: Section80C, Cap: FixedCap(200000), EligibleRegimes: []Regime{RegimeOld}},
	})
	require.NoError(t, err)

	rule, _ := updated.Rule(Section80C)
	assert.True(t, rule.Cap.Amount.Equal(decimal.NewFromInt(200000)))

	original, _ := cat.Rule(Section80C)
	assert.True(t, original.Cap.Amount.Equal(decimal.NewFromInt(150000)), "source catalog must not change")

	_, err = cat.WithOverrides([]DeductionRule{{Section: DeductionSection(42), Cap: Unbounded()}})
	var unknown *UnknownDeductionSectionError
	assert.True(t, errors.As(err, &unknown))
}

func TestRegimeSlabTable_Validate(t *testing.T) {
	valid := RegimeSlabTable{
		Regime:     RegimeOld,
		Category:   CategoryIndividual,
		FiscalYear: "2024-25",
		Slabs:      NewSlabs([]int64{250000, 500000, 1000000}, []float64{0, 0.05, 0.20, 0.30}),
		CessRate:   decimal.NewFromFloat(0.04),
		SurchargeBands: []SurchargeBand{
			{Threshold: decimal.NewFromInt(5000000), Rate: decimal.NewFromFloat(0.10)},
			{Threshold: decimal.NewFromInt(10000000), Rate: decimal.NewFromFloat(0.15)},
		},
	}
	require.NoError(t, valid.Validate())

	gap := valid.Clone()
	gap.Slabs[1].LowerBound = decimal.NewFromInt(260000)
	assert.Error(t, gap.Validate(), "gap between slabs")

	bounded := valid.Clone()
	upper := decimal.NewFromInt(5000000)
	bounded.Slabs[3].UpperBound = &upper
	assert.Error(t, bounded.Validate(), "final slab must be unbounded")

	negative := valid.Clone()
	negative.CessRate = decimal.NewFromFloat(-0.01)
	assert.Error(t, negative.Validate())

	unordered := valid.Clone()
	unordered.SurchargeBands[1].Threshold = decimal.NewFromInt(4000000)
	assert.Error(t, unordered.Validate())

	badYear := valid.Clone()
	badYear.FiscalYear = "2024-26"
	assert.Error(t, badYear.Validate())
}

func TestRegimeSlabTable_CloneIsDeep(t *testing.T) {
	table := RegimeSlabTable{Slabs: NewSlabs([]int64{300000}, []float64{0, 0.05})}
	clone := table.Clone()
	*clone.Slabs[0].UpperBound = decimal.NewFromInt(1)
	assert.True(t, table.Slabs[0].UpperBound.Equal(decimal.NewFromInt(300000)))
}

func TestParseFiscalYear(t *testing.T) {
	fy, err := ParseFiscalYear("2099-00")
	require.NoError(t, err)
	assert.Equal(t, 2099, fy.StartYear())

	for _, bad := range []string{"2024", "2024-2025", "24-25", "2024-24"} {
		_, err := ParseFiscalYear(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCategoryAndRegime(t *testing.T) {
	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryIndividual, c)

	c, err = ParseCategory("SUPER_SENIOR_CITIZEN")
	require.NoError(t, err)
	assert.Equal(t, CategorySuperSeniorCitizen, c)

	_, err = ParseCategory("minor")
	assert.Error(t, err)

	r, err := ParseRegime("New")
	require.NoError(t, err)
	assert.Equal(t, RegimeNew, r)
}

func TestIncomeSnapshot_Validate(t *testing.T) {
	valid := IncomeSnapshot{GrossIncome: decimal.NewFromInt(900000), FiscalYear: "2024-25", Category: CategoryIndividual}
	require.NoError(t, valid.Validate())

	for _, fy := range []FiscalYear{" 2024-25", "2024-25 ", "2024-26", ""} {
		snapshot := valid
		snapshot.FiscalYear = fy
		err := snapshot.Validate()
		var invalid *InvalidInputError
		require.True(t, errors.As(err, &invalid), "fiscal year %q", fy)
		assert.Equal(t, "fiscal_year", invalid.Field)
	}

	negative := valid
	negative.GrossIncome = decimal.NewFromInt(-1)
	assert.Error(t, negative.Validate())
}
