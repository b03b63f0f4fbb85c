package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestComparison(t *testing.T) *domain.RegimeComparisonResult {
	t.Helper()
	result, err := calculation.NewDefaultEngine().Compare(
		domain.IncomeSnapshot{GrossIncome: decimal.NewFromInt(900000), FiscalYear: "2023-24", Category: domain.CategoryIndividual},
		[]domain.DeductionClaim{{Section: domain.Section80C, ClaimedAmount: decimal.NewFromInt(200000)}},
	)
	require.NoError(t, err)
	return result
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f, err := GetFormatterByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	f, err := GetFormatterByName(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Name())

	_, err = GetFormatterByName("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console, csv, json")
}

func TestWriteFormatted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFormatted(&buf, []byte("abc")))
	assert.Equal(t, "abc\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteFormatted(&buf, []byte("abc\n")))
	assert.Equal(t, "abc\n", buf.String())
}

func TestConsoleFormatter_Comparison(t *testing.T) {
	out, err := ConsoleFormatter{}.FormatComparison(buildTestComparison(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "FY 2023-24 (individual)")
	assert.Contains(t, text, "OLD REGIME")
	assert.Contains(t, text, "NEW REGIME ✓")
	assert.Contains(t, text, "₹65,000")
	assert.Contains(t, text, "₹46,800")
	assert.Contains(t, text, "Recommended: NEW regime, saves ₹18,200")
	assert.Contains(t, text, "(capped)")
	assert.Contains(t, text, "24(b)")
	assert.Contains(t, text, "0 - 2,50,000")
	assert.Contains(t, text, "none allowed")
	for _, a := range DefaultAssumptions {
		assert.Contains(t, text, a)
	}
}

func TestConsoleFormatter_Tie(t *testing.T) {
	result, err := calculation.NewDefaultEngine().Compare(
		domain.IncomeSnapshot{GrossIncome: decimal.Zero, FiscalYear: "2024-25", Category: domain.CategoryIndividual}, nil)
	require.NoError(t, err)

	out, err := ConsoleFormatter{}.FormatComparison(result)
	require.NoError(t, err)
	assert.Contains(t, string(out), "both regimes cost the same")
	assert.Contains(t, string(out), "no taxable income")
}

func TestConsoleFormatter_Computation(t *testing.T) {
	cmp := buildTestComparison(t)
	out, err := ConsoleFormatter{}.FormatComputation(&cmp.OldRegime)
	require.NoError(t, err)

	assert.Contains(t, string(out), "OLD REGIME")
	assert.Contains(t, string(out), "7.22%")
}

func TestConsoleFormatter_Batch(t *testing.T) {
	rows := []BatchRow{
		{Label: "first", Comparison: buildTestComparison(t)},
		{Label: "a-very-long-label-that-will-not-fit-the-column", Err: errors.New("boom")},
	}

	out, err := ConsoleFormatter{}.FormatBatch(rows)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "first")
	assert.Contains(t, text, "error: boom")
	assert.Contains(t, text, "…")
	assert.Contains(t, text, "2 taxpayers, 1 failed")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Indent: "  "}.FormatComparison(buildTestComparison(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "new", decoded["recommendedRegime"])
	assert.Equal(t, "18200", decoded["savings"])

	oldRegime := decoded["oldRegime"].(map[string]any)
	assert.Equal(t, "2023-24", oldRegime["fiscalYear"])
	lines := oldRegime["deductionBreakdown"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, "80C", lines[0].(map[string]any)["section"])

	suggestions := decoded["optimizationSuggestions"].([]any)
	assert.Equal(t, "24(b)", suggestions[0].(map[string]any)["section"])
}

func TestJSONFormatter_Batch(t *testing.T) {
	out, err := JSONFormatter{}.FormatBatch([]BatchRow{
		{Label: "ok", Comparison: buildTestComparison(t)},
		{Label: "bad", Err: errors.New("unknown deduction section \"80Z\"")},
	})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.NotNil(t, decoded[0]["comparison"])
	assert.Nil(t, decoded[1]["comparison"])
	assert.Contains(t, decoded[1]["error"], "80Z")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.FormatComparison(buildTestComparison(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])

	old, neu := records[1], records[2]
	assert.Equal(t, "old", old[1])
	assert.Equal(t, "65000.00", old[11])
	assert.Equal(t, "false", old[13])
	assert.Equal(t, "new", neu[1])
	assert.Equal(t, "46800.00", neu[11])
	assert.Equal(t, "true", neu[13])
	assert.Equal(t, "18200.00", neu[14])
}

func TestCSVFormatter_BatchAndComputation(t *testing.T) {
	cmp := buildTestComparison(t)

	out, err := CSVFormatter{}.FormatBatch([]BatchRow{
		{Label: "a", Comparison: cmp},
		{Label: "b", Err: errors.New("no table")},
	})
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "a", records[1][0])
	assert.Equal(t, "b", records[3][0])
	assert.Equal(t, "no table", records[3][len(csvHeader)-1])

	out, err = CSVFormatter{}.FormatComputation(&cmp.NewRegime)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "\n"))
}
