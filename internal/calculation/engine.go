package calculation

import (
	"fmt"
	"sort"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/slabs"
	"github.com/shopspring/decimal"
)

// TableProvider looks up slab tables. *slabs.Registry implements it.
type TableProvider interface {
	Lookup(regime domain.Regime, category domain.TaxpayerCategory, fy domain.FiscalYear) (domain.RegimeSlabTable, error)
}

// Request is one taxpayer's inputs for a comparison
type Request struct {
	Label  string
	Income domain.IncomeSnapshot
	Claims []domain.DeductionClaim
}

// Clone returns a copy that shares no slices with r
func (r Request) Clone() Request {
	out := r
	out.Claims = append([]domain.DeductionClaim(nil), r.Claims...)
	return out
}

// Engine computes liabilities and compares regimes. It holds only immutable
// reference data and is safe for concurrent use.
type Engine struct {
	Tables  TableProvider
	Catalog domain.DeductionCatalog
	Logger  Logger
}

// NewEngine creates an engine over the given tables and deduction rules
func NewEngine(tables TableProvider, catalog domain.DeductionCatalog) *Engine {
	if catalog.Empty() {
		catalog = domain.DefaultDeductionCatalog()
	}
	return &Engine{
		Tables:  tables,
		Catalog: catalog,
		Logger:  NopLogger{},
	}
}

// NewDefaultEngine creates an engine over the built-in tables and caps
func NewDefaultEngine() *Engine {
	return NewEngine(slabs.Builtin(), domain.DefaultDeductionCatalog())
}

// SetLogger sets the logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ComputeRegime computes the liability under a single regime
func (e *Engine) ComputeRegime(income domain.IncomeSnapshot, claims []domain.DeductionClaim, regime domain.Regime) (*domain.TaxComputationResult, error) {
	if !regime.Valid() {
		err := &domain.InvalidInputError{Field: "regime", Value: regime.String(), Reason: "unknown regime"}
		recordError(err)
		return nil, err
	}
	merged, err := e.prepare(income, claims)
	if err != nil {
		recordError(err)
		return nil, err
	}
	table, err := e.Tables.Lookup(regime, income.Category, income.FiscalYear)
	if err != nil {
		recordError(err)
		return nil, fmt.Errorf("%s regime: %w", regime, err)
	}
	result := e.computeWith(income, merged, table)
	return &result, nil
}

// Compare computes both regimes, recommends the cheaper one and suggests where
// unused old-regime deduction headroom would save tax. Ties go to the new regime.
func (e *Engine) Compare(income domain.IncomeSnapshot, claims []domain.DeductionClaim) (*domain.RegimeComparisonResult, error) {
	merged, err := e.prepare(income, claims)
	if err != nil {
		recordError(err)
		return nil, err
	}

	oldTable, err := e.Tables.Lookup(domain.RegimeOld, income.Category, income.FiscalYear)
	if err != nil {
		recordError(err)
		return nil, fmt.Errorf("old regime: %w", err)
	}
	newTable, err := e.Tables.Lookup(domain.RegimeNew, income.Category, income.FiscalYear)
	if err != nil {
		recordError(err)
		return nil, fmt.Errorf("new regime: %w", err)
	}

	oldResult := e.computeWith(income, merged, oldTable)
	newResult := e.computeWith(income, merged, newTable)

	recommended := domain.RegimeNew
	if oldResult.TotalTax.LessThan(newResult.TotalTax) {
		recommended = domain.RegimeOld
	}

	cmp := &domain.RegimeComparisonResult{
		OldRegime:               oldResult,
		NewRegime:               newResult,
		Savings:                 oldResult.TotalTax.Sub(newResult.TotalTax).Abs(),
		RecommendedRegime:       recommended,
		OptimizationSuggestions: e.suggest(income, oldResult),
	}
	comparisonsTotal.WithLabelValues(recommended.String()).Inc()
	e.Logger.Debugf("compare fy=%s category=%s old=%s new=%s recommended=%s",
		income.FiscalYear, income.Category, oldResult.TotalTax.StringFixed(2), newResult.TotalTax.StringFixed(2), recommended)
	return cmp, nil
}

// prepare validates the request and returns a private, merged copy of the claims
func (e *Engine) prepare(income domain.IncomeSnapshot, claims []domain.DeductionClaim) ([]domain.DeductionClaim, error) {
	if e.Tables == nil {
		return nil, fmt.Errorf("engine has no slab tables")
	}
	if err := income.Validate(); err != nil {
		return nil, err
	}
	if err := validateClaims(e.Catalog, claims); err != nil {
		return nil, err
	}
	return mergeClaims(claims), nil
}

func (e *Engine) computeWith(income domain.IncomeSnapshot, claims []domain.DeductionClaim, table domain.RegimeSlabTable) domain.TaxComputationResult {
	lines, total := applyDeductions(e.Catalog, income, claims, table.Regime)
	taxable := taxableIncome(income.GrossIncome, total)
	result := withGrossIncome(ComputeLiability(taxable, table), income.GrossIncome, total, lines)
	computationsTotal.WithLabelValues(table.Regime.String()).Inc()
	return result
}

// suggest lists old-regime sections with a finite cap that are not fully used,
// valued at the old regime's current marginal rate, largest saving first.
func (e *Engine) suggest(income domain.IncomeSnapshot, old domain.TaxComputationResult) []domain.Suggestion {
	used := make(map[domain.DeductionSection]decimal.Decimal, len(old.DeductionBreakdown))
	for _, line := range old.DeductionBreakdown {
		used[line.Section] = line.CappedAmount
	}
	rate := old.MarginalRate()

	suggestions := []domain.Suggestion{}
	for _, rule := range e.Catalog.Rules() {
		if !rule.EligibleUnder(domain.RegimeOld) {
			continue
		}
		limit, bounded := rule.CapFor(income.Category).Limit(income.GrossIncome)
		if !bounded {
			continue
		}
		current, ok := used[rule.Section]
		if !ok {
			current = decimal.Zero
		}
		if !current.LessThan(limit) {
			continue
		}
		headroom := limit.Sub(current)
		suggestions = append(suggestions, domain.Suggestion{
			Section:           rule.Section,
			CurrentlyUsed:     current,
			AvailableHeadroom: headroom,
			PotentialSavings:  headroom.Mul(rate),
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].PotentialSavings.GreaterThan(suggestions[j].PotentialSavings)
	})
	return suggestions
}
