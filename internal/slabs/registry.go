// Package slabs provides the slab table registry: per regime, taxpayer category and
// fiscal year reference data that is onboarded once and read many times.
package slabs

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

type tableSet map[domain.TableKey]domain.RegimeSlabTable

// Registry is a write-once-per-year, read-many store of slab tables.
// Readers load an immutable map; Register builds a new map and swaps it in.
type Registry struct {
	tables atomic.Pointer[tableSet]
	mu     sync.Mutex // serializes writers
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{}
	empty := tableSet{}
	r.tables.Store(&empty)
	return r
}

// Register validates and installs tables atomically. Either every table is
// installed or none is. A tuple that is already registered is rejected.
func (r *Registry) Register(tables ...domain.RegimeSlabTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.tables.Load()
	next := make(tableSet, len(current)+len(tables))
	for k, v := range current {
		next[k] = v
	}

	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("slab table %s: %w", t.Key(), err)
		}
		key := t.Key()
		if _, exists := next[key]; exists {
			return fmt.Errorf("slab table %s is already registered", key)
		}
		next[key] = t.Clone()
	}

	r.tables.Store(&next)
	return nil
}

// Lookup returns a copy of the table for the tuple. There is no fallback to a
// neighbouring fiscal year.
func (r *Registry) Lookup(regime domain.Regime, category domain.TaxpayerCategory, fy domain.FiscalYear) (domain.RegimeSlabTable, error) {
	key := domain.TableKey{Regime: regime, Category: category, FiscalYear: fy}
	t, ok := (*r.tables.Load())[key]
	if !ok {
		return domain.RegimeSlabTable{}, &domain.NotFoundError{Regime: regime, Category: category, FiscalYear: fy}
	}
	return t.Clone(), nil
}

// FiscalYears returns the distinct registered fiscal years in ascending order
func (r *Registry) FiscalYears() []domain.FiscalYear {
	seen := map[domain.FiscalYear]bool{}
	for k := range *r.tables.Load() {
		seen[k.FiscalYear] = true
	}
	years := make([]domain.FiscalYear, 0, len(seen))
	for fy := range seen {
		years = append(years, fy)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}

// Tables returns copies of all registered tables ordered by year, regime and category
func (r *Registry) Tables() []domain.RegimeSlabTable {
	set := *r.tables.Load()
	out := make([]domain.RegimeSlabTable, 0, len(set))
	for _, t := range set {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FiscalYear != b.FiscalYear {
			return a.FiscalYear < b.FiscalYear
		}
		if a.Regime != b.Regime {
			return a.Regime < b.Regime
		}
		return a.Category < b.Category
	})
	return out
}

// Len returns the number of registered tables
func (r *Registry) Len() int {
	return len(*r.tables.Load())
}
