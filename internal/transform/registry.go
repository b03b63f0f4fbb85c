package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RequestTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_income", createSetIncome)
	registry.Register("set_category", createSetCategory)
	registry.Register("set_fiscal_year", createSetFiscalYear)
	registry.Register("add_claim", createAddClaim)
	registry.Register("set_claim", createSetClaim)
	registry.Register("remove_claim", createRemoveClaim)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RequestTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_claim:section=80C,amount=150000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RequestTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs, stopping at the first bad one.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]RequestTransform, error) {
	out := make([]RequestTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func requireParam(transform, key string, params map[string]string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func amountParam(transform string, params map[string]string) (decimal.Decimal, error) {
	raw, err := requireParam(transform, "amount", params)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := domain.ParseMoney("amount", raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value: %w", err)
	}
	return amount, nil
}

func sectionParam(transform string, params map[string]string) (domain.DeductionSection, error) {
	raw, err := requireParam(transform, "section", params)
	if err != nil {
		return 0, err
	}
	section, err := domain.ParseDeductionSection(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid section value: %w", err)
	}
	return section, nil
}

func createSetIncome(params map[string]string) (RequestTransform, error) {
	amount, err := amountParam("set_income", params)
	if err != nil {
		return nil, err
	}
	return &SetIncome{Amount: amount}, nil
}

func createSetCategory(params map[string]string) (RequestTransform, error) {
	raw, err := requireParam("set_category", "category", params)
	if err != nil {
		return nil, err
	}
	category, err := domain.ParseCategory(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid category value: %w", err)
	}
	return &SetCategory{Category: category}, nil
}

func createSetFiscalYear(params map[string]string) (RequestTransform, error) {
	raw, err := requireParam("set_fiscal_year", "year", params)
	if err != nil {
		return nil, err
	}
	fy, err := domain.ParseFiscalYear(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid year value: %w", err)
	}
	return &SetFiscalYear{Year: fy}, nil
}

func createAddClaim(params map[string]string) (RequestTransform, error) {
	section, err := sectionParam("add_claim", params)
	if err != nil {
		return nil, err
	}
	amount, err := amountParam("add_claim", params)
	if err != nil {
		return nil, err
	}
	return &AddClaim{Section: section, Amount: amount}, nil
}

func createSetClaim(params map[string]string) (RequestTransform, error) {
	section, err := sectionParam("set_claim", params)
	if err != nil {
		return nil, err
	}
	amount, err := amountParam("set_claim", params)
	if err != nil {
		return nil, err
	}
	return &SetClaim{Section: section, Amount: amount}, nil
}

func createRemoveClaim(params map[string]string) (RequestTransform, error) {
	section, err := sectionParam("remove_claim", params)
	if err != nil {
		return nil, err
	}
	return &RemoveClaim{Section: section}, nil
}
