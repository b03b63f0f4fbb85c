package compare

import (
	"context"
	"fmt"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/transform"
)

// CompareEngine runs a base request and its variants through the regime engine
type CompareEngine struct {
	Engine            *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine over the built-in templates
func NewCompareEngine(engine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseName  string   // Display name of the base request
	Templates []string // Templates applied one at a time to the base
}

// Named is a request with a display name and description
type Named struct {
	Name        string
	Description string
	Request     calculation.Request
}

// Compare applies each template to the base separately and compares the results
func (ce *CompareEngine) Compare(ctx context.Context, base calculation.Request, options CompareOptions) (*PlanSet, error) {
	if len(options.Templates) == 0 {
		return nil, fmt.Errorf("at least one template is required")
	}

	variants := make([]Named, 0, len(options.Templates))
	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		modified, err := transform.ApplyTransforms(base, template.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		variants = append(variants, Named{Name: template.Name, Description: template.Description, Request: modified})
	}
	return ce.CompareRequests(ctx, Named{Name: options.BaseName, Request: base}, variants)
}

// CompareRequests compares explicit variants against base
func (ce *CompareEngine) CompareRequests(ctx context.Context, base Named, variants []Named) (*PlanSet, error) {
	if base.Name == "" {
		base.Name = "base"
	}
	baseCmp, err := ce.Engine.Compare(base.Request.Income, base.Request.Claims)
	if err != nil {
		return nil, fmt.Errorf("failed to compare base: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, base.Request, baseCmp)

	alternatives := make([]PlanResult, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cmp, err := ce.Engine.Compare(v.Request.Income, v.Request.Claims)
		if err != nil {
			return nil, fmt.Errorf("failed to compare %s: %w", v.Name, err)
		}
		alt := ce.MetricsCalculator.CalculateMetrics(v.Name, v.Request, cmp)
		alt.Description = v.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	set := &PlanSet{
		BaseName:     base.Name,
		Base:         &baseResult,
		Alternatives: alternatives,
	}
	set.Recommendations = GenerateRecommendations(set)
	return set, nil
}
