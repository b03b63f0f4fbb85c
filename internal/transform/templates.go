package transform

import (
	"sort"
	"strings"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []RequestTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setClaim(section domain.DeductionSection, amount int64) RequestTransform {
	return &SetClaim{Section: section, Amount: decimal.NewFromInt(amount)}
}

// CreateBuiltInTemplates creates a template registry with common old-regime planning moves
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_80c",
		Description: "Fill the 80C limit (PF, ELSS, life cover)",
		Transforms:  []RequestTransform{setClaim(domain.Section80C, 150000)},
	})

	registry.Register(Template{
		Name:        "max_nps",
		Description: "Add the separate NPS contribution under 80CCD(1B)",
		Transforms:  []RequestTransform{setClaim(domain.Section80CCD1B, 50000)},
	})

	registry.Register(Template{
		Name:        "health_cover",
		Description: "Claim the standard 80D health insurance premium limit",
		Transforms:  []RequestTransform{setClaim(domain.Section80D, 25000)},
	})

	registry.Register(Template{
		Name:        "home_loan",
		Description: "Claim the full self-occupied home loan interest under 24(b)",
		Transforms:  []RequestTransform{setClaim(domain.Section24B, 200000)},
	})

	registry.Register(Template{
		Name:        "salaried_basics",
		Description: "Standard deduction plus a full 80C",
		Transforms: []RequestTransform{
			setClaim(domain.SectionStandardDeduction, 50000),
			setClaim(domain.Section80C, 150000),
		},
	})

	registry.Register(Template{
		Name:        "all_fixed_caps",
		Description: "Use every fixed-cap section in full: 80C, NPS, 80D, 80TTA, 24(b), conveyance, standard",
		Transforms: []RequestTransform{
			setClaim(domain.Section80C, 150000),
			setClaim(domain.Section80CCD1B, 50000),
			setClaim(domain.Section80D, 25000),
			setClaim(domain.Section80TTA, 10000),
			setClaim(domain.Section24B, 200000),
			setClaim(domain.SectionConveyanceAllowance, 19200),
			setClaim(domain.SectionStandardDeduction, 50000),
		},
	})

	return registry
}
