// Package tui is an interactive form that compares both regimes as the
// taxpayer edits income and deduction claims.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jusliketht/bbofficial-sub003/internal/breakeven"
	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

type fieldKind int

const (
	fieldGross fieldKind = iota
	fieldFiscalYear
	fieldCategory
	fieldClaim
)

type field struct {
	label   string
	kind    fieldKind
	section domain.DeductionSection
	input   textinput.Model
}

// claimSections are the deductions editable from the form, in display order
var claimSections = []domain.DeductionSection{
	domain.Section80C,
	domain.Section80D,
	domain.Section80CCD1B,
	domain.Section24B,
	domain.SectionHRA,
	domain.SectionStandardDeduction,
}

// Model represents the entire application state
type Model struct {
	scene  Scene
	width  int
	height int

	engine *calculation.Engine
	solver *breakeven.Solver

	fields []field
	focus  int

	computing bool
	result    *domain.RegimeComparisonResult
	breakEven *breakeven.Result
	err       error
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 16
	ti.Width = 16
	ti.SetValue(value)
	return ti
}

// NewModel creates the form, prefilled from initial
func NewModel(engine *calculation.Engine, initial calculation.Request) Model {
	claimed := make(map[domain.DeductionSection]string)
	for _, c := range initial.Claims {
		claimed[c.Section] = c.ClaimedAmount.String()
	}

	category := initial.Income.Category
	if !category.Valid() {
		category = domain.CategoryIndividual
	}
	gross := ""
	if !initial.Income.GrossIncome.IsZero() {
		gross = initial.Income.GrossIncome.String()
	}
	fy := initial.Income.FiscalYear
	if fy == "" {
		fy = "2025-26"
	}

	fields := []field{
		{label: "Gross income", kind: fieldGross, input: newInput("e.g. 1200000", gross)},
		{label: "Fiscal year", kind: fieldFiscalYear, input: newInput("2025-26", fy.String())},
		{label: "Category", kind: fieldCategory, input: newInput("individual", category.String())},
	}
	for _, s := range claimSections {
		fields = append(fields, field{label: s.String(), kind: fieldClaim, section: s, input: newInput("0", claimed[s])})
	}
	fields[0].input.Focus()

	return Model{
		scene:  SceneForm,
		engine: engine,
		solver: breakeven.NewDefaultSolver(engine),
		fields: fields,
		width:  100,
		height: 30,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if strings.TrimSpace(m.fields[0].input.Value()) == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.compareCmd())
}

// request builds an engine request from the current field values
func (m Model) request() (calculation.Request, error) {
	var req calculation.Request
	var errs []error
	for _, f := range m.fields {
		value := strings.TrimSpace(f.input.Value())
		switch f.kind {
		case fieldGross:
			gross, err := domain.ParseMoney("gross income", value)
			if err != nil {
				errs = append(errs, err)
			}
			req.Income.GrossIncome = gross
		case fieldFiscalYear:
			fy, err := domain.ParseFiscalYear(value)
			if err != nil {
				errs = append(errs, err)
			}
			req.Income.FiscalYear = fy
		case fieldCategory:
			category, err := domain.ParseCategory(value)
			if err != nil {
				errs = append(errs, err)
			}
			req.Income.Category = category
		case fieldClaim:
			if value == "" {
				continue
			}
			amount, err := domain.ParseMoney(f.label, value)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if amount.IsPositive() {
				req.Claims = append(req.Claims, domain.DeductionClaim{Section: f.section, ClaimedAmount: amount})
			}
		}
	}
	return req, errors.Join(errs...)
}

// compareCmd returns a command that runs the comparison and break-even search
func (m Model) compareCmd() tea.Cmd {
	req, err := m.request()
	engine, solver := m.engine, m.solver
	return func() tea.Msg {
		if err != nil {
			return ComparisonCompleteMsg{Err: err}
		}
		result, err := engine.Compare(req.Income, req.Claims)
		if err != nil {
			return ComparisonCompleteMsg{Err: err}
		}
		be, err := solver.DeductionBreakEven(context.Background(), req.Income, req.Claims)
		if err != nil {
			// the comparison still stands without a break-even figure
			be = nil
		}
		return ComparisonCompleteMsg{Result: result, BreakEven: be}
	}
}

// Run starts the TUI on the alternate screen
func Run(engine *calculation.Engine, initial calculation.Request) error {
	p := tea.NewProgram(NewModel(engine, initial), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
