package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/config"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/output"
)

// inputFlags describe one taxpayer on the command line, for when no input file is given
type inputFlags struct {
	gross      string
	fiscalYear string
	category   string
	claims     []string
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.gross, "gross", "", "Gross income, e.g. 1200000 or 12,00,000 (used when no input file is given)")
	fs.StringVar(&f.fiscalYear, "fy", "2025-26", "Fiscal year, YYYY-YY")
	fs.StringVar(&f.category, "category", "individual", "Taxpayer category (individual, senior_citizen, super_senior_citizen, huf)")
	fs.StringArrayVar(&f.claims, "claim", nil, "Deduction claim as SECTION=AMOUNT, repeatable (e.g. --claim 80C=150000)")
}

// request loads the taxpayer from the input file in args, or from the flags
// when no file is given
func (f *inputFlags) request(args []string) (calculation.Request, error) {
	if len(args) > 0 {
		return config.NewInputParser().LoadFromFile(args[0])
	}
	if strings.TrimSpace(f.gross) == "" {
		return calculation.Request{}, fmt.Errorf("either an input file or --gross is required")
	}

	gross, err := domain.ParseMoney("gross income", f.gross)
	if err != nil {
		return calculation.Request{}, err
	}
	fy, err := domain.ParseFiscalYear(f.fiscalYear)
	if err != nil {
		return calculation.Request{}, err
	}
	category, err := domain.ParseCategory(f.category)
	if err != nil {
		return calculation.Request{}, err
	}
	claims, err := parseClaims(f.claims)
	if err != nil {
		return calculation.Request{}, err
	}

	return calculation.Request{
		Label:  "command line",
		Income: domain.IncomeSnapshot{GrossIncome: gross, FiscalYear: fy, Category: category},
		Claims: claims,
	}, nil
}

func parseClaims(specs []string) ([]domain.DeductionClaim, error) {
	claims := make([]domain.DeductionClaim, 0, len(specs))
	for _, spec := range specs {
		code, amount, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, &domain.InvalidInputError{Field: "claim", Value: spec, Reason: "expected SECTION=AMOUNT"}
		}
		section, err := domain.ParseDeductionSection(code)
		if err != nil {
			return nil, err
		}
		value, err := domain.ParseMoney(section.String(), amount)
		if err != nil {
			return nil, err
		}
		claims = append(claims, domain.DeductionClaim{Section: section, ClaimedAmount: value})
	}
	return claims, nil
}

func sectionList() string {
	sections := domain.AllSections()
	codes := make([]string, len(sections))
	for i, s := range sections {
		codes[i] = s.String()
	}
	return strings.Join(codes, ", ")
}

// emit renders with the configured output format and writes to the command's stdout
func (a *app) emit(cmd *cobra.Command, render func(output.Formatter) ([]byte, error)) error {
	f, err := output.GetFormatterByName(a.settings.Output.Format)
	if err != nil {
		return err
	}
	data, err := render(f)
	if err != nil {
		return err
	}
	return output.WriteFormatted(cmd.OutOrStdout(), data)
}
