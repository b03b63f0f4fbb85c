package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

type slabJSON struct {
	Lower string  `json:"lower"`
	Upper *string `json:"upper,omitempty"`
	Rate  string  `json:"rate"`
}

type surchargeJSON struct {
	Threshold string `json:"threshold"`
	Rate      string `json:"rate"`
}

type tableJSON struct {
	FiscalYear domain.FiscalYear       `json:"fiscalYear"`
	Regime     domain.Regime           `json:"regime"`
	Category   domain.TaxpayerCategory `json:"category"`
	CessRate   string                  `json:"cessRate"`
	Slabs      []slabJSON              `json:"slabs"`
	Surcharge  []surchargeJSON         `json:"surcharge"`
}

func newTablesCmd(a *app) *cobra.Command {
	var fiscalYear string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the registered slab tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tables []domain.RegimeSlabTable
			for _, t := range a.registry.Tables() {
				if fiscalYear == "" || string(t.FiscalYear) == fiscalYear {
					tables = append(tables, t)
				}
			}
			if len(tables) == 0 {
				return fmt.Errorf("no slab tables for fiscal year %q (available: %s)", fiscalYear, fiscalYearList(a.registry.FiscalYears()))
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(a.settings.Output.Format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tablesJSON(tables))
			case "", "console":
				writeTables(out, tables)
				return nil
			default:
				return fmt.Errorf("tables supports console and json output, not %s", a.settings.Output.Format)
			}
		},
	}
	cmd.Flags().StringVar(&fiscalYear, "fiscal-year", "", "Only list tables for this fiscal year")
	return cmd
}

func fiscalYearList(years []domain.FiscalYear) string {
	s := make([]string, len(years))
	for i, fy := range years {
		s[i] = fy.String()
	}
	return strings.Join(s, ", ")
}

func tablesJSON(tables []domain.RegimeSlabTable) []tableJSON {
	out := make([]tableJSON, 0, len(tables))
	for _, t := range tables {
		tj := tableJSON{
			FiscalYear: t.FiscalYear,
			Regime:     t.Regime,
			Category:   t.Category,
			CessRate:   t.CessRate.String(),
			Slabs:      make([]slabJSON, 0, len(t.Slabs)),
			Surcharge:  make([]surchargeJSON, 0, len(t.SurchargeBands)),
		}
		for _, s := range t.Slabs {
			sj := slabJSON{Lower: s.LowerBound.String(), Rate: s.Rate.String()}
			if !s.Unbounded() {
				upper := s.UpperBound.String()
				sj.Upper = &upper
			}
			tj.Slabs = append(tj.Slabs, sj)
		}
		for _, b := range t.SurchargeBands {
			tj.Surcharge = append(tj.Surcharge, surchargeJSON{Threshold: b.Threshold.String(), Rate: b.Rate.String()})
		}
		out = append(out, tj)
	}
	return out
}

func writeTables(w io.Writer, tables []domain.RegimeSlabTable) {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "FY %s  %s regime  %s  (cess %s)\n", t.FiscalYear, t.Regime, t.Category, domain.FormatPercent(t.CessRate))
		for _, s := range t.Slabs {
			upper := "and above"
			if !s.Unbounded() {
				upper = "to ₹" + domain.FormatRupees(*s.UpperBound)
			}
			fmt.Fprintf(w, "  ₹%-12s %-16s %s\n", domain.FormatRupees(s.LowerBound), upper, domain.FormatPercent(s.Rate))
		}
		for _, b := range t.SurchargeBands {
			fmt.Fprintf(w, "  surcharge %s from ₹%s\n", domain.FormatPercent(b.Rate), domain.FormatRupees(b.Threshold))
		}
	}
}
