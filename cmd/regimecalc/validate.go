package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jusliketht/bbofficial-sub003/internal/config"
	"github.com/jusliketht/bbofficial-sub003/internal/slabs"
)

func newValidateCmd(a *app) *cobra.Command {
	var batch, tables bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a taxpayer, batch or slab tables file",
		Long: "Checks that a file parses and that every taxpayer in it can be compared. " +
			"With --tables the file is checked as a slab tables document instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			if tables {
				ob, err := slabs.LoadFile(path)
				if err != nil {
					return err
				}
				// apply to a scratch registry so clashes with built-in tables are caught
				if _, err := ob.Apply(slabs.Builtin(), a.engine.Catalog); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(out, "Tables file %s is valid (%d tables, %d deduction overrides)\n", path, len(ob.Tables), len(ob.Deductions))
				return nil
			}

			parser := config.NewInputParser()
			if batch {
				reqs, err := parser.LoadBatchFromFile(path)
				if err != nil {
					return err
				}
				for _, req := range reqs {
					if _, err := a.engine.Compare(req.Income, req.Claims); err != nil {
						return fmt.Errorf("%s: %w", req.Label, err)
					}
				}
				fmt.Fprintf(out, "Batch file %s is valid (%d taxpayers)\n", path, len(reqs))
				return nil
			}

			req, err := parser.LoadFromFile(path)
			if err != nil {
				return err
			}
			if _, err := a.engine.Compare(req.Income, req.Claims); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(out, "Input file %s is valid\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&batch, "batch", false, "Validate a batch file")
	cmd.Flags().BoolVar(&tables, "tables", false, "Validate a slab tables document")
	cmd.MarkFlagsMutuallyExclusive("batch", "tables")
	return cmd
}
