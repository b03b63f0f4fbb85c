package main

import (
	"github.com/spf13/cobra"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	in := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "tui [input-file]",
		Short: "Edit income and deductions interactively and compare as you go",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var initial calculation.Request
			if len(args) > 0 || in.gross != "" {
				req, err := in.request(args)
				if err != nil {
					return err
				}
				initial = req
			}
			return tui.Run(a.engine, initial)
		},
	}
	in.register(cmd.Flags())
	return cmd
}
