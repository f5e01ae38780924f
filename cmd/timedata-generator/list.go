package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"timedata-generator/internal/plan"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the class names the current options generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			tbl, err := cfg.Table()
			if err != nil {
				return err
			}

			p, err := plan.Build(tbl, cfg.PlanOptions())
			if err != nil {
				return err
			}

			names := p.ClassNames()
			slices.Sort(names)

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}
