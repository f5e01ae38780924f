package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the generated classes, struct wrappers and manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, false)
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail if any generated file is missing or out of date",
		Long: `Run the full generation without writing anything and list every file
that generate would create or update. Exits non-zero if there is one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, true)
		},
	}
}

func runGenerate(cmd *cobra.Command, dryRun bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	g, err := newGenerator(cfg, dryRun)
	if err != nil {
		return err
	}

	report, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}

	changed := report.Changed()

	if !dryRun {
		log.WithFields(logrus.Fields{
			"classes": len(report.Classes),
			"changed": len(changed),
		}).Debug("Output tree up to date")

		return nil
	}

	for _, p := range changed {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}

	if len(changed) > 0 {
		return fmt.Errorf("%w: %d file(s) under %s", errStale, len(changed), cfg.OutputRoot)
	}

	return nil
}
