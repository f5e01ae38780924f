// Package main provides the CLI entrypoint for timedata-generator.
//
// timedata-generator emits the specialized color classes of the timedata
// extension from two generic templates:
//   - One entity and one collection class per color model and range variant
//   - Fixed struct wrapper fragments
//   - A sorted include manifest the native build compiles as one unit
//
// Files are only rewritten when their content changes.
package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"timedata-generator/internal/config"
	"timedata-generator/internal/gen"
)

var log = logrus.New()

// errStale is returned by check when the output tree is out of date.
var errStale = errors.New("generated sources are out of date")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timedata-generator",
		Short: "Generate the timedata color classes and their build manifest",
		Long: `Generate the timedata color classes and their build manifest.

Every color model gets an entity class and a collection class, and RGB
additionally gets its 0-255 and 0-256 range variants. Run without a
subcommand to generate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, false)
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newGenerateCmd(), newCheckCmd(), newListCmd())

	return root
}

// loadConfig resolves the options for cmd and applies the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(viper.New(), cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	log.SetLevel(level)

	return cfg, nil
}

// newGenerator builds a generator from the resolved configuration.
func newGenerator(cfg *config.Config, dryRun bool) (*gen.Generator, error) {
	tbl, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	gcfg := gen.DefaultGeneratorConfig()
	gcfg.OutputRoot = cfg.OutputRoot
	gcfg.Table = tbl
	gcfg.Plan = cfg.PlanOptions()
	gcfg.DryRun = dryRun

	return gen.NewGenerator(gcfg, gen.WithLogger(log)), nil
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("Generation failed")
		os.Exit(1)
	}
}
