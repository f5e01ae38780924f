package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"timedata-generator/internal/model"
	"timedata-generator/internal/plan"
)

// EnvPrefix is the prefix of environment overrides, e.g. TIMEDATA_OUT.
const EnvPrefix = "TIMEDATA"

// Flag and key names shared by flags, environment and config file.
const (
	KeyConfig     = "config"
	KeyOut        = "out"
	KeyTiny       = "tiny"
	KeyModels     = "models"
	KeyModelsFile = "models-file"
	KeyLogLevel   = "log-level"
)

// Config holds the command options of one generator invocation.
type Config struct {
	OutputRoot string   `validate:"required"`
	Tiny       bool
	Models     []string `validate:"dive,required,alphanum"`
	ModelsFile string   `validate:"omitempty,file"`
	LogLevel   string   `validate:"oneof=trace debug info warn warning error"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		OutputRoot: "build/genfiles",
		LogLevel:   "info",
	}
}

// RegisterFlags adds the generator flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()

	fs.String(KeyConfig, "", "Config file (YAML, TOML or JSON)")
	fs.String(KeyOut, def.OutputRoot, "Output root for generated sources")
	fs.Bool(KeyTiny, def.Tiny, "Generate only the tiny model subset with the default range")
	fs.StringSlice(KeyModels, nil, "Restrict generation to these color models (comma-separated)")
	fs.String(KeyModelsFile, "", "YAML model table replacing the built-in one")
	fs.String(KeyLogLevel, def.LogLevel, "Log level (trace, debug, info, warn, error)")
}

// Load resolves the configuration from flags, TIMEDATA_* environment
// variables, an optional config file and defaults, in that order of
// precedence, then validates it.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	def := Default()
	v.SetDefault(KeyOut, def.OutputRoot)
	v.SetDefault(KeyLogLevel, def.LogLevel)

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		OutputRoot: v.GetString(KeyOut),
		Tiny:       v.GetBool(KeyTiny),
		Models:     splitList(v.GetStringSlice(KeyModels)),
		ModelsFile: v.GetString(KeyModelsFile),
		LogLevel:   strings.ToLower(v.GetString(KeyLogLevel)),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration's field constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// Table returns the model table named by ModelsFile, or the built-in one.
func (c *Config) Table() (*model.Table, error) {
	if c.ModelsFile == "" {
		return model.Default(), nil
	}

	return model.LoadFile(c.ModelsFile)
}

// PlanOptions returns the enumeration options selected by the configuration.
func (c *Config) PlanOptions() plan.Options {
	return plan.Options{Tiny: c.Tiny, Models: c.Models}
}

// splitList flattens comma-separated entries. Environment values arrive as
// a single "RGB,HSV" string.
func splitList(in []string) []string {
	var out []string

	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
