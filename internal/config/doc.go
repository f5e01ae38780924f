// Package config resolves the generator's command options.
//
// Options come from command-line flags, TIMEDATA_* environment variables
// and an optional config file, bound through viper, and are validated with
// struct tags before use.
package config
