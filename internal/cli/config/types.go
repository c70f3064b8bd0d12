// Package config provides configuration management for the leapreport CLI.
//
// This package layers CLI-specific fields (output mode, verbosity) over the
// shared configuration types in internal/config and loads them with koanf
// from defaults, a leapreport.yaml file, LEAPREPORT_ environment variables
// and explicitly set flags.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapreport/internal/config"
)

// LogConfig is an alias for the shared logging configuration.
type LogConfig = sharedcfg.LogConfig

// ServerConfig is an alias for the shared HTTP server configuration.
type ServerConfig = sharedcfg.ServerConfig

// InstituteConfig is an alias for the shared institute header configuration.
type InstituteConfig = sharedcfg.InstituteConfig

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	Log          LogConfig       `koanf:"log"`
	Server       ServerConfig    `koanf:"server"`
	Institute    InstituteConfig `koanf:"institute"`
}

// Output modes accepted by --output.
var OutputModes = []string{"auto", "text", "json", "yaml"}

// Log levels accepted by --log-level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultOutput   = sharedcfg.DefaultOutput
	DefaultLogLevel = sharedcfg.DefaultLogLevel
	EnvPrefix       = "LEAPREPORT_"
)

// Default returns the configuration used when nothing has been loaded.
func Default() *Config {
	cfg := &Config{
		OutputFormat: DefaultOutput,
		Log:          LogConfig{Level: DefaultLogLevel, Format: sharedcfg.DefaultLogFormat},
	}
	sharedcfg.ApplyServerDefaults(&cfg.Server)
	sharedcfg.ApplyInstituteDefaults(&cfg.Institute)
	return cfg
}
