// Package config handles .launchdash.yaml / .launchdash.toml configuration
// files, LAUNCHDASH_* environment overrides, and their merge with CLI flags.
package config

import (
	"github.com/davetashner/launchdash/internal/dataset"
)

// Config represents the contents of a .launchdash.yaml or .launchdash.toml
// file. Fields tagged env may be overridden by environment variables.
type Config struct {
	Dataset      string           `yaml:"dataset,omitempty" toml:"dataset,omitempty" env:"LAUNCHDASH_DATASET"`
	Delimiter    string           `yaml:"delimiter,omitempty" toml:"delimiter,omitempty"`
	Columns      dataset.Columns  `yaml:"columns,omitempty" toml:"columns,omitempty"`
	S3           dataset.S3Config `yaml:"s3,omitempty" toml:"s3,omitempty"`
	Server       ServerConfig     `yaml:"server,omitempty" toml:"server,omitempty"`
	Heading      string           `yaml:"heading,omitempty" toml:"heading,omitempty"`
	OutputFormat string           `yaml:"output_format,omitempty" toml:"output_format,omitempty"`
	LogFormat    string           `yaml:"log_format,omitempty" toml:"log_format,omitempty" env:"LAUNCHDASH_LOG_FORMAT"`
}

// ServerConfig holds the serve command's listener settings.
type ServerConfig struct {
	Addr        string `yaml:"addr,omitempty" toml:"addr,omitempty" env:"LAUNCHDASH_ADDR"`
	MetricsAddr string `yaml:"metrics_addr,omitempty" toml:"metrics_addr,omitempty" env:"LAUNCHDASH_METRICS_ADDR"`
	Debug       bool   `yaml:"debug,omitempty" toml:"debug,omitempty" env:"LAUNCHDASH_DEBUG"`
}

// File names searched for in the working directory, in order.
const (
	FileName     = ".launchdash.yaml"
	TOMLFileName = ".launchdash.toml"
)

// Defaults.
const (
	DefaultAddr      = "127.0.0.1:8050"
	DefaultDelimiter = ","
	DefaultLogFormat = "text"
)

// Default returns the configuration used when no file, environment variable
// or flag sets a value.
func Default() *Config {
	return &Config{
		Delimiter: DefaultDelimiter,
		Columns:   dataset.DefaultColumns(),
		Server:    ServerConfig{Addr: DefaultAddr},
		LogFormat: DefaultLogFormat,
	}
}

// DatasetOptions translates the dataset settings into loader options.
func (c *Config) DatasetOptions() []dataset.Option {
	opts := []dataset.Option{
		dataset.WithColumns(c.Columns),
		dataset.WithS3Config(c.S3),
	}
	if r := []rune(c.Delimiter); len(r) == 1 {
		opts = append(opts, dataset.WithDelimiter(r[0]))
	}
	return opts
}
