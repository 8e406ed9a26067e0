// Package config reads the optional YAML defaults file and feeds it to kong
// as a resolver, so flags given on the command line always win.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML file. Nil fields are unset and leave the flag default alone.
type Config struct {
	OutputName      *string `yaml:"output_name"`
	CheckDuplicates *bool   `yaml:"check_duplicates"`
	AssumeYes       *bool   `yaml:"assume_yes"`
	Recursive       *bool   `yaml:"recursive"`
	TUI             *bool   `yaml:"tui"`
	BufferSize      *int    `yaml:"buffer_size"`
	LogFile         *string `yaml:"log_file"`
	LogLevel        *string `yaml:"log_level"`
	MetricsFile     *string `yaml:"metrics_file"`
}

// DefaultPath is where the config file is looked up when --config is not given
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "audiomerge", "config.yaml")
}

// Parse decodes a YAML document; unknown keys are rejected
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Load reads and parses the file at path
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Values maps kong flag names to the configured values
func (c *Config) Values() map[string]any {
	values := map[string]any{}
	if c.OutputName != nil {
		values["name"] = *c.OutputName
	}
	if c.CheckDuplicates != nil {
		values["check-duplicates"] = *c.CheckDuplicates
	}
	if c.AssumeYes != nil {
		values["yes"] = *c.AssumeYes
	}
	if c.Recursive != nil {
		values["recursive"] = *c.Recursive
	}
	if c.TUI != nil {
		values["no-tui"] = !*c.TUI
	}
	if c.BufferSize != nil {
		values["buffer-size"] = *c.BufferSize
	}
	if c.LogFile != nil {
		values["log-file"] = *c.LogFile
	}
	if c.LogLevel != nil {
		values["log-level"] = *c.LogLevel
	}
	if c.MetricsFile != nil {
		values["metrics-file"] = *c.MetricsFile
	}
	return values
}

// Resolver exposes the configured values to kong
func (c *Config) Resolver() kong.Resolver {
	values := c.Values()
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			return nil, nil
		}
		return v, nil
	})
}

// Loader is a kong.ConfigurationLoader for YAML files
func Loader(r io.Reader) (kong.Resolver, error) {
	cfg, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return cfg.Resolver(), nil
}
