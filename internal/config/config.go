// Package config provides configuration loading and validation for compiletest.yml.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/compiletest/internal/errors"
	"github.com/AndreyAkinshin/compiletest/internal/schema"
)

// DefaultConfigFile is the config file name looked up when no --config flag is given.
const DefaultConfigFile = "compiletest.yml"

// Config represents the complete compiletest.yml configuration.
type Config struct {
	Fixtures FixturesConfig `yaml:"fixtures"`
	Compiler CompilerConfig `yaml:"compiler"`
	Run      RunConfig      `yaml:"run"`
}

// FixturesConfig locates the fixture files under test.
type FixturesConfig struct {
	Dir     string `yaml:"dir,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// CompilerConfig describes the external toolchain and its dependency artifacts.
type CompilerConfig struct {
	Path    string        `yaml:"path,omitempty"`
	Args    []string      `yaml:"args,omitempty"`
	Deps    string        `yaml:"deps,omitempty"`
	Library *ExternConfig `yaml:"library,omitempty"`
	Derive  *ExternConfig `yaml:"derive,omitempty"`
}

// ExternConfig is one precompiled crate linked into every invocation.
type ExternConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// RunConfig controls scheduling and evaluation behavior.
type RunConfig struct {
	Jobs    int    `yaml:"jobs,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
	Strict  bool   `yaml:"strict,omitempty"`
}

// TimeoutDuration returns the per-invocation timeout as a duration.
// The raw value is validated during Validate, so this only fails for
// configs that bypassed validation.
func (c *RunConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Configf("invalid timeout %q: %v", c.Timeout, err)
	}
	if d <= 0 {
		return 0, errors.Configf("timeout must be positive, got %q", c.Timeout)
	}
	return d, nil
}

// Default returns a configuration with all defaults applied and no
// dependency artifacts configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a compiletest.yml configuration file.
// The raw document is checked against the embedded JSON schema before
// decoding, so unknown keys and type mismatches are reported with the
// schema's wording rather than as decode artifacts.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config(fmt.Sprintf("failed to read config file: %v", err))
	}

	if err := schema.ValidateConfig(data); err != nil {
		return nil, errors.Config(err.Error())
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Configf("failed to parse config file: %v", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads the config file at path, or DefaultConfigFile when
// path is empty. A missing DefaultConfigFile is not an error (the harness
// runs on defaults); a missing explicit path is.
func LoadOrDefault(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errors.Configf("config file %s: %v", path, err)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}
