// Package config loads run settings for the fastrng command from an optional
// HCL file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Environment variable names that override file settings
const (
	// EnvSeed overrides generator.seed
	EnvSeed = "FASTRNG_SEED"

	// EnvStreams overrides generator.streams
	EnvStreams = "FASTRNG_STREAMS"
)

// Config represents the complete run configuration
type Config struct {
	LogLevel  string           `hcl:"log_level,optional"`
	Generator *GeneratorConfig `hcl:"generator,block"`
	Sample    *SampleConfig    `hcl:"sample,block"`
	Bench     *BenchConfig     `hcl:"bench,block"`
}

// GeneratorConfig selects the seed and stream partitioning
type GeneratorConfig struct {
	Seed    *uint64 `hcl:"seed,optional"`
	Streams int     `hcl:"streams,optional"`
	Workers int     `hcl:"workers,optional"`
}

// SampleConfig controls distribution sampling
type SampleConfig struct {
	Count     int   `hcl:"count,optional"`
	Bound     int64 `hcl:"bound,optional"`
	HexLength int   `hcl:"hex_length,optional"`
}

// BenchConfig controls the timing harness
type BenchConfig struct {
	Calls      int      `hcl:"calls,optional"`
	Generators []string `hcl:"generators,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.ensureBlocks()
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields defaults.
// Environment overrides are applied last.
func Load(filename string) (*Config, error) {
	cfg := &Config{}

	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			if err := decodeFile(filename, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	cfg.ensureBlocks()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(filename string, cfg *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return nil
}

// ensureBlocks allocates blocks the file omitted.
func (c *Config) ensureBlocks() {
	if c.Generator == nil {
		c.Generator = &GeneratorConfig{}
	}
	if c.Sample == nil {
		c.Sample = &SampleConfig{}
	}
	if c.Bench == nil {
		c.Bench = &BenchConfig{}
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Generator.Seed = &seed
	}
	if v := os.Getenv(EnvStreams); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvStreams, err)
		}
		c.Generator.Streams = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Generator.Streams == 0 {
		c.Generator.Streams = 1
	}
	if c.Sample.Count == 0 {
		c.Sample.Count = 10
	}
	if c.Sample.Bound == 0 {
		c.Sample.Bound = 100
	}
	if c.Sample.HexLength == 0 {
		c.Sample.HexLength = 32
	}
	if c.Bench.Calls == 0 {
		c.Bench.Calls = 100_000_000
	}
}

// Validate rejects settings the generator or harness cannot honour
func (c *Config) Validate() error {
	if c.Generator.Streams < 1 {
		return fmt.Errorf("generator.streams must be at least 1, got %d", c.Generator.Streams)
	}
	if c.Generator.Workers < 0 {
		return fmt.Errorf("generator.workers must be non-negative, got %d", c.Generator.Workers)
	}
	if c.Sample.Count < 0 {
		return fmt.Errorf("sample.count must be non-negative, got %d", c.Sample.Count)
	}
	if c.Sample.Bound < 0 {
		return fmt.Errorf("sample.bound must be non-negative, got %d", c.Sample.Bound)
	}
	if c.Sample.HexLength < 0 {
		return fmt.Errorf("sample.hex_length must be non-negative, got %d", c.Sample.HexLength)
	}
	if c.Bench.Calls < 1 {
		return fmt.Errorf("bench.calls must be at least 1, got %d", c.Bench.Calls)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}
