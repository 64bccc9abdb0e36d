// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcfg loads the per-benchmark run configuration.
//
// The configuration names, for each benchmark, which artifact format
// it produces, which extraction rule applies to unstructured output,
// the direction of its metric, and optional scoring weights. A
// benchmark missing from the configuration gets structured format,
// higher-is-better direction and no weights.
package benchcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dcbench/benchscore/benchraw"
)

// Format discriminates the two artifact shapes.
type Format string

const (
	Structured   Format = "structured"
	Unstructured Format = "unstructured"
)

// A Benchmark is the tool configuration for one benchmark.
type Benchmark struct {
	Name string `yaml:"name"`

	// Format of the raw artifact. Defaults to structured.
	Format Format `yaml:"format"`

	// Extractor names the extraction rule for unstructured
	// artifacts. Defaults to Name.
	Extractor string `yaml:"extractor"`

	// HigherIsBetter gives the metric direction. Most tools report
	// throughput; latency-reporting tools (such as the concurrent
	// hash map benchmark) must set this to false so their ratios
	// are inverted before aggregation.
	HigherIsBetter *bool `yaml:"higher_is_better"`

	// Weights optionally weights operations in the aggregate
	// score. Operations not listed weigh 1.
	Weights map[string]float64 `yaml:"weights"`

	// Duplicate selects the duplicate-operation policy: "first",
	// "last" or "sum". Defaults to last for structured artifacts;
	// unstructured artifacts default to the policy their
	// extraction rule registered.
	Duplicate string `yaml:"duplicate"`
}

// HigherBetter resolves the metric direction, defaulting to true.
func (b Benchmark) HigherBetter() bool {
	return b.HigherIsBetter == nil || *b.HigherIsBetter
}

// ExtractorName resolves the extraction rule name, defaulting to the
// benchmark name.
func (b Benchmark) ExtractorName() string {
	if b.Extractor != "" {
		return b.Extractor
	}
	return b.Name
}

// DupPolicy resolves the duplicate policy for this benchmark.
func (b Benchmark) DupPolicy() (benchraw.DupPolicy, error) {
	if b.Duplicate == "" {
		if b.Format == Unstructured {
			if dup, ok := benchraw.ExtractorDup(b.ExtractorName()); ok {
				return dup, nil
			}
			return benchraw.DupSum, nil
		}
		return benchraw.DupLast, nil
	}
	return benchraw.ParseDupPolicy(b.Duplicate)
}

// A Config is a full run configuration.
type Config struct {
	Benchmarks []Benchmark `yaml:"benchmarks"`

	byName map[string]Benchmark
}

// Load reads and validates a YAML run configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a YAML run configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.byName = make(map[string]Benchmark)
	for _, b := range cfg.Benchmarks {
		if b.Name == "" {
			return nil, fmt.Errorf("config: benchmark with empty name")
		}
		if _, ok := cfg.byName[b.Name]; ok {
			return nil, fmt.Errorf("config: benchmark %q listed twice", b.Name)
		}
		switch b.Format {
		case "", Structured, Unstructured:
		default:
			return nil, fmt.Errorf("config: benchmark %q: unknown format %q", b.Name, b.Format)
		}
		if b.Format == Unstructured {
			if _, ok := benchraw.LookupExtractor(b.ExtractorName()); !ok {
				return nil, fmt.Errorf("config: benchmark %q: unknown extractor %q (have %v)",
					b.Name, b.ExtractorName(), benchraw.ExtractorNames())
			}
		}
		if _, err := b.DupPolicy(); err != nil {
			return nil, fmt.Errorf("config: benchmark %q: %v", b.Name, err)
		}
		for op, w := range b.Weights {
			if w <= 0 {
				return nil, fmt.Errorf("config: benchmark %q: weight for %q must be positive, got %v", b.Name, op, w)
			}
		}
		cfg.byName[b.Name] = b
	}
	return &cfg, nil
}

// Get returns the configuration for the named benchmark, or a default
// configuration if it is not listed.
func (c *Config) Get(name string) Benchmark {
	if c != nil {
		if b, ok := c.byName[name]; ok {
			return b
		}
	}
	return Benchmark{Name: name, Format: Structured}
}
