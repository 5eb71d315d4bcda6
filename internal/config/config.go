// Package config loads the lvknap command configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvknap/bnb"
	"github.com/katalvlaran/lvknap/internal/logging"
	"github.com/katalvlaran/lvknap/knapsack"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Search holds engine tolerances.
type Search struct {
	IntegralityTol float64 `yaml:"integrality_tol"`
	DominanceTol   float64 `yaml:"dominance_tol"`
	Pruning        bool    `yaml:"pruning"`
}

// Bench holds settings for the bench command.
type Bench struct {
	Instances   int  `yaml:"instances"`
	Concurrency int  `yaml:"concurrency"`
	Verify      bool `yaml:"verify"`
}

// Config is the full command configuration.
type Config struct {
	Generator knapsack.GeneratorOptions `yaml:"generator"`
	Search    Search                    `yaml:"search"`
	Bench     Bench                     `yaml:"bench"`
	Logging   logging.Config            `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generator: knapsack.DefaultGeneratorOptions(),
		Search: Search{
			IntegralityTol: bnb.DefaultIntegralityTol,
			DominanceTol:   bnb.DefaultDominanceTol,
			Pruning:        true,
		},
		Bench:   Bench{Instances: 100, Concurrency: 4},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads path over Default. A missing file is not an error when
// optional is set; the defaults are returned instead.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the fields the command depends on. Generator ranges are
// checked later by knapsack.NewGenerator.
func (c Config) Validate() error {
	switch {
	case c.Search.IntegralityTol <= 0 || c.Search.IntegralityTol >= 0.5:
		return fmt.Errorf("%w: integrality_tol %g not in (0, 0.5)", ErrInvalid, c.Search.IntegralityTol)
	case c.Search.DominanceTol < 0:
		return fmt.Errorf("%w: dominance_tol %g is negative", ErrInvalid, c.Search.DominanceTol)
	case c.Bench.Instances < 0:
		return fmt.Errorf("%w: bench.instances %d is negative", ErrInvalid, c.Bench.Instances)
	case c.Bench.Concurrency < 1:
		return fmt.Errorf("%w: bench.concurrency must be at least 1", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// EngineOptions translates the search settings into engine options.
func (c Config) EngineOptions() []bnb.Option {
	return []bnb.Option{
		bnb.WithIntegralityTol(c.Search.IntegralityTol),
		bnb.WithDominanceTol(c.Search.DominanceTol),
		bnb.WithPruning(c.Search.Pruning),
	}
}
