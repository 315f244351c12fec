// Package config holds the compiler-wide tunables: simplex iteration
// limits, numeric tolerances, and presentation flags. pkg/solverapi
// reads Default to configure the bundled simplex engine. It is a leaf
// package — nothing
// here imports any other internal package — mirroring how an ambient
// settings package sits at the bottom of the dependency graph.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// IsTestMode is a process-wide test-run flag. No package in this module
// reads it; compile IDs and rendered output do not depend on it.
var IsTestMode = false

// Default holds the tunables used when no config file is supplied.
var Default = Config{
	MaxSimplexIterations: 10000,
	Epsilon:              1e-9,
	BigM:                 1e7,
	Color:                true,
	BlandThreshold:       1000,
}

// Config is the full set of compiler tunables, loadable from YAML.
type Config struct {
	// MaxSimplexIterations caps the simplex loop; exceeding it yields
	// IterationLimitExceeded rather than looping forever.
	MaxSimplexIterations int `yaml:"max_simplex_iterations"`
	// Epsilon is the floating-point tolerance used for zero comparisons
	// in the simplex engine.
	Epsilon float64 `yaml:"epsilon"`
	// BigM is a Big-M penalty constant. The bundled engine always uses
	// the two-phase method and does not read it.
	BigM float64 `yaml:"big_m"`
	// Color is a color-output setting. diag.NewFormatter decides color
	// from whether its writer is a terminal and does not read it.
	Color bool `yaml:"color"`
	// BlandThreshold is the simplex iteration index from which the
	// entering column is picked by Bland's anti-cycling rule instead of
	// the most-negative reduced cost; progress is not measured.
	BlandThreshold int `yaml:"bland_threshold"`
}

// Load reads a YAML config file, starting from Default and overriding
// only the fields present in the file.
func Load(path string) (Config, error) {
	cfg := Default
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
