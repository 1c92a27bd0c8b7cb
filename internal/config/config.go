// Package config handles dtsmesh configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Output formats for curvature tables.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatYAML  = "yaml"
)

// Config holds all settings.
type Config struct {
	Mesh      MeshConfig      `yaml:"mesh"`
	Curvature CurvatureConfig `yaml:"curvature"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MeshConfig holds settings applied to every loaded mesh.
type MeshConfig struct {
	// BoxSize is used for meshes that do not carry their own box, and only
	// when Periodic is set.
	BoxSize  []float64 `yaml:"box_size,flow"`
	Periodic bool      `yaml:"periodic"`
}

// CurvatureConfig holds curvature reporting settings.
type CurvatureConfig struct {
	ReportDiagnostics bool `yaml:"report_diagnostics"`
	MaxDiagnostics    int  `yaml:"max_diagnostics"` // 0 means no limit
}

// OutputConfig holds result formatting settings.
type OutputConfig struct {
	Format    string `yaml:"format"`    // table, csv or yaml
	Precision int    `yaml:"precision"` // Digits after the decimal point
	Path      string `yaml:"path"`      // Empty means stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			BoxSize:  []float64{1, 1, 1},
			Periodic: false,
		},
		Curvature: CurvatureConfig{
			ReportDiagnostics: true,
			MaxDiagnostics:    20,
		},
		Output: OutputConfig{
			Format:    FormatTable,
			Precision: 6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Mesh.BoxSize) != 3 {
		errs = append(errs, fmt.Errorf("mesh.box_size must have 3 components, got %d", len(c.Mesh.BoxSize)))
	} else {
		for i, v := range c.Mesh.BoxSize {
			if v <= 0 {
				errs = append(errs, fmt.Errorf("mesh.box_size[%d] must be positive, got %g", i, v))
			}
		}
	}
	if c.Curvature.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("curvature.max_diagnostics must not be negative, got %d", c.Curvature.MaxDiagnostics))
	}
	switch c.Output.Format {
	case FormatTable, FormatCSV, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not one of table, csv, yaml", c.Output.Format))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 17 {
		errs = append(errs, fmt.Errorf("output.precision must be in [0, 17], got %d", c.Output.Precision))
	}
	return errors.Join(errs...)
}
