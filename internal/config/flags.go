package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config    string
	Debug     bool
	Format    string
	Out       string
	Box       string
	Precision int
}

// Register adds the shared flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Format, "format", "", "Output format: table, csv or yaml")
	fs.StringVar(&f.Out, "out", "", "Write output to this file instead of stdout")
	fs.StringVar(&f.Box, "box", "", "Periodic box as x,y,z for meshes without one")
	fs.IntVar(&f.Precision, "precision", -1, "Digits after the decimal point")
}

// ParseFlags registers the shared flags on a new FlagSet named name, parses
// args and returns the flags with the remaining positional arguments.
func ParseFlags(name string, args []string) (*Flags, []string, error) {
	f := &Flags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f.Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// apply copies flag overrides onto cfg.
func (f *Flags) apply(cfg *Config) error {
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Curvature.ReportDiagnostics = true
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Out != "" {
		cfg.Output.Path = f.Out
	}
	if f.Precision >= 0 {
		cfg.Output.Precision = f.Precision
	}
	if f.Box != "" {
		box, err := ParseBox(f.Box)
		if err != nil {
			return err
		}
		cfg.Mesh.BoxSize = box
		cfg.Mesh.Periodic = true
	}
	return nil
}

// ParseBox parses "x,y,z" into three floats.
func ParseBox(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("box %q: want x,y,z", s)
	}
	box := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", s, err)
		}
		box[i] = v
	}
	return box, nil
}
