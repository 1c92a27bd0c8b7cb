package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/dtsmesh/internal/config"
	"github.com/Faultbox/dtsmesh/internal/curvature"
	"github.com/Faultbox/dtsmesh/internal/logger"
	"github.com/Faultbox/dtsmesh/pkg/blueprint"
	"github.com/Faultbox/dtsmesh/pkg/dts"
	"github.com/Faultbox/dtsmesh/pkg/formats"
)

// setup parses the shared flags, loads the config and starts logging.
func setup(name string, args []string, stderr io.Writer, minArgs int, usage string) (*config.Config, []string, error) {
	flags, rest, err := config.ParseFlags(name, args)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) < minArgs {
		fmt.Fprintf(stderr, "Usage: dtsmesh %s\n", usage)
		return nil, nil, errUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

// loadInput reads a mesh file and applies the configured box when the file
// has none.
func loadInput(path string, cfg *config.Config) (blueprint.Input, error) {
	in, err := formats.LoadInput(path)
	if err != nil {
		return blueprint.Input{}, err
	}
	if len(in.BoxSize) == 0 && cfg.Mesh.Periodic {
		in.BoxSize = cfg.Mesh.BoxSize
	}
	logger.Debug("mesh file read",
		zap.String("path", path),
		zap.Int("vertices", len(in.Vertices)),
		zap.Int("triangles", len(in.Triangles)),
		zap.Int("inclusions", len(in.Inclusions)),
	)
	return in, nil
}

func loadSurface(path string, cfg *config.Config) (*dts.Surface, error) {
	in, err := loadInput(path, cfg)
	if err != nil {
		return nil, err
	}
	return dts.New(in, dts.WithLogger(logger.Named("curvature")))
}

// openOutput returns the configured output writer and a close func.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.Output.Path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func cmdInfo(args []string, stdout, stderr io.Writer) error {
	cfg, rest, err := setup("info", args, stderr, 1, "info [options] <mesh>")
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := loadSurface(rest[0], cfg)
	if err != nil {
		return err
	}
	w, closeOut, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}

	summary := summarize(s)
	writeSummary(w, summary, cfg.Output.Precision)
	reportDiagnostics(stderr, s.Diagnostics(), cfg)
	return closeOut()
}

func cmdCurvature(args []string, stdout, stderr io.Writer) error {
	cfg, rest, err := setup("curvature", args, stderr, 1, "curvature [options] <mesh>")
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := loadSurface(rest[0], cfg)
	if err != nil {
		return err
	}
	w, closeOut, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}

	rows := vertexRows(s)
	switch cfg.Output.Format {
	case config.FormatCSV:
		err = writeCSV(w, rows, cfg.Output.Precision)
	case config.FormatYAML:
		err = writeYAML(w, rows)
	default:
		err = writeTable(w, rows, cfg.Output.Precision)
	}
	if err != nil {
		closeOut()
		return err
	}
	reportDiagnostics(stderr, s.Diagnostics(), cfg)
	return closeOut()
}

func cmdExport(args []string, stdout, stderr io.Writer) error {
	cfg, rest, err := setup("export", args, stderr, 2, "export [options] <mesh> <out.tsi|out.yaml>")
	if err != nil {
		return err
	}
	defer logger.Sync()

	src, dst := rest[0], rest[1]
	in, err := loadInput(src, cfg)
	if err != nil {
		return err
	}
	bp, err := blueprint.Build(in)
	if err != nil {
		return err
	}

	var data []byte
	switch formats.DetectFormat(dst) {
	case formats.FormatTSI:
		f, err := os.Create(dst)
		if err != nil {
			return err
		}
		if _, err := formats.TSIFromBlueprint(bp).WriteTo(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case formats.FormatYAML:
		data, err = formats.DocumentFromBlueprint(bp).Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", formats.ErrUnsupportedFormat, filepath.Ext(dst))
	}

	logger.Info("mesh exported", zap.String("from", src), zap.String("to", dst))
	fmt.Fprintf(stdout, "Wrote %s (%d vertices, %d triangles, %d inclusions)\n",
		dst, len(bp.Vertices), len(bp.Triangles), len(bp.Inclusions))
	return nil
}

// reportDiagnostics prints degenerate vertices to stderr, up to the
// configured limit.
func reportDiagnostics(w io.Writer, diags []curvature.Diagnostic, cfg *config.Config) {
	if !cfg.Curvature.ReportDiagnostics || len(diags) == 0 {
		return
	}
	limit := cfg.Curvature.MaxDiagnostics
	if limit == 0 || limit > len(diags) {
		limit = len(diags)
	}
	fmt.Fprintf(w, "%d degenerate vertices:\n", len(diags))
	for _, d := range diags[:limit] {
		fmt.Fprintf(w, "  %s\n", d)
	}
	if limit < len(diags) {
		fmt.Fprintf(w, "  ... and %d more\n", len(diags)-limit)
	}
}
