package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !reflect.DeepEqual(cfg.Mesh.BoxSize, []float64{1, 1, 1}) {
		t.Errorf("expected box size [1 1 1], got %v", cfg.Mesh.BoxSize)
	}
	if cfg.Mesh.Periodic {
		t.Error("expected periodic to be false by default")
	}
	if !cfg.Curvature.ReportDiagnostics {
		t.Error("expected diagnostics to be reported by default")
	}
	if cfg.Curvature.MaxDiagnostics != 20 {
		t.Errorf("expected max diagnostics 20, got %d", cfg.Curvature.MaxDiagnostics)
	}
	if cfg.Output.Format != FormatTable {
		t.Errorf("expected format table, got %s", cfg.Output.Format)
	}
	if cfg.Output.Precision != 6 {
		t.Errorf("expected precision 6, got %d", cfg.Output.Precision)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
mesh:
  box_size: [20, 20, 40]
  periodic: true

curvature:
  report_diagnostics: false
  max_diagnostics: 5

output:
  format: csv
  precision: 3
  path: "curvature.csv"

logging:
  level: "debug"
  log_file: "dtsmesh.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !reflect.DeepEqual(cfg.Mesh.BoxSize, []float64{20, 20, 40}) {
		t.Errorf("expected box size [20 20 40], got %v", cfg.Mesh.BoxSize)
	}
	if !cfg.Mesh.Periodic {
		t.Error("expected periodic to be true")
	}
	if cfg.Curvature.ReportDiagnostics {
		t.Error("expected report_diagnostics to be false")
	}
	if cfg.Curvature.MaxDiagnostics != 5 {
		t.Errorf("expected max diagnostics 5, got %d", cfg.Curvature.MaxDiagnostics)
	}
	if cfg.Output.Format != FormatCSV || cfg.Output.Precision != 3 || cfg.Output.Path != "curvature.csv" {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "dtsmesh.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  precision: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Precision != 2 {
		t.Errorf("expected precision 2, got %d", cfg.Output.Precision)
	}
	if cfg.Output.Format != FormatTable {
		t.Errorf("expected default format to survive, got %s", cfg.Output.Format)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "mesh:\n  box_size: [1, 2\n",
		"wrong type":  "output:\n  precision: many\n",
		"unknown key": "graphics:\n  width: 800\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !strings.Contains(dir, "dtsmesh") {
		t.Errorf("ConfigDir should name the application, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "dtsmesh.yaml"), []byte("output:\n  precision: 4\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find dtsmesh.yaml in current directory")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"short box", func(c *Config) { c.Mesh.BoxSize = []float64{1, 1} }, "3 components"},
		{"zero box", func(c *Config) { c.Mesh.BoxSize = []float64{1, 0, 1} }, "box_size[1]"},
		{"format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"precision", func(c *Config) { c.Output.Precision = 40 }, "output.precision"},
		{"diagnostics", func(c *Config) { c.Curvature.MaxDiagnostics = -1 }, "max_diagnostics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		verify func(*testing.T, *Config)
	}{
		{
			name:  "debug flag",
			flags: Flags{Debug: true, Precision: -1},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "format and out",
			flags: Flags{Format: "yaml", Out: "k.yaml", Precision: -1},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Format != FormatYAML || cfg.Output.Path != "k.yaml" {
					t.Errorf("unexpected output config %+v", cfg.Output)
				}
			},
		},
		{
			name:  "precision zero",
			flags: Flags{Precision: 0},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Precision != 0 {
					t.Errorf("expected precision 0, got %d", cfg.Output.Precision)
				}
			},
		},
		{
			name:  "box",
			flags: Flags{Box: "10, 12,14", Precision: -1},
			verify: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg.Mesh.BoxSize, []float64{10, 12, 14}) {
					t.Errorf("expected box [10 12 14], got %v", cfg.Mesh.BoxSize)
				}
				if !cfg.Mesh.Periodic {
					t.Error("expected -box to turn periodic on")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := tt.flags.apply(cfg); err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.verify(t, cfg)
		})
	}

	bad := Flags{Box: "1,2", Precision: -1}
	if err := bad.apply(Default()); err == nil {
		t.Error("expected error for a two-component box")
	}
}

func TestParseFlags(t *testing.T) {
	flags, rest, err := ParseFlags("curvature", []string{"-format", "csv", "-box", "5,5,5", "mesh.tsi"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if flags.Format != "csv" || flags.Box != "5,5,5" || flags.Precision != -1 {
		t.Errorf("unexpected flags %+v", flags)
	}
	if !reflect.DeepEqual(rest, []string{"mesh.tsi"}) {
		t.Errorf("expected positional [mesh.tsi], got %v", rest)
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
output:
  format: csv
  precision: 3
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{Config: configPath, Format: "yaml", Precision: -1})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("expected format yaml from flag, got %s", cfg.Output.Format)
	}
	if cfg.Output.Precision != 3 {
		t.Errorf("expected precision 3 from file, got %d", cfg.Output.Precision)
	}

	if _, err := Load(&Flags{Config: configPath, Format: "xml", Precision: -1}); err == nil {
		t.Error("expected invalid format from flags to fail validation")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Output.Precision = 9

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("saved config differs after reload:\n%+v\n%+v", cfg, loaded)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("APPDATA", tmpDir)

	cfg := Default()
	cfg.Logging.Level = "warn"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := DefaultPath()
	if !strings.HasPrefix(path, tmpDir) {
		t.Fatalf("expected default path under %s, got %s", tmpDir, path)
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("expected saved level 'warn', got %s", loaded.Logging.Level)
	}
	if got := findConfigFile(); got != path {
		t.Errorf("expected findConfigFile to return %s, got %s", path, got)
	}
}
