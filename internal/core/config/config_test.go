package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `
paths = ["src", "scripts"]
default_style = "NumPy"
min_coverage = 90.5
validation_enabled = false
include_tests = true

[exclude]
dirs = [".git", "migrations"]
files = ["*_pb2.py"]

[checker]
executable = "python3"
args = ["-m", "pydocstyle"]
timeout = "10s"
ignore = ["d203", "D213", "D203"]

[batch]
workers = 3

[watch]
debounce = "1s"

[output]
format = "SARIF"
file = "reports/docscan.sarif"
`
	path := writeFile(t, t.TempDir(), DefaultFileName, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Paths) != 2 || cfg.Paths[0] != "src" {
		t.Errorf("unexpected paths: %v", cfg.Paths)
	}
	if cfg.DefaultStyle != "numpy" {
		t.Errorf("expected style numpy, got %q", cfg.DefaultStyle)
	}
	if cfg.MinCoverage != 90.5 {
		t.Errorf("expected min_coverage 90.5, got %v", cfg.MinCoverage)
	}
	if cfg.ValidationOn() {
		t.Error("expected validation to be disabled")
	}
	if !cfg.IncludeTests {
		t.Error("expected include_tests")
	}
	if len(cfg.Exclude.Dirs) != 2 || cfg.Exclude.Files[0] != "*_pb2.py" {
		t.Errorf("unexpected excludes: %+v", cfg.Exclude)
	}
	if cfg.Checker.Executable != "python3" || len(cfg.Checker.Args) != 2 {
		t.Errorf("unexpected checker: %+v", cfg.Checker)
	}
	if cfg.Checker.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Checker.Timeout)
	}
	if strings.Join(cfg.Checker.Ignore, ",") != "D203,D213" {
		t.Errorf("expected normalized ignore list, got %v", cfg.Checker.Ignore)
	}
	if cfg.Batch.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Batch.Workers)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Output.Format != "sarif" || cfg.Output.File != "reports/docscan.sarif" {
		t.Errorf("unexpected output: %+v", cfg.Output)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), DefaultFileName, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.DefaultStyle != DefaultStyle {
		t.Errorf("expected default style %q, got %q", DefaultStyle, cfg.DefaultStyle)
	}
	if cfg.MinCoverage != DefaultMinCoverage {
		t.Errorf("expected min_coverage %v, got %v", DefaultMinCoverage, cfg.MinCoverage)
	}
	if !cfg.ValidationOn() {
		t.Error("validation should default to enabled")
	}
	if len(cfg.Paths) != 1 || cfg.Paths[0] != "." {
		t.Errorf("expected default path '.', got %v", cfg.Paths)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("expected default excluded dirs")
	}
	if cfg.Checker.Executable != "pydocstyle" || cfg.Checker.Timeout != 30*time.Second {
		t.Errorf("unexpected checker defaults: %+v", cfg.Checker)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("expected default debounce, got %v", cfg.Watch.Debounce)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected text output, got %q", cfg.Output.Format)
	}
}

func TestLoad_ExplicitZeroCoverageIsKept(t *testing.T) {
	path := writeFile(t, t.TempDir(), DefaultFileName, "min_coverage = 0.0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MinCoverage != 0 {
		t.Fatalf("expected explicit 0 to be kept, got %v", cfg.MinCoverage)
	}
}

func TestLoad_PyprojectTable(t *testing.T) {
	content := `
[project]
name = "sample"

[tool.black]
line-length = 100

[tool.docstring_generator]
min_coverage = 70.0
default_style = "rest"
validation_enabled = false
`
	path := writeFile(t, t.TempDir(), PyprojectFileName, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MinCoverage != 70.0 {
		t.Errorf("expected min_coverage 70, got %v", cfg.MinCoverage)
	}
	if cfg.DefaultStyle != "rest" {
		t.Errorf("expected rest style, got %q", cfg.DefaultStyle)
	}
	if cfg.ValidationOn() {
		t.Error("expected validation disabled")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"style":      `default_style = "epytext"`,
		"coverage":   `min_coverage = 120.0`,
		"version":    `version = 7`,
		"format":     "[output]\nformat = \"xml\"",
		"glob":       "[exclude]\ndirs = [\"[\"]",
		"convention": "[checker]\nconvention = \"sphinx\"",
		"rule":       "[checker]\nignore = [\"E501\"]",
		"exclusive":  "[checker]\nconvention = \"google\"\nselect = [\"D1\"]",
		"metrics":    "[observability]\nenabled = true\naddress = \"nope\"",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), DefaultFileName, content)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected validation error for %s", name)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDiscover(t *testing.T) {
	t.Run("standalone wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, DefaultFileName, "min_coverage = 50.0\n")
		writeFile(t, dir, PyprojectFileName, "[tool.docstring_generator]\nmin_coverage = 60.0\n")

		cfg, source, err := Discover(dir)
		if err != nil {
			t.Fatal(err)
		}
		if source != filepath.Join(dir, DefaultFileName) || cfg.MinCoverage != 50 {
			t.Fatalf("unexpected discovery: source=%q min=%v", source, cfg.MinCoverage)
		}
	})

	t.Run("pyproject", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, PyprojectFileName, "[tool.docstring_generator]\nmin_coverage = 60.0\n")

		cfg, source, err := Discover(dir)
		if err != nil {
			t.Fatal(err)
		}
		if source != filepath.Join(dir, PyprojectFileName) || cfg.MinCoverage != 60 {
			t.Fatalf("unexpected discovery: source=%q min=%v", source, cfg.MinCoverage)
		}
	})

	t.Run("broken pyproject falls back to defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, PyprojectFileName, "[tool.docstring_generator\n")

		cfg, source, err := Discover(dir)
		if err != nil {
			t.Fatal(err)
		}
		if source != "" || cfg.MinCoverage != DefaultMinCoverage {
			t.Fatalf("expected defaults, got source=%q min=%v", source, cfg.MinCoverage)
		}
	})

	t.Run("nothing", func(t *testing.T) {
		cfg, source, err := Discover(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if source != "" || cfg.DefaultStyle != DefaultStyle {
			t.Fatalf("expected defaults, got source=%q style=%q", source, cfg.DefaultStyle)
		}
	})
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DOCSCAN_DEFAULT_STYLE", "numpy")
	t.Setenv("DOCSCAN_MIN_COVERAGE", "65.5")
	t.Setenv("DOCSCAN_VALIDATION_ENABLED", "false")
	t.Setenv("DOCSCAN_CHECKER_TIMEOUT", "2s")
	t.Setenv("DOCSCAN_CHECKER_IGNORE", "D100, D104")
	t.Setenv("DOCSCAN_BATCH_WORKERS", "not-a-number")

	path := writeFile(t, t.TempDir(), DefaultFileName, "[batch]\nworkers = 2\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DefaultStyle != "numpy" {
		t.Errorf("expected numpy, got %q", cfg.DefaultStyle)
	}
	if cfg.MinCoverage != 65.5 {
		t.Errorf("expected 65.5, got %v", cfg.MinCoverage)
	}
	if cfg.ValidationOn() {
		t.Error("expected validation disabled by env")
	}
	if cfg.Checker.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.Checker.Timeout)
	}
	if strings.Join(cfg.Checker.Ignore, ",") != "D100,D104" {
		t.Errorf("unexpected ignore list %v", cfg.Checker.Ignore)
	}
	if cfg.Batch.Workers != 2 {
		t.Errorf("malformed override must be ignored, got %d workers", cfg.Batch.Workers)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MinCoverage != DefaultMinCoverage || cfg.DefaultStyle != DefaultStyle || !cfg.ValidationOn() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
