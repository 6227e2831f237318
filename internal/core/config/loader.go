package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var defaultExcludeDirs = []string{".git", ".hg", ".tox", ".venv", "venv", "__pycache__", "build", "dist", "node_modules"}

// Load reads a docscan.toml file, or the [tool.docstring_generator] table when
// path names a pyproject.toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	if filepath.Base(path) == PyprojectFileName {
		cfg, err = decodePyproject(data)
	} else {
		cfg, err = decodeStandalone(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return finalize(cfg)
}

// Discover looks for docscan.toml and then pyproject.toml in dir. A
// pyproject.toml without the docstring_generator table, or no file at all,
// yields the defaults. source is the file the settings came from, or "".
func Discover(dir string) (cfg *Config, source string, err error) {
	standalone := filepath.Join(dir, DefaultFileName)
	if _, statErr := os.Stat(standalone); statErr == nil {
		cfg, err = Load(standalone)
		return cfg, standalone, err
	}

	pyproject := filepath.Join(dir, PyprojectFileName)
	if data, readErr := os.ReadFile(pyproject); readErr == nil {
		parsed, decodeErr := decodePyproject(data)
		if decodeErr != nil {
			slog.Warn("could not read pyproject.toml, using defaults", "path", pyproject, "error", decodeErr)
			cfg, err = finalize(emptyConfig())
			return cfg, "", err
		}
		cfg, err = finalize(parsed)
		return cfg, pyproject, err
	}

	cfg, err = finalize(emptyConfig())
	return cfg, "", err
}

func decodeStandalone(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("min_coverage") {
		cfg.MinCoverage = DefaultMinCoverage
	}
	warnUndecoded(md)
	return &cfg, nil
}

func decodePyproject(data []byte) (*Config, error) {
	var doc struct {
		Tool struct {
			DocstringGenerator Config `toml:"docstring_generator"`
		} `toml:"tool"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	cfg := doc.Tool.DocstringGenerator
	if !md.IsDefined("tool", PyprojectTable, "min_coverage") {
		cfg.MinCoverage = DefaultMinCoverage
	}
	return &cfg, nil
}

func emptyConfig() *Config {
	return &Config{MinCoverage: DefaultMinCoverage}
}

func warnUndecoded(md toml.MetaData) {
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "key", key.String())
	}
}

func finalize(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	ApplyEnvOverrides(cfg)
	normalize(cfg)

	if err := validateVersion(cfg); err != nil {
		return nil, err
	}
	if err := validateStyle(cfg); err != nil {
		return nil, err
	}
	if err := validateCoverage(cfg); err != nil {
		return nil, err
	}
	if err := validateExclude(cfg); err != nil {
		return nil, err
	}
	if err := validateChecker(cfg); err != nil {
		return nil, err
	}
	if err := validateOutput(cfg); err != nil {
		return nil, err
	}
	if err := validateObservability(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.DefaultStyle) == "" {
		cfg.DefaultStyle = DefaultStyle
	}
	if cfg.ValidationEnabled == nil {
		enabled := true
		cfg.ValidationEnabled = &enabled
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = append([]string(nil), defaultExcludeDirs...)
	}

	if strings.TrimSpace(cfg.Checker.Executable) == "" {
		cfg.Checker.Executable = "pydocstyle"
	}
	if cfg.Checker.Timeout <= 0 {
		cfg.Checker.Timeout = 30 * time.Second
	}
	if cfg.Checker.Rate == 0 {
		cfg.Checker.Rate = 8
	}
	if cfg.Checker.Burst <= 0 {
		cfg.Checker.Burst = 4
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = DefaultOutputFormat
	}
	if strings.TrimSpace(cfg.Observability.Address) == "" {
		cfg.Observability.Address = DefaultMetricsAddr
	}
}

func normalize(cfg *Config) {
	cfg.DefaultStyle = strings.ToLower(strings.TrimSpace(cfg.DefaultStyle))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.File = strings.TrimSpace(cfg.Output.File)
	cfg.Checker.Executable = strings.TrimSpace(cfg.Checker.Executable)
	cfg.Checker.Convention = strings.ToLower(strings.TrimSpace(cfg.Checker.Convention))
	cfg.Checker.Select = normalizeCodes(cfg.Checker.Select)
	cfg.Checker.Ignore = normalizeCodes(cfg.Checker.Ignore)
}

func normalizeCodes(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
