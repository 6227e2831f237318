package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/gobwas/glob"
)

var (
	supportedStyles      = []string{"google", "numpy", "rest", "rst", "restructuredtext"}
	supportedFormats     = []string{"text", "json", "markdown", "sarif"}
	supportedConventions = []string{"pep257", "numpy", "google"}
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateStyle(cfg *Config) error {
	if !contains(supportedStyles, cfg.DefaultStyle) {
		return fmt.Errorf("default_style must be one of: google, numpy, rest; got %q", cfg.DefaultStyle)
	}
	return nil
}

func validateCoverage(cfg *Config) error {
	if cfg.MinCoverage < 0 || cfg.MinCoverage > 100 {
		return fmt.Errorf("min_coverage must be between 0 and 100, got %v", cfg.MinCoverage)
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.dirs[%d] %q is not a valid glob: %w", i, pattern, err)
		}
	}
	for i, pattern := range cfg.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.files[%d] %q is not a valid glob: %w", i, pattern, err)
		}
	}
	return nil
}

func validateChecker(cfg *Config) error {
	if cfg.Checker.Executable == "" {
		return fmt.Errorf("checker.executable must not be empty")
	}
	if cfg.Checker.Convention != "" && !contains(supportedConventions, cfg.Checker.Convention) {
		return fmt.Errorf("checker.convention must be one of: %s", strings.Join(supportedConventions, ", "))
	}
	if cfg.Checker.Convention != "" && len(cfg.Checker.Select) > 0 {
		return fmt.Errorf("checker.convention and checker.select cannot be used together")
	}
	for _, code := range append(append([]string(nil), cfg.Checker.Select...), cfg.Checker.Ignore...) {
		if !isRuleCode(code) {
			return fmt.Errorf("checker rule %q is not a pydocstyle code or prefix (e.g. D1, D203)", code)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if !contains(supportedFormats, cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of: %s", strings.Join(supportedFormats, ", "))
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if !cfg.Observability.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Observability.Address); err != nil {
		return fmt.Errorf("observability.address %q must be host:port: %w", cfg.Observability.Address, err)
	}
	return nil
}

func isRuleCode(code string) bool {
	if len(code) < 2 || code[0] != 'D' {
		return false
	}
	for _, r := range code[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
