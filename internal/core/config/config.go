package config

import "time"

const (
	DefaultFileName      = "docscan.toml"
	PyprojectFileName    = "pyproject.toml"
	PyprojectTable       = "docstring_generator"
	DefaultStyle         = "google"
	DefaultMinCoverage   = 80.0
	DefaultOutputFormat  = "text"
	DefaultMetricsAddr   = "127.0.0.1:9464"
	DefaultWatchDebounce = 500 * time.Millisecond
)

type Config struct {
	Version int `toml:"version"`

	// Paths are the files or directories analyzed when none are given on
	// the command line.
	Paths             []string `toml:"paths"`
	DefaultStyle      string   `toml:"default_style"`
	MinCoverage       float64  `toml:"min_coverage"`
	ValidationEnabled *bool    `toml:"validation_enabled"`
	IncludeTests      bool     `toml:"include_tests"`

	Exclude       Exclude       `toml:"exclude"`
	Checker       Checker       `toml:"checker"`
	Batch         Batch         `toml:"batch"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Checker struct {
	Executable string        `toml:"executable"`
	Args       []string      `toml:"args"`
	Timeout    time.Duration `toml:"timeout"`
	// Convention overrides the pydocstyle convention derived from the style.
	Convention string   `toml:"convention"`
	Select     []string `toml:"select"`
	Ignore     []string `toml:"ignore"`
	// Rate and Burst throttle checker spawns across concurrent runs.
	Rate  float64 `toml:"rate"`
	Burst int     `toml:"burst"`
}

type Batch struct {
	Workers int `toml:"workers"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type Observability struct {
	Enabled      bool   `toml:"enabled"`
	Address      string `toml:"address"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
	OTLPInsecure bool   `toml:"otlp_insecure"`
}

// ValidationOn reports whether validation runs by default. Unset means true.
func (c *Config) ValidationOn() bool {
	if c.ValidationEnabled == nil {
		return true
	}
	return *c.ValidationEnabled
}

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := emptyConfig()
	applyDefaults(cfg)
	normalize(cfg)
	return cfg
}
