package cliapp

import (
	"flag"
	"io"
)

type cliOptions struct {
	configPath   string
	style        string
	validate     bool
	checkOnly    bool
	format       string
	output       string
	inject       string
	watch        bool
	workers      int
	includeTests bool
	includeDocs  bool
	noColor      bool
	metricsAddr  string
	verbose      bool
	version      bool
	args         []string
}

func parseOptions(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("docscan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to docscan.toml or pyproject.toml (default: discovered from the project root)")
	fs.StringVar(&opts.style, "style", "", "Docstring style: google, numpy or rest (overrides config)")
	fs.BoolVar(&opts.validate, "validate", false, "Run pydocstyle validation (overrides config)")
	fs.BoolVar(&opts.checkOnly, "check-only", false, "Hide generated docstrings and exit non-zero when requirements are not met")
	fs.StringVar(&opts.format, "format", "", "Output format: text, json, markdown or sarif (overrides config)")
	fs.StringVar(&opts.output, "output", "", "Write the report to this file instead of stdout")
	fs.StringVar(&opts.inject, "inject", "", "Inject the Markdown summary between <!-- docscan:coverage:start/end --> markers in this file")
	fs.BoolVar(&opts.watch, "watch", false, "Keep running and re-analyze files when they change")
	fs.IntVar(&opts.workers, "workers", 0, "Number of files analyzed concurrently (default: config or CPU count)")
	fs.BoolVar(&opts.includeTests, "include-tests", false, "Include test modules (test_*.py, *_test.py)")
	fs.BoolVar(&opts.includeDocs, "include-docs", false, "Include generated docstrings in Markdown reports")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored terminal output")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address (enables observability)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}
