package cliapp

import (
	"context"
	"docscan/internal/core/app"
	"docscan/internal/core/config"
	"docscan/internal/core/errors"
	"docscan/internal/engine/docstring"
	"docscan/internal/shared/observability"
	"docscan/internal/shared/version"
	"docscan/internal/ui/report"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const (
	injectMarker    = "coverage"
	shutdownTimeout = 5 * time.Second
)

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	configureLogging(stderr, opts.verbose, opts.watch)

	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to detect working directory", "error", err)
		return 1
	}

	targets := absTargets(opts.args, cwd)
	cfg, cfgPath, err := loadConfig(opts.configPath, cwd, targets)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	if err := applyModeOptions(&opts, cfg); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	if len(targets) == 0 {
		targets = config.ResolveScanPaths(cfg, configBase(cfgPath, cwd))
	}
	projectRoot, err := config.DetectProjectRoot(targets)
	if err != nil {
		projectRoot = cwd
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, app.Options{Style: opts.style, Validate: validateOverride(opts)})
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}

	stopTelemetry, err := startTelemetry(ctx, cfg, a)
	if err != nil {
		slog.Error("failed to start observability", "error", err)
		return 1
	}
	defer stopTelemetry()

	slog.Debug("analysis starting", "paths", targets, "style", a.Analyzer.Style(), "validate", a.Analyzer.Validates(), "config", cfgPath)

	results, summary, err := a.Analyze(ctx, targets)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		return 1
	}

	out := &publisher{
		stdout:      stdout,
		outputPath:  cfg.Output.File,
		injectPath:  opts.inject,
		projectRoot: projectRoot,
		minCoverage: cfg.MinCoverage,
		options: report.Options{
			Format:      format,
			CheckOnly:   opts.checkOnly,
			NoColor:     opts.noColor,
			IncludeDocs: opts.includeDocs,
		},
	}
	failures, err := out.publish(results, summary)
	if err != nil {
		slog.Error("failed to write report", "error", err)
		return 1
	}

	if opts.watch {
		return runWatchMode(ctx, a, out, cfgPath, targets)
	}

	if opts.checkOnly && len(failures) > 0 {
		return 1
	}
	return 0
}

// runWatchMode re-publishes the report after every change until interrupted.
// Config edits retune the coverage threshold for later runs.
func runWatchMode(ctx context.Context, a *app.App, out *publisher, cfgPath string, targets []string) int {
	a.SetUpdateHandler(func(u app.Update) {
		slog.Info("re-analyzed changed files", "changed", len(u.Changed), "files", u.Summary.Files, "coverage", u.Summary.CoveragePercentage)
		if _, err := out.publish(u.Results, u.Summary); err != nil {
			slog.Error("failed to write report", "error", err)
		}
	})

	if err := a.StartWatcher(ctx, targets); err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 1
	}
	defer a.StopWatcher()

	if cfgPath != "" {
		cw := config.NewWatcher(cfgPath, func(next *config.Config) {
			slog.Info("config reloaded", "path", cfgPath, "min_coverage", next.MinCoverage)
			out.setMinCoverage(next.MinCoverage)
		})
		if err := cw.Start(ctx); err != nil {
			slog.Warn("config watcher disabled", "path", cfgPath, "error", err)
		} else {
			defer cw.Stop()
		}
	}

	slog.Info("watching for changes", "paths", targets)
	<-ctx.Done()
	return 0
}

// loadConfig honors an explicit -config path. Otherwise the settings come
// from the project root of the first target, or the working directory.
func loadConfig(path, cwd string, targets []string) (*config.Config, string, error) {
	if strings.TrimSpace(path) != "" {
		resolved := config.ResolveRelative(cwd, path)
		cfg, err := config.Load(resolved)
		if err != nil {
			return nil, "", err
		}
		return cfg, resolved, nil
	}

	root := cwd
	if len(targets) > 0 {
		if detected, err := config.DetectProjectRoot(targets); err == nil {
			root = detected
		}
	}
	return config.Discover(root)
}

func applyModeOptions(opts *cliOptions, cfg *config.Config) error {
	if opts.style != "" {
		if _, err := docstring.ParseStyle(opts.style); err != nil {
			return err
		}
	}
	if opts.workers < 0 {
		return errors.New(errors.CodeValidationError, "-workers must be >= 0")
	}
	if opts.workers > 0 {
		cfg.Batch.Workers = opts.workers
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.output != "" {
		cfg.Output.File = opts.output
	}
	if opts.includeTests {
		cfg.IncludeTests = true
	}
	if opts.metricsAddr != "" {
		cfg.Observability.Enabled = true
		cfg.Observability.Address = opts.metricsAddr
	}
	if opts.inject != "" && opts.watch {
		return errors.New(errors.CodeValidationError, "-inject cannot be combined with -watch")
	}
	return nil
}

func validateOverride(opts cliOptions) *bool {
	if !opts.validate {
		return nil
	}
	v := true
	return &v
}

func absTargets(args []string, cwd string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, config.ResolveRelative(cwd, arg))
	}
	return out
}

func configBase(cfgPath, cwd string) string {
	if cfgPath == "" {
		return cwd
	}
	return filepath.Dir(cfgPath)
}

// startTelemetry wires OTLP tracing and the metrics/health endpoint when
// observability is enabled. The returned func flushes and stops both.
func startTelemetry(ctx context.Context, cfg *config.Config, a *app.App) (func(), error) {
	if !cfg.Observability.Enabled {
		return func() {}, nil
	}

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		Endpoint: cfg.Observability.OTLPEndpoint,
		Insecure: cfg.Observability.OTLPInsecure,
		Version:  version.Version,
	})
	if err != nil {
		return nil, err
	}

	server := NewObservabilityServer(cfg.Observability.Address, app.NewHealthService(a))
	if err := server.Start(ctx); err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}

	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Stop(stopCtx); err != nil {
			slog.Warn("observability server shutdown", "error", err)
		}
		if err := shutdownTracing(stopCtx); err != nil {
			slog.Warn("tracing shutdown", "error", err)
		}
	}, nil
}

// configureLogging sends logs to w, keeping stdout free for reports. One-shot
// runs only log warnings unless verbose.
func configureLogging(w io.Writer, verbose, watch bool) {
	logLevel := slog.LevelWarn
	switch {
	case verbose:
		logLevel = slog.LevelDebug
	case watch:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
