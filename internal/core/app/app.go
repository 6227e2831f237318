package app

import (
	"context"
	"docscan/internal/core/config"
	"docscan/internal/core/ports"
	"docscan/internal/core/watcher"
	"docscan/internal/engine/checker"
	"docscan/internal/engine/docstring"
	"docscan/internal/shared/util"
	"sync"
)

// Update is emitted after every watch-triggered re-analysis.
type Update struct {
	Changed []string
	Results []ports.FileResult
	Summary ports.BatchSummary
}

// App wires configuration, the analyzer and the watcher together. It keeps
// the latest result per file so incremental runs can report the whole tree.
type App struct {
	Config       *config.Config
	Analyzer     *Analyzer
	Checker      ports.DocChecker
	IncludeTests bool

	activeWatcher *watcher.Watcher

	updateMu sync.RWMutex
	onUpdate func(Update)

	resultsMu sync.RWMutex
	results   map[string]ports.FileResult
}

// Options carries per-invocation overrides of the configuration.
type Options struct {
	// Style overrides cfg.DefaultStyle when non-empty.
	Style string
	// Validate overrides cfg.ValidationEnabled when non-nil.
	Validate *bool
	// Checker replaces the pydocstyle adapter built from cfg.Checker.
	Checker ports.DocChecker
}

func New(cfg *config.Config, opts Options) (*App, error) {
	styleName := cfg.DefaultStyle
	if opts.Style != "" {
		styleName = opts.Style
	}
	style, err := docstring.ParseStyle(styleName)
	if err != nil {
		return nil, err
	}

	validate := cfg.ValidationOn()
	if opts.Validate != nil {
		validate = *opts.Validate
	}

	chk := opts.Checker
	if chk == nil {
		chk = checker.NewPydocstyle(checker.Options{
			Executable: cfg.Checker.Executable,
			Args:       cfg.Checker.Args,
			Timeout:    cfg.Checker.Timeout,
			Limiter:    util.NewLimiter(cfg.Checker.Rate, cfg.Checker.Burst),
		})
	}

	analyzer, err := NewAnalyzer(AnalyzerOptions{
		Style:        style,
		Validate:     validate,
		Checker:      chk,
		CheckOptions: checkOptions(cfg, style),
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:       cfg,
		Analyzer:     analyzer,
		Checker:      chk,
		IncludeTests: cfg.IncludeTests,
		results:      make(map[string]ports.FileResult),
	}, nil
}

// checkOptions derives the checker rule set. An explicit convention or
// select list wins over the convention implied by the style.
func checkOptions(cfg *config.Config, style docstring.Style) ports.CheckOptions {
	opts := ports.CheckOptions{
		Select: append([]string(nil), cfg.Checker.Select...),
		Ignore: append([]string(nil), cfg.Checker.Ignore...),
	}
	if len(opts.Select) == 0 {
		opts.Convention = cfg.Checker.Convention
		if opts.Convention == "" {
			opts.Convention = checker.ConventionFor(string(style))
		}
	}
	return opts
}

func (a *App) SetUpdateHandler(fn func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = fn
}

func (a *App) emitUpdate(u Update) {
	a.updateMu.RLock()
	fn := a.onUpdate
	a.updateMu.RUnlock()
	if fn != nil {
		fn(u)
	}
}

// Analyze scans paths, analyzes every discovered file and records the
// results as the current state of the tree.
func (a *App) Analyze(ctx context.Context, paths []string) ([]ports.FileResult, ports.BatchSummary, error) {
	files, err := a.ScanDirectories(paths)
	if err != nil {
		return nil, ports.BatchSummary{}, err
	}

	results, summary, err := RunBatch(ctx, a.Analyzer, files, a.Config.Batch.Workers)
	if err != nil {
		return nil, ports.BatchSummary{}, err
	}

	a.resultsMu.Lock()
	a.results = make(map[string]ports.FileResult, len(results))
	for _, r := range results {
		a.results[r.Path] = r
	}
	a.resultsMu.Unlock()

	return results, summary, nil
}

// Results returns the latest result of every tracked file, sorted by path.
func (a *App) Results() []ports.FileResult {
	a.resultsMu.RLock()
	defer a.resultsMu.RUnlock()
	out := make([]ports.FileResult, 0, len(a.results))
	for _, path := range util.SortedStringKeys(a.results) {
		out = append(out, a.results[path])
	}
	return out
}
