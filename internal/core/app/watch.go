package app

import (
	"context"
	"docscan/internal/core/ports"
	"docscan/internal/core/watcher"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// StartWatcher re-analyzes changed Python files under paths until ctx is
// done. Updates go to the handler set with SetUpdateHandler.
func (a *App) StartWatcher(ctx context.Context, paths []string) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(changed []string) { a.HandleChanges(ctx, changed) },
	)
	if err != nil {
		return err
	}

	p := a.Analyzer.Parser()
	w.SetFileFilter(func(path string) bool {
		if !p.IsSupportedPath(path) {
			return false
		}
		return a.IncludeTests || !p.IsTestFile(path)
	})

	if err := w.Watch(paths); err != nil {
		_ = w.Close()
		return err
	}
	a.updateMu.Lock()
	a.activeWatcher = w
	a.updateMu.Unlock()

	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	return nil
}

func (a *App) StopWatcher() error {
	a.updateMu.RLock()
	w := a.activeWatcher
	a.updateMu.RUnlock()
	if w == nil {
		return nil
	}
	return w.Close()
}

func (a *App) Watching() bool {
	a.updateMu.RLock()
	defer a.updateMu.RUnlock()
	return a.activeWatcher != nil
}

// HandleChanges re-runs the pipeline for the changed files, forgets deleted
// ones and emits the refreshed state of the whole tree.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	slog.Info("detected changes", "count", len(paths))
	start := time.Now()

	var existing []string
	a.resultsMu.Lock()
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			delete(a.results, path)
			continue
		}
		existing = append(existing, path)
	}
	a.resultsMu.Unlock()

	if len(existing) > 0 {
		results, _, err := RunBatch(ctx, a.Analyzer, existing, a.Config.Batch.Workers)
		if err != nil {
			slog.Warn("re-analysis interrupted", "error", err)
			return
		}
		a.resultsMu.Lock()
		for _, r := range results {
			a.results[r.Path] = r
		}
		a.resultsMu.Unlock()
	}

	all := a.Results()
	summary := Summarize(uuid.NewString(), all)
	slog.Info("re-analysis complete", "files", len(existing), "tracked", len(all), "duration", time.Since(start))

	changed := append([]string(nil), paths...)
	a.emitUpdate(Update{Changed: changed, Results: all, Summary: summary})
}

// Snapshot summarizes the current state without re-running anything.
func (a *App) Snapshot() ([]ports.FileResult, ports.BatchSummary) {
	all := a.Results()
	return all, Summarize(uuid.NewString(), all)
}
