package app

import (
	"context"
	"docscan/internal/core/ports"
	"docscan/internal/engine/compliance"
	"docscan/internal/engine/coverage"
	"docscan/internal/shared/observability"
	"docscan/internal/shared/util"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunBatch analyzes every path with an independent pipeline run, at most
// workers at a time. A file that fails to analyze is reported through its
// FileResult; only cancellation aborts the batch. Results keep the order of
// paths.
func RunBatch(ctx context.Context, analyzer *Analyzer, paths []string, workers int) ([]ports.FileResult, ports.BatchSummary, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	runID := uuid.NewString()
	start := time.Now()

	ctx, span := observability.Tracer.Start(ctx, "batch.run")
	defer span.End()

	results := make([]ports.FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs, report, err := analyzer.Run(gctx, path)
			if err != nil {
				slog.Warn("failed to analyze file", "path", path, "error", err)
				results[i] = ports.FileResult{Path: path, Err: err}
				return nil
			}
			results[i] = ports.FileResult{Path: path, Docs: docs, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ports.BatchSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, ports.BatchSummary{}, err
	}

	summary := Summarize(runID, results)
	observability.BatchCoverage.Set(summary.CoveragePercentage)
	observability.AnalysisDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())
	slog.Info("batch complete",
		"run_id", runID,
		"files", summary.Files,
		"failed", summary.Failed,
		"coverage", summary.CoveragePercentage,
		"violations", summary.Violations,
		"duration", time.Since(start),
		"heap_mb", util.HeapAllocMB(),
	)
	return results, summary, nil
}

// Summarize totals per-file results. Failed files count in Files and Failed
// only.
func Summarize(runID string, results []ports.FileResult) ports.BatchSummary {
	summary := ports.BatchSummary{RunID: runID, Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Total += r.Report.Total
		summary.WithDoc += r.Report.WithDoc
		summary.Missing += r.Report.Missing
		summary.Violations += len(r.Report.Violations)
		if r.Report.Compliance == compliance.VerdictFail {
			summary.FailingFiles++
		}
	}
	summary.CoveragePercentage = coverage.Percentage(summary.WithDoc, summary.Total)
	return summary
}
