package app

import (
	"context"
	"docscan/internal/core/errors"
	"docscan/internal/core/ports"
	"docscan/internal/engine/compliance"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "store.py", storeSource),
		writeSource(t, dir, "broken.py", "class (:\n"),
		writeSource(t, dir, "documented.py", "\"\"\"Doc.\"\"\"\n\n\ndef f():\n    \"\"\"F.\"\"\"\n"),
	}
	stub := &stubChecker{violations: []compliance.Violation{{Code: "D103", Line: 5}}}
	a := newAnalyzer(t, AnalyzerOptions{Validate: true, Checker: stub})

	results, summary, err := RunBatch(context.Background(), a, paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}
	assert.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	assert.True(t, errors.IsCode(results[1].Err, errors.CodeParseError))
	assert.NoError(t, results[2].Err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 4+2, summary.Total)
	assert.Equal(t, 2+2, summary.WithDoc)
	assert.Equal(t, 2, summary.Missing)
	assert.InDelta(t, 4.0/6.0*100, summary.CoveragePercentage, 1e-9)
	assert.Equal(t, 2, summary.Violations)
	assert.Equal(t, 2, summary.FailingFiles)
	assert.Equal(t, 2, stub.calls)
}

func TestRunBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeSource(t, dir, "a.py", "x = 1\n")}
	a := newAnalyzer(t, AnalyzerOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := RunBatch(ctx, a, paths, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunBatch_Empty(t *testing.T) {
	a := newAnalyzer(t, AnalyzerOptions{})

	results, summary, err := RunBatch(context.Background(), a, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, summary.Files)
	assert.InDelta(t, 100.0, summary.CoveragePercentage, 1e-9)
}

func TestSummarize_SkipsFailedFiles(t *testing.T) {
	results := []ports.FileResult{
		{Path: "a.py", Report: ports.Report{Total: 3, WithDoc: 3, Compliance: compliance.VerdictPass}},
		{Path: "b.py", Err: errors.New(errors.CodeParseError, "bad")},
	}

	summary := Summarize("run-1", results)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.Total)
	assert.InDelta(t, 100.0, summary.CoveragePercentage, 1e-9)
	assert.Zero(t, summary.FailingFiles)
}
