package app

import (
	"context"
	"docscan/internal/core/errors"
	"docscan/internal/core/ports"
	"docscan/internal/engine/compliance"
	"docscan/internal/engine/docstring"
	"docscan/internal/shared/observability"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeSource = `"""Storage helpers."""
import os


def load(path: str, mode):
    if not path:
        raise ValueError("empty")
    return open(path, mode)


class Store:
    name = "store"

    def get(self, key):
        """Get one key."""
        return key
`

type stubChecker struct {
	mu         sync.Mutex
	violations []compliance.Violation
	err        error
	calls      int
	paths      []string
	opts       ports.CheckOptions
	sawSource  string
}

func (s *stubChecker) Name() string { return "stub" }

func (s *stubChecker) Check(_ context.Context, path string, opts ports.CheckOptions) ([]compliance.Violation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.paths = append(s.paths, path)
	s.opts = opts
	if data, err := os.ReadFile(path); err == nil {
		s.sawSource = string(data)
	}
	if s.err != nil {
		return nil, s.err
	}
	return append([]compliance.Violation(nil), s.violations...), nil
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newAnalyzer(t *testing.T, opts AnalyzerOptions) *Analyzer {
	t.Helper()
	if opts.Style == "" {
		opts.Style = docstring.StyleGoogle
	}
	a, err := NewAnalyzer(opts)
	require.NoError(t, err)
	return a
}

func TestAnalyzer_RunWithoutValidation(t *testing.T) {
	path := writeSource(t, t.TempDir(), "store.py", storeSource)
	a := newAnalyzer(t, AnalyzerOptions{})

	docs, report, err := a.Run(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "load", docs[0].Name)
	assert.Equal(t, "function", docs[0].Kind)
	assert.Equal(t, 5, docs[0].Line)
	assert.Contains(t, docs[0].Docstring, "Args:\n    path (str): Description for path.\n    mode: Description for mode.\n")
	assert.Contains(t, docs[0].Docstring, "\nReturns:\n")
	assert.Contains(t, docs[0].Docstring, "\nRaises:\n    ValueError: Description for ValueError.\n")
	assert.Equal(t, "Store", docs[1].Name)
	assert.Equal(t, "class", docs[1].Kind)
	assert.Contains(t, docs[1].Docstring, "Attributes:\n    name: Description.\n")

	assert.Equal(t, path, report.File)
	assert.Equal(t, "google", report.Style)
	assert.False(t, report.Validated)
	assert.Equal(t, 2, report.TotalFunctions)
	assert.Equal(t, 1, report.TotalClasses)
	assert.Equal(t, 1, report.DocumentedFunctions)
	assert.Equal(t, 0, report.DocumentedClasses)
	assert.True(t, report.HasModuleDoc)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.WithDoc)
	assert.Equal(t, 2, report.Missing)
	assert.InDelta(t, 50.0, report.CoveragePercentage, 1e-9)
	assert.Equal(t, compliance.VerdictPass, report.Compliance)
	assert.InDelta(t, 100.0, report.CompliancePercentage, 1e-9)
	assert.Empty(t, report.Violations)
	assert.NotNil(t, report.Violations)
}

func TestAnalyzer_RunAttributesViolations(t *testing.T) {
	path := writeSource(t, t.TempDir(), "store.py", storeSource)
	stub := &stubChecker{violations: []compliance.Violation{
		{Code: "D103", Message: "D103: Missing docstring in public function", Line: 5},
		{Code: "D101", Message: "D101: Missing docstring in public class", Line: 11},
		{Code: "D401", Message: "D401: First line should be in imperative mood", Line: 15},
		{Code: "D205", Message: "D205: 1 blank line required", Line: 400},
	}}
	a := newAnalyzer(t, AnalyzerOptions{
		Validate:     true,
		Checker:      stub,
		CheckOptions: ports.CheckOptions{Convention: "google"},
	})

	docs, report, err := a.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, []string{path}, stub.paths)
	assert.Equal(t, "google", stub.opts.Convention)

	assert.True(t, report.Validated)
	assert.Equal(t, compliance.VerdictFail, report.Compliance)
	assert.Equal(t, []string{"Store", "get", "load"}, report.AffectedEntities)
	assert.InDelta(t, 25.0, report.CompliancePercentage, 1e-9)
	assert.Equal(t, 1, report.UnattributedViolations)
	assert.Len(t, report.Violations, 4)
	assert.Empty(t, report.Diagnostics)
}

func TestAnalyzer_CheckerFailureDegradesToPass(t *testing.T) {
	path := writeSource(t, t.TempDir(), "store.py", storeSource)
	stub := &stubChecker{err: errors.New(errors.CodeCheckerFailure, "pydocstyle crashed")}
	a := newAnalyzer(t, AnalyzerOptions{Validate: true, Checker: stub})

	docs, report, err := a.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.WithDoc)
	assert.InDelta(t, 50.0, report.CoveragePercentage, 1e-9)
	assert.Equal(t, compliance.VerdictPass, report.Compliance)
	assert.InDelta(t, 100.0, report.CompliancePercentage, 1e-9)
	assert.Empty(t, report.Violations)
	require.Len(t, report.Diagnostics, 1)
	assert.Contains(t, report.Diagnostics[0], "stub could not complete")
	assert.Contains(t, report.Diagnostics[0], "pydocstyle crashed")
}

func TestAnalyzer_ParseErrorAbortsRun(t *testing.T) {
	path := writeSource(t, t.TempDir(), "broken.py", "def broken(:\n    pass\n")
	stub := &stubChecker{}
	a := newAnalyzer(t, AnalyzerOptions{Validate: true, Checker: stub})

	docs, report, err := a.Run(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeParseError))
	assert.Nil(t, docs)
	assert.Equal(t, ports.Report{}, report)
	assert.Zero(t, stub.calls)
}

func TestAnalyzer_MissingFile(t *testing.T) {
	a := newAnalyzer(t, AnalyzerOptions{})
	_, _, err := a.Run(context.Background(), filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestAnalyzer_EmptySource(t *testing.T) {
	a := newAnalyzer(t, AnalyzerOptions{})

	docs, report, err := a.RunSource(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "Module", docs[0].Name)
	assert.Equal(t, "\"\"\"Module module.\n\n\"\"\"", docs[0].Docstring)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 0, report.WithDoc)
	assert.InDelta(t, 0.0, report.CoveragePercentage, 1e-9)
	assert.Empty(t, report.File)
}

func TestAnalyzer_RunSourceValidatesTemporaryCopy(t *testing.T) {
	stub := &stubChecker{violations: []compliance.Violation{{Code: "D100", Line: 1}}}
	a := newAnalyzer(t, AnalyzerOptions{Style: docstring.StyleReST, Validate: true, Checker: stub})

	_, report, err := a.RunSource(context.Background(), []byte("x = 1\n"))
	require.NoError(t, err)

	require.Len(t, stub.paths, 1)
	assert.True(t, strings.HasSuffix(stub.paths[0], "source.py"))
	assert.Equal(t, "x = 1\n", stub.sawSource)
	_, statErr := os.Stat(stub.paths[0])
	assert.True(t, os.IsNotExist(statErr), "temporary copy should be removed")

	assert.Equal(t, "rest", report.Style)
	assert.Equal(t, []string{"Module"}, report.AffectedEntities)
	assert.InDelta(t, 0.0, report.CompliancePercentage, 1e-9)
}

func TestNewAnalyzer_Errors(t *testing.T) {
	_, err := NewAnalyzer(AnalyzerOptions{Style: "epytext"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))

	_, err = NewAnalyzer(AnalyzerOptions{Style: docstring.StyleGoogle, Validate: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func parsingSamples(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, observability.ParsingDuration.WithLabelValues("python").(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestAnalyzer_ObservesParsingOncePerRun(t *testing.T) {
	path := writeSource(t, t.TempDir(), "store.py", storeSource)
	a := newAnalyzer(t, AnalyzerOptions{})

	before := parsingSamples(t)
	_, _, err := a.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, before+1, parsingSamples(t))

	before = parsingSamples(t)
	_, _, err = a.RunSource(context.Background(), []byte("x = 1\n"))
	require.NoError(t, err)
	assert.Equal(t, before+1, parsingSamples(t))
}
