package app

import (
	"context"
	"docscan/internal/core/config"
	"docscan/internal/core/errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestNew_AppliesOverrides(t *testing.T) {
	cfg := config.Default()
	stub := &stubChecker{}

	a, err := New(cfg, Options{Style: "NumPy", Validate: boolPtr(true), Checker: stub})
	require.NoError(t, err)

	assert.Equal(t, "numpy", string(a.Analyzer.Style()))
	assert.True(t, a.Analyzer.Validates())
	assert.Equal(t, "numpy", a.Analyzer.checkOpts.Convention)
}

func TestNew_DefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultStyle = "rest"
	cfg.ValidationEnabled = boolPtr(false)

	a, err := New(cfg, Options{})
	require.NoError(t, err)

	assert.Equal(t, "rest", string(a.Analyzer.Style()))
	assert.False(t, a.Analyzer.Validates())
	assert.Equal(t, "pydocstyle", a.Checker.Name())
	assert.Empty(t, a.Analyzer.checkOpts.Convention)
}

func TestNew_RejectsUnknownStyle(t *testing.T) {
	_, err := New(config.Default(), Options{Style: "javadoc"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestCheckOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Checker.Ignore = []string{"D203"}
	assert.Equal(t, "google", checkOptions(cfg, "google").Convention)
	assert.Equal(t, []string{"D203"}, checkOptions(cfg, "google").Ignore)

	cfg.Checker.Convention = "pep257"
	assert.Equal(t, "pep257", checkOptions(cfg, "google").Convention)

	cfg.Checker.Convention = ""
	cfg.Checker.Select = []string{"D1"}
	opts := checkOptions(cfg, "numpy")
	assert.Empty(t, opts.Convention)
	assert.Equal(t, []string{"D1"}, opts.Select)
}

func TestApp_AnalyzeAndHandleChanges(t *testing.T) {
	root := t.TempDir()
	store := writeSource(t, root, "pkg/store.py", storeSource)
	other := writeSource(t, root, "pkg/other.py", "def f():\n    pass\n")
	writeSource(t, root, "pkg/test_store.py", "def test_x():\n    pass\n")

	cfg := config.Default()
	a, err := New(cfg, Options{Validate: boolPtr(false)})
	require.NoError(t, err)

	results, summary, err := a.Analyze(context.Background(), []string{root})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, other, results[0].Path)
	assert.Equal(t, store, results[1].Path)
	assert.Equal(t, 2, summary.Files)

	updates := make(chan Update, 1)
	a.SetUpdateHandler(func(u Update) { updates <- u })

	require.NoError(t, os.WriteFile(other, []byte("def f():\n    \"\"\"F.\"\"\"\n"), 0o644))
	require.NoError(t, os.Remove(store))
	a.HandleChanges(context.Background(), []string{other, store})

	select {
	case u := <-updates:
		assert.Equal(t, []string{other, store}, u.Changed)
		require.Len(t, u.Results, 1)
		assert.Equal(t, other, u.Results[0].Path)
		assert.Equal(t, 1, u.Results[0].Report.WithDoc)
		assert.Equal(t, 1, u.Summary.Files)
	default:
		t.Fatal("expected an update")
	}

	assert.Len(t, a.Results(), 1)
}

func TestApp_StartWatcher(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "mod.py", "x = 1\n")

	cfg := config.Default()
	cfg.Watch.Debounce = 50 * time.Millisecond
	a, err := New(cfg, Options{Validate: boolPtr(false)})
	require.NoError(t, err)

	updates := make(chan Update, 4)
	a.SetUpdateHandler(func(u Update) { updates <- u })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.StartWatcher(ctx, []string{root}))
	assert.True(t, a.Watching())
	defer a.StopWatcher()

	target := filepath.Join(root, "new_module.py")
	require.NoError(t, os.WriteFile(target, []byte("def g():\n    pass\n"), 0o644))

	timeout := time.After(3 * time.Second)
	for {
		select {
		case u := <-updates:
			for _, r := range u.Results {
				if r.Path == target && r.Err == nil && r.Report.Missing == 2 {
					return
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for watch update")
		}
	}
}

type probingChecker struct {
	stubChecker
	err error
}

func (p *probingChecker) Available() error { return p.err }

func TestHealthService(t *testing.T) {
	cfg := config.Default()

	a, err := New(cfg, Options{Validate: boolPtr(false)})
	require.NoError(t, err)
	status := NewHealthService(a).Check(context.Background())
	assert.Equal(t, "up", status.Status)
	assert.Equal(t, "disabled", status.Components["checker"])
	assert.Contains(t, status.Components["analyzer"], "google")
	assert.Equal(t, "0 files, 100.0% coverage, 0 failed", status.Components["results"])

	a, err = New(cfg, Options{Validate: boolPtr(true), Checker: &probingChecker{}})
	require.NoError(t, err)
	status = NewHealthService(a).Check(context.Background())
	assert.Equal(t, "up", status.Status)
	assert.Equal(t, "ok (stub)", status.Components["checker"])

	a, err = New(cfg, Options{Validate: boolPtr(true), Checker: &probingChecker{err: errors.New(errors.CodeCheckerUnavailable, "missing")}})
	require.NoError(t, err)
	status = NewHealthService(a).Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Contains(t, status.Components["checker"], "unavailable")
}
