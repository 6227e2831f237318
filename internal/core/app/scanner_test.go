package app

import (
	"docscan/internal/core/errors"
	"docscan/internal/engine/parser"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{
		"pkg/a.py",
		"pkg/b.py",
		"pkg/test_a.py",
		"pkg/gen_pb2.py",
		"pkg/migrations/0001_initial.py",
		"build/lib/a.py",
		"docs/readme.md",
	} {
		writeSource(t, root, name, "x = 1\n")
	}
	return root
}

func newParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.NewParser()
	require.NoError(t, err)
	return p
}

func TestScanPaths_Excludes(t *testing.T) {
	root := scanFixture(t)

	files, err := ScanPaths(newParser(t), []string{root}, ScanOptions{
		ExcludeDirs:  []string{"build"},
		ExcludeFiles: []string{"*_pb2.py", "pkg/migrations/*.py"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "pkg", "a.py"),
		filepath.Join(root, "pkg", "b.py"),
	}, files)
}

func TestScanPaths_IncludeTests(t *testing.T) {
	root := scanFixture(t)

	files, err := ScanPaths(newParser(t), []string{filepath.Join(root, "pkg")}, ScanOptions{
		ExcludeDirs:  []string{"migrations"},
		ExcludeFiles: []string{"*_pb2.py"},
		IncludeTests: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "pkg", "a.py"),
		filepath.Join(root, "pkg", "b.py"),
		filepath.Join(root, "pkg", "test_a.py"),
	}, files)
}

func TestScanPaths_ExplicitFilesAndDedup(t *testing.T) {
	root := scanFixture(t)
	testFile := filepath.Join(root, "pkg", "test_a.py")
	a := filepath.Join(root, "pkg", "a.py")

	files, err := ScanPaths(newParser(t), []string{testFile, a, filepath.Join(root, "pkg")}, ScanOptions{
		ExcludeDirs:  []string{"migrations"},
		ExcludeFiles: []string{"*_pb2.py"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{a, filepath.Join(root, "pkg", "b.py"), testFile}, files)
}

func TestScanPaths_Errors(t *testing.T) {
	root := scanFixture(t)
	p := newParser(t)

	_, err := ScanPaths(p, []string{filepath.Join(root, "missing")}, ScanOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	_, err = ScanPaths(p, []string{filepath.Join(root, "docs", "readme.md")}, ScanOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotSupported))

	_, err = ScanPaths(p, []string{root}, ScanOptions{ExcludeDirs: []string{"["}})
	require.Error(t, err)
}
