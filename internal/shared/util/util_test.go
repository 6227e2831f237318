package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizePatternPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Dot", input: ".", expected: ""},
		{name: "Trim", input: "  ./pkg/models.py  ", expected: "pkg/models.py"},
		{name: "Relative", input: "pkg/../tests", expected: "tests"},
		{name: "Backslashes", input: `pkg\sub\mod.py`, expected: "pkg/sub/mod.py"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizePatternPath(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestContainsPathSeparator(t *testing.T) {
	t.Parallel()

	if !ContainsPathSeparator("tests/fixtures") || !ContainsPathSeparator(`tests\fixtures`) {
		t.Fatal("expected separators to be detected")
	}
	if ContainsPathSeparator("conftest.py") {
		t.Fatal("bare file name has no separator")
	}
}

func TestRelativePattern(t *testing.T) {
	t.Parallel()

	root := filepath.Join("repo", "src")
	if got := RelativePattern(root, filepath.Join(root, "pkg", "mod.py")); got != "pkg/mod.py" {
		t.Fatalf("expected pkg/mod.py, got %q", got)
	}
	if got := RelativePattern(root, filepath.Join("elsewhere", "mod.py")); got != "elsewhere/mod.py" {
		t.Fatalf("expected elsewhere/mod.py, got %q", got)
	}
}

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	keys := SortedStringKeys(map[string]int{"b": 2, "a": 1, "c": 3})
	expected := []string{"a", "b", "c"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Fatalf("expected %q at %d, got %q", key, i, keys[i])
		}
	}
}

func TestWriteFileWithDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reports", "nested", "report.json")
	if err := WriteFileWithDirs(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "{}" {
		t.Fatalf("expected %q, got %q", "{}", string(got))
	}
}
