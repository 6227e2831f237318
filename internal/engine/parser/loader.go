package parser

import (
	"docscan/internal/core/errors"
	"docscan/internal/shared/util"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// LanguageSpec describes a grammar the extractor can run against.
type LanguageSpec struct {
	Name             string
	Extensions       []string
	TestFileSuffixes []string
	load             func() *sitter.Language
}

var registry = map[string]LanguageSpec{
	"python": {
		Name:             "python",
		Extensions:       []string{".py", ".pyi"},
		TestFileSuffixes: []string{"_test.py"},
		load: func() *sitter.Language {
			return sitter.NewLanguage(tree_sitter_python.Language())
		},
	},
}

var (
	loadedMu sync.Mutex
	loaded   = make(map[string]*sitter.Language)
)

// LoadLanguage returns the tree-sitter grammar registered under name. Grammars
// are loaded once and shared.
func LoadLanguage(name string) (*sitter.Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	spec, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported language: %s", name))
	}

	loadedMu.Lock()
	defer loadedMu.Unlock()
	if lang, ok := loaded[name]; ok {
		return lang, nil
	}
	lang := spec.load()
	if lang == nil {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("grammar not loaded: %s", name))
	}
	loaded[name] = lang
	return lang, nil
}

// LanguageForPath maps a file path to a registered language by extension.
func LanguageForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for _, name := range util.SortedStringKeys(registry) {
		for _, candidate := range registry[name].Extensions {
			if candidate == ext {
				return name
			}
		}
	}
	return ""
}

// SupportedExtensions lists every extension handled by a registered grammar.
func SupportedExtensions() []string {
	var out []string
	for _, name := range util.SortedStringKeys(registry) {
		out = append(out, registry[name].Extensions...)
	}
	return out
}

// TestFileSuffixes lists the filename suffixes that mark test modules.
func TestFileSuffixes() []string {
	var out []string
	for _, name := range util.SortedStringKeys(registry) {
		out = append(out, registry[name].TestFileSuffixes...)
	}
	return out
}
