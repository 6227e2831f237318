package app

import (
	"docscan/internal/core/errors"
	"docscan/internal/core/ports"
	"docscan/internal/shared/util"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

type ScanOptions struct {
	ExcludeDirs  []string
	ExcludeFiles []string
	IncludeTests bool
}

func (a *App) ScanDirectories(paths []string) ([]string, error) {
	return ScanPaths(a.Analyzer.Parser(), paths, ScanOptions{
		ExcludeDirs:  a.Config.Exclude.Dirs,
		ExcludeFiles: a.Config.Exclude.Files,
		IncludeTests: a.IncludeTests,
	})
}

// ScanPaths expands roots into the sorted, de-duplicated list of source files
// to analyze. Patterns without a separator match base names; patterns with
// one match the path relative to the root being walked. Files named directly
// as roots skip the exclude and test filters.
func ScanPaths(p ports.EntityParser, roots []string, opts ScanOptions) ([]string, error) {
	dirGlobs, err := compileGlobs(opts.ExcludeDirs, "exclude dir")
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(opts.ExcludeFiles, "exclude file")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "scan root not found"), errors.CtxPath, root)
		}
		if !info.IsDir() {
			if !p.IsSupportedPath(root) {
				return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "not a Python source file"), errors.CtxPath, root)
			}
			add(filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && matchesAny(dirGlobs, root, path) {
					return filepath.SkipDir
				}
				return nil
			}

			if !p.IsSupportedPath(path) {
				return nil
			}
			if !opts.IncludeTests && p.IsTestFile(path) {
				return nil
			}
			if matchesAny(fileGlobs, root, path) {
				return nil
			}

			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

type pattern struct {
	glob     glob.Glob
	relative bool
}

func compileGlobs(patterns []string, label string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, raw := range patterns {
		relative := util.ContainsPathSeparator(raw)
		source := raw
		if relative {
			source = util.NormalizePatternPath(raw)
		}
		g, err := glob.Compile(source, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", label, raw, err)
		}
		out = append(out, pattern{glob: g, relative: relative})
	}
	return out, nil
}

func matchesAny(patterns []pattern, root, path string) bool {
	base := filepath.Base(path)
	for _, p := range patterns {
		if p.relative {
			if p.glob.Match(util.RelativePattern(root, path)) {
				return true
			}
			continue
		}
		if p.glob.Match(base) {
			return true
		}
	}
	return false
}
