package parser

import (
	"docscan/internal/core/errors"
	"docscan/internal/shared/observability"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Parser turns Python source into the flat entity list used by the rest of
// the pipeline. It is safe for concurrent use.
type Parser struct {
	pool      *ParserPool
	extractor *PythonExtractor
}

func NewParser() (*Parser, error) {
	lang, err := LoadLanguage("python")
	if err != nil {
		return nil, err
	}
	return &Parser{
		pool:      NewParserPool(lang),
		extractor: &PythonExtractor{},
	}, nil
}

// Extract parses source and returns its entities. Malformed input fails with
// a CodeParseError domain error and no entities.
func (p *Parser) Extract(source []byte) ([]Entity, error) {
	start := time.Now()
	defer func() {
		observability.ParsingDuration.WithLabelValues("python").Observe(time.Since(start).Seconds())
	}()

	tree := p.pool.Parse(source)
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		de := &errors.DomainError{
			Code:    errors.CodeParseError,
			Message: fmt.Sprintf("invalid syntax near line %d", line),
		}
		return nil, de.WithContext(errors.CtxLine, line)
	}
	if stmt := firstLegacyStatement(root); stmt != nil {
		line := startLine(stmt)
		de := &errors.DomainError{
			Code:    errors.CodeParseError,
			Message: fmt.Sprintf("invalid syntax near line %d: Python 2 %s statement", line, legacyStatementKinds[stmt.Kind()]),
		}
		return nil, de.WithContext(errors.CtxLine, line)
	}

	return p.extractor.Extract(root, source), nil
}

// ExtractFile reads and extracts a single file.
func (p *Parser) ExtractFile(path string) ([]Entity, error) {
	if !p.IsSupportedPath(path) {
		return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "unsupported file type"), errors.CtxPath, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "source file not found"), errors.CtxPath, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	entities, err := p.Extract(content)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return entities, nil
}

func (p *Parser) IsSupportedPath(path string) bool {
	return LanguageForPath(path) != ""
}

func (p *Parser) IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range TestFileSuffixes() {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return strings.HasPrefix(base, "test_") && LanguageForPath(base) == "python"
}

func (p *Parser) SupportedExtensions() []string {
	return SupportedExtensions()
}
