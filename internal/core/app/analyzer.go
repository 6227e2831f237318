package app

import (
	"context"
	"docscan/internal/core/errors"
	"docscan/internal/core/ports"
	"docscan/internal/engine/compliance"
	"docscan/internal/engine/coverage"
	"docscan/internal/engine/docstring"
	"docscan/internal/engine/parser"
	"docscan/internal/shared/observability"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type AnalyzerOptions struct {
	Style    docstring.Style
	Validate bool
	// Checker is required when Validate is set.
	Checker      ports.DocChecker
	CheckOptions ports.CheckOptions
	// Parser defaults to the tree-sitter Python parser.
	Parser ports.EntityParser
}

// Analyzer runs the single-file pipeline: extract, synthesize, aggregate and
// reconcile. Runs share nothing but the parser pool, so one Analyzer may
// serve concurrent files.
type Analyzer struct {
	parser    ports.EntityParser
	renderer  docstring.Renderer
	validate  bool
	checker   ports.DocChecker
	checkOpts ports.CheckOptions
}

func NewAnalyzer(opts AnalyzerOptions) (*Analyzer, error) {
	renderer, err := docstring.New(opts.Style)
	if err != nil {
		return nil, err
	}
	if opts.Validate && opts.Checker == nil {
		return nil, errors.New(errors.CodeValidationError, "validation requested without a checker")
	}

	p := opts.Parser
	if p == nil {
		pp, err := parser.NewParser()
		if err != nil {
			return nil, err
		}
		p = pp
	}

	return &Analyzer{
		parser:    p,
		renderer:  renderer,
		validate:  opts.Validate,
		checker:   opts.Checker,
		checkOpts: opts.CheckOptions,
	}, nil
}

func (a *Analyzer) Style() docstring.Style { return a.renderer.Style() }

func (a *Analyzer) Validates() bool { return a.validate }

func (a *Analyzer) Parser() ports.EntityParser { return a.parser }

// Run analyzes the file at path. Parse failures abort the run; checker
// failures degrade to a passing verdict with a diagnostic.
func (a *Analyzer) Run(ctx context.Context, path string) ([]ports.GeneratedDoc, ports.Report, error) {
	ctx, span := observability.Tracer.Start(ctx, "analyzer.run",
		trace.WithAttributes(attribute.String("path", path), attribute.String("style", string(a.Style()))))
	defer span.End()

	entities, err := a.parser.ExtractFile(path)
	if err != nil {
		return nil, ports.Report{}, a.fail(span, err)
	}

	docs, report := a.analyze(ctx, path, entities)
	report.File = path
	a.finish(span, report)
	return docs, report, nil
}

// RunSource analyzes in-memory source text. When validation is on the text
// is written to a temporary file for the checker.
func (a *Analyzer) RunSource(ctx context.Context, source []byte) ([]ports.GeneratedDoc, ports.Report, error) {
	ctx, span := observability.Tracer.Start(ctx, "analyzer.run_source",
		trace.WithAttributes(attribute.Int("bytes", len(source)), attribute.String("style", string(a.Style()))))
	defer span.End()

	entities, err := a.parser.Extract(source)
	if err != nil {
		return nil, ports.Report{}, a.fail(span, err)
	}

	checkPath := ""
	if a.validate {
		dir, err := os.MkdirTemp("", "docscan-*")
		if err != nil {
			return nil, ports.Report{}, a.fail(span, errors.Wrap(err, errors.CodeInternal, "create temp dir"))
		}
		defer os.RemoveAll(dir)
		checkPath = filepath.Join(dir, "source.py")
		if err := os.WriteFile(checkPath, source, 0o600); err != nil {
			return nil, ports.Report{}, a.fail(span, errors.Wrap(err, errors.CodeInternal, "write temp source"))
		}
	}

	docs, report := a.analyze(ctx, checkPath, entities)
	a.finish(span, report)
	return docs, report, nil
}

func (a *Analyzer) analyze(ctx context.Context, path string, entities []parser.Entity) ([]ports.GeneratedDoc, ports.Report) {
	docs := a.generate(entities)
	summary := coverage.Aggregate(entities)

	report := ports.Report{
		Style:               string(a.Style()),
		Validated:           a.validate,
		TotalFunctions:      summary.Functions,
		TotalClasses:        summary.Classes,
		DocumentedFunctions: summary.DocumentedFunctions,
		DocumentedClasses:   summary.DocumentedClasses,
		HasModuleDoc:        summary.HasModuleDoc,
		Total:               summary.Total,
		WithDoc:             summary.Documented,
		Missing:             summary.Missing,
		CoveragePercentage:  summary.Percentage,
	}

	verdict := compliance.Pass()
	if a.validate {
		v, diagnostic := a.check(ctx, path, entities, summary.Total)
		verdict = v
		if diagnostic != "" {
			report.Diagnostics = append(report.Diagnostics, diagnostic)
		}
	}

	report.Compliance = verdict.Verdict
	report.CompliancePercentage = verdict.Percentage
	report.Violations = verdict.Violations
	report.AffectedEntities = verdict.Affected
	report.UnattributedViolations = verdict.Unattributed
	return docs, report
}

func (a *Analyzer) generate(entities []parser.Entity) []ports.GeneratedDoc {
	docs := make([]ports.GeneratedDoc, 0)
	for _, entity := range entities {
		observability.EntitiesTotal.WithLabelValues(entity.Kind.String(), strconv.FormatBool(entity.HasDocstring)).Inc()
		if entity.HasDocstring {
			continue
		}
		docs = append(docs, ports.GeneratedDoc{
			Name:      entity.Name,
			Kind:      entity.Kind.String(),
			Docstring: a.renderer.Render(entity),
			Line:      entity.StartLine,
		})
	}
	observability.DocsGeneratedTotal.WithLabelValues(string(a.Style())).Add(float64(len(docs)))
	return docs
}

func (a *Analyzer) check(ctx context.Context, path string, entities []parser.Entity, total int) (compliance.Summary, string) {
	ctx, span := observability.Tracer.Start(ctx, "checker.check",
		trace.WithAttributes(attribute.String("checker", a.checker.Name())))
	defer span.End()

	start := time.Now()
	violations, err := a.checker.Check(ctx, path, a.checkOpts)
	observability.AnalysisDuration.WithLabelValues("check").Observe(time.Since(start).Seconds())
	if err != nil {
		observability.CheckerRunsTotal.WithLabelValues(a.checker.Name(), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("convention check failed, reporting compliance as passed", "checker", a.checker.Name(), "path", path, "error", err)
		return compliance.Pass(), fmt.Sprintf("%s could not complete: %v", a.checker.Name(), err)
	}
	observability.CheckerRunsTotal.WithLabelValues(a.checker.Name(), "ok").Inc()

	summary := compliance.Reconcile(entities, violations, total)
	observability.ViolationsTotal.Add(float64(len(summary.Violations)))
	observability.UnattributedViolationsTotal.Add(float64(summary.Unattributed))
	if summary.Unattributed > 0 {
		slog.Debug("violations outside every entity span", "path", path, "count", summary.Unattributed)
	}
	return summary, ""
}

func (a *Analyzer) fail(span trace.Span, err error) error {
	observability.FilesAnalyzedTotal.WithLabelValues("error").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (a *Analyzer) finish(span trace.Span, report ports.Report) {
	observability.FilesAnalyzedTotal.WithLabelValues("ok").Inc()
	span.SetAttributes(
		attribute.Float64("coverage", report.CoveragePercentage),
		attribute.String("compliance", string(report.Compliance)),
		attribute.Int("violations", len(report.Violations)),
	)
}
