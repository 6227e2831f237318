package formats

import (
	"docscan/internal/core/ports"
	"docscan/internal/engine/compliance"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var rule = strings.Repeat("=", 40)

type TextOptions struct {
	// CheckOnly hides the generated docstrings, as the CI gate does.
	CheckOnly bool
	NoColor   bool
}

type textStyles struct {
	title   lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	section lipgloss.Style
	muted   lipgloss.Style
	plain   bool
}

func newTextStyles(w io.Writer, noColor bool) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title:   r.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true),
		pass:    r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true),
		section: r.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true),
		plain:   noColor,
	}
}

func (s textStyles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

func (s textStyles) verdict(v compliance.Verdict) string {
	if v == compliance.VerdictFail {
		return s.render(s.fail, string(v))
	}
	return s.render(s.pass, string(v))
}

// WriteText prints one results block per file followed by the gate outcome.
// An undocumented module gets its own [Module: Module] block with a
// synthesized module docstring, unlike the bare entry the Python tool printed.
func WriteText(w io.Writer, doc Document, opts TextOptions) error {
	st := newTextStyles(w, opts.NoColor)
	var b strings.Builder

	for _, result := range doc.Results {
		writeTextResult(&b, st, result, doc.MinCoverage, opts)
	}
	if len(doc.Results) > 1 {
		writeTextBatch(&b, st, doc.Summary)
	}

	for _, failure := range doc.Failures {
		b.WriteString(st.render(st.fail, "ERROR: "+failure) + "\n")
	}
	switch {
	case doc.Passed():
		b.WriteString("Status: " + st.render(st.pass, "PASSED") + "\n")
	case !opts.CheckOnly:
		b.WriteString("Status: " + st.render(st.fail, "FAILED") + " (Commit would be blocked in pre-commit hook)\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTextResult(b *strings.Builder, st textStyles, result ports.FileResult, minCoverage float64, opts TextOptions) {
	b.WriteString("\n" + rule + "\n")
	b.WriteString(st.render(st.title, "DOCSTRING TOOL RESULTS FOR: "+result.Path) + "\n")
	b.WriteString(rule + "\n")

	if result.Err != nil {
		b.WriteString("\n" + st.render(st.fail, "Analysis failed: "+result.Err.Error()) + "\n")
		b.WriteString("\n" + rule + "\n")
		return
	}
	report := result.Report

	if !opts.CheckOnly {
		b.WriteString("\n" + st.render(st.section, "--- Generated Docstrings ---") + "\n")
		if len(result.Docs) == 0 {
			b.WriteString("Everything is already documented!\n")
		}
		for _, d := range result.Docs {
			fmt.Fprintf(b, "\n[%s: %s]\n", capitalize(d.Kind), d.Name)
			b.WriteString(d.Docstring + "\n")
		}
	}

	b.WriteString("\n" + st.render(st.section, "--- Docstring Coverage & Compliance Report ---") + "\n")
	fmt.Fprintf(b, "Total Functions          : %d\n", report.TotalFunctions)
	fmt.Fprintf(b, "Total Classes            : %d\n", report.TotalClasses)
	fmt.Fprintf(b, "Documented (Total)       : %d / %d\n", report.WithDoc, report.Total)
	fmt.Fprintf(b, "Coverage Percentage      : %.2f%% (Threshold: %s%%)\n", report.CoveragePercentage, Threshold(minCoverage))
	fmt.Fprintf(b, "PEP-257 Compliance       : %s\n", st.verdict(report.Compliance))
	fmt.Fprintf(b, "Compliance Percentage    : %.2f%%\n", report.CompliancePercentage)
	fmt.Fprintf(b, "Total Violations         : %d\n", len(report.Violations))

	if report.Validated && len(report.Violations) > 0 {
		b.WriteString("\n" + st.render(st.section, "--- Validation Errors (pydocstyle) ---") + "\n")
		for _, v := range report.Violations {
			fmt.Fprintf(b, "Line %d [%s]: %s\n", v.Line, v.Code, v.Message)
		}
	}
	for _, note := range report.Diagnostics {
		b.WriteString(st.render(st.muted, "note: "+note) + "\n")
	}

	b.WriteString("\n" + rule + "\n")
}

func writeTextBatch(b *strings.Builder, st textStyles, summary ports.BatchSummary) {
	b.WriteString("\n" + st.render(st.section, "--- Batch Summary ---") + "\n")
	fmt.Fprintf(b, "Files Analyzed           : %d\n", summary.Files)
	fmt.Fprintf(b, "Files Failed             : %d\n", summary.Failed)
	fmt.Fprintf(b, "Documented (Total)       : %d / %d\n", summary.WithDoc, summary.Total)
	fmt.Fprintf(b, "Coverage Percentage      : %.2f%%\n", summary.CoveragePercentage)
	fmt.Fprintf(b, "Total Violations         : %d\n", summary.Violations)
	fmt.Fprintf(b, "Non-compliant Files      : %d\n", summary.FailingFiles)
	b.WriteString(st.render(st.muted, "run "+summary.RunID) + "\n")
	b.WriteString("\n" + rule + "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
