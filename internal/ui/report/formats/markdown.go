package formats

import (
	"docscan/internal/shared/version"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type MarkdownOptions struct {
	ProjectName string
	// IncludeDocs appends the synthesized docstrings of every file.
	IncludeDocs bool
}

// GenerateMarkdown renders the run as a Markdown report with YAML front
// matter.
func GenerateMarkdown(doc Document, opts MarkdownOptions) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Docstring Coverage Report\n")
	b.WriteString("project: " + nonEmpty(opts.ProjectName, projectName(doc.ProjectRoot)) + "\n")
	b.WriteString("generated_at: " + doc.generatedAt().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + version.Version + "\n")
	b.WriteString("---\n\n")

	b.WriteString(SummaryMarkdown(doc))

	b.WriteString("## Files\n")
	b.WriteString("| File | Coverage | Documented | Compliance | Violations |\n")
	b.WriteString("| --- | ---: | ---: | --- | ---: |\n")
	for _, r := range doc.Results {
		path := relativeURI(doc.ProjectRoot, r.Path)
		if r.Err != nil {
			fmt.Fprintf(&b, "| `%s` | - | - | ERROR | - |\n", path)
			continue
		}
		fmt.Fprintf(&b, "| `%s` | %.2f%% | %d / %d | %s | %d |\n",
			path, r.Report.CoveragePercentage, r.Report.WithDoc, r.Report.Total, r.Report.Compliance, len(r.Report.Violations))
	}
	b.WriteString("\n")

	b.WriteString("## Violations\n")
	wrote := false
	for _, r := range doc.Results {
		if r.Err != nil || len(r.Report.Violations) == 0 {
			continue
		}
		wrote = true
		fmt.Fprintf(&b, "### `%s`\n", relativeURI(doc.ProjectRoot, r.Path))
		b.WriteString("| Line | Code | Message |\n")
		b.WriteString("| ---: | --- | --- |\n")
		for _, v := range r.Report.Violations {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", v.Line, v.Code, escapeCell(v.Message))
		}
		b.WriteString("\n")
	}
	if !wrote {
		b.WriteString("No violations reported.\n\n")
	}

	var failed []string
	for _, r := range doc.Results {
		if r.Err != nil {
			failed = append(failed, fmt.Sprintf("- `%s`: %s", relativeURI(doc.ProjectRoot, r.Path), escapeCell(r.Err.Error())))
		}
	}
	if len(failed) > 0 {
		b.WriteString("## Analysis Errors\n")
		b.WriteString(strings.Join(failed, "\n") + "\n\n")
	}

	if opts.IncludeDocs {
		b.WriteString("## Generated Docstrings\n")
		for _, r := range doc.Results {
			if r.Err != nil || len(r.Docs) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### `%s`\n", relativeURI(doc.ProjectRoot, r.Path))
			for _, d := range r.Docs {
				fmt.Fprintf(&b, "**%s `%s`** (line %d)\n\n```python\n%s\n```\n\n", capitalize(d.Kind), d.Name, d.Line, d.Docstring)
			}
		}
	}

	return b.String()
}

// SummaryMarkdown renders the executive summary table and gate outcome. It
// is also what gets injected between report markers.
func SummaryMarkdown(doc Document) string {
	var b strings.Builder
	b.WriteString("## Summary\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| Files | %d |\n", doc.Summary.Files)
	fmt.Fprintf(&b, "| Failed Files | %d |\n", doc.Summary.Failed)
	fmt.Fprintf(&b, "| Documented | %d / %d |\n", doc.Summary.WithDoc, doc.Summary.Total)
	fmt.Fprintf(&b, "| Coverage | %.2f%% (threshold %s%%) |\n", doc.Summary.CoveragePercentage, Threshold(doc.MinCoverage))
	fmt.Fprintf(&b, "| Violations | %d |\n", doc.Summary.Violations)
	fmt.Fprintf(&b, "| Non-compliant Files | %d |\n", doc.Summary.FailingFiles)
	status := "PASSED"
	if !doc.Passed() {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "| Status | %s |\n\n", status)

	for _, failure := range doc.Failures {
		b.WriteString("- " + escapeCell(failure) + "\n")
	}
	if len(doc.Failures) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func projectName(root string) string {
	if strings.TrimSpace(root) == "" {
		return "unknown"
	}
	return filepath.Base(root)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
