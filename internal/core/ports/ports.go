package ports

import (
	"context"
	"docscan/internal/engine/compliance"
	"docscan/internal/engine/parser"
)

// EntityParser abstracts entity extraction and source-file support checks.
type EntityParser interface {
	Extract(source []byte) ([]parser.Entity, error)
	ExtractFile(path string) ([]parser.Entity, error)
	IsSupportedPath(path string) bool
	IsTestFile(path string) bool
	SupportedExtensions() []string
}

// CheckOptions selects which checker rules run. Select wins over Convention;
// Ignore extends whichever base set applies.
type CheckOptions struct {
	Convention string
	Select     []string
	Ignore     []string
}

// DocChecker runs an external documentation-convention checker on one file.
type DocChecker interface {
	Name() string
	Check(ctx context.Context, path string, opts CheckOptions) ([]compliance.Violation, error)
}

// GeneratedDoc is a synthesized docstring for one undocumented entity.
type GeneratedDoc struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Docstring string `json:"docstring"`
	Line      int    `json:"line"`
}

// Report is the per-file result of one pipeline run.
type Report struct {
	File      string `json:"file,omitempty"`
	Style     string `json:"style"`
	Validated bool   `json:"validated"`

	TotalFunctions      int     `json:"total_functions"`
	TotalClasses        int     `json:"total_classes"`
	DocumentedFunctions int     `json:"documented_functions"`
	DocumentedClasses   int     `json:"documented_classes"`
	HasModuleDoc        bool    `json:"has_module_doc"`
	Total               int     `json:"total"`
	WithDoc             int     `json:"with_doc"`
	Missing             int     `json:"missing"`
	CoveragePercentage  float64 `json:"coverage_percentage"`

	Compliance             compliance.Verdict     `json:"compliance"`
	CompliancePercentage   float64                `json:"compliance_percentage"`
	Violations             []compliance.Violation `json:"violations"`
	AffectedEntities       []string               `json:"affected_entities"`
	UnattributedViolations int                    `json:"unattributed_violations"`
	Diagnostics            []string               `json:"diagnostics,omitempty"`
}

// FileResult pairs a report with its generated docs. Err is set instead when
// the file could not be analyzed at all.
type FileResult struct {
	Path   string         `json:"path"`
	Docs   []GeneratedDoc `json:"docs"`
	Report Report         `json:"report"`
	Err    error          `json:"-"`
}

// BatchSummary aggregates the results of one multi-file run.
type BatchSummary struct {
	RunID              string  `json:"run_id"`
	Files              int     `json:"files"`
	Failed             int     `json:"failed"`
	Total              int     `json:"total"`
	WithDoc            int     `json:"with_doc"`
	Missing            int     `json:"missing"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	Violations         int     `json:"violations"`
	FailingFiles       int     `json:"failing_files"`
}
