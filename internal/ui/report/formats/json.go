package formats

import (
	"docscan/internal/core/ports"
	"encoding/json"
	"io"
)

type jsonDocument struct {
	Summary     ports.BatchSummary `json:"summary"`
	MinCoverage float64            `json:"min_coverage"`
	Passed      bool               `json:"passed"`
	Failures    []string           `json:"failures"`
	Files       []jsonFile         `json:"files"`
}

type jsonFile struct {
	Path   string               `json:"path"`
	Error  string               `json:"error,omitempty"`
	Docs   []ports.GeneratedDoc `json:"docs,omitempty"`
	Report *ports.Report        `json:"report,omitempty"`
}

// WriteJSON emits the machine-readable run document. Files that could not be
// analyzed carry an error instead of docs and report.
func WriteJSON(w io.Writer, doc Document) error {
	out := jsonDocument{
		Summary:     doc.Summary,
		MinCoverage: doc.MinCoverage,
		Passed:      doc.Passed(),
		Failures:    append([]string{}, doc.Failures...),
		Files:       make([]jsonFile, 0, len(doc.Results)),
	}
	for _, r := range doc.Results {
		f := jsonFile{Path: r.Path}
		if r.Err != nil {
			f.Error = r.Err.Error()
		} else {
			report := r.Report
			f.Docs = append([]ports.GeneratedDoc{}, r.Docs...)
			f.Report = &report
		}
		out.Files = append(out.Files, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
