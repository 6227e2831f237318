// Package formats renders analysis results for terminals, tools and reports.
package formats

import (
	"docscan/internal/core/ports"
	"strconv"
	"strings"
	"time"
)

// Document is everything a formatter may render for one run.
type Document struct {
	Results     []ports.FileResult
	Summary     ports.BatchSummary
	MinCoverage float64
	// ProjectRoot anchors relative paths in SARIF and Markdown output.
	ProjectRoot string
	GeneratedAt time.Time
	// Failures are the gate messages of the run, empty when it passed.
	Failures []string
}

// Passed reports whether the gate let the run through.
func (d Document) Passed() bool {
	return len(d.Failures) == 0
}

func (d Document) generatedAt() time.Time {
	if d.GeneratedAt.IsZero() {
		return time.Now().UTC()
	}
	return d.GeneratedAt.UTC()
}

// Threshold formats a percentage the way Python prints floats, so 80 reads
// "80.0" and 72.5 reads "72.5".
func Threshold(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
