package cliapp

import (
	"docscan/internal/core/ports"
	"docscan/internal/ui/report"
	"docscan/internal/ui/report/formats"
	"io"
	"sync"
	"time"
)

// publisher renders one run to stdout or the output file and keeps the
// optional README summary in sync.
type publisher struct {
	stdout      io.Writer
	outputPath  string
	injectPath  string
	projectRoot string
	options     report.Options

	mu          sync.Mutex
	minCoverage float64
}

func (p *publisher) setMinCoverage(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.minCoverage = v
}

// publish writes the report and returns the gate failures it carried.
func (p *publisher) publish(results []ports.FileResult, summary ports.BatchSummary) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := formats.Document{
		Results:     results,
		Summary:     summary,
		MinCoverage: p.minCoverage,
		ProjectRoot: p.projectRoot,
		GeneratedAt: time.Now().UTC(),
		Failures:    evaluateGate(results, p.minCoverage),
	}

	var err error
	if p.outputPath != "" {
		err = report.WriteFile(p.outputPath, doc, p.options)
	} else {
		err = report.Write(p.stdout, doc, p.options)
	}
	if err != nil {
		return doc.Failures, err
	}

	if p.injectPath != "" {
		if err := report.InjectSummary(p.injectPath, injectMarker, doc); err != nil {
			return doc.Failures, err
		}
	}
	return doc.Failures, nil
}
