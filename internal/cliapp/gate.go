package cliapp

import (
	"docscan/internal/core/ports"
	"docscan/internal/engine/compliance"
	"docscan/internal/ui/report/formats"
	"fmt"
)

// evaluateGate lists the reasons a run must block a commit. Messages are
// suffixed with the file path once more than one file was analyzed.
func evaluateGate(results []ports.FileResult, minCoverage float64) []string {
	failures := make([]string, 0)
	multi := len(results) > 1

	for _, result := range results {
		suffix := ""
		if multi {
			suffix = " (" + result.Path + ")"
		}

		if result.Err != nil {
			failures = append(failures, fmt.Sprintf("Analysis failed: %v%s", result.Err, suffix))
			continue
		}

		report := result.Report
		if report.CoveragePercentage < minCoverage {
			failures = append(failures, fmt.Sprintf("Coverage %.2f%% is below threshold %s%%%s",
				report.CoveragePercentage, formats.Threshold(minCoverage), suffix))
		}
		if report.Validated && report.Compliance == compliance.VerdictFail {
			failures = append(failures, "PEP-257 validation failed!"+suffix)
		}
	}
	return failures
}
