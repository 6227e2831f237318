package report

import (
	"docscan/internal/ui/report/formats"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InjectSummary replaces the block between the docscan markers in a
// Markdown file, typically a README, with the run summary.
func InjectSummary(filePath, marker string, doc formats.Document) error {
	return InjectSection(filePath, marker, formats.SummaryMarkdown(doc))
}

func InjectSection(filePath, marker, section string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read markdown file %q: %w", filePath, err)
	}

	next, err := ReplaceBetweenMarkers(string(content), marker, section)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	tmp, err := os.CreateTemp(dir, ".docscan-inject-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", filePath, err)
	}
	tmpName := tmp.Name()

	writeErr := error(nil)
	if _, err := tmp.WriteString(next); err != nil {
		writeErr = fmt.Errorf("write temp markdown file %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("close temp markdown file %q: %w", tmpName, err)
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return writeErr
	}

	if err := os.Rename(tmpName, filePath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace markdown file %q: %w", filePath, err)
	}
	return nil
}

// ReplaceBetweenMarkers swaps the text between
// <!-- docscan:MARKER:start --> and <!-- docscan:MARKER:end -->, keeping the
// markers and the file's line endings.
func ReplaceBetweenMarkers(content, marker, replacement string) (string, error) {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return "", fmt.Errorf("markdown marker must not be empty")
	}

	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
	}

	start := fmt.Sprintf("<!-- docscan:%s:start -->", marker)
	end := fmt.Sprintf("<!-- docscan:%s:end -->", marker)

	if strings.Count(content, start) != 1 || strings.Count(content, end) != 1 {
		return "", fmt.Errorf("markdown marker %q must appear exactly once for start and end", marker)
	}

	startIdx := strings.Index(content, start)
	endIdx := strings.Index(content, end)
	if endIdx < startIdx {
		return "", fmt.Errorf("invalid marker order for %q", marker)
	}

	prefix := content[:startIdx+len(start)]
	suffix := content[endIdx:]
	body := strings.TrimRight(replacement, "\r\n")
	if newline != "\n" {
		body = strings.ReplaceAll(body, "\n", newline)
	}

	return prefix + newline + body + newline + suffix, nil
}
