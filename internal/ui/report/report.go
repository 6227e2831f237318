// Package report writes analysis results in the configured output format.
package report

import (
	"bytes"
	"docscan/internal/core/errors"
	"docscan/internal/shared/util"
	"docscan/internal/ui/report/formats"
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatSARIF    Format = "sarif"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "sarif":
		return FormatSARIF, nil
	}
	return "", errors.New(errors.CodeValidationError, fmt.Sprintf("unknown output format %q; use text, json, markdown or sarif", value))
}

type Options struct {
	Format    Format
	CheckOnly bool
	NoColor   bool
	// IncludeDocs adds generated docstrings to Markdown reports.
	IncludeDocs bool
}

// Write renders doc to w.
func Write(w io.Writer, doc formats.Document, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return formats.WriteText(w, doc, formats.TextOptions{CheckOnly: opts.CheckOnly, NoColor: opts.NoColor})
	case FormatJSON:
		return formats.WriteJSON(w, doc)
	case FormatMarkdown:
		_, err := io.WriteString(w, formats.GenerateMarkdown(doc, formats.MarkdownOptions{IncludeDocs: opts.IncludeDocs}))
		return err
	case FormatSARIF:
		data, err := formats.GenerateSARIF(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported output format %q", opts.Format))
}

// WriteFile renders doc into path, creating parent directories. Text output
// written to a file is never colored.
func WriteFile(path string, doc formats.Document, opts Options) error {
	var buf bytes.Buffer
	opts.NoColor = true
	if err := Write(&buf, doc, opts); err != nil {
		return err
	}
	if err := util.WriteFileWithDirs(path, buf.Bytes(), 0o644); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write report"), errors.CtxPath, path)
	}
	return nil
}
