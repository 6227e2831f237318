// Package docstring renders placeholder docstrings for undocumented entities
// in one of the supported conventions.
package docstring

import (
	"docscan/internal/core/errors"
	"docscan/internal/engine/parser"
	"fmt"
	"sort"
	"strings"
)

type Style string

const (
	StyleGoogle Style = "google"
	StyleNumPy  Style = "numpy"
	StyleReST   Style = "rest"
)

// Styles lists the supported conventions in display order.
func Styles() []Style {
	return []Style{StyleGoogle, StyleNumPy, StyleReST}
}

// ParseStyle resolves a user supplied convention name.
func ParseStyle(value string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "google":
		return StyleGoogle, nil
	case "numpy", "numpydoc":
		return StyleNumPy, nil
	case "rest", "rst", "restructuredtext":
		return StyleReST, nil
	}
	err := errors.New(errors.CodeValidationError, fmt.Sprintf("unknown docstring style %q (want google, numpy or rest)", value))
	return "", errors.AddContext(err, errors.CtxStyle, value)
}

// Renderer produces the docstring text for one entity, quotes included.
// Render never fails; kinds a renderer does not know render as "".
type Renderer interface {
	Style() Style
	Render(entity parser.Entity) string
}

// New returns the renderer for style.
func New(style Style) (Renderer, error) {
	switch style {
	case StyleGoogle:
		return googleRenderer{}, nil
	case StyleNumPy:
		return numpyRenderer{}, nil
	case StyleReST:
		return restRenderer{}, nil
	}
	return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("unknown docstring style %q", style))
}

const (
	quotes              = `"""`
	yieldsDescription   = "Description of the yielded values."
	returnsDescription  = "Description of the return value."
	attributeDescriptor = "Description."
)

// summary opens a docstring block with the summary line and a blank line.
func summary(b *strings.Builder, entity parser.Entity) {
	b.WriteString(quotes)
	b.WriteString(entity.Name)
	b.WriteByte(' ')
	b.WriteString(entity.Kind.String())
	b.WriteString(".\n\n")
}

func closeBlock(b *strings.Builder) string {
	b.WriteString(quotes)
	return b.String()
}

func sortedRaises(entity parser.Entity) []string {
	out := append([]string(nil), entity.Raises...)
	sort.Strings(out)
	return out
}

// returnsValue reports whether a Returns section applies. Generators document
// their yields instead.
func returnsValue(entity parser.Entity) bool {
	return entity.Returns && !entity.IsGenerator
}

// renderModule is shared by every convention.
func renderModule(entity parser.Entity) string {
	var b strings.Builder
	summary(&b, entity)
	return closeBlock(&b)
}
