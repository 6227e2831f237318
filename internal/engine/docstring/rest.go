package docstring

import (
	"docscan/internal/engine/parser"
	"strings"
)

type restRenderer struct{}

func (restRenderer) Style() Style { return StyleReST }

func (r restRenderer) Render(entity parser.Entity) string {
	switch entity.Kind {
	case parser.KindFunction:
		return r.function(entity)
	case parser.KindClass:
		return r.class(entity)
	case parser.KindModule:
		return renderModule(entity)
	}
	return ""
}

// function renders field lists. Unlike the other conventions, raises follow
// the return fields without a separating blank line.
func (restRenderer) function(entity parser.Entity) string {
	var b strings.Builder
	summary(&b, entity)

	for _, p := range entity.Parameters {
		b.WriteString(":param " + p.Name + ": Description for " + p.Name + ".\n")
		if p.Annotation != "" {
			b.WriteString(":type " + p.Name + ": " + p.Annotation + "\n")
		}
	}

	if entity.IsGenerator {
		b.WriteString("\n:yields: " + yieldsDescription + "\n")
	} else if returnsValue(entity) {
		b.WriteString("\n:returns: " + returnsDescription + "\n")
		if entity.ReturnAnnotation != "" {
			b.WriteString(":rtype: " + entity.ReturnAnnotation + "\n")
		}
	}

	for _, name := range sortedRaises(entity) {
		b.WriteString(":raises " + name + ": Description for " + name + ".\n")
	}
	return closeBlock(&b)
}

func (restRenderer) class(entity parser.Entity) string {
	var b strings.Builder
	summary(&b, entity)
	for _, attr := range entity.Attributes {
		b.WriteString(":ivar " + attr + ": " + attributeDescriptor + "\n")
	}
	return closeBlock(&b)
}
