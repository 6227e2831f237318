package docstring

import (
	"docscan/internal/engine/parser"
	"strings"
)

type numpyRenderer struct{}

func (numpyRenderer) Style() Style { return StyleNumPy }

func (r numpyRenderer) Render(entity parser.Entity) string {
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

func (numpyRenderer) function(entity parser.Entity) string {
	var b strings.Builder
	summary(&b, entity)

	if len(entity.Parameters) > 0 {
		b.WriteString("Parameters\n----------\n")
		for _, p := range entity.Parameters {
			b.WriteString(p.Name)
			if p.Annotation != "" {
				b.WriteString(" : " + p.Annotation)
			}
			b.WriteString("\n    Description for " + p.Name + ".\n")
		}
	}

	if entity.IsGenerator {
		b.WriteString("\nYields\n------\n")
		b.WriteString(yieldsDescription + "\n")
	} else if returnsValue(entity) {
		b.WriteString("\nReturns\n-------\n")
		if entity.ReturnAnnotation != "" {
			b.WriteString(entity.ReturnAnnotation + "\n")
		}
		b.WriteString("    " + returnsDescription + "\n")
	}

	if raises := sortedRaises(entity); len(raises) > 0 {
		b.WriteString("\nRaises\n------\n")
		for _, name := range raises {
			b.WriteString(name + "\n    Description for " + name + ".\n")
		}
	}
	return closeBlock(&b)
}

func (numpyRenderer) class(entity parser.Entity) string {
	var b strings.Builder
	summary(&b, entity)
	if len(entity.Attributes) > 0 {
		b.WriteString("Attributes\n----------\n")
		for _, attr := range entity.Attributes {
			b.WriteString(attr + "\n    " + attributeDescriptor + "\n")
		}
	}
	return closeBlock(&b)
}
