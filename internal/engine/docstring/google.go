package docstring

import (
	"docscan/internal/engine/parser"
	"strings"
)

type googleRenderer struct{}

func (googleRenderer) Style() Style { return StyleGoogle }

func (r googleRenderer) Render(entity parser.Entity) string {
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

func (googleRenderer) function(entity parser.Entity) string {
	var b strings.Builder
	summary(&b, entity)

	if len(entity.Parameters) > 0 {
		b.WriteString("Args:\n")
		for _, p := range entity.Parameters {
			b.WriteString("    " + p.Name)
			if p.Annotation != "" {
				b.WriteString(" (" + p.Annotation + ")")
			}
			b.WriteString(": Description for " + p.Name + ".\n")
		}
	}

	if entity.IsGenerator {
		b.WriteString("\nYields:\n")
		b.WriteString("    " + yieldsDescription + "\n")
	} else if returnsValue(entity) {
		b.WriteString("\nReturns:\n    ")
		if entity.ReturnAnnotation != "" {
			b.WriteString(entity.ReturnAnnotation + ": ")
		}
		b.WriteString(returnsDescription + "\n")
	}

	if raises := sortedRaises(entity); len(raises) > 0 {
		b.WriteString("\nRaises:\n")
		for _, name := range raises {
			b.WriteString("    " + name + ": Description for " + name + ".\n")
		}
	}
	return closeBlock(&b)
}

func (googleRenderer) class(entity parser.Entity) string {
	var b strings.Builder
	summary(&b, entity)
	if len(entity.Attributes) > 0 {
		b.WriteString("Attributes:\n")
		for _, attr := range entity.Attributes {
			b.WriteString("    " + attr + ": " + attributeDescriptor + "\n")
		}
	}
	return closeBlock(&b)
}
