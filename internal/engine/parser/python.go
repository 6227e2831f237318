package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

// Extract returns the module entity followed by every function and class of
// the tree in pre-order. Nested definitions are flattened into the same list.
func (e *PythonExtractor) Extract(root *sitter.Node, source []byte) []Entity {
	ctx := &ExtractionContext{Source: source}
	ctx.Emit(Entity{
		Kind:         KindModule,
		Name:         ModuleName,
		StartLine:    1,
		EndLine:      lineCount(source),
		HasDocstring: e.hasDocstring(ctx, root),
	})

	engine := NewExtractorEngine(map[string]NodeHandler{
		"function_definition": e.extractFunction,
		"class_definition":    e.extractClass,
	})
	for i := uint(0); i < root.ChildCount(); i++ {
		engine.Walk(ctx, root.Child(i))
	}
	return ctx.Entities
}

func (e *PythonExtractor) extractFunction(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return false
	}

	body := node.ChildByFieldName("body")
	entity := Entity{
		Kind:             KindFunction,
		Name:             name,
		StartLine:        startLine(node),
		EndLine:          endLine(node),
		HasDocstring:     e.hasDocstring(ctx, body),
		Parameters:       e.parameters(ctx, node.ChildByFieldName("parameters")),
		ReturnAnnotation: ctx.CompactText(node.ChildByFieldName("return_type")),
		IsAsync:          e.isAsync(node),
	}

	scan := &bodyScan{seen: make(map[string]bool)}
	scan.walk(ctx, body)
	entity.Returns = scan.returns
	entity.IsGenerator = scan.yields
	entity.Raises = scan.raises

	ctx.Emit(entity)
	return false
}

func (e *PythonExtractor) extractClass(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return false
	}

	body := node.ChildByFieldName("body")
	ctx.Emit(Entity{
		Kind:         KindClass,
		Name:         name,
		StartLine:    startLine(node),
		EndLine:      endLine(node),
		HasDocstring: e.hasDocstring(ctx, body),
		Attributes:   e.classAttributes(ctx, body),
	})
	return false
}

func (e *PythonExtractor) isAsync(node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !child.IsNamed() && child.Kind() == "async" {
			return true
		}
	}
	return false
}

// hasDocstring reports whether the first statement of body is a bare string
// literal. f-strings and bytes literals do not count.
func (e *PythonExtractor) hasDocstring(ctx *ExtractionContext, body *sitter.Node) bool {
	first := firstStatement(body)
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() != 1 {
		return false
	}
	return e.isPlainString(ctx, first.NamedChild(0))
}

func (e *PythonExtractor) isPlainString(ctx *ExtractionContext, node *sitter.Node) bool {
	switch node.Kind() {
	case "string":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "interpolation":
				return false
			case "string_start":
				prefix := strings.ToLower(strings.TrimRight(ctx.Text(child), `"'`))
				if strings.ContainsAny(prefix, "fb") {
					return false
				}
			}
		}
		return true
	case "concatenated_string":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() == "comment" {
				continue
			}
			if !e.isPlainString(ctx, child) {
				return false
			}
		}
		return true
	}
	return false
}

func (e *PythonExtractor) parameters(ctx *ExtractionContext, params *sitter.Node) []Parameter {
	if params == nil {
		return nil
	}

	var out []Parameter
	first := true
	for i := uint(0); i < params.NamedChildCount(); i++ {
		param, ok := e.parameter(ctx, params.NamedChild(i))
		if !ok {
			continue
		}
		if first {
			first = false
			if param.Name == "self" || param.Name == "cls" {
				continue
			}
		}
		out = append(out, param)
	}
	return out
}

func (e *PythonExtractor) parameter(ctx *ExtractionContext, node *sitter.Node) (Parameter, bool) {
	switch node.Kind() {
	case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
		return Parameter{Name: ctx.Text(node)}, true
	case "typed_parameter":
		var name string
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			switch child.Kind() {
			case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
				name = ctx.Text(child)
			}
			if name != "" {
				break
			}
		}
		if name == "" {
			return Parameter{}, false
		}
		return Parameter{Name: name, Annotation: ctx.CompactText(node.ChildByFieldName("type"))}, true
	case "default_parameter", "typed_default_parameter":
		name := ctx.CompactText(node.ChildByFieldName("name"))
		if name == "" {
			return Parameter{}, false
		}
		return Parameter{Name: name, Annotation: ctx.CompactText(node.ChildByFieldName("type"))}, true
	}
	// keyword_separator, positional_separator and comments carry no name.
	return Parameter{}, false
}

// classAttributes collects the simple names assigned directly in a class body.
// Assignments inside methods or nested blocks are not inspected.
func (e *PythonExtractor) classAttributes(ctx *ExtractionContext, body *sitter.Node) []string {
	if body == nil {
		return nil
	}

	var attrs []string
	seen := make(map[string]bool)
	for i := uint(0); i < body.NamedChildCount(); i++ {
		stmt := body.NamedChild(i)
		if stmt.Kind() != "expression_statement" {
			continue
		}
		for j := uint(0); j < stmt.NamedChildCount(); j++ {
			assign := stmt.NamedChild(j)
			// a = b = 1 nests the second target in the right-hand side.
			for assign != nil && assign.Kind() == "assignment" {
				if left := assign.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
					attrs = appendUnique(attrs, seen, ctx.Text(left))
				}
				assign = assign.ChildByFieldName("right")
			}
		}
	}
	return attrs
}

// bodyScan records return, yield and raise behaviour of one function body,
// skipping nested function, class and lambda scopes.
type bodyScan struct {
	returns bool
	yields  bool
	raises  []string
	seen    map[string]bool
}

func (s *bodyScan) walk(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}

	if node.IsNamed() {
		switch node.Kind() {
		case "function_definition", "class_definition", "lambda":
			return
		case "return_statement":
			if firstNamedNonComment(node) != nil {
				s.returns = true
			}
		case "yield":
			s.yields = true
		case "raise_statement":
			if name := raisedName(ctx, node); name != "" {
				s.raises = appendUnique(s.raises, s.seen, name)
			}
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		s.walk(ctx, node.Child(i))
	}
}

// raisedName resolves `raise Name(...)`, `raise pkg.Name(...)` and `raise Name`
// to the error name. Other forms resolve to "".
func raisedName(ctx *ExtractionContext, node *sitter.Node) string {
	exc := firstNamedNonComment(node)
	if exc == nil {
		return ""
	}
	if cause := node.ChildByFieldName("cause"); cause != nil && cause.StartByte() == exc.StartByte() {
		return ""
	}
	exc = unwrapParens(exc)

	switch exc.Kind() {
	case "identifier":
		return ctx.Text(exc)
	case "call":
		fn := unwrapParens(exc.ChildByFieldName("function"))
		if fn == nil {
			return ""
		}
		switch fn.Kind() {
		case "identifier":
			return ctx.Text(fn)
		case "attribute":
			return ctx.Text(fn.ChildByFieldName("attribute"))
		}
	}
	return ""
}

func unwrapParens(node *sitter.Node) *sitter.Node {
	for node != nil && node.Kind() == "parenthesized_expression" {
		node = firstNamedNonComment(node)
	}
	return node
}

func firstNamedNonComment(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}

// firstStatement returns the first statement of a module or block.
func firstStatement(body *sitter.Node) *sitter.Node {
	return firstNamedNonComment(body)
}

func lineCount(source []byte) int {
	if len(source) == 0 {
		return 1
	}
	n := strings.Count(string(source), "\n")
	if source[len(source)-1] != '\n' {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}
