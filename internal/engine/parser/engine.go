package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeHandler processes a node for a language-specific extractor.
// Returns true if the handler has processed children and the walker should stop.
type NodeHandler func(ctx *ExtractionContext, node *sitter.Node) bool

// ExtractionContext carries the source and the entities collected so far.
type ExtractionContext struct {
	Source   []byte
	Entities []Entity
}

// ExtractorEngine walks the syntax tree pre-order and dispatches node handlers
// by kind.
type ExtractorEngine struct {
	handlers map[string]NodeHandler
}

func NewExtractorEngine(handlers map[string]NodeHandler) *ExtractorEngine {
	return &ExtractorEngine{handlers: handlers}
}

func (e *ExtractorEngine) Walk(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}

	stop := false
	if handler, ok := e.handlers[node.Kind()]; ok && node.IsNamed() {
		stop = handler(ctx, node)
	}

	if !stop {
		for i := uint(0); i < node.ChildCount(); i++ {
			e.Walk(ctx, node.Child(i))
		}
	}
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

// CompactText returns the node text with whitespace runs folded to one space,
// so multi-line annotations render on a single line.
func (c *ExtractionContext) CompactText(node *sitter.Node) string {
	return strings.Join(strings.Fields(c.Text(node)), " ")
}

func (c *ExtractionContext) Emit(entity Entity) {
	c.Entities = append(c.Entities, entity)
}

func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// endLine returns the last line holding node text. A node ending at column 0
// only swallowed the newline of the line above.
func endLine(node *sitter.Node) int {
	end := node.EndPosition()
	row := end.Row
	if end.Column == 0 && row > node.StartPosition().Row {
		row--
	}
	return int(row) + 1
}
