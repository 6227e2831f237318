package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

func appendUnique(values []string, seen map[string]bool, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return values
	}
	if seen[value] {
		return values
	}
	seen[value] = true
	return append(values, value)
}

// firstErrorLine returns the 1-based line of the first ERROR or MISSING node
// below root, or 0 when the tree is clean.
func firstErrorLine(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	if node.IsError() || node.IsMissing() {
		return startLine(node)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if line := firstErrorLine(child); line > 0 {
			return line
		}
	}
	if node.HasError() {
		return startLine(node)
	}
	return 0
}

// legacyStatementKinds are statements tree-sitter-python still accepts but
// Python 3 rejects as syntax errors.
var legacyStatementKinds = map[string]string{
	"print_statement": "print",
	"exec_statement":  "exec",
}

// firstLegacyStatement returns the first Python 2 only statement below node
// in source order, or nil.
func firstLegacyStatement(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if _, ok := legacyStatementKinds[node.Kind()]; ok {
		return node
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if found := firstLegacyStatement(node.NamedChild(i)); found != nil {
			return found
		}
	}
	return nil
}
