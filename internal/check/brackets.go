package check

import (
	"fmt"

	"clens/internal/ast"
	"clens/internal/diag"
)

var closerFor = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

var openerFor = map[string]string{
	")": "(",
	"]": "[",
	"}": "{",
}

// Brackets matches bracket leaves of tree in traversal order. A closer that
// finds no opener, or the wrong one, is reported at the closer; openers left
// over at the end are reported at their own position.
// Braces consumed by the parser as block delimiters are not leaves and are
// never seen here.
func Brackets(r diag.Reporter, tree *ast.Tree) {
	if tree == nil {
		return
	}
	var stack []*ast.Node
	tree.Walk(tree.Root, func(n *ast.Node) bool {
		if n.Kind != ast.KindPunctuation {
			return true
		}
		if _, ok := closerFor[n.Value]; ok {
			stack = append(stack, n)
			return true
		}
		want, ok := openerFor[n.Value]
		if !ok {
			return true
		}

		var top *ast.Node
		if len(stack) > 0 {
			top = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
		switch {
		case top == nil:
			diag.ReportError(r, diag.SynMismatchedBracket, n.Line, n.Column, "Mismatched brackets").
				WithContext(fmt.Sprintf("'%s' has no matching '%s'", n.Value, want)).
				WithSuggestion("Remove the extra closing bracket or add the missing opening one").
				Emit()
		case top.Value != want:
			diag.ReportError(r, diag.SynMismatchedBracket, n.Line, n.Column, "Mismatched brackets").
				WithContext(fmt.Sprintf("'%s' closes '%s' opened at %d:%d", n.Value, top.Value, top.Line, top.Column)).
				WithSuggestion(fmt.Sprintf("Use '%s' to close '%s'", closerFor[top.Value], top.Value)).
				Emit()
		}
		return true
	})

	for _, open := range stack {
		diag.ReportError(r, diag.SynUnclosedBracket, open.Line, open.Column, "Unclosed bracket: "+open.Value).
			WithSuggestion(fmt.Sprintf("Add a matching '%s'", closerFor[open.Value])).
			Emit()
	}
}
