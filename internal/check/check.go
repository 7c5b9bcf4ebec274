// Package check aggregates diagnostics from the analysis stages: invalid
// lexer tokens first, then bracket matching over the parse tree, then
// whatever the scope analyzer reported.
package check

import (
	"clens/internal/ast"
	"clens/internal/diag"
	"clens/internal/token"
)

// DefaultContextRadius is how many tokens on each side of an invalid token
// are quoted in its context.
const DefaultContextRadius = 5

type Options struct {
	// ContextRadius <= 0 selects DefaultContextRadius.
	ContextRadius int
	// MaxDiagnostics caps the result; 0 means unlimited.
	MaxDiagnostics int
}

func (o Options) radius() int {
	if o.ContextRadius <= 0 {
		return DefaultContextRadius
	}
	return o.ContextRadius
}

// Collect runs every check and returns diagnostics in source order per check.
func Collect(tokens []token.Token, tree *ast.Tree, scopeDiags []diag.Diagnostic, opts Options) []diag.Diagnostic {
	bag := diag.NewBag(opts.MaxDiagnostics)
	r := diag.BagReporter{Bag: bag}

	Lexical(r, tokens, opts.radius())
	Brackets(r, tree)
	for _, d := range scopeDiags {
		r.Report(d)
	}

	out := make([]diag.Diagnostic, bag.Len())
	copy(out, bag.Items())
	return out
}
