package driver

import (
	"clens/internal/ast"
	"clens/internal/complexity"
	"clens/internal/diag"
	"clens/internal/flow"
	"clens/internal/observ"
	"clens/internal/source"
	"clens/internal/symbols"
	"clens/internal/token"
)

// Result is the full analysis bundle. Tree, Flow and Complexity are nil only
// when the analysis failed; then Tokens and Scopes are empty and Diagnostics
// holds exactly one error.
type Result struct {
	Tokens      []token.Token
	Tree        *ast.Tree
	Scopes      *symbols.Table
	Flow        *flow.Node
	Complexity  *complexity.Report
	Diagnostics []diag.Diagnostic
	Timings     *observ.Report
}

// Failed reports whether the pipeline aborted.
func (r *Result) Failed() bool {
	return r == nil || r.Tree == nil
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, d := range r.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// FileResult is the outcome for one file of a batch. Err is set when the file
// could not be read; Result is nil then.
type FileResult struct {
	Path  string
	Flags source.FileFlags
	Err   error
	File  *source.File
	*Result
}
