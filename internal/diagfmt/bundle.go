package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"clens/internal/ast"
	"clens/internal/complexity"
	"clens/internal/diag"
	"clens/internal/driver"
	"clens/internal/flow"
	"clens/internal/observ"
	"clens/internal/symbols"
	"clens/internal/token"
)

// NodeJSON is the nested form of a parse node.
type NodeJSON struct {
	ID       ast.NodeID  `json:"id"`
	Kind     ast.Kind    `json:"kind"`
	Value    string      `json:"value,omitempty"`
	Line     uint32      `json:"line,omitempty"`
	Column   uint32      `json:"column,omitempty"`
	Children []*NodeJSON `json:"children"`
}

// ScopeJSON is the nested form of a scope. An empty table is written as an
// object with no id and kind.
type ScopeJSON struct {
	ID           symbols.ScopeID                `json:"id,omitempty"`
	Kind         symbols.ScopeKind              `json:"kind,omitempty"`
	Declarations map[string]symbols.Declaration `json:"declarations"`
	Children     []*ScopeJSON                   `json:"children"`
}

// Bundle is the serialisable analysis result. Field names are part of the
// output contract.
type Bundle struct {
	Path        string             `json:"path,omitempty"`
	Tokens      []token.Token      `json:"tokens"`
	ParseTree   *NodeJSON          `json:"parseTree"`
	Scopes      *ScopeJSON         `json:"scopes"`
	Flow        *flow.Node         `json:"flow"`
	Complexity  *complexity.Report `json:"complexity"`
	Diagnostics []diag.Diagnostic  `json:"diagnostics"`
	Timings     *observ.Report     `json:"timings,omitempty"`
}

// NewBundle converts res into its serialisable form.
func NewBundle(res *driver.Result, path string, withTimings bool) *Bundle {
	b := &Bundle{
		Path:        path,
		Tokens:      res.Tokens,
		ParseTree:   treeJSON(res.Tree),
		Scopes:      scopesJSON(res.Scopes),
		Flow:        res.Flow,
		Complexity:  res.Complexity,
		Diagnostics: res.Diagnostics,
	}
	if b.Tokens == nil {
		b.Tokens = []token.Token{}
	}
	if b.Diagnostics == nil {
		b.Diagnostics = []diag.Diagnostic{}
	}
	if withTimings {
		b.Timings = res.Timings
	}
	return b
}

func treeJSON(tree *ast.Tree) *NodeJSON {
	if tree == nil {
		return nil
	}
	var build func(id ast.NodeID) *NodeJSON
	build = func(id ast.NodeID) *NodeJSON {
		n := tree.Node(id)
		out := &NodeJSON{
			ID:       n.ID,
			Kind:     n.Kind,
			Value:    n.Value,
			Line:     n.Line,
			Column:   n.Column,
			Children: make([]*NodeJSON, 0, len(n.Children)),
		}
		for _, c := range n.Children {
			out.Children = append(out.Children, build(c))
		}
		return out
	}
	return build(tree.Root)
}

func scopesJSON(table *symbols.Table) *ScopeJSON {
	empty := &ScopeJSON{Declarations: map[string]symbols.Declaration{}, Children: []*ScopeJSON{}}
	if table == nil || table.Scopes.Len() == 0 {
		return empty
	}
	var build func(id symbols.ScopeID) *ScopeJSON
	build = func(id symbols.ScopeID) *ScopeJSON {
		s := table.Scopes.Get(id)
		out := &ScopeJSON{
			ID:           s.ID,
			Kind:         s.Kind,
			Declarations: make(map[string]symbols.Declaration, len(s.Declarations)),
			Children:     make([]*ScopeJSON, 0, len(s.Children)),
		}
		for name, decl := range s.Declarations {
			out.Declarations[name] = decl
		}
		for _, c := range s.Children {
			out.Children = append(out.Children, build(c))
		}
		return out
	}
	return build(table.Global())
}

// FileDiagnostics is the per-file document of a diagnostics-only report.
type FileDiagnostics struct {
	Path        string            `json:"path"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// NewFileDiagnostics never returns a nil diagnostics slice.
func NewFileDiagnostics(path string, diags []diag.Diagnostic) *FileDiagnostics {
	if diags == nil {
		diags = []diag.Diagnostic{}
	}
	return &FileDiagnostics{Path: path, Diagnostics: diags}
}

// JSON writes v (a *Bundle or *FileDiagnostics) as one JSON document.
func JSON(w io.Writer, v any, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Msgpack writes v with the same field names as JSON.
func Msgpack(w io.Writer, v any) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}
