package symbols

import (
	"fmt"
	"strings"

	"clens/internal/ast"
	"clens/internal/diag"
	"clens/internal/token"
)

// Mode selects how the current scope behaves after a nested construct.
type Mode uint8

const (
	// ModeBlock restores the caller's scope when a control construct ends.
	ModeBlock Mode = iota
	// ModeSticky keeps the innermost scope current after the construct, so
	// later siblings are recorded inside it.
	ModeSticky
)

func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeSticky:
		return "sticky"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode accepts "block" or "sticky" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return ModeBlock, nil
	case "sticky":
		return ModeSticky, nil
	}
	return ModeBlock, fmt.Errorf("unknown scope mode %q", s)
}

type Options struct {
	Mode Mode
}

// Result is the output of scope analysis.
type Result struct {
	Table *Table
	// Diagnostics is reserved for semantic findings; no rule produces any yet.
	Diagnostics []diag.Diagnostic
}

// Empty returns the result reported when analysis did not run.
func Empty() *Result {
	return &Result{Table: NewTable(0)}
}

type builder struct {
	tree  *ast.Tree
	table *Table
	mode  Mode
}

// Build walks tree depth-first and records declarations into nested scopes.
// FOR, IF and WHILE statements each open a child scope of the current one.
func Build(tree *ast.Tree, opts Options) *Result {
	res := &Result{Table: NewTable(0)}
	if tree == nil {
		return res
	}
	b := &builder{tree: tree, table: res.Table, mode: opts.Mode}
	global := res.Table.Scopes.New(ScopeGlobal, NoScopeID, tree.Root)
	b.walk(tree.Root, global)
	return res
}

// walk returns the scope that is current after visiting id.
func (b *builder) walk(id ast.NodeID, current ScopeID) ScopeID {
	n := b.tree.Node(id)
	if n == nil {
		return current
	}

	switch n.Kind {
	case ast.KindStatement, ast.KindForInit:
		b.declare(n, current)
	default:
		if kind, ok := scopeKindFor(n.Kind); ok {
			current = b.table.Scopes.New(kind, current, id)
		}
	}

	for _, child := range n.Children {
		after := b.walk(child, current)
		if b.mode == ModeSticky {
			current = after
		}
	}
	return current
}

// declare records `<type> <name> ...` found at the start of n.
// Initialized is approximated by the statement having more than 3 children.
func (b *builder) declare(n *ast.Node, scope ScopeID) {
	if len(n.Children) < 2 {
		return
	}
	typ := b.tree.Node(n.Children[0])
	name := b.tree.Node(n.Children[1])
	if typ.Kind != ast.KindKeyword || !token.DeclarableTypes[typ.Value] {
		return
	}
	if name.Kind != ast.KindIdentifier {
		return
	}
	b.table.Scopes.Get(scope).Declare(Declaration{
		Name:         name.Value,
		DeclaredType: typ.Value,
		Initialized:  len(n.Children) > 3,
		DeclLine:     name.Line,
		DeclColumn:   name.Column,
		Node:         n.ID,
	})
}
