package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"clens/internal/ast"
	"clens/internal/complexity"
	"clens/internal/flow"
	"clens/internal/observ"
	"clens/internal/symbols"
	"clens/internal/token"
)

// FormatTokens выводит токены в человекочитаемом формате, по одному на строку.
func FormatTokens(w io.Writer, tokens []token.Token) error {
	var b strings.Builder
	for i, tok := range tokens {
		fmt.Fprintf(&b, "%3d: %-12s %q at %d:%d\n", i+1, tok.Kind.String(), tok.Text, tok.Line, tok.Column)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type treeNode struct {
	label    string
	children []*treeNode
}

// render writes node and its subtree with box-drawing connectors.
func (n *treeNode) render(b *strings.Builder, prefix string) {
	for i, child := range n.children {
		marker, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			marker, next = "└─ ", "   "
		}
		b.WriteString(prefix + marker + child.label + "\n")
		child.render(b, prefix+next)
	}
}

func writeTree(w io.Writer, root *treeNode) error {
	var b strings.Builder
	b.WriteString(root.label + "\n")
	root.render(&b, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func parseTreeNode(tree *ast.Tree, id ast.NodeID) *treeNode {
	n := tree.Node(id)
	label := n.Kind.String()
	if n.IsLeaf() {
		label = fmt.Sprintf("%s %q", label, n.Value)
	}
	if n.Line > 0 {
		label += fmt.Sprintf(" (%d:%d)", n.Line, n.Column)
	}
	node := &treeNode{label: label}
	for _, c := range n.Children {
		node.children = append(node.children, parseTreeNode(tree, c))
	}
	return node
}

// FormatTree renders the parse tree as an indented ASCII tree.
func FormatTree(w io.Writer, tree *ast.Tree) error {
	if tree == nil {
		_, err := io.WriteString(w, "<no parse tree>\n")
		return err
	}
	return writeTree(w, parseTreeNode(tree, tree.Root))
}

func scopeTreeNode(table *symbols.Table, id symbols.ScopeID) *treeNode {
	s := table.Scopes.Get(id)
	node := &treeNode{label: fmt.Sprintf("Scope[%d] %s", s.ID, s.Kind)}
	for _, d := range s.Ordered() {
		init := ""
		if d.Initialized {
			init = " = ..."
		}
		node.children = append(node.children, &treeNode{
			label: fmt.Sprintf("%s %s%s (%d:%d)", d.DeclaredType, d.Name, init, d.DeclLine, d.DeclColumn),
		})
	}
	for _, c := range s.Children {
		node.children = append(node.children, scopeTreeNode(table, c))
	}
	return node
}

// FormatScopes renders the scope tree with declarations listed before
// nested scopes.
func FormatScopes(w io.Writer, table *symbols.Table) error {
	global := table.Global()
	if !global.IsValid() {
		_, err := io.WriteString(w, "<no scopes>\n")
		return err
	}
	return writeTree(w, scopeTreeNode(table, global))
}

func flowTreeNode(fn *flow.Node, tree *ast.Tree) *treeNode {
	label := fmt.Sprintf("#%d %s", fn.ID, fn.Kind)
	for _, c := range fn.Conditions {
		label += fmt.Sprintf(" [%s: %s]", c.Role, c.Expression)
	}
	if tree != nil && complexity.IsNestedLoop(tree, fn.ID) {
		label += " (nested)"
	}
	node := &treeNode{label: label}
	for _, next := range fn.Next {
		if next.Kind.IsLeaf() {
			continue
		}
		node.children = append(node.children, flowTreeNode(next, tree))
	}
	return node
}

// FormatFlow renders the control-flow view. Leaf nodes are omitted; they
// carry no control information. With tree set, loops inside another loop
// are marked "(nested)".
func FormatFlow(w io.Writer, fn *flow.Node, tree *ast.Tree) error {
	if fn == nil {
		_, err := io.WriteString(w, "<no flow>\n")
		return err
	}
	return writeTree(w, flowTreeNode(fn, tree))
}

// FormatComplexity renders the estimate as a short report.
func FormatComplexity(w io.Writer, r *complexity.Report) error {
	if r == nil {
		_, err := io.WriteString(w, "<no complexity estimate>\n")
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "time:  %s\n", r.Time.Class)
	for _, f := range r.Time.Factors {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	fmt.Fprintf(&b, "space: %s\n", r.Space.Class)
	for _, d := range r.Space.Details {
		fmt.Fprintf(&b, "  - %s\n", d)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "suggestion: %s\n  %s\n", s.Title, s.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTimings renders per-stage durations.
func FormatTimings(w io.Writer, r *observ.Report) error {
	if r == nil || len(r.Phases) == 0 {
		return nil
	}
	var b strings.Builder
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "%-12s %8.3fms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(&b, "  %s", p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%-12s %8.3fms\n", "total", r.TotalMS)
	_, err := io.WriteString(w, b.String())
	return err
}
