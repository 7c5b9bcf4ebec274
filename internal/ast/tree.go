package ast

import (
	"strings"

	"clens/internal/token"
)

// Tree is an arena-backed parse tree with exactly one PROGRAM root.
type Tree struct {
	nodes *Arena[Node]
	Root  NodeID
}

// NewTree creates a tree holding only its PROGRAM root (always NodeID 1).
func NewTree(capHint uint) *Tree {
	t := &Tree{nodes: NewArena[Node](capHint)}
	t.Root = t.alloc(KindProgram, "", 0, 0)
	return t
}

func (t *Tree) alloc(kind Kind, value string, line, col uint32) NodeID {
	id := NodeID(t.nodes.Allocate(Node{Kind: kind, Value: value, Line: line, Column: col}))
	t.nodes.Get(uint32(id)).ID = id
	return id
}

// NewNode allocates a detached interior node. Attach it with AddChild.
func (t *Tree) NewNode(kind Kind, line, col uint32) NodeID {
	return t.alloc(kind, "", line, col)
}

// NewLeaf allocates a detached leaf for tok.
func (t *Tree) NewLeaf(tok token.Token) NodeID {
	return t.alloc(LeafKind(tok.Kind), tok.Text, tok.Line, tok.Column)
}

// AddChild appends child to parent's children and sets the back-reference.
func (t *Tree) AddChild(parent, child NodeID) {
	p := t.Node(parent)
	c := t.Node(child)
	if p == nil || c == nil {
		return
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// Len reports how many nodes the tree holds.
func (t *Tree) Len() int {
	return int(t.nodes.Len())
}

// Nodes returns the arena contents in id order. READONLY.
func (t *Tree) Nodes() []Node {
	return t.nodes.Slice()
}

// Walk visits nodes depth-first in pre-order starting at id. Returning false
// from visit skips that node's children.
func (t *Tree) Walk(id NodeID, visit func(n *Node) bool) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, visit)
	}
}

// Leaves returns the leaf nodes under id in tree order.
func (t *Tree) Leaves(id NodeID) []*Node {
	var out []*Node
	t.Walk(id, func(n *Node) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// LeafText joins the values of the leaves under id with single spaces.
func (t *Tree) LeafText(id NodeID) string {
	leaves := t.Leaves(id)
	parts := make([]string, len(leaves))
	for i, l := range leaves {
		parts[i] = l.Value
	}
	return strings.Join(parts, " ")
}

// FindChild returns the first direct child of id matching pred.
func (t *Tree) FindChild(id NodeID, pred func(*Node) bool) *Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if cn := t.Node(c); cn != nil && pred(cn) {
			return cn
		}
	}
	return nil
}

// Ancestors calls fn for each ancestor of id from the parent upward until fn
// returns false or the root has been visited.
func (t *Tree) Ancestors(id NodeID, fn func(*Node) bool) {
	n := t.Node(id)
	for n != nil && n.Parent.IsValid() {
		n = t.Node(n.Parent)
		if n == nil || !fn(n) {
			return
		}
	}
}
