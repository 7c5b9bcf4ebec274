// Package flow restates the parse tree as a flow-graph shaped tree whose
// loop and branch nodes carry their condition expressions. There are no
// join points or back edges: every node has exactly one predecessor.
package flow

import (
	"clens/internal/ast"
)

// Role says how a condition steers control.
type Role uint8

const (
	RoleLoop Role = iota + 1
	RoleBranch
)

func (r Role) String() string {
	switch r {
	case RoleLoop:
		return "LOOP"
	case RoleBranch:
		return "BRANCH"
	}
	return "UNKNOWN"
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Condition is the guard of a loop or branch node.
type Condition struct {
	Role       Role   `json:"role" msgpack:"role"`
	Expression string `json:"expression" msgpack:"expression"`
}

// Node mirrors one parse node. ID equals the parse node id.
type Node struct {
	ID         ast.NodeID  `json:"id" msgpack:"id"`
	Kind       ast.Kind    `json:"kind" msgpack:"kind"`
	Conditions []Condition `json:"conditions" msgpack:"conditions"`
	Next       []*Node     `json:"next" msgpack:"next"`
}

// Build returns the flow tree rooted at the tree's PROGRAM node.
func Build(tree *ast.Tree) *Node {
	if tree == nil {
		return nil
	}
	return build(tree, tree.Root)
}

func build(tree *ast.Tree, id ast.NodeID) *Node {
	n := tree.Node(id)
	fn := &Node{
		ID:         n.ID,
		Kind:       n.Kind,
		Conditions: []Condition{},
		Next:       make([]*Node, 0, len(n.Children)),
	}

	if role, ok := roleFor(n.Kind); ok {
		cond := tree.FindChild(id, func(c *ast.Node) bool { return c.Kind.IsCondition() })
		if cond != nil {
			fn.Conditions = append(fn.Conditions, Condition{
				Role:       role,
				Expression: tree.LeafText(cond.ID),
			})
		}
	}

	for _, c := range n.Children {
		fn.Next = append(fn.Next, build(tree, c))
	}
	return fn
}

func roleFor(k ast.Kind) (Role, bool) {
	switch {
	case k.IsLoop():
		return RoleLoop, true
	case k.IsBranch():
		return RoleBranch, true
	}
	return 0, false
}

// Walk visits fn and its successors depth-first.
func Walk(fn *Node, visit func(*Node)) {
	if fn == nil {
		return
	}
	visit(fn)
	for _, next := range fn.Next {
		Walk(next, visit)
	}
}
