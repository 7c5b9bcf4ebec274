package ast

// Node is one vertex of the parse tree. Children are owned; Parent is a
// non-owning back-reference used for upward lookups only.
type Node struct {
	ID       NodeID
	Kind     Kind
	Value    string // текст токена для листьев, пусто для внутренних узлов
	Children []NodeID
	Parent   NodeID
	// Line and Column locate the token that opened the node (1-based, 0 if none).
	Line   uint32
	Column uint32
}

// IsLeaf reports whether the node wraps a token.
func (n *Node) IsLeaf() bool { return n.Kind.IsLeaf() }
