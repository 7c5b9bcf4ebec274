package symbols

import (
	"clens/internal/ast"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeGlobal            // одна на дерево
	ScopeFor
	ScopeIf
	ScopeWhile
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFor:
		return "for"
	case ScopeIf:
		return "if"
	case ScopeWhile:
		return "while"
	default:
		return "invalid"
	}
}

func (k ScopeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// scopeKindFor maps a control statement kind to the scope it opens.
func scopeKindFor(k ast.Kind) (ScopeKind, bool) {
	switch k {
	case ast.KindForStatement:
		return ScopeFor, true
	case ast.KindIfStatement:
		return ScopeIf, true
	case ast.KindWhileStatement:
		return ScopeWhile, true
	}
	return ScopeInvalid, false
}

// Declaration records one variable declaration.
type Declaration struct {
	Name         string     `json:"name" msgpack:"name"`
	DeclaredType string     `json:"declaredType" msgpack:"declaredType"`
	Initialized  bool       `json:"initialized" msgpack:"initialized"`
	DeclLine     uint32     `json:"declLine" msgpack:"declLine"`
	DeclColumn   uint32     `json:"declColumn" msgpack:"declColumn"`
	Node         ast.NodeID `json:"-" msgpack:"-"`
}

// Scope models a lexical scope with a parent-child hierarchy. A later
// declaration of the same name replaces the earlier one in place; Order
// keeps first-declaration order for deterministic output.
type Scope struct {
	ID           ScopeID
	Kind         ScopeKind
	Owner        ast.NodeID
	Parent       ScopeID
	Declarations map[string]Declaration
	Order        []string
	Children     []ScopeID
}

// Declare records decl, overwriting any same-named declaration.
func (s *Scope) Declare(decl Declaration) {
	if _, ok := s.Declarations[decl.Name]; !ok {
		s.Order = append(s.Order, decl.Name)
	}
	s.Declarations[decl.Name] = decl
}

// Ordered returns declarations in first-declaration order.
func (s *Scope) Ordered() []Declaration {
	out := make([]Declaration, 0, len(s.Order))
	for _, name := range s.Order {
		out = append(out, s.Declarations[name])
	}
	return out
}
