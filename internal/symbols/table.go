package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Table owns the scope arena of one analysis. An empty table (no scopes)
// is what a failed analysis reports.
type Table struct {
	Scopes *Scopes
}

// NewTable builds a fresh table with an optional capacity hint.
func NewTable(hint uint) *Table {
	scopeCap, err := safecast.Conv[uint32](hint)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	return &Table{Scopes: NewScopes(scopeCap)}
}

// Global returns the root scope, or NoScopeID for an empty table.
func (t *Table) Global() ScopeID {
	if t == nil || t.Scopes.Len() == 0 {
		return NoScopeID
	}
	return 1
}

// Walk visits scopes depth-first from id in declaration order.
func (t *Table) Walk(id ScopeID, depth int, visit func(s *Scope, depth int)) {
	s := t.Scopes.Get(id)
	if s == nil {
		return
	}
	visit(s, depth)
	for _, c := range s.Children {
		t.Walk(c, depth+1, visit)
	}
}
