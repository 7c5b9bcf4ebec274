package symbols

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

// NoScopeID marks absence of scope.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }
