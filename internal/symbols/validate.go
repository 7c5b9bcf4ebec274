package symbols

import (
	"errors"
	"fmt"
)

// Validate walks the scope arena checking structural invariants. Returns nil
// if everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error
	data := t.Scopes.data

	for idx := 1; idx < len(data); idx++ {
		scope := data[idx]
		id := scope.ID
		if int(id) != idx {
			errs = append(errs, fmt.Errorf("scope at %d has id %d", idx, id))
		}
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", id))
		}
		if (scope.Kind == ScopeGlobal) == scope.Parent.IsValid() {
			errs = append(errs, fmt.Errorf("scope %d (%s) has parent %d", id, scope.Kind, scope.Parent))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(data) || scope.Parent >= id {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", id, scope.Parent))
				continue
			}
			found := false
			for _, child := range data[scope.Parent].Children {
				if child == id {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", id, scope.Parent))
			}
		}
		for _, child := range scope.Children {
			if int(child) >= len(data) || data[child].Parent != id {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", id, child))
			}
		}
		if len(scope.Order) != len(scope.Declarations) {
			errs = append(errs, fmt.Errorf("scope %d order has %d names for %d declarations", id, len(scope.Order), len(scope.Declarations)))
		}
		for _, name := range scope.Order {
			if _, ok := scope.Declarations[name]; !ok {
				errs = append(errs, fmt.Errorf("scope %d orders unknown name %q", id, name))
			}
		}
	}

	return errors.Join(errs...)
}
