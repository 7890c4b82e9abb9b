package symbols

import (
	"errors"
	"fmt"

	"ramen/internal/ast"
)

// Validate walks the registry checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (r *Registry) Validate() error {
	var errs []error
	registered := make(map[*Scope]ast.NodeID, len(r.scopes))

	for _, def := range r.order {
		s := r.scopes[def]
		if !def.IsValid() {
			errs = append(errs, errors.New("scope registered under invalid definition id"))
		}
		if s == nil {
			errs = append(errs, fmt.Errorf("definition %s has nil scope", def))
			continue
		}
		if other, dup := registered[s]; dup {
			errs = append(errs, fmt.Errorf("definitions %s and %s share one scope", other, def))
		}
		registered[s] = def
	}

	for _, def := range r.order {
		s := r.scopes[def]
		if s == nil {
			continue
		}
		// цепочка родителей обязана заканчиваться корнем
		seen := make(map[*Scope]struct{})
		for cur := s; cur != nil; cur = cur.parent {
			if _, loop := seen[cur]; loop {
				errs = append(errs, fmt.Errorf("scope of %s has a parent cycle", def))
				break
			}
			seen[cur] = struct{}{}
		}
		for _, ns := range []Namespace{NsNames, NsTypes} {
			for name, target := range s.table(ns) {
				if !target.IsValid() {
					errs = append(errs, fmt.Errorf("scope of %s binds %s %q to an invalid id", def, ns, name))
				}
			}
		}
	}

	return errors.Join(errs...)
}
