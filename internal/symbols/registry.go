package symbols

import "ramen/internal/ast"

// Registry maps definition ids to their scopes. Exactly one scope exists per
// definition.
type Registry struct {
	scopes map[ast.NodeID]*Scope
	order  []ast.NodeID
}

func NewRegistry() *Registry {
	return &Registry{scopes: make(map[ast.NodeID]*Scope)}
}

// GetOrNew returns the scope of def, creating an unnamed one under parent
// when none exists yet.
func (r *Registry) GetOrNew(def ast.NodeID, parent *Scope) *Scope {
	if s, ok := r.scopes[def]; ok {
		return s
	}
	return r.insert(def, NewScope(parent, ""))
}

// Add registers a fresh scope for def. Registering the same definition twice
// is a compiler bug; with debug assertions on it panics, otherwise the
// existing scope is returned.
func (r *Registry) Add(def ast.NodeID, parent *Scope, debugName string) *Scope {
	if s, ok := r.scopes[def]; ok {
		assertf(false, "symbols: scope for definition %s registered twice (existing %q, new %q)", def, s.debugName, debugName)
		return s
	}
	return r.insert(def, NewScope(parent, debugName))
}

func (r *Registry) insert(def ast.NodeID, s *Scope) *Scope {
	r.scopes[def] = s
	r.order = append(r.order, def)
	return s
}

// Get returns the scope registered for def.
func (r *Registry) Get(def ast.NodeID) (*Scope, bool) {
	s, ok := r.scopes[def]
	return s, ok
}

func (r *Registry) Len() int { return len(r.order) }

// Defs returns definition ids in registration order.
func (r *Registry) Defs() []ast.NodeID {
	out := make([]ast.NodeID, len(r.order))
	copy(out, r.order)
	return out
}
