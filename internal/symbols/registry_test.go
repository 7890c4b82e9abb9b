package symbols

import (
	"testing"

	"ramen/internal/ast"
)

func TestRegistryGetOrNewIsIdempotent(t *testing.T) {
	r := NewRegistry()
	root := NewScope(nil, "")
	def := ast.NextNodeID()

	s1 := r.GetOrNew(def, root)
	s2 := r.GetOrNew(def, nil)
	if s1 != s2 {
		t.Fatalf("GetOrNew must return the existing scope")
	}
	if s1.Parent() != root {
		t.Fatalf("parent must come from the first call")
	}
	if r.Len() != 1 {
		t.Fatalf("expected one registered scope, got %d", r.Len())
	}
}

func TestRegistryFunctionsUnderModule(t *testing.T) {
	r := NewRegistry()
	root := NewScope(nil, "")
	modDef := ast.NextNodeID()
	mod := r.Add(modDef, root, "")

	const n = 5
	defs := make([]ast.NodeID, n)
	names := []string{"a", "b", "c", "d", "e"}
	for i := range n {
		defs[i] = ast.NextNodeID()
		mod.DefineName(names[i], defs[i])
		r.Add(defs[i], mod, names[i])
	}

	if got := len(mod.Names(NsNames)); got != n {
		t.Fatalf("expected %d names in module scope, got %d", n, got)
	}
	for i, def := range defs {
		s, ok := r.Get(def)
		if !ok {
			t.Fatalf("missing scope for %s", names[i])
		}
		if s.Parent() != mod {
			t.Fatalf("scope of %s must be parented at the module scope", names[i])
		}
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateDetectsInvalidBinding(t *testing.T) {
	r := NewRegistry()
	s := r.Add(ast.NextNodeID(), nil, "m")
	s.DefineName("broken", ast.NoNodeID)
	if err := r.Validate(); err == nil {
		t.Fatalf("expected validation error for invalid binding")
	}
}
