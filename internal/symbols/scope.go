package symbols

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"ramen/internal/ast"
)

// Namespace selects one of the two independent name tables of a scope.
type Namespace uint8

const (
	// NsNames holds values, functions and modules.
	NsNames Namespace = iota
	// NsTypes holds type names.
	NsTypes
)

func (ns Namespace) String() string {
	switch ns {
	case NsNames:
		return "names"
	case NsTypes:
		return "types"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope. A scope only knows its parent; children are
// reachable through the Registry. Scopes are never deleted.
type Scope struct {
	parent    *Scope
	debugName string
	names     map[string]ast.NodeID
	types     map[string]ast.NodeID
}

// NewScope creates a scope. An empty debugName means the scope does not
// contribute to qualified names.
func NewScope(parent *Scope, debugName string) *Scope {
	return &Scope{
		parent:    parent,
		debugName: debugName,
		names:     make(map[string]ast.NodeID),
		types:     make(map[string]ast.NodeID),
	}
}

func (s *Scope) Parent() *Scope { return s.parent }

func (s *Scope) DebugName() string { return s.debugName }

// IsRoot reports whether the scope has no parent.
func (s *Scope) IsRoot() bool { return s.parent == nil }

func (s *Scope) table(ns Namespace) map[string]ast.NodeID {
	if ns == NsTypes {
		return s.types
	}
	return s.names
}

// key нормализует идентификатор в NFC, чтобы визуально одинаковые имена совпадали.
func key(name string) string {
	return norm.NFC.String(name)
}

// Define binds name to def in this scope. The last writer wins; the previous
// binding, if any, is returned so callers can report duplicates.
func (s *Scope) Define(ns Namespace, name string, def ast.NodeID) (prev ast.NodeID, replaced bool) {
	t := s.table(ns)
	k := key(name)
	prev, replaced = t[k]
	t[k] = def
	return prev, replaced
}

func (s *Scope) DefineName(name string, def ast.NodeID) (ast.NodeID, bool) {
	return s.Define(NsNames, name, def)
}

func (s *Scope) DefineType(name string, def ast.NodeID) (ast.NodeID, bool) {
	return s.Define(NsTypes, name, def)
}

// LookupLocal consults this scope only.
func (s *Scope) LookupLocal(ns Namespace, name string) (ast.NodeID, bool) {
	def, ok := s.table(ns)[key(name)]
	return def, ok
}

// Search looks name up in this scope, then along the parent chain. Only the
// root can answer "not found".
func (s *Scope) Search(ns Namespace, name string) (ast.NodeID, bool) {
	k := key(name)
	for cur := s; cur != nil; cur = cur.parent {
		if def, ok := cur.table(ns)[k]; ok {
			return def, true
		}
	}
	return ast.NoNodeID, false
}

func (s *Scope) SearchName(name string) (ast.NodeID, bool) {
	return s.Search(NsNames, name)
}

func (s *Scope) SearchType(name string) (ast.NodeID, bool) {
	return s.Search(NsTypes, name)
}

// Names returns the locally defined names of ns in sorted order.
func (s *Scope) Names(ns Namespace) []string {
	t := s.table(ns)
	out := make([]string, 0, len(t))
	for name := range t {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Depth counts the parents above s.
func (s *Scope) Depth() int {
	d := 0
	for cur := s.parent; cur != nil; cur = cur.parent {
		d++
	}
	return d
}
