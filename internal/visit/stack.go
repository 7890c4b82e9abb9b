package visit

import (
	"strings"

	"ramen/internal/symbols"
)

// ScopeStack is the chain of scopes entered by the current traversal.
// The bottom entry is the root scope handed to Run.
type ScopeStack struct {
	scopes []*symbols.Scope
}

func NewScopeStack(root *symbols.Scope) *ScopeStack {
	st := &ScopeStack{}
	st.Reset(root)
	return st
}

// Reset drops everything and starts over from root.
func (st *ScopeStack) Reset(root *symbols.Scope) {
	st.scopes = st.scopes[:0]
	if root != nil {
		st.scopes = append(st.scopes, root)
	}
}

func (st *ScopeStack) Push(s *symbols.Scope) {
	st.scopes = append(st.scopes, s)
}

// Pop removes the current scope. Popping an empty stack is a bug in the
// traversal.
func (st *ScopeStack) Pop() *symbols.Scope {
	if len(st.scopes) == 0 {
		panic("visit: pop on empty scope stack")
	}
	top := st.scopes[len(st.scopes)-1]
	st.scopes = st.scopes[:len(st.scopes)-1]
	return top
}

// Current returns the innermost scope, nil when the stack is empty.
func (st *ScopeStack) Current() *symbols.Scope {
	if len(st.scopes) == 0 {
		return nil
	}
	return st.scopes[len(st.scopes)-1]
}

func (st *ScopeStack) Len() int { return len(st.scopes) }

// PrefixName joins the debug names of all named scopes on the stack, outer
// first, followed by name. Unnamed scopes are skipped.
func (st *ScopeStack) PrefixName(sep, name string) string {
	parts := make([]string, 0, len(st.scopes)+1)
	for _, s := range st.scopes {
		if s.DebugName() != "" {
			parts = append(parts, s.DebugName())
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, sep)
}
