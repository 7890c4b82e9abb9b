package sema

import (
	"ramen/internal/ast"
	"ramen/internal/session"
	"ramen/internal/source"
	"ramen/internal/symbols"
)

var nospan source.Span

// fnItem builds `func name(params): ret => value`; ret may be nil.
func fnItem(name string, ret *ast.Type, value uint64, params ...*ast.ValueParameter) *ast.Item {
	body := ast.NewBlock(nospan, ast.NewReturn(nospan, ast.NewIntLiteral(nospan, value)))
	return ast.NewFunctionItem(nospan, ast.NewFunction(name, nospan, params, ret, body))
}

func param(name string, width uint32) *ast.ValueParameter {
	return ast.NewValueParam(nospan, name, ast.NewIntType(nospan, width), nil)
}

func newUnit(items ...*ast.Item) *ast.Module {
	return ast.NewModule("main", nospan, items...)
}

func newSession() (*session.Session, *symbols.Scope) {
	return session.New(nil, session.Options{}), symbols.NewScope(nil, "")
}

// scopeOf returns the scope registered for the definition behind node.
func scopeOf(sess *session.Session, node ast.NodeID) *symbols.Scope {
	def, err := sess.RefTarget(node)
	if err != nil {
		return nil
	}
	s, _ := sess.Scopes.Get(def)
	return s
}
