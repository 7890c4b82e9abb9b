package sema

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/session"
	"ramen/internal/types"
)

func bindAndResolve(t *testing.T, unit *ast.Module, opts ResolveOptions) *session.Session {
	t.Helper()
	sess, root := newSession()
	be.Err(t, Bind(sess, root, unit, BindOptions{}), nil)
	be.Err(t, Resolve(sess, root, unit, opts), nil)
	return sess
}

func TestResolveIdentity(t *testing.T) {
	a := param("a", 32)
	ret := ast.NewIntType(nospan, 32)
	item := fnItem("identity", ret, 15, a)
	sess := bindAndResolve(t, newUnit(item), ResolveOptions{})
	in := sess.Types

	got, ok := sess.Type(ret.ID)
	be.True(t, ok)
	be.Equal(t, got, in.Int(32))

	for _, id := range []ast.NodeID{a.ID, a.Param.ID, a.Param.Type.ID} {
		got, ok := sess.Type(id)
		be.True(t, ok)
		be.Equal(t, got, in.Int(32))
	}

	def, _ := sess.RefTarget(item.ID)
	fnType, ok := sess.Type(def)
	be.True(t, ok)
	be.Equal(t, fnType, in.RegisterFn([]types.TypeID{in.Int(32)}, in.Int(32), false))
	mirrored, _ := sess.Type(item.ID)
	be.Equal(t, mirrored, fnType)

	// the parameter variable shares the parameter type
	varDef, _ := sess.RefTarget(a.Param.ID)
	varType, _ := sess.Type(varDef)
	be.Equal(t, varType, in.Int(32))
}

func TestResolveUnitReturn(t *testing.T) {
	item := fnItem("f", nil, 1)
	sess := bindAndResolve(t, newUnit(item), ResolveOptions{})

	def, _ := sess.RefTarget(item.ID)
	fnType, _ := sess.Type(def)
	info, ok := sess.Types.FnInfo(fnType)
	be.True(t, ok)
	be.Equal(t, info.Result, sess.Types.Builtins().Unit)
	be.Equal(t, len(info.Params), 0)
	be.Equal(t, info.Variadic, false)
}

func TestResolveTypesVerbatim(t *testing.T) {
	wide := ast.NewIntType(nospan, 24)
	unit := ast.NewUnitType(nospan)
	item := fnItem("f", unit, 0, ast.NewValueParam(nospan, "x", wide, nil))
	sess := bindAndResolve(t, newUnit(item), ResolveOptions{})

	got, _ := sess.Type(wide.ID)
	be.Equal(t, sess.Types.Format(got), "int24")
	got, _ = sess.Type(unit.ID)
	be.Equal(t, got, sess.Types.Builtins().Unit)
}

func TestResolveLiteralWidth(t *testing.T) {
	item := fnItem("f", ast.NewIntType(nospan, 64), 7)
	lit := item.Function.Body.Stmts[0].Expr

	sess := bindAndResolve(t, newUnit(item), ResolveOptions{})
	got, _ := sess.Type(lit.ID)
	be.Equal(t, got, sess.Types.Int(DefaultLiteralWidth))

	item = fnItem("f", ast.NewIntType(nospan, 64), 7)
	lit = item.Function.Body.Stmts[0].Expr
	sess = bindAndResolve(t, newUnit(item), ResolveOptions{LiteralWidth: 64})
	got, _ = sess.Type(lit.ID)
	be.Equal(t, got, sess.Types.Int(64))
}

func TestResolveDefaultInitializerIsWalked(t *testing.T) {
	def := ast.NewIntLiteral(nospan, 3)
	item := fnItem("f", nil, 0, ast.NewValueParam(nospan, "x", ast.NewIntType(nospan, 8), def))
	sess := bindAndResolve(t, newUnit(item), ResolveOptions{})

	_, ok := sess.Type(def.ID)
	be.True(t, ok)
}

func TestResolveWithoutBindingFails(t *testing.T) {
	sess, root := newSession()
	err := Resolve(sess, root, newUnit(fnItem("f", nil, 0)), ResolveOptions{})

	var rerr *session.ResolutionError
	be.True(t, errors.As(err, &rerr))
	be.Equal(t, rerr.Code, diag.ResUnboundReference)
	be.Equal(t, sess.ErrorCount(), 1)
}

func TestResolveInvalidAnnotation(t *testing.T) {
	bad := &ast.Type{Kind: ast.TypeInvalid, ID: ast.NextNodeID()}
	item := fnItem("f", bad, 0)
	unit := newUnit(item)
	sess, root := newSession()
	be.Err(t, Bind(sess, root, unit, BindOptions{}), nil)

	err := Resolve(sess, root, unit, ResolveOptions{})
	var rerr *session.ResolutionError
	be.True(t, errors.As(err, &rerr))
	be.Equal(t, rerr.Code, diag.ResMissingType)
}
