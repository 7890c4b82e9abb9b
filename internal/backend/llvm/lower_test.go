package llvm

import (
	"errors"
	"strings"
	"testing"

	lltypes "github.com/llir/llvm/ir/types"
	"github.com/nalgeon/be"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/sema"
	"ramen/internal/session"
	"ramen/internal/source"
	"ramen/internal/symbols"
)

var nospan source.Span

func fnItem(name string, ret *ast.Type, stmts []*ast.Statement, params ...*ast.ValueParameter) *ast.Item {
	body := ast.NewBlock(nospan, stmts...)
	return ast.NewFunctionItem(nospan, ast.NewFunction(name, nospan, params, ret, body))
}

func ret(value uint64) []*ast.Statement {
	return []*ast.Statement{ast.NewReturn(nospan, ast.NewIntLiteral(nospan, value))}
}

func intType(width uint32) *ast.Type { return ast.NewIntType(nospan, width) }

// compile runs the three passes over a unit built from items.
func compile(t *testing.T, items ...*ast.Item) (string, *session.Session, error) {
	t.Helper()
	unit := ast.NewModule("main", nospan, items...)
	sess := session.New(nil, session.Options{})
	root := symbols.NewScope(nil, "")
	be.Err(t, sema.Bind(sess, root, unit, sema.BindOptions{}), nil)
	be.Err(t, sema.Resolve(sess, root, unit, sema.ResolveOptions{}), nil)
	mod, err := Lower(sess, root, unit, Options{})
	if err != nil {
		return "", sess, err
	}
	return mod.String(), sess, nil
}

func lowerCode(t *testing.T, err error) diag.Code {
	t.Helper()
	var lerr *LowerError
	be.True(t, errors.As(err, &lerr))
	return lerr.Code
}

func TestLowerIdentity(t *testing.T) {
	a := ast.NewValueParam(nospan, "a", intType(32), nil)
	out, _, err := compile(t, fnItem("identity", intType(32), ret(15), a))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "define i32 @identity(i32 %a) {"))
	be.True(t, strings.Contains(out, "entry:"))
	be.True(t, strings.Contains(out, "ret i32 15"))
}

func TestLowerUnitFunctionIsVoid(t *testing.T) {
	out, _, err := compile(t, fnItem("f", nil, ret(1)))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "define void @f() {"))
	be.True(t, strings.Contains(out, "ret void"))
}

func TestLowerUnitFunctionWithoutReturn(t *testing.T) {
	out, _, err := compile(t, fnItem("f", ast.NewUnitType(nospan), nil))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "ret void"))
}

func TestLowerValueFunctionWithoutReturn(t *testing.T) {
	_, sess, err := compile(t, fnItem("f", intType(32), nil))
	be.Equal(t, lowerCode(t, err), diag.LowMissingReturn)
	be.Equal(t, sess.ErrorCount(), 1)
}

func TestLowerRematerializesConstants(t *testing.T) {
	out, _, err := compile(t,
		fnItem("wide", intType(64), ret(7)),
		fnItem("narrow", intType(8), ret(255)),
	)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "ret i64 7"))
	be.True(t, strings.Contains(out, "ret i8 255"))
}

func TestLowerWidensLiteralToReturnType(t *testing.T) {
	// 5000000000 не влезает в i32 по умолчанию, но влезает в i64
	out, _, err := compile(t,
		fnItem("big", intType(64), ret(5000000000)),
		fnItem("small", intType(33), ret(1<<32)),
	)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "ret i64 5000000000"))
	be.True(t, strings.Contains(out, "ret i33 4294967296"))
}

func TestLowerWideLiteralOutsideReturn(t *testing.T) {
	stmts := []*ast.Statement{
		ast.NewExprStmt(nospan, ast.NewIntLiteral(nospan, 5000000000)),
		ast.NewReturn(nospan, ast.NewIntLiteral(nospan, 1)),
	}
	_, _, err := compile(t, fnItem("f", intType(64), stmts))
	be.Equal(t, lowerCode(t, err), diag.LowNotCoercible)
}

func TestLowerWideLiteralStillCheckedAgainstReturn(t *testing.T) {
	_, _, err := compile(t, fnItem("f", intType(32), ret(5000000000)))
	be.Equal(t, lowerCode(t, err), diag.LowNotCoercible)
}

func TestLowerDuplicateLinkageName(t *testing.T) {
	exported := func(value uint64) *ast.Item {
		it := fnItem("f", nil, ret(value))
		it.Attrs = []*ast.Attribute{ast.NewMarker(nospan, ast.MarkerExport)}
		return it
	}
	a := ast.NewModuleItem(nospan, ast.NewModule("a", nospan, exported(1)))
	b := ast.NewModuleItem(nospan, ast.NewModule("b", nospan, exported(2)))

	_, sess, err := compile(t, a, b)
	be.Equal(t, lowerCode(t, err), diag.LowBackend)
	be.Equal(t, sess.ErrorCount(), 1)
	be.True(t, strings.Contains(err.Error(), "linkage name `f` is already defined"))
}

func TestLowerValueDoesNotFit(t *testing.T) {
	_, _, err := compile(t, fnItem("f", intType(8), ret(300)))
	be.Equal(t, lowerCode(t, err), diag.LowNotCoercible)
}

func TestLowerBadWidths(t *testing.T) {
	for _, w := range []uint32{0, 1 << 23} {
		_, _, err := compile(t, fnItem("f", intType(w), ret(0)))
		be.Equal(t, lowerCode(t, err), diag.LowBadIntWidth)
	}
}

func TestLowerMarkers(t *testing.T) {
	internal := fnItem("hidden", intType(32), ret(1))
	internal.Attrs = []*ast.Attribute{ast.NewMarker(nospan, ast.MarkerInternal)}
	inline := fnItem("quick", intType(32), ret(2))
	inline.Attrs = []*ast.Attribute{ast.NewMarker(nospan, ast.MarkerInline)}
	exported := fnItem("api", intType(32), ret(3))
	exported.Attrs = []*ast.Attribute{ast.NewMarker(nospan, ast.MarkerExport)}
	nested := fnItem("helper", intType(32), ret(4))
	mod := ast.NewModuleItem(nospan, ast.NewModule("util", nospan, exported, nested))

	out, _, err := compile(t, internal, inline, mod)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "define internal i32 @hidden()"))
	be.True(t, strings.Contains(out, "inlinehint"))
	be.True(t, strings.Contains(out, "define i32 @api()"))
	be.True(t, strings.Contains(out, "define i32 @util$helper()"))
}

func TestLowerNestedFunctionRestoresCursor(t *testing.T) {
	inner := fnItem("inner", intType(8), ret(1))
	stmts := []*ast.Statement{
		ast.NewItemStmt(nospan, inner),
		ast.NewReturn(nospan, ast.NewIntLiteral(nospan, 2)),
	}
	out, _, err := compile(t, fnItem("outer", intType(32), stmts))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "define i8 @outer$inner()"))
	be.True(t, strings.Contains(out, "ret i8 1"))
	be.True(t, strings.Contains(out, "ret i32 2"))
}

func TestLowerRequiresTypes(t *testing.T) {
	unit := ast.NewModule("main", nospan, fnItem("f", nil, ret(1)))
	sess := session.New(nil, session.Options{})
	root := symbols.NewScope(nil, "")
	be.Err(t, sema.Bind(sess, root, unit, sema.BindOptions{}), nil)

	_, err := Lower(sess, root, unit, Options{})
	var rerr *session.ResolutionError
	be.True(t, errors.As(err, &rerr))
	be.Equal(t, rerr.Code, diag.ResMissingType)
}

func TestFuncTypeBifurcation(t *testing.T) {
	params := []lltypes.Type{lltypes.I32}
	v := voidFuncType(params, false)
	be.True(t, lltypes.IsVoid(v.RetType))
	be.Equal(t, len(v.Params), 1)

	r, err := valueFuncType(lltypes.I64, params, true)
	be.Err(t, err, nil)
	be.True(t, r.RetType.Equal(lltypes.I64))
	be.True(t, r.Variadic)

	_, err = valueFuncType(lltypes.Void, params, false)
	be.Err(t, err, errNotFirstClass)
}
