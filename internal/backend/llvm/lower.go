package llvm

import (
	"fmt"
	"math/big"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"ramen/internal/ast"
	"ramen/internal/session"
	"ramen/internal/source"
	"ramen/internal/symbols"
	"ramen/internal/trace"
	"ramen/internal/visit"
)

// Options configures lowering.
type Options struct {
	// LinkageSeparator joins scope names into linkage names ("$" by default).
	LinkageSeparator string
}

// cursor is the insertion state of the function being lowered.
type cursor struct {
	fn    *ir.Func
	name  string
	block *ir.Block // nil once the block is terminated
	ret   lltypes.Type
}

// LoweringPass turns bound and typed functions into an LLVM module.
type LoweringPass struct {
	visit.Base[value.Value]
	opts Options
	mod  *ir.Module
	cur  cursor
	// linkage name -> span имени первой функции с этим именем
	emitted map[string]source.Span
	// литерал сейчас вычисляется как возвращаемое значение
	returning bool
}

func NewLoweringPass(sess *session.Session, moduleName string, opts Options) *LoweringPass {
	if opts.LinkageSeparator == "" {
		opts.LinkageSeparator = "$"
	}
	mod := ir.NewModule()
	mod.SourceFilename = moduleName
	p := &LoweringPass{
		Base: visit.NewBase[value.Value](sess, nil),
		opts:    opts,
		mod:     mod,
		emitted: make(map[string]source.Span),
	}
	p.Self = p
	return p
}

// Module returns the module built so far.
func (p *LoweringPass) Module() *ir.Module { return p.mod }

// Lower runs the lowering pass over m and returns the finished module.
// Binding and type resolution must have run first.
func Lower(sess *session.Session, root *symbols.Scope, m *ast.Module, opts Options) (*ir.Module, error) {
	p := NewLoweringPass(sess, m.Name, opts)
	if _, err := visit.Run("lower", visit.Visitor[value.Value](p), root, m); err != nil {
		return nil, err
	}
	return p.mod, nil
}

func (p *LoweringPass) linkageName(item *ast.Item, fn *ast.Function) string {
	if item.HasMarker(ast.MarkerExport) {
		return fn.Name
	}
	// скоуп функции ещё не на стеке: префикс даёт только окружение
	return p.Stack().PrefixName(p.opts.LinkageSeparator, fn.Name)
}

func (p *LoweringPass) VisitFunction(item *ast.Item, fn *ast.Function) (value.Value, error) {
	sess := p.Session()
	def, err := sess.RefTarget(item.ID)
	if err != nil {
		return nil, session.UnboundReference(item.ID).At(item.Span)
	}
	fnType, ok := sess.Type(def)
	if !ok {
		return nil, session.MissingType(def, "function").At(item.Span)
	}
	info, ok := sess.Types.FnInfo(fnType)
	if !ok {
		return nil, errBackend(item.ID, item.Span, fmt.Sprintf("`%s` does not have a function type", fn.Name))
	}
	sig, err := p.lowerFnType(info, item.ID, fn.NameSpan)
	if err != nil {
		return nil, err
	}

	name := p.linkageName(item, fn)
	if prev, dup := p.emitted[name]; dup {
		return nil, errDuplicateLinkage(item.ID, fn.NameSpan, name, prev)
	}
	p.emitted[name] = fn.NameSpan
	span := trace.Begin(sess.Tracer(), trace.ScopeFunction, "fn:"+name, sess.TraceParent())
	defer span.End("")

	params := make([]*ir.Param, len(sig.Params))
	for i, pt := range sig.Params {
		params[i] = ir.NewParam(fn.Params[i].Param.Name, pt)
	}
	f := p.mod.NewFunc(name, sig.RetType, params...)
	f.Sig.Variadic = sig.Variadic
	if item.HasMarker(ast.MarkerInternal) {
		f.Linkage = enum.LinkageInternal
	}
	if item.HasMarker(ast.MarkerInline) {
		f.FuncAttrs = append(f.FuncAttrs, enum.FuncAttrInlineHint)
	}

	// вложенные функции сохраняют курсор внешней
	saved := p.cur
	defer func() { p.cur = saved }()
	p.cur = cursor{fn: f, name: fn.Name, block: f.NewBlock("entry"), ret: sig.RetType}

	if _, err := visit.WalkFunction(p, item, fn); err != nil {
		return nil, err
	}
	if p.cur.block != nil {
		if !lltypes.IsVoid(p.cur.ret) {
			return nil, errMissingReturn(item.ID, fn.NameSpan, fn.Name)
		}
		p.cur.block.NewRet(nil)
	}
	span.WithExtra("blocks", fmt.Sprint(len(f.Blocks)))
	return f, nil
}

func (p *LoweringPass) VisitReturnStatement(stmt *ast.Statement) (value.Value, error) {
	if p.cur.block == nil {
		// код после return недостижим
		return nil, nil
	}
	if lltypes.IsVoid(p.cur.ret) {
		if stmt.Expr != nil {
			if _, err := p.Self.VisitExpression(stmt.Expr); err != nil {
				return nil, err
			}
		}
		p.cur.block.NewRet(nil)
		p.cur.block = nil
		return nil, nil
	}
	if stmt.Expr == nil {
		return nil, errNotCoercible(stmt.ID, stmt.Span,
			fmt.Sprintf("`%s` must return a value of type %s", p.cur.name, p.cur.ret.LLString()))
	}
	// ширину литерала проверит coerce по типу возврата
	p.returning = true
	v, err := p.Self.VisitExpression(stmt.Expr)
	p.returning = false
	if err != nil {
		return nil, err
	}
	v, err = p.coerce(v, p.cur.ret, stmt.Expr)
	if err != nil {
		return nil, err
	}
	p.cur.block.NewRet(v)
	p.cur.block = nil
	return nil, nil
}

func (p *LoweringPass) VisitLiteralExpression(e *ast.Expression) (value.Value, error) {
	if e.Literal == nil || e.Literal.Kind != ast.LitInteger {
		return nil, errBackend(e.ID, e.Span, "unsupported literal")
	}
	t, ok := p.Session().Type(e.ID)
	if !ok {
		return nil, session.MissingType(e.ID, "literal").At(e.Span)
	}
	llt, err := p.lowerType(t, e.ID, e.Span)
	if err != nil {
		return nil, err
	}
	intT, ok := llt.(*lltypes.IntType)
	if !ok {
		return nil, errNotValueType(e.ID, e.Span, "literal type "+llt.LLString())
	}
	x := new(big.Int).SetUint64(e.Literal.Value)
	if !p.returning && !fits(x, intT) {
		return nil, errNotCoercible(e.ID, e.Span,
			fmt.Sprintf("literal %d does not fit in %s", e.Literal.Value, intT.LLString()))
	}
	return &constant.Int{Typ: intT, X: x}, nil
}

// coerce brings v to the declared return representation. Integer constants
// are re-materialized at the target width when the value fits.
func (p *LoweringPass) coerce(v value.Value, target lltypes.Type, e *ast.Expression) (value.Value, error) {
	if v == nil {
		return nil, errNotValueType(e.ID, e.Span, "expression without a value")
	}
	c, isConst := v.(*constant.Int)
	intT, isInt := target.(*lltypes.IntType)
	if isConst && isInt {
		if !fits(c.X, intT) {
			return nil, errNotCoercible(e.ID, e.Span,
				fmt.Sprintf("value %s does not fit in return type %s", c.X, intT.LLString()))
		}
		if c.Typ.Equal(intT) {
			return c, nil
		}
		return &constant.Int{Typ: intT, X: new(big.Int).Set(c.X)}, nil
	}
	if v.Type().Equal(target) {
		return v, nil
	}
	return nil, errNotCoercible(e.ID, e.Span,
		fmt.Sprintf("cannot return %s from `%s`, declared to return %s", v.Type().LLString(), p.cur.name, target.LLString()))
}

// fits reports whether the non-negative x is representable in t bits.
func fits(x *big.Int, t *lltypes.IntType) bool {
	return x.Sign() >= 0 && uint64(x.BitLen()) <= t.BitSize
}
