package sema

import (
	"ramen/internal/ast"
	"ramen/internal/session"
	"ramen/internal/symbols"
	"ramen/internal/types"
	"ramen/internal/visit"
)

// DefaultLiteralWidth is the bit width given to integer literals.
const DefaultLiteralWidth uint32 = 32

// ResolveOptions configures type resolution.
type ResolveOptions struct {
	LiteralWidth uint32
}

// TypeResolutionPass maps type annotations to interned types and gives every
// parameter, literal and function its type. A function type is stored on the
// definition and mirrored onto the item.
type TypeResolutionPass struct {
	visit.Base[struct{}]
	literalWidth uint32
}

func NewTypeResolutionPass(sess *session.Session, opts ResolveOptions) *TypeResolutionPass {
	if opts.LiteralWidth == 0 {
		opts.LiteralWidth = DefaultLiteralWidth
	}
	p := &TypeResolutionPass{
		Base:         visit.NewBase(sess, struct{}{}),
		literalWidth: opts.LiteralWidth,
	}
	p.Self = p
	return p
}

// Resolve runs type resolution over m. Binding must have run first.
func Resolve(sess *session.Session, root *symbols.Scope, m *ast.Module, opts ResolveOptions) error {
	p := NewTypeResolutionPass(sess, opts)
	_, err := visit.Run("resolve", visit.Visitor[struct{}](p), root, m)
	return err
}

func (p *TypeResolutionPass) VisitType(t *ast.Type) (struct{}, error) {
	in := p.Session().Types
	switch t.Kind {
	case ast.TypeUnit:
		p.Session().SetType(t.ID, in.Builtins().Unit)
	case ast.TypeInteger:
		p.Session().SetType(t.ID, in.Int(t.Width))
	default:
		return struct{}{}, session.MissingType(t.ID, "annotation").At(t.Span)
	}
	return struct{}{}, nil
}

func (p *TypeResolutionPass) VisitParameter(param *ast.Parameter) (struct{}, error) {
	sess := p.Session()
	if _, err := visit.WalkParameter(p, param); err != nil {
		return struct{}{}, err
	}
	if param.Type == nil || !sess.TryBindType(param.ID, param.Type.ID) {
		return struct{}{}, session.MissingType(param.ID, "parameter").At(param.Span)
	}
	// переменная параметра получает тот же тип
	if def, err := sess.RefTarget(param.ID); err == nil {
		sess.TryBindType(def, param.ID)
	}
	return struct{}{}, nil
}

func (p *TypeResolutionPass) VisitValueParameter(vp *ast.ValueParameter) (struct{}, error) {
	if _, err := visit.WalkValueParameter(p, vp); err != nil {
		return struct{}{}, err
	}
	if !p.Session().TryBindType(vp.ID, vp.Param.ID) {
		return struct{}{}, session.MissingType(vp.Param.ID, "parameter").At(vp.Span)
	}
	return struct{}{}, nil
}

func (p *TypeResolutionPass) VisitLiteralExpression(e *ast.Expression) (struct{}, error) {
	if e.Literal != nil && e.Literal.Kind == ast.LitInteger {
		p.Session().SetType(e.ID, p.Session().Types.Int(p.literalWidth))
	}
	return struct{}{}, nil
}

func (p *TypeResolutionPass) VisitFunction(item *ast.Item, fn *ast.Function) (struct{}, error) {
	if _, err := visit.WalkFunction(p, item, fn); err != nil {
		return struct{}{}, err
	}
	sess := p.Session()

	params := make([]types.TypeID, 0, len(fn.Params))
	for _, vp := range fn.Params {
		t, ok := sess.Type(vp.ID)
		if !ok {
			return struct{}{}, session.MissingType(vp.ID, "parameter").At(vp.Span)
		}
		params = append(params, t)
	}

	result := sess.Types.Builtins().Unit
	if fn.ReturnType != nil {
		t, ok := sess.Type(fn.ReturnType.ID)
		if !ok {
			return struct{}{}, session.MissingType(fn.ReturnType.ID, "return annotation").At(fn.ReturnType.Span)
		}
		result = t
	}

	def, err := sess.RefTarget(item.ID)
	if err != nil {
		return struct{}{}, session.UnboundReference(item.ID).At(item.Span)
	}
	sess.SetType(def, sess.Types.RegisterFn(params, result, false))
	sess.TryBindType(item.ID, def)
	return struct{}{}, nil
}
