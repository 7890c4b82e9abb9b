package sema

import (
	"ramen/internal/ast"
	"ramen/internal/session"
	"ramen/internal/source"
	"ramen/internal/symbols"
	"ramen/internal/visit"
)

// BindOptions configures name binding.
type BindOptions struct {
	// SymbolSeparator joins scope names into qualified symbols ("." by default).
	SymbolSeparator string
}

// BindingPass creates a definition and a scope for every module and function,
// defines their names in the enclosing scope and records the qualified
// symbol of each function. Parameters become variables of their function.
// Problems are printed through the session and surface at the end of the
// pass; they never stop the walk.
type BindingPass struct {
	visit.Base[struct{}]
	opts  BindOptions
	unit  *ast.Module
	spans map[ast.NodeID]source.Span // def -> span of its name
}

func NewBindingPass(sess *session.Session, opts BindOptions) *BindingPass {
	if opts.SymbolSeparator == "" {
		opts.SymbolSeparator = "."
	}
	p := &BindingPass{
		Base:  visit.NewBase(sess, struct{}{}),
		opts:  opts,
		spans: make(map[ast.NodeID]source.Span),
	}
	p.Self = p
	return p
}

// Bind runs name binding over the compilation unit m.
func Bind(sess *session.Session, root *symbols.Scope, m *ast.Module, opts BindOptions) error {
	p := NewBindingPass(sess, opts)
	p.unit = m
	_, err := visit.Run("bind", visit.Visitor[struct{}](p), root, m)
	return err
}

func (p *BindingPass) VisitModule(m *ast.Module) (struct{}, error) {
	sess := p.Session()
	def := sess.AllocDef(m.ID)
	sess.SetDef(def, session.DefModule)

	enclosing := p.Stack().Current()
	// единица компиляции не добавляет префикс к именам
	debugName := m.Name
	if m == p.unit {
		debugName = ""
	}
	sess.Scopes.Add(def, enclosing, debugName)
	if m.Name != "" {
		p.define(enclosing, m.Name, def, m.Span)
	}
	return visit.WalkModule(p, m)
}

func (p *BindingPass) VisitFunction(item *ast.Item, fn *ast.Function) (struct{}, error) {
	sess := p.Session()
	p.checkAttributes(item)

	def := sess.AllocDef(item.ID)
	sess.SetDef(def, session.DefFunction)

	enclosing := p.Stack().Current()
	sess.Scopes.Add(def, enclosing, fn.Name)
	p.define(enclosing, fn.Name, def, fn.NameSpan)
	sess.SetSymbol(def, p.Stack().PrefixName(p.opts.SymbolSeparator, fn.Name))

	return visit.WalkFunction(p, item, fn)
}

func (p *BindingPass) VisitParameter(param *ast.Parameter) (struct{}, error) {
	sess := p.Session()
	def := sess.AllocDef(param.ID)
	sess.SetDef(def, session.DefVariable)
	p.define(p.Stack().Current(), param.Name, def, param.Span)
	return visit.WalkParameter(p, param)
}

// define binds name in scope; a name already defined in that very scope is
// reported, and the new definition wins.
func (p *BindingPass) define(scope *symbols.Scope, name string, def ast.NodeID, at source.Span) {
	prev, replaced := scope.DefineName(name, def)
	p.spans[def] = at
	if replaced {
		p.Session().PrintDiagnostic(session.DuplicateDefinition(name, at, p.spans[prev]))
	}
}

func (p *BindingPass) checkAttributes(item *ast.Item) {
	for _, attr := range item.Attrs {
		if attr.Kind == ast.AttrMarker && ast.IsKnownMarker(attr.Name) {
			continue
		}
		p.Session().PrintDiagnostic(session.UnknownAttribute(attr.Name, attr.Span))
	}
}
