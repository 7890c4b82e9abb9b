package visit

import (
	"ramen/internal/ast"
	"ramen/internal/session"
)

// Visitor has one hook per node kind. Hooks return the pass result for the
// node and an error that aborts the traversal.
type Visitor[T any] interface {
	DefaultReturn() T
	Stack() *ScopeStack
	Session() *session.Session

	VisitModule(m *ast.Module) (T, error)
	VisitItemStream(items []*ast.Item) (T, error)
	VisitItem(item *ast.Item) (T, error)
	VisitFunction(item *ast.Item, fn *ast.Function) (T, error)
	VisitValueParameter(p *ast.ValueParameter) (T, error)
	VisitParameter(p *ast.Parameter) (T, error)
	VisitType(t *ast.Type) (T, error)
	VisitBlock(b *ast.Block) (T, error)
	VisitStatementStream(stmts []*ast.Statement) (T, error)
	VisitStatement(stmt *ast.Statement) (T, error)
	VisitReturnStatement(stmt *ast.Statement) (T, error)
	VisitExpression(e *ast.Expression) (T, error)
	VisitLiteralExpression(e *ast.Expression) (T, error)
}

// Base supplies the default hooks. Self must point at the embedding pass so
// that recursion reaches its overrides.
type Base[T any] struct {
	Self   Visitor[T]
	Sess   *session.Session
	Scopes *ScopeStack
	Zero   T
}

// NewBase builds a Base with an empty scope stack; Run seeds it.
func NewBase[T any](sess *session.Session, zero T) Base[T] {
	return Base[T]{
		Sess:   sess,
		Scopes: NewScopeStack(nil),
		Zero:   zero,
	}
}

func (b *Base[T]) DefaultReturn() T { return b.Zero }

func (b *Base[T]) Stack() *ScopeStack { return b.Scopes }

func (b *Base[T]) Session() *session.Session { return b.Sess }

func (b *Base[T]) VisitModule(m *ast.Module) (T, error) { return WalkModule(b.Self, m) }

func (b *Base[T]) VisitItemStream(items []*ast.Item) (T, error) {
	return WalkItemStream(b.Self, items)
}

func (b *Base[T]) VisitItem(item *ast.Item) (T, error) { return WalkItem(b.Self, item) }

func (b *Base[T]) VisitFunction(item *ast.Item, fn *ast.Function) (T, error) {
	return WalkFunction(b.Self, item, fn)
}

func (b *Base[T]) VisitValueParameter(p *ast.ValueParameter) (T, error) {
	return WalkValueParameter(b.Self, p)
}

func (b *Base[T]) VisitParameter(p *ast.Parameter) (T, error) { return WalkParameter(b.Self, p) }

func (b *Base[T]) VisitType(t *ast.Type) (T, error) { return WalkType(b.Self, t) }

func (b *Base[T]) VisitBlock(blk *ast.Block) (T, error) { return WalkBlock(b.Self, blk) }

func (b *Base[T]) VisitStatementStream(stmts []*ast.Statement) (T, error) {
	return WalkStatementStream(b.Self, stmts)
}

func (b *Base[T]) VisitStatement(stmt *ast.Statement) (T, error) {
	return WalkStatement(b.Self, stmt)
}

func (b *Base[T]) VisitReturnStatement(stmt *ast.Statement) (T, error) {
	return WalkReturnStatement(b.Self, stmt)
}

func (b *Base[T]) VisitExpression(e *ast.Expression) (T, error) { return WalkExpression(b.Self, e) }

func (b *Base[T]) VisitLiteralExpression(e *ast.Expression) (T, error) {
	return WalkLiteralExpression(b.Self, e)
}
