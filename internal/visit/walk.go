package visit

import (
	"fmt"

	"ramen/internal/ast"
	"ramen/internal/source"
)

// WithScope makes the scope registered for the definition behind node the
// current one while body runs. The scope is popped on every exit path.
func WithScope[T any](v Visitor[T], node ast.NodeID, at source.Span, body func() (T, error)) (T, error) {
	sess := v.Session()
	def, err := sess.RefTarget(node)
	if err != nil {
		return v.DefaultReturn(), withSpan(err, at)
	}
	scope, ok := sess.Scopes.Get(def)
	if !ok {
		return v.DefaultReturn(), fmt.Errorf("visit: definition %s of node %s has no scope", def, node)
	}
	st := v.Stack()
	st.Push(scope)
	defer st.Pop()
	return body()
}

func WalkModule[T any](v Visitor[T], m *ast.Module) (T, error) {
	return WithScope(v, m.ID, m.Span, func() (T, error) {
		return v.VisitItemStream(m.Items)
	})
}

func WalkItemStream[T any](v Visitor[T], items []*ast.Item) (T, error) {
	for _, item := range items {
		if _, err := v.VisitItem(item); err != nil {
			return v.DefaultReturn(), err
		}
	}
	return v.DefaultReturn(), nil
}

func WalkItem[T any](v Visitor[T], item *ast.Item) (T, error) {
	switch item.Kind {
	case ast.ItemModule:
		return v.VisitModule(item.Module)
	case ast.ItemFunction:
		return v.VisitFunction(item, item.Function)
	}
	return v.DefaultReturn(), nil
}

// WalkFunction visits parameters, the return annotation and the body with
// the function scope active.
func WalkFunction[T any](v Visitor[T], item *ast.Item, fn *ast.Function) (T, error) {
	return WithScope(v, item.ID, item.Span, func() (T, error) {
		for _, p := range fn.Params {
			if _, err := v.VisitValueParameter(p); err != nil {
				return v.DefaultReturn(), err
			}
		}
		if fn.ReturnType != nil {
			if _, err := v.VisitType(fn.ReturnType); err != nil {
				return v.DefaultReturn(), err
			}
		}
		if fn.Body != nil {
			if _, err := v.VisitBlock(fn.Body); err != nil {
				return v.DefaultReturn(), err
			}
		}
		return v.DefaultReturn(), nil
	})
}

func WalkValueParameter[T any](v Visitor[T], p *ast.ValueParameter) (T, error) {
	if _, err := v.VisitParameter(p.Param); err != nil {
		return v.DefaultReturn(), err
	}
	if p.Default != nil {
		if _, err := v.VisitExpression(p.Default); err != nil {
			return v.DefaultReturn(), err
		}
	}
	return v.DefaultReturn(), nil
}

func WalkParameter[T any](v Visitor[T], p *ast.Parameter) (T, error) {
	if p.Type != nil {
		if _, err := v.VisitType(p.Type); err != nil {
			return v.DefaultReturn(), err
		}
	}
	return v.DefaultReturn(), nil
}

// WalkType is a leaf.
func WalkType[T any](v Visitor[T], _ *ast.Type) (T, error) {
	return v.DefaultReturn(), nil
}

func WalkBlock[T any](v Visitor[T], b *ast.Block) (T, error) {
	return v.VisitStatementStream(b.Stmts)
}

func WalkStatementStream[T any](v Visitor[T], stmts []*ast.Statement) (T, error) {
	for _, stmt := range stmts {
		if _, err := v.VisitStatement(stmt); err != nil {
			return v.DefaultReturn(), err
		}
	}
	return v.DefaultReturn(), nil
}

func WalkStatement[T any](v Visitor[T], stmt *ast.Statement) (T, error) {
	switch stmt.Kind {
	case ast.StmtItem:
		return v.VisitItem(stmt.Item)
	case ast.StmtExpr:
		return v.VisitExpression(stmt.Expr)
	case ast.StmtReturn:
		return v.VisitReturnStatement(stmt)
	}
	return v.DefaultReturn(), nil
}

func WalkReturnStatement[T any](v Visitor[T], stmt *ast.Statement) (T, error) {
	if stmt.Expr == nil {
		return v.DefaultReturn(), nil
	}
	if _, err := v.VisitExpression(stmt.Expr); err != nil {
		return v.DefaultReturn(), err
	}
	return v.DefaultReturn(), nil
}

func WalkExpression[T any](v Visitor[T], e *ast.Expression) (T, error) {
	if e.Kind == ast.ExprLiteral {
		return v.VisitLiteralExpression(e)
	}
	return v.DefaultReturn(), nil
}

// WalkLiteralExpression is a leaf.
func WalkLiteralExpression[T any](v Visitor[T], _ *ast.Expression) (T, error) {
	return v.DefaultReturn(), nil
}
