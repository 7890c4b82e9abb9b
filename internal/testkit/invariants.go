package testkit

import (
	"errors"
	"fmt"

	"ramen/internal/ast"
	"ramen/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed unit:
// 1) every span belongs to the unit's file and is non-empty
// 2) every child span is contained in its parent's span
// 3) sibling items and statements do not overlap and keep source order
// All violations are joined into one error.
func CheckSpanInvariants(m *ast.Module) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	c := spanChecker{file: m.Span.File}
	c.module(m, m.Span)
	return errors.Join(c.errs...)
}

type spanChecker struct {
	file source.FileID
	errs []error
}

func (c *spanChecker) fail(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

func (c *spanChecker) check(what string, sp, parent source.Span) {
	if sp.File != c.file {
		c.fail("%s span %v points to file %d, want %d", what, sp, sp.File, c.file)
		return
	}
	if sp.Empty() {
		c.fail("%s span %v is empty", what, sp)
	}
	if !parent.Contains(sp) {
		c.fail("%s span %v is outside of %v", what, sp, parent)
	}
}

func (c *spanChecker) ordered(what string, prev *source.Span, sp source.Span) {
	if prev.End > sp.Start && !prev.Empty() {
		c.fail("%s span %v overlaps or precedes %v", what, sp, *prev)
	}
	*prev = sp
}

func (c *spanChecker) module(m *ast.Module, parent source.Span) {
	c.check("module "+m.Name, m.Span, parent)
	var prev source.Span
	for _, item := range m.Items {
		c.ordered("item", &prev, item.Span)
		c.item(item, m.Span)
	}
}

func (c *spanChecker) item(item *ast.Item, parent source.Span) {
	c.check("item "+item.Name(), item.Span, parent)
	for _, attr := range item.Attrs {
		c.check("attribute @"+attr.Name, attr.Span, item.Span)
	}
	switch item.Kind {
	case ast.ItemModule:
		c.module(item.Module, item.Span)
	case ast.ItemFunction:
		c.function(item.Function, item.Span)
	}
}

func (c *spanChecker) function(fn *ast.Function, parent source.Span) {
	c.check("function name "+fn.Name, fn.NameSpan, parent)
	for _, p := range fn.Params {
		c.check("parameter "+p.Param.Name, p.Span, parent)
		c.check("parameter type", p.Param.Type.Span, p.Span)
		if p.Default != nil {
			c.check("default value", p.Default.Span, p.Span)
		}
	}
	if fn.ReturnType != nil {
		c.check("return type", fn.ReturnType.Span, parent)
	}
	if fn.Body != nil {
		c.block(fn.Body, parent)
	}
}

func (c *spanChecker) block(b *ast.Block, parent source.Span) {
	c.check("block", b.Span, parent)
	var prev source.Span
	for _, stmt := range b.Stmts {
		c.ordered("statement", &prev, stmt.Span)
		c.check("statement", stmt.Span, b.Span)
		switch stmt.Kind {
		case ast.StmtItem:
			c.item(stmt.Item, stmt.Span)
		case ast.StmtExpr, ast.StmtReturn:
			if stmt.Expr != nil {
				c.check("expression", stmt.Expr.Span, stmt.Span)
			}
		}
	}
}
