package testkit

import (
	"testing"

	"ramen/internal/ast"
	"ramen/internal/source"
)

func span(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

func TestCheckSpanInvariants(t *testing.T) {
	body := ast.NewBlock(span(20, 25), ast.NewReturn(span(20, 25), ast.NewIntLiteral(span(23, 25), 1)))
	fn := ast.NewFunction("f", span(5, 6), nil, nil, body)
	unit := ast.NewModule("main", span(0, 30), ast.NewFunctionItem(span(0, 25), fn))
	if err := CheckSpanInvariants(unit); err != nil {
		t.Fatalf("unexpected violations: %v", err)
	}

	body.Stmts[0].Expr.Span = span(26, 28)
	if err := CheckSpanInvariants(unit); err == nil {
		t.Fatalf("expression outside of its statement must be reported")
	}
	body.Stmts[0].Expr.Span = span(23, 25)

	other := ast.NewFunction("g", span(12, 13), nil, nil, ast.NewBlock(span(14, 18)))
	unit.Items = append(unit.Items, ast.NewFunctionItem(span(10, 18), other))
	if err := CheckSpanInvariants(unit); err == nil {
		t.Fatalf("overlapping items must be reported")
	}
}
