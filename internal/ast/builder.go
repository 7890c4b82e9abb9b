package ast

import "ramen/internal/source"

// Constructors below mint a NodeID for every node they create. The parser
// uses them, and so do tests that assemble trees by hand.

func NewModule(name string, sp source.Span, items ...*Item) *Module {
	return &Module{Name: name, Items: items, Span: sp, ID: NextNodeID()}
}

func NewModuleItem(sp source.Span, mod *Module, attrs ...*Attribute) *Item {
	return &Item{Span: sp, Attrs: attrs, Kind: ItemModule, Module: mod, ID: NextNodeID()}
}

func NewFunctionItem(sp source.Span, fn *Function, attrs ...*Attribute) *Item {
	return &Item{Span: sp, Attrs: attrs, Kind: ItemFunction, Function: fn, ID: NextNodeID()}
}

func NewBlock(sp source.Span, stmts ...*Statement) *Block {
	return &Block{Span: sp, Stmts: stmts, ID: NextNodeID()}
}

func NewItemStmt(sp source.Span, item *Item) *Statement {
	return &Statement{Span: sp, Kind: StmtItem, Item: item, ID: NextNodeID()}
}

func NewExprStmt(sp source.Span, expr *Expression) *Statement {
	return &Statement{Span: sp, Kind: StmtExpr, Expr: expr, ID: NextNodeID()}
}

// NewReturn wraps expr into a return statement; `=> expr` bodies desugar to it.
func NewReturn(sp source.Span, expr *Expression) *Statement {
	return &Statement{Span: sp, Kind: StmtReturn, Expr: expr, ID: NextNodeID()}
}

func NewIntLiteral(sp source.Span, value uint64) *Expression {
	return &Expression{
		Span:    sp,
		Kind:    ExprLiteral,
		Literal: &Literal{Kind: LitInteger, Value: value},
		ID:      NextNodeID(),
	}
}

func NewUnitType(sp source.Span) *Type {
	return &Type{Span: sp, Kind: TypeUnit, ID: NextNodeID()}
}

func NewIntType(sp source.Span, width uint32) *Type {
	return &Type{Span: sp, Kind: TypeInteger, Width: width, ID: NextNodeID()}
}

// NewValueParam builds both the inner Parameter and its ValueParameter.
func NewValueParam(sp source.Span, name string, ty *Type, def *Expression) *ValueParameter {
	return &ValueParameter{
		Span:    sp,
		Param:   &Parameter{Span: sp, Name: name, Type: ty, ID: NextNodeID()},
		Default: def,
		ID:      NextNodeID(),
	}
}

func NewMarker(sp source.Span, name string) *Attribute {
	return &Attribute{Span: sp, Kind: AttrMarker, Name: name, ID: NextNodeID()}
}

func NewFunction(name string, nameSpan source.Span, params []*ValueParameter, ret *Type, body *Block) *Function {
	return &Function{Name: name, NameSpan: nameSpan, ReturnType: ret, Params: params, Body: body}
}
