package ast

import "ramen/internal/source"

type Block struct {
	Span  source.Span
	Stmts []*Statement
	ID    NodeID
}

// StmtKind selects the populated field of Statement.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtItem
	StmtExpr
	StmtReturn
)

func (k StmtKind) String() string {
	switch k {
	case StmtItem:
		return "item"
	case StmtExpr:
		return "expr"
	case StmtReturn:
		return "return"
	default:
		return "invalid"
	}
}

type Statement struct {
	Span source.Span
	Kind StmtKind
	Item *Item       // StmtItem
	Expr *Expression // StmtExpr, StmtReturn
	ID   NodeID
}
