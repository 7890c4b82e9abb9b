package ast

import "ramen/internal/source"

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLiteral
)

type Expression struct {
	Span    source.Span
	Kind    ExprKind
	Literal *Literal
	ID      NodeID
}

type LiteralKind uint8

const (
	LitInvalid LiteralKind = iota
	LitInteger
)

// Literal carries the raw value; its width is decided by type resolution.
type Literal struct {
	Kind  LiteralKind
	Value uint64
}
