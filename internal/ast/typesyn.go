package ast

import "ramen/internal/source"

// TypeKind enumerates syntactic type annotations.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeUnit
	TypeInteger
)

// Type is a type annotation as written. Width is meaningful for TypeInteger
// only and is taken verbatim from the source (`int24` -> 24).
type Type struct {
	Span  source.Span
	Kind  TypeKind
	Width uint32
	ID    NodeID
}
