package ast

import "ramen/internal/source"

// Function is the payload of an ItemFunction.
type Function struct {
	Name       string
	NameSpan   source.Span
	ReturnType *Type // nil means unit
	Params     []*ValueParameter
	Body       *Block
}

// Parameter is a named, typed slot.
type Parameter struct {
	Span source.Span
	Name string
	Type *Type
	ID   NodeID
}

// ValueParameter is a function parameter with an optional default value.
type ValueParameter struct {
	Span    source.Span
	Param   *Parameter
	Default *Expression
	ID      NodeID
}
