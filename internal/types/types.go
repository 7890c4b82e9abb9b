package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindInt
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindInt:
		return "int"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// MaxIntWidth is the widest integer a backend can represent.
const MaxIntWidth uint32 = 1<<23 - 1

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Width   uint32 // for integers, in bits
	Payload uint32 // index into side tables (fns)
}

// MakeInt describes an integer of the given bit width.
func MakeInt(width uint32) Type {
	return Type{Kind: KindInt, Width: width}
}

// IsValue reports whether values of kind k can be produced and returned.
func (k Kind) IsValue() bool {
	return k == KindInt
}
