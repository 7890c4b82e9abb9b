package ast

import "ramen/internal/source"

type AttrKind uint8

const (
	AttrInvalid AttrKind = iota
	AttrMarker
)

// Attribute is `@name` placed before an item.
type Attribute struct {
	Span source.Span
	Kind AttrKind
	Name string
	ID   NodeID
}

// Markers understood by the compiler.
const (
	MarkerInline   = "inline"
	MarkerInternal = "internal"
	MarkerExport   = "export"
)

// IsKnownMarker reports whether name is one of the recognized markers.
func IsKnownMarker(name string) bool {
	switch name {
	case MarkerInline, MarkerInternal, MarkerExport:
		return true
	}
	return false
}
