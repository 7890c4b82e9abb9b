package ast

import "ramen/internal/source"

// Module is a named list of items. The compilation unit itself is a Module
// that is not wrapped into an Item.
type Module struct {
	Name  string
	Items []*Item
	Span  source.Span
	ID    NodeID
}

// ItemKind enumerates declarations that may appear in a module or a block.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemModule
	ItemFunction
)

func (k ItemKind) String() string {
	switch k {
	case ItemModule:
		return "module"
	case ItemFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Item is a declaration with attributes. Exactly one of Module/Function is
// set according to Kind.
type Item struct {
	Span     source.Span
	Attrs    []*Attribute
	Kind     ItemKind
	Module   *Module
	Function *Function
	ID       NodeID
}

// Name returns the declared name of the item.
func (it *Item) Name() string {
	switch it.Kind {
	case ItemModule:
		return it.Module.Name
	case ItemFunction:
		return it.Function.Name
	}
	return ""
}

// HasMarker reports whether the item carries @name.
func (it *Item) HasMarker(name string) bool {
	for _, attr := range it.Attrs {
		if attr.Kind == AttrMarker && attr.Name == name {
			return true
		}
	}
	return false
}
