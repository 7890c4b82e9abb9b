package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Two equal types always share an id, so TypeIDs compare by value.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	fns      []FnInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 16),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	return in
}

func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if t.Kind == KindFn {
		panic("types: use RegisterFn for function types")
	}
	if id, ok := in.index[typeKey(t)]; ok {
		return id
	}
	return in.internRaw(t)
}

// Int interns an integer type of the given width.
func (in *Interner) Int(width uint32) TypeID {
	return in.Intern(MakeInt(width))
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Format renders a type the way it is written in source: "()", "int32",
// "fn(int32) -> int32".
func (in *Interner) Format(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindUnit:
		return "()"
	case KindInt:
		return fmt.Sprintf("int%d", tt.Width)
	case KindFn:
		info, _ := in.FnInfo(id)
		var b strings.Builder
		b.WriteString("fn(")
		for i, p := range info.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(in.Format(p))
		}
		if info.Variadic {
			if len(info.Params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		}
		b.WriteString(") -> ")
		b.WriteString(in.Format(info.Result))
		return b.String()
	}
	return tt.Kind.String()
}

type typeKey struct {
	Kind    Kind
	Width   uint32
	Payload uint32
}
