package llvm

import (
	"errors"

	lltypes "github.com/llir/llvm/ir/types"

	"ramen/internal/ast"
	"ramen/internal/source"
	"ramen/internal/types"
)

// lowerType maps a resolved type: Unit -> void, Integer(w) -> iW,
// Callable -> function type.
func (p *LoweringPass) lowerType(id types.TypeID, node ast.NodeID, at source.Span) (lltypes.Type, error) {
	in := p.Session().Types
	tt, ok := in.Lookup(id)
	if !ok {
		return nil, errBackend(node, at, "type was not resolved before lowering")
	}
	switch tt.Kind {
	case types.KindUnit:
		return lltypes.Void, nil
	case types.KindInt:
		if tt.Width == 0 || tt.Width > types.MaxIntWidth {
			return nil, errBadIntWidth(node, at, tt.Width)
		}
		return lltypes.NewInt(uint64(tt.Width)), nil
	case types.KindFn:
		info, _ := in.FnInfo(id)
		return p.lowerFnType(info, node, at)
	}
	return nil, errBackend(node, at, "type "+in.Format(id)+" has no backend representation")
}

// lowerFnType builds a function type. The return type decides the
// constructor: void returns use the void flavour, everything else must be a
// first-class value.
func (p *LoweringPass) lowerFnType(info *types.FnInfo, node ast.NodeID, at source.Span) (*lltypes.FuncType, error) {
	params := make([]lltypes.Type, 0, len(info.Params))
	for _, pt := range info.Params {
		llt, err := p.lowerType(pt, node, at)
		if err != nil {
			return nil, err
		}
		if !isValueType(llt) {
			return nil, errNotValueType(node, at, "parameter type "+p.Session().Types.Format(pt))
		}
		params = append(params, llt)
	}

	ret, err := p.lowerType(info.Result, node, at)
	if err != nil {
		return nil, err
	}
	if lltypes.IsVoid(ret) {
		return voidFuncType(params, info.Variadic), nil
	}
	sig, err := valueFuncType(ret, params, info.Variadic)
	if err != nil {
		return nil, errNotValueType(node, at, "return type "+p.Session().Types.Format(info.Result))
	}
	return sig, nil
}

var errNotFirstClass = errors.New("return type is not a first-class value")

// voidFuncType builds a signature that returns nothing.
func voidFuncType(params []lltypes.Type, variadic bool) *lltypes.FuncType {
	sig := lltypes.NewFunc(lltypes.Void, params...)
	sig.Variadic = variadic
	return sig
}

// valueFuncType builds a signature returning ret, which must be a value type.
func valueFuncType(ret lltypes.Type, params []lltypes.Type, variadic bool) (*lltypes.FuncType, error) {
	if !isValueType(ret) {
		return nil, errNotFirstClass
	}
	sig := lltypes.NewFunc(ret, params...)
	sig.Variadic = variadic
	return sig, nil
}

// isValueType reports whether values of t can be passed and returned.
func isValueType(t lltypes.Type) bool {
	_, ok := t.(*lltypes.IntType)
	return ok
}
