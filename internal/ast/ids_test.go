package ast

import (
	"testing"

	"ramen/internal/source"
)

func TestNextNodeIDIsMonotonic(t *testing.T) {
	prev := NextNodeID()
	for range 100 {
		next := NextNodeID()
		if next <= prev {
			t.Fatalf("ids must grow: %v after %v", next, prev)
		}
		prev = next
	}
	if NoNodeID.IsValid() {
		t.Fatalf("NoNodeID must be invalid")
	}
}

func TestConstructorsMintDistinctIDs(t *testing.T) {
	sp := source.Span{}
	param := NewValueParam(sp, "a", NewIntType(sp, 32), nil)
	body := NewBlock(sp, NewReturn(sp, NewIntLiteral(sp, 15)))
	item := NewFunctionItem(sp, &Function{Name: "identity", Params: []*ValueParameter{param}, Body: body})
	mod := NewModule("main", sp, item)

	seen := map[NodeID]string{}
	check := func(what string, id NodeID) {
		if !id.IsValid() {
			t.Fatalf("%s has no id", what)
		}
		if other, dup := seen[id]; dup {
			t.Fatalf("%s reuses id of %s", what, other)
		}
		seen[id] = what
	}
	check("module", mod.ID)
	check("item", item.ID)
	check("value param", param.ID)
	check("param", param.Param.ID)
	check("param type", param.Param.Type.ID)
	check("block", body.ID)
	check("return", body.Stmts[0].ID)
	check("literal", body.Stmts[0].Expr.ID)

	if item.Name() != "identity" {
		t.Fatalf("Name() = %q", item.Name())
	}
}

func TestItemHasMarker(t *testing.T) {
	sp := source.Span{}
	item := NewFunctionItem(sp, &Function{Name: "f", Body: NewBlock(sp)}, NewMarker(sp, "inline"))
	if !item.HasMarker("inline") {
		t.Fatalf("expected @inline")
	}
	if item.HasMarker("export") {
		t.Fatalf("unexpected @export")
	}
}
