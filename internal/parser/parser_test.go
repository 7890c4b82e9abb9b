package parser_test

import (
	"testing"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/lexer"
	"ramen/internal/parser"
	"ramen/internal/source"
	"ramen/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.Module, *diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rmn", []byte(src))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(file, lx, "main", parser.Options{Reporter: rep})
	return res.Module, bag, fs
}

func requireClean(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		for _, r := range bag.Items() {
			t.Logf("%s: %s", r.Code.ID(), r.Message)
		}
		t.Fatalf("unexpected diagnostics")
	}
}

func TestParseArrowFunction(t *testing.T) {
	m, bag, fs := parseSource(t, "func identity(a: int32): int32 => 15")
	requireClean(t, bag)
	if m.Name != "main" || len(m.Items) != 1 {
		t.Fatalf("unexpected module %+v", m)
	}
	item := m.Items[0]
	if item.Kind != ast.ItemFunction || item.Name() != "identity" {
		t.Fatalf("unexpected item %+v", item)
	}
	fn := item.Function
	if len(fn.Params) != 1 || fn.Params[0].Param.Name != "a" || fn.Params[0].Param.Type.Width != 32 {
		t.Fatalf("unexpected params %+v", fn.Params)
	}
	if fn.ReturnType == nil || fn.ReturnType.Kind != ast.TypeInteger || fn.ReturnType.Width != 32 {
		t.Fatalf("unexpected return type %+v", fn.ReturnType)
	}
	if len(fn.Body.Stmts) != 1 || fn.Body.Stmts[0].Kind != ast.StmtReturn {
		t.Fatalf("`=> expr` must desugar to one return, got %+v", fn.Body.Stmts)
	}
	lit := fn.Body.Stmts[0].Expr.Literal
	if lit == nil || lit.Value != 15 {
		t.Fatalf("unexpected literal %+v", lit)
	}
	if got := fs.Slice(item.Span); got != "func identity(a: int32): int32 => 15" {
		t.Fatalf("item span covers %q", got)
	}
	if err := testkit.CheckSpanInvariants(m); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
}

func TestParseUnitTypesAndDefaults(t *testing.T) {
	m, bag, _ := parseSource(t, "func f(x: int8 = 3, y: (),): () => 0")
	requireClean(t, bag)
	fn := m.Items[0].Function
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Default == nil || fn.Params[0].Default.Literal.Value != 3 {
		t.Fatalf("default value lost: %+v", fn.Params[0])
	}
	if fn.Params[1].Param.Type.Kind != ast.TypeUnit || fn.ReturnType.Kind != ast.TypeUnit {
		t.Fatalf("expected unit types")
	}
}

func TestParseWithoutReturnType(t *testing.T) {
	m, bag, _ := parseSource(t, "func noop() => 1")
	requireClean(t, bag)
	if m.Items[0].Function.ReturnType != nil {
		t.Fatalf("missing annotation must stay nil")
	}
}

func TestParseModulesBlocksAndAttributes(t *testing.T) {
	src := `@inline
module util {
	// helpers
	@export func helper(): int64 => 0x10
}

func outer(): int32 {
	func inner(): int8 => 1
	return 0b101; 7
	return
}
`
	m, bag, _ := parseSource(t, src)
	requireClean(t, bag)
	if len(m.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(m.Items))
	}
	mod := m.Items[0]
	if mod.Kind != ast.ItemModule || mod.Name() != "util" || !mod.HasMarker(ast.MarkerInline) {
		t.Fatalf("unexpected module item %+v", mod)
	}
	helper := mod.Module.Items[0]
	if !helper.HasMarker(ast.MarkerExport) || helper.Function.Body.Stmts[0].Expr.Literal.Value != 16 {
		t.Fatalf("unexpected helper %+v", helper)
	}
	stmts := m.Items[1].Function.Body.Stmts
	kinds := []ast.StmtKind{ast.StmtItem, ast.StmtReturn, ast.StmtExpr, ast.StmtReturn}
	if len(stmts) != len(kinds) {
		t.Fatalf("expected %d statements, got %d", len(kinds), len(stmts))
	}
	for i, k := range kinds {
		if stmts[i].Kind != k {
			t.Fatalf("stmt %d: got %s, want %s", i, stmts[i].Kind, k)
		}
	}
	if stmts[1].Expr.Literal.Value != 5 || stmts[3].Expr != nil {
		t.Fatalf("unexpected returns %+v / %+v", stmts[1].Expr, stmts[3].Expr)
	}
	if err := testkit.CheckSpanInvariants(m); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"not an item", "15", diag.SynExpectedItem},
		{"missing paren", "func f => 1", diag.SynUnexpectedToken},
		{"bad type", "func f(a: bool) => 1", diag.SynExpectedType},
		{"bare int", "func f(a: int) => 1", diag.SynExpectedType},
		{"missing expr", "func f() =>", diag.SynExpectedExpression},
		{"huge literal", "func f() => 18446744073709551616", diag.SynBadNumber},
		{"no separator", "func f() { 1 2 }", diag.SynUnexpectedToken},
		{"attribute without name", "@ func f() => 1", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag, _ := parseSource(t, tt.src)
			if !bag.HasErrors() {
				t.Fatalf("expected an error")
			}
			if got := bag.Items()[0].Code; got != tt.code {
				t.Fatalf("got %s (%s), want %s", got.ID(), bag.Items()[0].Message, tt.code.ID())
			}
		})
	}
}

func TestParseRecoversAfterBadItem(t *testing.T) {
	m, bag, _ := parseSource(t, "func broken(a int32) => 1\nfunc ok() => 2")
	if bag.ErrorCount() != 1 {
		t.Fatalf("expected exactly one error, got %d", bag.ErrorCount())
	}
	if len(m.Items) != 1 || m.Items[0].Name() != "ok" {
		t.Fatalf("parser must resume at the next item, got %d items", len(m.Items))
	}
}

func TestParseErrorAtEOFPointsPastLastToken(t *testing.T) {
	_, bag, _ := parseSource(t, "func f() =>")
	sp := bag.Items()[0].Primary
	if sp.Start != 11 || sp.End != 11 {
		t.Fatalf("expected empty span at 11, got %v", sp)
	}
}

func TestParseMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.rmn", []byte("@ @ @ @"))
	bag := diag.NewBag(100)
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{})
	res := parser.ParseFile(file, lx, "main", parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 2})
	if res.Errors != 4 || bag.Len() != 2 {
		t.Fatalf("reported %d diagnostics for %d errors", bag.Len(), res.Errors)
	}
}
