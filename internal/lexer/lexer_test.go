package lexer_test

import (
	"testing"

	"ramen/internal/diag"
	"ramen/internal/lexer"
	"ramen/internal/source"
	"ramen/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rmn", []byte(src))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexFunction(t *testing.T) {
	toks, bag := lexAll(t, "@inline func identity(a: int32): int32 => 15")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.At, token.Ident, token.KwFunc, token.Ident, token.LParen, token.Ident, token.Colon,
		token.Ident, token.RParen, token.Colon, token.Ident, token.FatArrow, token.IntLit, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if toks[12].Text != "15" || toks[12].Span.Start != 42 || toks[12].Span.End != 44 {
		t.Fatalf("literal token = %+v", toks[12])
	}
}

func TestLexTriviaAndNewlines(t *testing.T) {
	toks, _ := lexAll(t, "func a() => 1 // first\n\nfunc b() => 2")
	var second token.Token
	for _, tok := range toks {
		if tok.Kind == token.KwFunc && tok.Span.Start > 0 {
			second = tok
		}
	}
	if !second.NewlineBefore() {
		t.Fatalf("second func must follow a newline")
	}
	if len(second.Leading) != 3 {
		t.Fatalf("expected space, comment and newline trivia, got %+v", second.Leading)
	}
	if second.Leading[1].Kind != token.TriviaLineComment || second.Leading[1].Text != "// first" {
		t.Fatalf("comment trivia = %+v", second.Leading[1])
	}
	if toks[0].NewlineBefore() {
		t.Fatalf("first token has no newline before it")
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
		code diag.Code
	}{
		{"0", token.IntLit, diag.UnknownCode},
		{"1_000", token.IntLit, diag.UnknownCode},
		{"0xFF", token.IntLit, diag.UnknownCode},
		{"0b1010", token.IntLit, diag.UnknownCode},
		{"0x", token.Invalid, diag.SynBadNumber},
		{"12ab", token.Invalid, diag.SynBadNumber},
		{"0b102", token.Invalid, diag.SynBadNumber},
	}
	for _, tt := range tests {
		toks, bag := lexAll(t, tt.src)
		if toks[0].Kind != tt.kind {
			t.Fatalf("%q: kind %s, want %s", tt.src, toks[0].Kind, tt.kind)
		}
		if toks[0].Text != tt.src {
			t.Fatalf("%q: token must cover the whole literal, got %q", tt.src, toks[0].Text)
		}
		if tt.code == diag.UnknownCode {
			if bag.Len() != 0 {
				t.Fatalf("%q: unexpected diagnostics %v", tt.src, bag.Items())
			}
			continue
		}
		if bag.Len() != 1 || bag.Items()[0].Code != tt.code {
			t.Fatalf("%q: expected %s, got %v", tt.src, tt.code.ID(), bag.Items())
		}
	}
}

func TestLexUnknownChar(t *testing.T) {
	toks, bag := lexAll(t, "func a() => 1 $")
	last := toks[len(toks)-2]
	if last.Kind != token.Invalid || last.Text != "$" {
		t.Fatalf("expected invalid '$', got %+v", last)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynUnknownChar {
		t.Fatalf("expected S05, got %v", bag.Items())
	}
}

func TestLexIdentifiersAreNFC(t *testing.T) {
	composed, _ := lexAll(t, "caf\u00e9")
	decomposed, _ := lexAll(t, "cafe\u0301")
	if composed[0].Kind != token.Ident || decomposed[0].Kind != token.Ident {
		t.Fatalf("expected identifiers")
	}
	if composed[0].Text != decomposed[0].Text {
		t.Fatalf("NFC mismatch: %q vs %q", composed[0].Text, decomposed[0].Text)
	}
	if decomposed[0].Span.Len() != 6 {
		t.Fatalf("span must cover source bytes, got %d", decomposed[0].Span.Len())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("peek.rmn", []byte("module m"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if lx.Peek().Kind != token.KwModule || lx.Peek().Kind != token.KwModule {
		t.Fatalf("peek must be idempotent")
	}
	if lx.Next().Kind != token.KwModule || lx.Next().Kind != token.Ident {
		t.Fatalf("unexpected token order")
	}
	for range 2 {
		if lx.Next().Kind != token.EOF {
			t.Fatalf("EOF must repeat")
		}
	}
}
