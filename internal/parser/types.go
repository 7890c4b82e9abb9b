package parser

import (
	"strconv"
	"strings"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/token"
)

// parseType: intN | '(' ')'
// Ширина берётся как написано; проверка диапазона - дело lowering.
func (p *Parser) parseType() (*ast.Type, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		closing, ok := p.expect(token.RParen, diag.SynExpectedType, "expected ')' in unit type")
		if !ok {
			return nil, false
		}
		return ast.NewUnitType(tok.Span.Cover(closing.Span)), true
	case token.Ident:
		if width, ok := intWidth(tok.Text); ok {
			p.advance()
			return ast.NewIntType(tok.Span, width), true
		}
	}
	p.err(diag.SynExpectedType, p.diagnosticSpan(), "expected a type, found "+describe(tok))
	return nil, false
}

// intWidth разбирает "int<digits>".
func intWidth(name string) (uint32, bool) {
	digits, ok := strings.CutPrefix(name, "int")
	if !ok || digits == "" {
		return 0, false
	}
	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	w, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(w), true
}
