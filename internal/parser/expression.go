package parser

import (
	"strconv"
	"strings"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/token"
)

// parseExpr: пока выражения - только целочисленные литералы.
func (p *Parser) parseExpr() (*ast.Expression, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.IntLit {
		if tok.Kind == token.Invalid {
			// лексер уже отрепортил
			p.advance()
			return nil, false
		}
		p.err(diag.SynExpectedExpression, p.diagnosticSpan(), "expected an expression, found "+describe(tok))
		return nil, false
	}
	p.advance()
	v, err := parseIntLiteral(tok.Text)
	if err != nil {
		p.err(diag.SynBadNumber, tok.Span, "integer literal `"+tok.Text+"` does not fit into 64 bits")
		return nil, false
	}
	return ast.NewIntLiteral(tok.Span, v), true
}

func parseIntLiteral(text string) (uint64, error) {
	text = strings.ReplaceAll(text, "_", "")
	base := 10
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			base, text = 16, text[2:]
		case 'b', 'B':
			base, text = 2, text[2:]
		}
	}
	return strconv.ParseUint(text, base, 64)
}
