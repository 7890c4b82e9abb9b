package parser

import (
	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/token"
)

// parseBlock: '{' (stmt sep)* '}', где sep - ';' или перевод строки.
func (p *Parser) parseBlock() (*ast.Block, bool) {
	open := p.advance() // {
	var stmts []*ast.Statement
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, stmt)
		p.expectSeparator()
	}
	closing, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close block")
	if !ok {
		return nil, false
	}
	return ast.NewBlock(open.Span.Cover(closing.Span), stmts...), true
}

func (p *Parser) parseStmt() (*ast.Statement, bool) {
	tok := p.lx.Peek()
	switch {
	case isItemStarter(tok.Kind):
		item, ok := p.parseItem()
		if !ok {
			return nil, false
		}
		return ast.NewItemStmt(item.Span, item), true
	case tok.Kind == token.KwReturn:
		p.advance()
		next := p.lx.Peek()
		if next.NewlineBefore() || next.Kind == token.RBrace || next.Kind == token.Semicolon || next.Kind == token.EOF {
			return ast.NewReturn(tok.Span, nil), true
		}
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		return ast.NewReturn(tok.Span.Cover(expr.Span), expr), true
	default:
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		return ast.NewExprStmt(expr.Span, expr), true
	}
}

func (p *Parser) expectSeparator() {
	next := p.lx.Peek()
	switch {
	case next.Kind == token.Semicolon:
		p.advance()
	case next.Kind == token.RBrace, next.NewlineBefore():
	default:
		p.err(diag.SynUnexpectedToken, p.diagnosticSpan(), "expected ';' or newline after statement, found "+describe(next))
		p.resyncStmt()
	}
}

// resyncStmt прокручивает до начала следующей строки, ';' или '}'.
// Хотя бы один токен съедается всегда, иначе цикл блока не продвинется.
func (p *Parser) resyncStmt() {
	for first := true; ; first = false {
		next := p.lx.Peek()
		switch {
		case next.Kind == token.EOF, next.Kind == token.RBrace:
			return
		case next.Kind == token.Semicolon:
			p.advance()
			return
		case !first && next.NewlineBefore():
			return
		}
		p.advance()
	}
}
