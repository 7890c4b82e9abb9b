package parser

import (
	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/source"
	"ramen/internal/token"
)

// parseItem разбирает attr* ('func' ... | 'module' ...).
func (p *Parser) parseItem() (*ast.Item, bool) {
	start := p.lx.Peek().Span
	var attrs []*ast.Attribute
	for p.at(token.At) {
		at := p.advance()
		name, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected attribute name after '@'")
		if !ok {
			return nil, false
		}
		attrs = append(attrs, ast.NewMarker(at.Span.Cover(name.Span), name.Text))
	}

	switch p.lx.Peek().Kind {
	case token.KwFunc:
		return p.parseFunction(start, attrs)
	case token.KwModule:
		return p.parseModule(start, attrs)
	default:
		p.err(diag.SynExpectedItem, p.diagnosticSpan(),
			"expected `func` or `module`, found "+describe(p.lx.Peek()))
		return nil, false
	}
}

// parseModule: 'module' IDENT '{' item* '}'
func (p *Parser) parseModule(start source.Span, attrs []*ast.Attribute) (*ast.Item, bool) {
	p.advance() // module
	name, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected module name")
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after module name"); !ok {
		return nil, false
	}
	items := p.parseItems(token.RBrace)
	closing, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close module")
	if !ok {
		return nil, false
	}
	sp := start.Cover(closing.Span)
	mod := ast.NewModule(name.Text, sp, items...)
	return ast.NewModuleItem(sp, mod, attrs...), true
}

// parseFunction: 'func' IDENT '(' params ')' (':' type)? ('=>' expr | block)
func (p *Parser) parseFunction(start source.Span, attrs []*ast.Attribute) (*ast.Item, bool) {
	p.advance() // func
	name, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected function name")
	if !ok {
		return nil, false
	}
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	var ret *ast.Type
	if p.at(token.Colon) {
		p.advance()
		if ret, ok = p.parseType(); !ok {
			return nil, false
		}
	}
	body, ok := p.parseBody()
	if !ok {
		return nil, false
	}
	sp := start.Cover(body.Span)
	fn := ast.NewFunction(name.Text, name.Span, params, ret, body)
	return ast.NewFunctionItem(sp, fn, attrs...), true
}

// parseParams: '(' (param (',' param)* ','?)? ')'
func (p *Parser) parseParams() ([]*ast.ValueParameter, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	var params []*ast.ValueParameter
	for !p.at(token.RParen) {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ',' or ')' in parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// parseParam: IDENT ':' type ('=' expr)?
func (p *Parser) parseParam() (*ast.ValueParameter, bool) {
	name, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected parameter name")
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after parameter name"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	sp := name.Span.Cover(ty.Span)
	var def *ast.Expression
	if p.at(token.Assign) {
		p.advance()
		if def, ok = p.parseExpr(); !ok {
			return nil, false
		}
		sp = sp.Cover(def.Span)
	}
	return ast.NewValueParam(sp, name.Text, ty, def), true
}

// parseBody: '=>' expr становится блоком с одним return.
func (p *Parser) parseBody() (*ast.Block, bool) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	arrow, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' or '{' before function body")
	if !ok {
		return nil, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	sp := arrow.Span.Cover(expr.Span)
	return ast.NewBlock(sp, ast.NewReturn(sp, expr)), true
}
