package parser

import (
	"fmt"

	"ramen/internal/diag"
	"ramen/internal/source"
	"ramen/internal/token"

	"fortio.org/safecast"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan - на EOF указываем сразу за последним токеном, иначе на
// текущий токен.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.err(code, sp, fmt.Sprintf("%s, found %s", msg, describe(p.lx.Peek())))
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil && !p.opts.Enough() {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	p.opts.CurrentErrors++
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.IntLit, token.Invalid:
		if tok.Text != "" {
			return fmt.Sprintf("%s `%s`", tok.Kind, tok.Text)
		}
	}
	return tok.Kind.String()
}

func lenContent(f *source.File) (uint32, error) {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return 0, fmt.Errorf("file %s is too large: %w", f.Path, err)
	}
	return n, nil
}
