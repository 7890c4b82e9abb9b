package lexer

import (
	"strconv"

	"ramen/internal/diag"
	"ramen/internal/token"
)

// Жадность: "=>" раньше "=".
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '=' && b1 == '>' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return emit(token.FatArrow)
	}

	switch ch := lx.cursor.Bump(); ch {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case '=':
		return emit(token.Assign)
	case '@':
		return emit(token.At)
	default:
		tok := emit(token.Invalid)
		lx.errLex(diag.SynUnknownChar, tok.Span, "unknown character "+quoteRune(rune(ch)))
		return tok
	}
}

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}
