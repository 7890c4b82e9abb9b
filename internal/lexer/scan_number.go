package lexer

import (
	"ramen/internal/diag"
	"ramen/internal/token"
)

// Поддержка: 0, 123, 1_000, 0x..., 0b....
// Значение не вычисляется: это делает парсер, он же ловит переполнение.
// Буквы сразу за числом ("12ab") съедаются и репортятся как SynBadNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	digit := isDec

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		prefixed := true
		switch b1 {
		case 'x', 'X':
			digit = isHex
		case 'b', 'B':
			digit = isBin
		default:
			prefixed = false
		}
		if prefixed {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !digit(lx.cursor.Peek()) {
				return lx.badNumber(start, "expected digits after base prefix")
			}
		}
	}

	for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid digit in integer literal")
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.SynBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
