package parser

import (
	"slices"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/lexer"
	"ramen/internal/source"
	"ramen/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Module *ast.Module
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile разбирает файл целиком в модуль единицы компиляции с именем
// name. Синтаксические ошибки уходят в opts.Reporter; дерево строится из
// того, что удалось разобрать.
func ParseFile(file *source.File, lx *lexer.Lexer, name string, opts Options) Result {
	p := Parser{
		lx:       lx,
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	items := p.parseItems(token.EOF)
	end, err := lenContent(file)
	if err != nil {
		panic(err)
	}
	unit := ast.NewModule(name, source.Span{File: file.ID, Start: 0, End: end}, items...)
	return Result{Module: unit, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems читает items до закрывающего токена (EOF или '}').
func (p *Parser) parseItems(closer token.Kind) []*ast.Item {
	var items []*ast.Item
	for !p.atOr(closer, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		item, ok := p.parseItem()
		if !ok {
			p.resyncItems(closer)
			continue
		}
		items = append(items, item)
	}
	return items
}

// resyncItems - восстановление после ошибки: прокручиваем до стартера
// следующего item, закрывающего токена или EOF.
func (p *Parser) resyncItems(closer token.Kind) {
	for !p.atOr(closer, token.EOF) && !isItemStarter(p.lx.Peek().Kind) {
		p.advance()
	}
}

func isItemStarter(k token.Kind) bool {
	switch k {
	case token.At, token.KwFunc, token.KwModule:
		return true
	default:
		return false
	}
}
