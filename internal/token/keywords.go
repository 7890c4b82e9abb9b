package token

var keywords = map[string]Kind{
	"func":   KwFunc,
	"module": KwModule,
	"return": KwReturn,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
