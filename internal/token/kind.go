package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal, hex or binary integer literal.
	IntLit

	KwFunc   // func
	KwModule // module
	KwReturn // return

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Assign    // =
	FatArrow  // =>
	At        // @
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "end of file",
	Ident:     "identifier",
	IntLit:    "integer literal",
	KwFunc:    "'func'",
	KwModule:  "'module'",
	KwReturn:  "'return'",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Comma:     "','",
	Colon:     "':'",
	Semicolon: "';'",
	Assign:    "'='",
	FatArrow:  "'=>'",
	At:        "'@'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}
