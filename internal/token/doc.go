// Package token defines lexical token kinds and trivia for ramen sources.
// Invariants:
//   - Token.Text is a slice of the original source, except identifiers which
//     are NFC-normalized.
//   - Token.Span covers the token bytes exactly.
//   - Attributes are lexed as '@' (Kind: At) + Ident.
//   - Newlines and comments are leading Trivia and never appear in the main
//     token stream; the parser asks Token.NewlineBefore when it needs a
//     separator.
//   - Built-in type names (int8, int32, ...) are identifiers. The parser
//     recognizes them.
package token
