// Package token defines the records the lexer hands to the parser.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Range matches Text exactly; trivia is not part of it.
//   - Leading trivia runs from the previous token's trailing trivia up to the
//     token; trailing trivia stops before the next newline, so a newline always
//     starts the leading trivia of the following token.
//   - Kinds are syntax.Kind values; the token and node vocabularies are shared.
package token
