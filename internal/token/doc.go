// Package token defines lexical token kinds and trivia for the CascadeLang toolchain.
// Invariants:
//   - Token.Text holds the source text of the token, except that Unicode
//     identifiers not in NFC are NFC-normalized.
//   - Token.Span covers the token's original bytes (Start..End).
//   - Built-in callables (print is a keyword, assert is not) are recognized by
//     the evaluator, not the lexer.
package token
