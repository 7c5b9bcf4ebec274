// Package token defines lexical token kinds for the toy C dialect analysed by clens.
// Invariants:
//   - Token.Text is the exact source text the token was produced from.
//   - Token.Span matches Text exactly (Start..End, byte offsets).
//   - Line and Column are 1-based and count runes, not bytes.
//   - Comments and whitespace never appear in the token stream.
//   - Keywords are a closed set; everything else that looks like a word is an identifier.
package token
