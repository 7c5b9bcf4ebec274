package check

import (
	"strings"

	"clens/internal/diag"
	"clens/internal/token"
)

// Lexical reports every ERROR token with the surrounding tokens as context.
func Lexical(r diag.Reporter, tokens []token.Token, radius int) {
	for i, tok := range tokens {
		if tok.Kind != token.Error {
			continue
		}
		diag.ReportError(r, diag.LexInvalidToken, tok.Line, tok.Column, "Invalid token: "+tok.Text).
			WithPrimary(tok.Span).
			WithContext(window(tokens, i, radius)).
			WithSuggestion("Remove the character or replace it with a valid token").
			Emit()
	}
}

// window joins the texts of tokens[i-radius : i+radius] (clamped) with spaces.
func window(tokens []token.Token, i, radius int) string {
	lo := max(0, i-radius)
	hi := min(len(tokens), i+radius+1)
	parts := make([]string, 0, hi-lo)
	for _, t := range tokens[lo:hi] {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}
