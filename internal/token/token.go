package token

import (
	"clens/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind   Kind        `json:"kind" msgpack:"kind"`
	Text   string      `json:"text" msgpack:"text"`
	Line   uint32      `json:"line" msgpack:"line"`
	Column uint32      `json:"column" msgpack:"column"`
	Span   source.Span `json:"-" msgpack:"-"`
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether the token is the keyword kw.
func (t Token) IsKeyword(kw string) bool { return t.Is(Keyword, kw) }

// IsPunct reports whether the token is the punctuation character p.
func (t Token) IsPunct(p string) bool { return t.Is(Punctuation, p) }

// IsOpener reports whether the token opens a bracket pair.
func (t Token) IsOpener() bool {
	return t.Kind == Punctuation && (t.Text == "(" || t.Text == "{" || t.Text == "[")
}

// IsCloser reports whether the token closes a bracket pair.
func (t Token) IsCloser() bool {
	return t.Kind == Punctuation && (t.Text == ")" || t.Text == "}" || t.Text == "]")
}
