package lexer

import (
	"regexp"
	"strings"

	"clens/internal/token"
)

// patternKind identifies one entry of the ordered pattern table.
type patternKind uint8

const (
	patComment patternKind = iota
	patKeyword
	patIdentifier
	patString
	patNumber
	patOperator
	patPunctuation
	patWhitespace
)

type pattern struct {
	kind patternKind
	re   *regexp.Regexp
	// emit is the token kind produced; skip patterns leave it Invalid.
	emit token.Kind
}

func (p pattern) skip() bool { return p.emit == token.Invalid }

// compile anchors expr at the cursor and switches to leftmost-longest semantics,
// so alternations like "+" | "++" always report their longest alternative.
func compile(expr string) *regexp.Regexp {
	re := regexp.MustCompile(`^(?:` + expr + `)`)
	re.Longest()
	return re
}

// patterns is ordered: on equal match length the earlier entry wins.
var patterns = []pattern{
	{kind: patComment, re: compile(`//[^\n]*|/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`)},
	{kind: patKeyword, re: compile(strings.Join(token.Keywords, "|")), emit: token.Keyword},
	{kind: patIdentifier, re: compile(`[A-Za-z_][A-Za-z0-9_]*`), emit: token.Identifier},
	{kind: patString, re: compile(`"[^"]*"`), emit: token.String},
	{kind: patNumber, re: compile(`[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`), emit: token.Number},
	{kind: patOperator, re: compile(`&&|\|\||\+\+|--|[-+*/%<>!=&|^]=?`), emit: token.Operator},
	{kind: patPunctuation, re: compile(`[;,(){}\[\].]`), emit: token.Punctuation},
	{kind: patWhitespace, re: compile(`\s+`)},
}

// longestMatch tests every pattern at the start of input and returns the
// winner and its byte length. ok is false when nothing matches.
func longestMatch(input []byte) (best pattern, size int, ok bool) {
	for _, p := range patterns {
		loc := p.re.FindIndex(input)
		if loc == nil || loc[1] == 0 {
			continue
		}
		// строго больше: при равной длине побеждает паттерн, объявленный раньше
		if loc[1] > size {
			best, size, ok = p, loc[1], true
		}
	}
	return best, size, ok
}
