package parser

import (
	"clens/internal/ast"
	"clens/internal/token"
)

func (p *Parser) eof() bool {
	return p.pos >= len(p.toks)
}

// peek returns the current token; past the end it returns an EOF token.
func (p *Parser) peek() token.Token {
	if p.eof() {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) next() token.Token {
	tok := p.peek()
	if !p.eof() {
		p.pos++
	}
	return tok
}

// attach consumes the current token and appends it to parent as a leaf.
func (p *Parser) attach(parent ast.NodeID) {
	p.tree.AddChild(parent, p.tree.NewLeaf(p.next()))
}

// open creates an interior node positioned at tok and appends it to parent.
func (p *Parser) open(parent ast.NodeID, kind ast.Kind, tok token.Token) ast.NodeID {
	id := p.tree.NewNode(kind, tok.Line, tok.Column)
	p.tree.AddChild(parent, id)
	return id
}

// clauseEnd tells how a header clause stopped.
type clauseEnd uint8

const (
	endSemicolon clauseEnd = iota // `;` consumed
	endParen                      // matching `)` under the cursor, not consumed
	endAbort                      // brace, stray `;` or end of input
)

// collectClause attaches leaves to group until the clause terminator.
// Parentheses opened inside the clause are tracked so their `)` stays in it.
// A depth-0 `;` is consumed as a terminator when semicolonEnds is set and
// aborts the clause otherwise. Braces always abort: a header never spans a body.
func (p *Parser) collectClause(group ast.NodeID, semicolonEnds bool) clauseEnd {
	depth := 0
	for !p.eof() {
		t := p.peek()
		switch {
		case t.IsPunct("{"), t.IsPunct("}"):
			return endAbort
		case t.IsPunct("("):
			depth++
		case t.IsPunct(")"):
			if depth == 0 {
				return endParen
			}
			depth--
		case t.IsPunct(";") && depth == 0:
			if !semicolonEnds {
				return endAbort
			}
			p.pos++
			return endSemicolon
		}
		p.attach(group)
	}
	return endAbort
}
