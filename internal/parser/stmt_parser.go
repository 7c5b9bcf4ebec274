package parser

import (
	"clens/internal/ast"
	"clens/internal/token"
)

// parseStatement builds a flat STATEMENT: the keyword and every following
// token up to `;` (consumed, not attached) or `{` (opens a BLOCK body).
func (p *Parser) parseStatement(parent ast.NodeID, inBlock bool) {
	stmt := p.open(parent, ast.KindStatement, p.peek())
	for !p.eof() {
		t := p.peek()
		switch {
		case t.IsPunct(";"):
			p.pos++
			return
		case t.IsPunct("{"):
			p.pos++
			p.parseBlock(p.open(stmt, ast.KindBlock, t))
			return
		case inBlock && t.IsPunct("}"):
			// закрывающая скобка принадлежит блоку
			return
		}
		p.attach(stmt)
	}
}

// parseBlock is entered just past an opening brace (depth 1). Keyword
// statements are parsed into parent; bare nested braces only adjust the
// depth, so their contents are flattened into parent. Everything else is
// dropped. Returns the token index just past the matching closing brace.
func (p *Parser) parseBlock(parent ast.NodeID) int {
	depth := 1
	for !p.eof() {
		t := p.peek()
		switch {
		case t.IsPunct("{"):
			depth++
			p.pos++
		case t.IsPunct("}"):
			depth--
			p.pos++
			if depth == 0 {
				return p.pos
			}
		case t.Kind == token.Keyword:
			p.parseKeywordStatement(parent, true)
		default:
			p.pos++
		}
	}
	return p.pos
}

// parseBody attaches the body of a control construct: a braced block or a
// single keyword statement. Anything else leaves the construct without a body.
func (p *Parser) parseBody(owner ast.NodeID, kind ast.Kind, inBlock bool) {
	t := p.peek()
	switch {
	case t.IsPunct("{"):
		p.pos++
		p.parseBlock(p.open(owner, kind, t))
	case t.Kind == token.Keyword && t.Text != "else":
		p.parseKeywordStatement(p.open(owner, kind, t), inBlock)
	}
}
