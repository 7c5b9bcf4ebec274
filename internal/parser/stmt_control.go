package parser

import (
	"clens/internal/ast"
)

// parseFor builds
//
//	FOR_STATEMENT: for ( FOR_INIT FOR_CONDITION FOR_INCREMENT ) FOR_BODY
//
// The clause separators are consumed but not attached. A malformed header
// stops at the first brace, leaving the `(` unmatched in the tree.
func (p *Parser) parseFor(parent ast.NodeID, inBlock bool) {
	forTok := p.peek()
	node := p.open(parent, ast.KindForStatement, forTok)
	p.attach(node)

	if p.peek().IsPunct("(") {
		p.attach(node)

		end := p.collectClause(p.open(node, ast.KindForInit, p.peek()), true)
		cond := p.open(node, ast.KindForCondition, p.peek())
		if end == endSemicolon {
			end = p.collectClause(cond, true)
		}
		incr := p.open(node, ast.KindForIncrement, p.peek())
		if end == endSemicolon {
			end = p.collectClause(incr, false)
		}
		if end == endParen {
			p.attach(node)
		}
	}

	p.parseBody(node, ast.KindForBody, inBlock)
}

// parseWhile builds WHILE_STATEMENT: while ( WHILE_CONDITION ) WHILE_BODY.
func (p *Parser) parseWhile(parent ast.NodeID, inBlock bool) {
	node := p.open(parent, ast.KindWhileStatement, p.peek())
	p.attach(node)
	p.parseCondition(node, ast.KindWhileCondition)
	p.parseBody(node, ast.KindWhileBody, inBlock)
}

// parseIf builds IF_STATEMENT: if ( IF_CONDITION ) IF_BODY [else ELSE_BODY].
// `else if` chains nest as an IF_STATEMENT inside ELSE_BODY.
func (p *Parser) parseIf(parent ast.NodeID, inBlock bool) {
	node := p.open(parent, ast.KindIfStatement, p.peek())
	p.attach(node)
	p.parseCondition(node, ast.KindIfCondition)
	p.parseBody(node, ast.KindIfBody, inBlock)

	if p.peek().IsKeyword("else") {
		p.attach(node)
		p.parseBody(node, ast.KindElseBody, inBlock)
	}
}

// parseCondition reads a parenthesised condition into a group of the given kind.
func (p *Parser) parseCondition(owner ast.NodeID, kind ast.Kind) {
	if !p.peek().IsPunct("(") {
		return
	}
	p.attach(owner)
	if p.collectClause(p.open(owner, kind, p.peek()), false) == endParen {
		p.attach(owner)
	}
}
