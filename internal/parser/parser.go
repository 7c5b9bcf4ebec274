// Package parser builds the parse tree for the toy C dialect.
//
// The grammar is deliberately loose. Every keyword starts a statement;
// `for`, `if` and `while` get structured subtrees, everything else becomes a
// flat STATEMENT of token leaves. Tokens that do not start a statement are
// skipped. Parsing never fails: malformed input produces a tree that keeps
// unmatched brackets as leaves so the bracket checker can report them.
package parser

import (
	"clens/internal/ast"
	"clens/internal/token"
)

// Parser — состояние парсера на одну последовательность токенов
type Parser struct {
	toks []token.Token
	pos  int
	tree *ast.Tree
}

// Parse builds the tree for tokens. Node ids follow construction order.
func Parse(tokens []token.Token) *ast.Tree {
	p := &Parser{
		toks: tokens,
		tree: ast.NewTree(uint(len(tokens) + 1)),
	}
	p.parseTopLevel()
	return p.tree
}

// parseTopLevel — основной цикл: ключевое слово открывает оператор, остальное пропускаем.
func (p *Parser) parseTopLevel() {
	for !p.eof() {
		if p.peek().Kind != token.Keyword {
			p.pos++
			continue
		}
		p.parseKeywordStatement(p.tree.Root, false)
	}
}

// parseKeywordStatement dispatches on the keyword under the cursor.
// inBlock is true inside braces, where a bare `}` also ends a flat statement.
func (p *Parser) parseKeywordStatement(parent ast.NodeID, inBlock bool) {
	switch p.peek().Text {
	case "for":
		p.parseFor(parent, inBlock)
	case "if":
		p.parseIf(parent, inBlock)
	case "while":
		p.parseWhile(parent, inBlock)
	default:
		p.parseStatement(parent, inBlock)
	}
}
