package ast

import (
	"fmt"
	"strings"

	"clens/internal/token"
)

// Kind is the closed set of parse node kinds. Leaf kinds mirror token kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindStatement
	KindBlock

	KindForStatement
	KindForInit
	KindForCondition
	KindForIncrement
	KindForBody

	KindIfStatement
	KindIfCondition
	KindIfBody
	KindElseBody

	KindWhileStatement
	KindWhileCondition
	KindWhileBody

	// листья: по одному на вид токена
	KindKeyword
	KindIdentifier
	KindString
	KindNumber
	KindOperator
	KindPunctuation
	KindError
)

var kindNames = [...]string{
	KindInvalid:        "INVALID",
	KindProgram:        "PROGRAM",
	KindStatement:      "STATEMENT",
	KindBlock:          "BLOCK",
	KindForStatement:   "FOR_STATEMENT",
	KindForInit:        "FOR_INIT",
	KindForCondition:   "FOR_CONDITION",
	KindForIncrement:   "FOR_INCREMENT",
	KindForBody:        "FOR_BODY",
	KindIfStatement:    "IF_STATEMENT",
	KindIfCondition:    "IF_CONDITION",
	KindIfBody:         "IF_BODY",
	KindElseBody:       "ELSE_BODY",
	KindWhileStatement: "WHILE_STATEMENT",
	KindWhileCondition: "WHILE_CONDITION",
	KindWhileBody:      "WHILE_BODY",
	KindKeyword:        "KEYWORD",
	KindIdentifier:     "IDENTIFIER",
	KindString:         "STRING",
	KindNumber:         "NUMBER",
	KindOperator:       "OPERATOR",
	KindPunctuation:    "PUNCTUATION",
	KindError:          "ERROR",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LeafKind maps a token kind to the leaf node kind that carries it.
func LeafKind(k token.Kind) Kind {
	switch k {
	case token.Keyword:
		return KindKeyword
	case token.Identifier:
		return KindIdentifier
	case token.String:
		return KindString
	case token.Number:
		return KindNumber
	case token.Operator:
		return KindOperator
	case token.Punctuation:
		return KindPunctuation
	case token.Error:
		return KindError
	default:
		return KindInvalid
	}
}

// IsLeaf reports whether nodes of this kind wrap a single token.
func (k Kind) IsLeaf() bool {
	return k >= KindKeyword && k <= KindError
}

// IsLoop reports whether the kind is a loop construct.
func (k Kind) IsLoop() bool {
	return k == KindForStatement || k == KindWhileStatement
}

// IsBranch reports whether the kind is a conditional construct.
func (k Kind) IsBranch() bool {
	return k == KindIfStatement
}

// IsCondition reports whether the kind names a loop or branch condition.
// Matching is by name so every *_CONDITION kind qualifies.
func (k Kind) IsCondition() bool {
	return strings.Contains(k.String(), "CONDITION")
}
