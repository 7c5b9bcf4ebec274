package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero value and is never produced by the lexer.
	Invalid Kind = iota
	// Keyword is one of the reserved words (int, for, printf, ...).
	Keyword
	// Identifier is a name that is not a keyword.
	Identifier
	// String is a double-quoted literal, quotes included.
	String
	// Number is an integer, decimal or exponent literal.
	Number
	// Operator is an arithmetic, comparison, logical or increment operator.
	Operator
	// Punctuation is one of ; , ( ) { } [ ] .
	Punctuation
	// Error carries a single character no pattern accepted.
	Error
	// EOF marks the end of input for streaming consumers.
	EOF
)

var kindNames = [...]string{
	Invalid:     "INVALID",
	Keyword:     "KEYWORD",
	Identifier:  "IDENTIFIER",
	String:      "STRING",
	Number:      "NUMBER",
	Operator:    "OPERATOR",
	Punctuation: "PUNCTUATION",
	Error:       "ERROR",
	EOF:         "EOF",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MarshalText encodes the kind by name so JSON and msgpack output stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", b)
}
