package diag

import (
	"fmt"
	"strconv"
	"strings"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexInvalidToken Code = 1001

	// Скобки
	SynMismatchedBracket Code = 2001
	SynUnclosedBracket   Code = 2002

	// Внутренние сбои конвейера
	IntAnalysisFailed Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInvalidToken:      "Invalid token",
	SynMismatchedBracket: "Mismatched brackets",
	SynUnclosedBracket:   "Unclosed bracket",
	IntAnalysisFailed:    "Analysis failed",
}

// ID returns the stable textual identifier, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.ID()), nil
}

// UnmarshalText accepts the ID form produced by MarshalText.
func (c *Code) UnmarshalText(b []byte) error {
	s := string(b)
	for _, prefix := range []string{"LEX", "SYN", "INT"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			n, err := strconv.ParseUint(rest, 10, 16)
			if err != nil {
				return fmt.Errorf("bad diagnostic code %q: %w", s, err)
			}
			*c = Code(n)
			return nil
		}
	}
	if s == "E0000" {
		*c = UnknownCode
		return nil
	}
	return fmt.Errorf("bad diagnostic code %q", s)
}
