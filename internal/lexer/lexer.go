package lexer

import (
	"clens/internal/source"
	"clens/internal/token"
)

// Lexer turns a source file into classified tokens using the ordered
// longest-match pattern table. It never fails: input no pattern accepts is
// emitted one rune at a time as token.Error.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token // 1 элементный буфер для токена
}

// New creates a lexer positioned at the start of file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next возвращает следующий значимый токен (комментарии и пробелы пропускаются).
// После конца ввода всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		p, size, ok := longestMatch(lx.cursor.Rest())
		if !ok {
			text := lx.cursor.AdvanceRune()
			return lx.makeToken(token.Error, text, start)
		}
		text := string(lx.cursor.Rest()[:size])
		lx.cursor.Advance(size)
		if p.skip() {
			continue
		}
		return lx.makeToken(p.emit, text, start)
	}

	return token.Token{
		Kind:   token.EOF,
		Line:   lx.cursor.Line,
		Column: lx.cursor.Col,
		Span:   lx.cursor.SpanFrom(lx.cursor.Mark()),
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) makeToken(kind token.Kind, text string, start Mark) token.Token {
	return token.Token{
		Kind:   kind,
		Text:   text,
		Line:   start.Line,
		Column: start.Col,
		Span:   lx.cursor.SpanFrom(start),
	}
}

// All drains the lexer and returns every token before EOF.
func (lx *Lexer) All() []token.Token {
	tokens := make([]token.Token, 0, len(lx.file.Content)/3+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize lexes an in-memory fragment. Positions refer to src exactly.
func Tokenize(src string) []token.Token {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(src)))
	return New(file).All()
}
