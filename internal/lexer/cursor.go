package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"clens/internal/source"
)

// Cursor представляет собой позицию в файле: байтовое смещение плюс строка/колонка.
type Cursor struct {
	File *source.File
	Off  uint32
	Line uint32 // 1-based
	Col  uint32 // 1-based, в рунах
}

// NewCursor creates a cursor at the start of the file.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Off: 0, Line: 1, Col: 1}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.File.Content)
}

// Rest returns the unconsumed input.
func (c *Cursor) Rest() []byte {
	return c.File.Content[c.Off:]
}

// Advance consumes n bytes, updating line and column rune by rune.
// A newline bumps the line and resets the column; every other rune moves one column.
func (c *Cursor) Advance(n int) {
	rest := c.Rest()
	n = min(n, len(rest))
	for i := 0; i < n; {
		r, size := utf8.DecodeRune(rest[i:])
		if r == '\n' {
			c.Line++
			c.Col = 1
		} else {
			c.Col++
		}
		i += size
	}
	c.Off += uint32(n) // n <= len(Content), проверено в NewCursor
}

// AdvanceRune consumes exactly one rune and returns its text.
func (c *Cursor) AdvanceRune() string {
	rest := c.Rest()
	if len(rest) == 0 {
		return ""
	}
	_, size := utf8.DecodeRune(rest)
	text := string(rest[:size])
	c.Advance(size)
	return text
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark struct {
	Off  uint32
	Line uint32
	Col  uint32
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{Off: c.Off, Line: c.Line, Col: c.Col}
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: m.Off, End: c.Off}
}
