package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"clens/internal/lexer"
	"clens/internal/source"
	"clens/internal/token"
)

type want struct {
	kind token.Kind
	text string
}

func tokensToString(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		parts = append(parts, fmt.Sprintf("%s(%q)", t.Kind, t.Text))
	}
	return strings.Join(parts, " ")
}

// expectTokens проверяет последовательность (kind, text)
func expectTokens(t *testing.T, input string, expected []want) {
	t.Helper()
	toks := lexer.Tokenize(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s",
			len(expected), len(toks), input, tokensToString(toks))
	}
	for i, tok := range toks {
		if tok.Kind != expected[i].kind || tok.Text != expected[i].text {
			t.Errorf("token %d: expected %s(%q), got %s(%q)",
				i, expected[i].kind, expected[i].text, tok.Kind, tok.Text)
		}
	}
}

func TestDeclaration(t *testing.T) {
	expectTokens(t, "int x = 10;", []want{
		{token.Keyword, "int"},
		{token.Identifier, "x"},
		{token.Operator, "="},
		{token.Number, "10"},
		{token.Punctuation, ";"},
	})
}

func TestLongestMatchPrefersIdentifier(t *testing.T) {
	expectTokens(t, "int_value", []want{{token.Identifier, "int_value"}})
	expectTokens(t, "integer format iffy", []want{
		{token.Identifier, "integer"},
		{token.Identifier, "format"},
		{token.Identifier, "iffy"},
	})
}

func TestKeywordWinsTie(t *testing.T) {
	for _, kw := range token.Keywords {
		expectTokens(t, kw, []want{{token.Keyword, kw}})
	}
}

func TestOperators(t *testing.T) {
	expectTokens(t, "i++ j-- a+=1 b==c d!=e f&&g h||k !m n<=o p%q", []want{
		{token.Identifier, "i"}, {token.Operator, "++"},
		{token.Identifier, "j"}, {token.Operator, "--"},
		{token.Identifier, "a"}, {token.Operator, "+="}, {token.Number, "1"},
		{token.Identifier, "b"}, {token.Operator, "=="}, {token.Identifier, "c"},
		{token.Identifier, "d"}, {token.Operator, "!="}, {token.Identifier, "e"},
		{token.Identifier, "f"}, {token.Operator, "&&"}, {token.Identifier, "g"},
		{token.Identifier, "h"}, {token.Operator, "||"}, {token.Identifier, "k"},
		{token.Operator, "!"}, {token.Identifier, "m"},
		{token.Identifier, "n"}, {token.Operator, "<="}, {token.Identifier, "o"},
		{token.Identifier, "p"}, {token.Operator, "%"}, {token.Identifier, "q"},
	})
}

func TestNumbers(t *testing.T) {
	for _, n := range []string{"0", "42", "3.14", "1e10", "2.5E-3", "6e+2"} {
		expectTokens(t, n, []want{{token.Number, n}})
	}
	// точка без дробной части — отдельная пунктуация
	expectTokens(t, "1.", []want{{token.Number, "1"}, {token.Punctuation, "."}})
}

func TestStringsHaveNoEscapes(t *testing.T) {
	expectTokens(t, `printf("x is %d\n", x);`, []want{
		{token.Keyword, "printf"},
		{token.Punctuation, "("},
		{token.String, `"x is %d\n"`},
		{token.Punctuation, ","},
		{token.Identifier, "x"},
		{token.Punctuation, ")"},
		{token.Punctuation, ";"},
	})
	// незакрытая строка: кавычка становится ERROR
	expectTokens(t, `"abc`, []want{{token.Error, `"`}, {token.Identifier, "abc"}})
}

func TestCommentsAreSkipped(t *testing.T) {
	expectTokens(t, "// header\nint /* a */ x /* b */;", []want{
		{token.Keyword, "int"},
		{token.Identifier, "x"},
		{token.Punctuation, ";"},
	})
	expectTokens(t, "a /= b", []want{
		{token.Identifier, "a"},
		{token.Operator, "/="},
		{token.Identifier, "b"},
	})
	expectTokens(t, "/** doc **/int", []want{{token.Keyword, "int"}})
}

func TestErrorTokens(t *testing.T) {
	expectTokens(t, "#include @", []want{
		{token.Error, "#"},
		{token.Identifier, "include"},
		{token.Error, "@"},
	})

	toks := lexer.Tokenize("λx")
	if len(toks) != 2 || toks[0].Kind != token.Error || toks[0].Text != "λ" {
		t.Fatalf("unexpected tokens: %s", tokensToString(toks))
	}
	if toks[1].Column != 2 {
		t.Errorf("a multi-byte error rune must advance one column, got column %d", toks[1].Column)
	}
}

func TestPositions(t *testing.T) {
	toks := lexer.Tokenize("int x;\n  for (i)\n\tx")
	type pos struct{ line, col uint32 }
	expected := []pos{
		{1, 1}, {1, 5}, {1, 6},
		{2, 3}, {2, 7}, {2, 8}, {2, 9},
		{3, 2},
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens: %s", len(toks), tokensToString(toks))
	}
	for i, p := range expected {
		if toks[i].Line != p.line || toks[i].Column != p.col {
			t.Errorf("token %d %q at %d:%d, want %d:%d",
				i, toks[i].Text, toks[i].Line, toks[i].Column, p.line, p.col)
		}
	}
}

func TestMultilineCommentAdvancesLines(t *testing.T) {
	toks := lexer.Tokenize("/* one\ntwo\n */ x")
	if len(toks) != 1 || toks[0].Line != 3 || toks[0].Column != 5 {
		t.Fatalf("got %s at %d:%d", tokensToString(toks), toks[0].Line, toks[0].Column)
	}
}

// TestFullConsumption checks that token spans cover the source exactly and
// that every gap between them lexes to nothing (whitespace or comments).
func TestFullConsumption(t *testing.T) {
	inputs := []string{
		"",
		"int x; for(int i=0;i<10;i++){ x = i; }",
		"if (x > 0 { y = 1; }",
		"  /* c */ double d = 1.5e3; // tail",
		"#$ int λ = \"str\";\n\n\twhile(x--) { printf(\"%d\", x); }",
		"a\r\nb",
	}
	for _, src := range inputs {
		toks := lexer.Tokenize(src)
		var prev uint32
		for _, tok := range toks {
			if tok.Span.Start < prev {
				t.Fatalf("%q: spans overlap at %q", src, tok.Text)
			}
			if gap := src[prev:tok.Span.Start]; len(lexer.Tokenize(gap)) != 0 {
				t.Errorf("%q: gap %q produced tokens", src, gap)
			}
			if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
				t.Errorf("%q: span text %q != token text %q", src, got, tok.Text)
			}
			prev = tok.Span.End
		}
		if tail := src[prev:]; len(lexer.Tokenize(tail)) != 0 {
			t.Errorf("%q: trailing %q produced tokens", src, tail)
		}
	}
}

func TestStreamingNextAndPeek(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("stream.c", []byte("return 0;"))))

	if p := lx.Peek(); !p.IsKeyword("return") {
		t.Fatalf("peek = %s(%q)", p.Kind, p.Text)
	}
	if n := lx.Next(); !n.IsKeyword("return") {
		t.Fatalf("next after peek = %s(%q)", n.Kind, n.Text)
	}
	lx.Next()
	lx.Next()
	for range 2 {
		if eof := lx.Next(); eof.Kind != token.EOF || eof.Column != 10 {
			t.Fatalf("expected sticky EOF at column 10, got %s at %d", eof.Kind, eof.Column)
		}
	}
}
