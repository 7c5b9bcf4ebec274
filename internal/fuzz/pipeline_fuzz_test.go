package fuzztests

import (
	"context"
	"testing"
	"time"

	"clens/internal/check"
	"clens/internal/complexity"
	"clens/internal/driver"
	"clens/internal/flow"
	"clens/internal/lexer"
	"clens/internal/parser"
	"clens/internal/symbols"
	"clens/internal/token"
)

// analyzeTimeout bounds a single run; exceeding it means a stage loops.
const analyzeTimeout = 5 * time.Second

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := clamp(input)
		var prevLine, prevCol uint32
		for _, tok := range lexer.Tokenize(src) {
			if tok.Kind == token.Invalid && tok.Text == "" {
				t.Fatalf("empty invalid token at %d:%d", tok.Line, tok.Column)
			}
			if tok.Line < prevLine || (tok.Line == prevLine && tok.Column <= prevCol) {
				t.Fatalf("token %q at %d:%d is not after %d:%d", tok.Text, tok.Line, tok.Column, prevLine, prevCol)
			}
			prevLine, prevCol = tok.Line, tok.Column
		}
	})
}

func FuzzPipeline(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		tokens := lexer.Tokenize(clamp(input))
		tree := parser.Parse(tokens)
		for _, mode := range []symbols.Mode{symbols.ModeBlock, symbols.ModeSticky} {
			res := symbols.Build(tree, symbols.Options{Mode: mode})
			if !res.Table.Global().IsValid() {
				t.Fatalf("mode %v: no global scope", mode)
			}
			_ = check.Collect(tokens, tree, res.Diagnostics, check.Options{})
		}
		if flow.Build(tree) == nil {
			t.Fatal("nil flow root")
		}
		if complexity.Estimate(tree) == nil {
			t.Fatal("nil complexity report")
		}
	})
}

// FuzzAnalyzeNoHang runs the whole driver under a deadline.
func FuzzAnalyzeNoHang(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := clamp(input)
		done := make(chan *driver.Result, 1)
		go func() {
			done <- driver.Analyze(context.Background(), src, driver.Options{})
		}()
		select {
		case res := <-done:
			if res.Failed() {
				t.Fatalf("analysis failed: %+v", res.Diagnostics)
			}
		case <-time.After(analyzeTimeout):
			t.Fatalf("analysis did not finish within %v (input %d bytes)", analyzeTimeout, len(src))
		}
	})
}
