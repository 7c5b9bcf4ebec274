package fuzztests

import "testing"

const maxFuzzInput = 64 << 10 // 64 KiB

var seeds = []string{
	"",
	"int x;",
	"int x = 5; float y = x * 2;",
	"for (int i = 0; i < n; i++) { sum += i; }",
	"for (;;) { while (1) { if (x) { } else { } } }",
	"if (a > 0) { int b; } else if (a < 0) { int c; }",
	"while (x) { int x = 1; }",
	"int x = (1;",
	"int x = @;",
	"{ { { } }",
	")))",
	"for (int i = 0; i < n; i++",
	"char c = 'a'; char *s = \"str\\\"ing\";",
	"// comment\n/* block */ int z;",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
