package diagfmt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"clens/internal/diag"
	"clens/internal/diagfmt"
	"clens/internal/driver"
	"clens/internal/source"
	"clens/internal/symbols"
	"clens/internal/token"
)

func analyze(t *testing.T, src string) *driver.Result {
	t.Helper()
	res := driver.Analyze(context.Background(), src, driver.Options{})
	if res.Failed() {
		t.Fatalf("analysis failed: %+v", res.Diagnostics)
	}
	return res
}

func virtualFile(name, src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual(name, []byte(src)))
}

func decodeJSON(t *testing.T, b *diagfmt.Bundle) map[string]json.RawMessage {
	t.Helper()
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, b, diagfmt.JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestBundleJSONFieldNames(t *testing.T) {
	res := analyze(t, "int x; for(int i=0;i<n;i++){}")
	out := decodeJSON(t, diagfmt.NewBundle(res, "", false))

	for _, key := range []string{"tokens", "parseTree", "scopes", "flow", "complexity", "diagnostics"} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing field %q", key)
		}
	}
	if _, ok := out["timings"]; ok {
		t.Errorf("timings present without request")
	}

	var toks []map[string]any
	if err := json.Unmarshal(out["tokens"], &toks); err != nil {
		t.Fatal(err)
	}
	first := toks[0]
	if first["kind"] != "KEYWORD" || first["text"] != "int" || first["line"] != 1.0 || first["column"] != 1.0 {
		t.Errorf("first token = %v", first)
	}

	var scopes struct {
		ID           int                       `json:"id"`
		Kind         string                    `json:"kind"`
		Declarations map[string]map[string]any `json:"declarations"`
		Children     []json.RawMessage         `json:"children"`
	}
	if err := json.Unmarshal(out["scopes"], &scopes); err != nil {
		t.Fatal(err)
	}
	if scopes.ID != 1 || scopes.Kind != "global" {
		t.Errorf("global scope = %d %s", scopes.ID, scopes.Kind)
	}
	x, ok := scopes.Declarations["x"]
	if !ok {
		t.Fatalf("x not declared globally: %v", scopes.Declarations)
	}
	for _, key := range []string{"name", "declaredType", "initialized", "declLine", "declColumn"} {
		if _, ok := x[key]; !ok {
			t.Errorf("declaration missing %q: %v", key, x)
		}
	}
	if x["declLine"] != 1.0 || x["declColumn"] != 5.0 || x["initialized"] != false {
		t.Errorf("declaration x = %v", x)
	}
	if len(scopes.Children) != 1 {
		t.Errorf("want one loop scope, got %d", len(scopes.Children))
	}

	var tree struct {
		Kind     string            `json:"kind"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(out["parseTree"], &tree); err != nil {
		t.Fatal(err)
	}
	if tree.Kind != "PROGRAM" || len(tree.Children) != 2 {
		t.Errorf("parseTree root = %s with %d children", tree.Kind, len(tree.Children))
	}
}

func TestBundleDegraded(t *testing.T) {
	res := &driver.Result{
		Tokens: []token.Token{},
		Scopes: symbols.Empty().Table,
		Diagnostics: []diag.Diagnostic{
			diag.NewError(diag.IntAnalysisFailed, 1, 1, "Analysis failed: boom"),
		},
	}
	out := decodeJSON(t, diagfmt.NewBundle(res, "", false))

	for _, key := range []string{"parseTree", "flow", "complexity"} {
		if string(out[key]) != "null" {
			t.Errorf("%s = %s, want null", key, out[key])
		}
	}
	if string(out["tokens"]) != "[]" {
		t.Errorf("tokens = %s", out["tokens"])
	}
	if string(out["scopes"]) != `{"declarations":{},"children":[]}` {
		t.Errorf("scopes = %s", out["scopes"])
	}
	if !strings.Contains(string(out["diagnostics"]), `"code":"INT9001"`) {
		t.Errorf("diagnostics = %s", out["diagnostics"])
	}
}

func TestMsgpackUsesJSONNames(t *testing.T) {
	res := analyze(t, "while (x) { int y; }")
	var buf bytes.Buffer
	if err := diagfmt.Msgpack(&buf, diagfmt.NewBundle(res, "w.c", false)); err != nil {
		t.Fatalf("Msgpack: %v", err)
	}
	var out map[string]any
	if err := msgpack.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"path", "tokens", "parseTree", "scopes", "flow", "complexity", "diagnostics"} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing field %q", key)
		}
	}
	if out["path"] != "w.c" {
		t.Errorf("path = %v", out["path"])
	}
}

func TestPrettyCaret(t *testing.T) {
	src := "int x = @;"
	res := analyze(t, src)
	var buf bytes.Buffer
	err := diagfmt.Pretty(&buf, res.Diagnostics, virtualFile("t.c", src), diagfmt.PrettyOpts{ShowContext: true})
	if err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"t.c:1:9: error LEX1001: Invalid token: @\n",
		" 1 | int x = @;\n",
		"   |         ^\n",
		"  context: int x = @ ;\n",
		"  help: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	d := diag.NewError(diag.SynUnclosedBracket, 2, 3, "Unclosed bracket '('")
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, []diag.Diagnostic{d}, nil, diagfmt.PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<input>:2:3: error SYN2002: Unclosed bracket '('\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrettyUnderlinesPrimarySpan(t *testing.T) {
	src := "int abc = 1;"
	file := virtualFile("u.c", src)
	d := diag.NewError(diag.UnknownCode, 1, 5, "wide")
	d.Primary = source.Span{File: file.ID, Start: 4, End: 7}
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, []diag.Diagnostic{d}, file, diagfmt.PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "   |     ^~~\n") {
		t.Errorf("got:\n%s", buf.String())
	}
}

func TestFormatTree(t *testing.T) {
	res := analyze(t, "int x;")
	var buf bytes.Buffer
	if err := diagfmt.FormatTree(&buf, res.Tree); err != nil {
		t.Fatal(err)
	}
	want := "PROGRAM\n" +
		"└─ STATEMENT (1:1)\n" +
		"   ├─ KEYWORD \"int\" (1:1)\n" +
		"   └─ IDENTIFIER \"x\" (1:5)\n"
	if buf.String() != want {
		t.Errorf("tree:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatTokens(t *testing.T) {
	var buf bytes.Buffer
	if err := diagfmt.FormatTokens(&buf, analyze(t, "x;").Tokens); err != nil {
		t.Fatal(err)
	}
	want := "  1: IDENTIFIER   \"x\" at 1:1\n" +
		"  2: PUNCTUATION  \";\" at 1:2\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestFormatScopesAndFlow(t *testing.T) {
	res := analyze(t, "int a = 1; if (a > 0) { int b; }")

	var scopes bytes.Buffer
	if err := diagfmt.FormatScopes(&scopes, res.Scopes); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Scope[1] global", "int a = ... (1:5)", "Scope[2] if", "int b (1:29)"} {
		if !strings.Contains(scopes.String(), want) {
			t.Errorf("scopes missing %q:\n%s", want, scopes.String())
		}
	}

	var flow bytes.Buffer
	if err := diagfmt.FormatFlow(&flow, res.Flow, res.Tree); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(flow.String(), "IF_STATEMENT [BRANCH: a > 0]") {
		t.Errorf("flow:\n%s", flow.String())
	}
	if strings.Contains(flow.String(), "IDENTIFIER") {
		t.Errorf("flow dump lists leaves:\n%s", flow.String())
	}
}

func TestFormatFlowMarksNestedLoops(t *testing.T) {
	res := analyze(t, "for (;;) { while (b) { } } while (c) { }")
	var buf bytes.Buffer
	if err := diagfmt.FormatFlow(&buf, res.Flow, res.Tree); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "(nested)"); n != 1 {
		t.Fatalf("want one nested loop, got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "WHILE_STATEMENT [LOOP: b] (nested)") {
		t.Errorf("inner while not marked:\n%s", buf.String())
	}
}

func TestRenderSections(t *testing.T) {
	src := "for (;;) { while (1) { } }"
	res := driver.Analyze(context.Background(), src, driver.Options{Timings: true})
	var buf bytes.Buffer
	opts := diagfmt.RenderOpts{Format: diagfmt.FormatPretty, Timings: true}
	if err := diagfmt.Render(&buf, res, virtualFile("loops.c", src), opts); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{"== Tokens ==", "== Parse tree ==", "== Scopes ==", "== Control flow ==", "== Complexity ==", "== Diagnostics ==", "== Timings ==", "time:  O(n²)", "no diagnostics"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderShort(t *testing.T) {
	src := "int x = (1;"
	res := analyze(t, src)
	var buf bytes.Buffer
	opts := diagfmt.RenderOpts{Format: diagfmt.FormatShort}
	if err := diagfmt.Render(&buf, res, virtualFile("a.c", src), opts); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "error SYN2002 a.c:1:9 ") {
		t.Errorf("got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"pretty", "short", "json", "msgpack"} {
		f, err := diagfmt.ParseFormat(s)
		if err != nil || f.String() != s {
			t.Errorf("ParseFormat(%q) = %v, %v", s, f, err)
		}
	}
	if _, err := diagfmt.ParseFormat("xml"); err == nil {
		t.Error("want error for xml")
	}
}
