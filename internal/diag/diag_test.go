package diag

import (
	"encoding/json"
	"testing"
)

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexInvalidToken:      "LEX1001",
		SynMismatchedBracket: "SYN2001",
		SynUnclosedBracket:   "SYN2002",
		IntAnalysisFailed:    "INT9001",
		UnknownCode:          "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
		var back Code
		if err := back.UnmarshalText([]byte(want)); err != nil || back != code {
			t.Errorf("UnmarshalText(%q) = %d, %v", want, back, err)
		}
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		bag.Add(NewError(LexInvalidToken, 1, uint32(i+1), "x"))
	}
	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}

	unlimited := NewBag(0)
	for range 100 {
		unlimited.Add(NewError(LexInvalidToken, 1, 1, "x"))
	}
	if unlimited.Len() != 100 {
		t.Fatalf("unlimited bag kept %d", unlimited.Len())
	}
}

func TestBagSeverities(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	ReportWarning(r, UnknownCode, 2, 1, "warn").Emit()
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected only warnings")
	}
	ReportError(r, SynUnclosedBracket, 1, 5, "Unclosed bracket: (").Emit()
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	items := bag.Items()
	if len(items) != 2 || items[0].Severity != SevWarning || items[1].Code != SynUnclosedBracket {
		t.Fatalf("emission order not kept: %+v", items)
	}
}

func TestDiagnosticJSON(t *testing.T) {
	d := NewError(LexInvalidToken, 1, 9, "Invalid token: @").WithContext("int x = @ ;")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"severity":"ERROR","code":"LEX1001","message":"Invalid token: @","line":1,"column":9,"context":"int x = @ ;"}`
	if string(data) != want {
		t.Fatalf("json = %s", data)
	}
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewError(SynUnclosedBracket, 1, 9, "Unclosed bracket: ("),
		New(SevWarning, UnknownCode, 2, 1, "first\nsecond"),
	}
	want := "error SYN2002 testdata/a.c:1:9 Unclosed bracket: (\n" +
		"warning E0000 testdata/a.c:2:1 first second"
	if got := FormatShort(diags, "./testdata/a.c"); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
