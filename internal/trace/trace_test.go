package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "stage", "debug", "STAGE"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("phase"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelFiltering(t *testing.T) {
	if LevelStage.ShouldEmit(ScopeNode) {
		t.Error("stage level must drop node events")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) || !LevelError.ShouldEmit(ScopeStage) {
		t.Error("unexpected filtering")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Error("off must drop everything")
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		r.Emit(&Event{Seq: uint64(i), Scope: ScopeStage})
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Seq != 2 || snap[2].Seq != 4 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestStartPropagatesParent(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelStage, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)

	outer, ctx := Start(ctx, ScopeDriver, "analyze")
	inner, _ := Start(ctx, ScopeStage, "parse")
	inner.WithExtra("nodes", "7").End("")
	outer.End("done")

	ring := RingOf(tr)
	if ring == nil {
		t.Fatal("expected crash ring")
	}
	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("got %d events", len(events))
	}
	if events[1].Name != "parse" || events[1].ParentID != outer.ID() {
		t.Fatalf("parse event = %+v", events[1])
	}
	if got := strings.Count(buf.String(), "\n"); got != 4 {
		t.Fatalf("stream wrote %d lines", got)
	}
	if !strings.Contains(buf.String(), `"extra":{"nodes":"7"}`) {
		t.Fatalf("missing extra in %s", buf.String())
	}
}

func TestNopContext(t *testing.T) {
	sp, ctx := Start(context.Background(), ScopeStage, "lex")
	if sp.ID() != 0 || CurrentSpan(ctx) != 0 {
		t.Fatal("nop tracer must not allocate spans")
	}
	if sp.End("") != 0 {
		t.Fatal("nop span has no duration")
	}
}

func TestFormatText(t *testing.T) {
	ev := &Event{Kind: KindSpanEnd, Scope: ScopeStage, Name: "parse", Detail: "ok", Extra: map[string]string{"b": "2", "a": "1"}}
	got := string(FormatEvent(ev, FormatText))
	if !strings.HasSuffix(got, "  ← parse (ok) {a=1, b=2}\n") {
		t.Fatalf("text = %q", got)
	}
}
