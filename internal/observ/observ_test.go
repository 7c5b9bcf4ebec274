package observ

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "lex" || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %f below phase %f", r.TotalMS, r.Phases[0].DurationMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "lex") || !strings.Contains(s, "total") {
		t.Fatalf("summary = %q", s)
	}

	var nilTimer *Timer
	if len(nilTimer.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}

func TestWriteMetrics(t *testing.T) {
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues(OutcomeOK))
	AnalysesTotal.WithLabelValues(OutcomeOK).Inc()
	if got := testutil.ToFloat64(AnalysesTotal.WithLabelValues(OutcomeOK)); got != before+1 {
		t.Fatalf("counter = %f", got)
	}

	path := filepath.Join(t.TempDir(), "clens.prom")
	if err := WriteMetrics(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "clens_analyses_total") {
		t.Fatalf("metrics file lacks counter:\n%s", data)
	}
}
