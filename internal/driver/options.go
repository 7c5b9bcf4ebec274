package driver

import (
	"io"
	"time"

	"clens/internal/check"
	"clens/internal/symbols"
)

// Options configure one analysis.
type Options struct {
	ScopeMode      symbols.Mode
	ContextRadius  int // tokens quoted around an invalid token; 0 = default
	MaxDiagnostics int // 0 = unlimited
	// Delay simulates processing time before the pipeline starts. It is
	// interrupted by context cancellation.
	Delay time.Duration
	// Timings attaches per-stage durations to the result.
	Timings bool
	// CrashDump receives the trace ring when a stage panics.
	CrashDump io.Writer
}

func (o Options) checkOptions() check.Options {
	return check.Options{
		ContextRadius:  o.ContextRadius,
		MaxDiagnostics: o.MaxDiagnostics,
	}
}
