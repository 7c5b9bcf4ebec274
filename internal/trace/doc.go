// Package trace records begin/end events for the analysis stages.
//
// Tracers travel through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeStage, "parse")
//	defer span.End("")
//
// Implementations: Nop (disabled), StreamTracer (text or NDJSON to a
// writer), RingTracer (last N events, dumped when an analysis crashes) and
// MultiTracer (fan-out). New always includes a ring when tracing is on.
//
// Levels: off, error (events are kept in the ring only for crash dumps),
// stage (driver and stage boundaries), debug (everything).
package trace
