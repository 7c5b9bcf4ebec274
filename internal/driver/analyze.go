package driver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"time"

	"clens/internal/ast"
	"clens/internal/check"
	"clens/internal/complexity"
	"clens/internal/diag"
	"clens/internal/flow"
	"clens/internal/lexer"
	"clens/internal/observ"
	"clens/internal/parser"
	"clens/internal/source"
	"clens/internal/symbols"
	"clens/internal/token"
	"clens/internal/trace"
)

// Стадии конвейера; тесты подменяют их, чтобы проверить аварийный путь.
var (
	lex = func(f *source.File) []token.Token { return lexer.New(f).All() }

	parse       = parser.Parse
	buildScopes = symbols.Build
	buildFlow   = flow.Build
	estimate    = complexity.Estimate
	collect     = check.Collect
)

// Analyze runs the whole pipeline over src. It never panics: a fault in any
// stage yields the degraded result described on Result.
func Analyze(ctx context.Context, src string, opts Options) *Result {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(src)))
	return AnalyzeSource(ctx, file, opts)
}

// AnalyzeSource is Analyze over an already loaded file; diagnostics can then
// be rendered against the same file.
func AnalyzeSource(ctx context.Context, file *source.File, opts Options) (res *Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "analyze")
	span.WithExtra("file", file.Path)

	defer func() {
		if r := recover(); r != nil {
			res = failure(ctx, r, opts)
			span.End("failed")
		}
	}()

	if err := sleep(ctx, opts.Delay); err != nil {
		res = failure(ctx, err, opts)
		span.End("cancelled")
		return res
	}

	res = run(ctx, file, opts)
	observ.AnalysesTotal.WithLabelValues(observ.OutcomeOK).Inc()
	span.End(fmt.Sprintf("diags=%d", len(res.Diagnostics)))
	return res
}

func run(ctx context.Context, file *source.File, opts Options) *Result {
	timer := observ.NewTimer()
	res := &Result{}

	res.Tokens = stage(ctx, timer, "lex", func() []token.Token {
		return lex(file)
	}, func(toks []token.Token) string { return "tokens=" + strconv.Itoa(len(toks)) })

	res.Tree = stage(ctx, timer, "parse", func() *ast.Tree {
		return parse(res.Tokens)
	}, func(t *ast.Tree) string { return "nodes=" + strconv.Itoa(t.Len()) })

	scopes := stage(ctx, timer, "scopes", func() *symbols.Result {
		return buildScopes(res.Tree, symbols.Options{Mode: opts.ScopeMode})
	}, func(r *symbols.Result) string { return "scopes=" + strconv.Itoa(r.Table.Scopes.Len()) })
	res.Scopes = scopes.Table
	if err := res.Scopes.Validate(); err != nil {
		panic(fmt.Errorf("scope table: %w", err))
	}

	res.Flow = stage(ctx, timer, "flow", func() *flow.Node {
		return buildFlow(res.Tree)
	}, nil)

	res.Complexity = stage(ctx, timer, "complexity", func() *complexity.Report {
		return estimate(res.Tree)
	}, func(r *complexity.Report) string { return "time=" + r.Time.Class.String() })

	res.Diagnostics = stage(ctx, timer, "check", func() []diag.Diagnostic {
		return collect(res.Tokens, res.Tree, scopes.Diagnostics, opts.checkOptions())
	}, func(ds []diag.Diagnostic) string { return "diags=" + strconv.Itoa(len(ds)) })

	if opts.Timings {
		report := timer.Report()
		res.Timings = &report
	}
	record(res)
	return res
}

// stage runs fn inside a trace span and a timer phase.
func stage[T any](ctx context.Context, timer *observ.Timer, name string, fn func() T, note func(T) string) T {
	span, _ := trace.Start(ctx, trace.ScopeStage, name)
	idx := timer.Begin(name)
	out := fn()
	detail := ""
	if note != nil {
		detail = note(out)
	}
	dur := timer.End(idx, detail)
	span.End(detail)
	observ.StageDuration.WithLabelValues(name).Observe(dur.Seconds())
	return out
}

func record(res *Result) {
	for _, tok := range res.Tokens {
		observ.TokensTotal.WithLabelValues(tok.Kind.String()).Inc()
	}
	for _, d := range res.Diagnostics {
		observ.DiagnosticsTotal.WithLabelValues(d.Code.ID()).Inc()
	}
	observ.NestingDepth.Observe(float64(res.Complexity.Stats.MaxDepth))
}

var failureSuggestions = []string{
	"Check the input for unusual or deeply nested constructs",
	"Try analysing a smaller fragment to isolate the problem",
	"Report the input that triggered the failure",
}

// failure builds the degraded result for a fault and reports it to operators.
func failure(ctx context.Context, fault any, opts Options) *Result {
	msg := faultText(fault)
	slog.ErrorContext(ctx, "analysis failed", "fault", msg, "stack", string(debug.Stack()))
	observ.AnalysesTotal.WithLabelValues(observ.OutcomeFailed).Inc()
	observ.DiagnosticsTotal.WithLabelValues(diag.IntAnalysisFailed.ID()).Inc()

	tracer := trace.FromContext(ctx)
	trace.Point(tracer, trace.ScopeDriver, "fault", msg, trace.CurrentSpan(ctx))
	if opts.CrashDump != nil {
		if ring := trace.RingOf(tracer); ring != nil {
			if err := ring.Dump(opts.CrashDump, trace.FormatText); err != nil {
				slog.WarnContext(ctx, "trace dump failed", "error", err)
			}
		}
	}

	d := diag.NewError(diag.IntAnalysisFailed, 1, 1, "Analysis failed: "+msg).
		WithSuggestion(failureSuggestions...)
	return &Result{
		Tokens:      []token.Token{},
		Scopes:      symbols.Empty().Table,
		Diagnostics: []diag.Diagnostic{d},
	}
}

func faultText(fault any) string {
	switch v := fault.(type) {
	case error:
		return v.Error()
	case string:
		return v
	}
	return fmt.Sprint(fault)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
