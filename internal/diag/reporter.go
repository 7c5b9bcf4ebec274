package diag

import "clens/internal/source"

// Reporter — минимальный контракт получения диагностик от проверок.
// Реализация: BagReporter (кладёт в Bag с учётом лимита).
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, line, col uint32, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, line, col, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, line, col uint32, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, line, col, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, line, col uint32, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, line, col, msg)
}

func (b *ReportBuilder) WithContext(ctx string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithContext(ctx)
	return b
}

// WithPrimary attaches the source span the diagnostic points at.
func (b *ReportBuilder) WithPrimary(sp source.Span) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Primary = sp
	return b
}

func (b *ReportBuilder) WithSuggestion(s ...string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithSuggestion(s...)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
