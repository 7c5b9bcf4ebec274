package diag

func New(sev Severity, code Code, line, col uint32, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Line:     line,
		Column:   col,
		Message:  msg,
	}
}

func NewError(code Code, line, col uint32, msg string) Diagnostic {
	return New(SevError, code, line, col, msg)
}

func (d Diagnostic) WithContext(ctx string) Diagnostic {
	d.Context = ctx
	return d
}

func (d Diagnostic) WithSuggestion(s ...string) Diagnostic {
	d.Suggestions = append(d.Suggestions, s...)
	return d
}
