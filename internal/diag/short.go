package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShort renders diagnostics one per line as
//
//	error LEX1001 path:line:col message
//
// keeping the given order. Used for golden files and the CLI short format.
func FormatShort(diags []Diagnostic, path string) string {
	path = normalizePath(path)
	var b strings.Builder
	for i, d := range diags {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", severityLabel(d.Severity), d.Code.ID(), path, d.Line, d.Column, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
