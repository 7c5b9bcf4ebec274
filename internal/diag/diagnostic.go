package diag

import "clens/internal/source"

// Diagnostic is one reported issue. Line and Column are 1-based; Context is
// an optional snippet of neighbouring tokens.
type Diagnostic struct {
	Severity    Severity    `json:"severity" msgpack:"severity"`
	Code        Code        `json:"code" msgpack:"code"`
	Message     string      `json:"message" msgpack:"message"`
	Line        uint32      `json:"line" msgpack:"line"`
	Column      uint32      `json:"column" msgpack:"column"`
	Context     string      `json:"context,omitempty" msgpack:"context,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty" msgpack:"suggestions,omitempty"`
	Primary     source.Span `json:"-" msgpack:"-"`
}
