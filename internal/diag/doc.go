// Package diag defines the diagnostic model shared by the analysis checks.
//
// Diagnostic is the central record: a tri-level Severity, a compact numeric
// Code with a stable textual ID (LEX1001, SYN2001, ...), a short message,
// a 1-based line/column position, an optional context snippet and free-form
// remediation suggestions.
//
// Checks emit through a Reporter so emission is decoupled from storage.
// BagReporter aggregates into a Bag, which supports limits, sorting,
// deduplication and filtering. Rendering lives in internal/diagfmt.
package diag
