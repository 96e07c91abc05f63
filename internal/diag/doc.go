// Package diag defines the diagnostic model shared by all checker phases.
//
// Diagnostic is the central record: Severity, Code (stable numeric id with a
// rule-name string form), Message, a primary source.Span, plus optional Notes
// and Fix suggestions. Producers emit through a Reporter so that emission is
// decoupled from storage; BagReporter aggregates into a Bag, which supports
// sorting, deduplication and the HasErrors exit contract.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt, orchestration in internal/driver. Keep the data model
// deterministic: diagnostics are serialised for caching and golden tests.
package diag
