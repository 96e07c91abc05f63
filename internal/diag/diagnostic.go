package diag

import (
	"stcheck/internal/source"
)

// Note attaches secondary information to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement of a suggested fix.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction. The checker only suggests; applying edits
// is a caller concern.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is a single reported finding. Immutable after construction.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
