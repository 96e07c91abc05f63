// Package diagfmt renders collected diagnostics for humans (colored
// terminal output with source excerpts) and machines (JSON, SARIF 2.1.0).
// Rendering never mutates its input; the checker's ordering guarantees are
// preserved as-is.
package diagfmt
