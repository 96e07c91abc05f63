// Package ast defines the Unit Tree: the immutable syntax tree the parser
// builds for one structured-text file. Nodes are plain values constructed
// bottom-up and never mutated afterwards; every node carries a source.Span.
// The tree stops at statement shape: expressions stay opaque text, since
// convention rules inspect surface form only.
package ast
