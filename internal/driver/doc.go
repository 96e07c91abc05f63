// Package driver wires the per-file pipeline (tokenize, parse, evaluate,
// collect) into whole-run operations: discovery, a parallel worker pool, a
// content-addressed diagnostics cache and a filesystem watch mode. Files
// share no mutable state, so the pool needs no locking beyond per-index
// result slots.
package driver
