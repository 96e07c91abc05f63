// Package rules is the convention engine: a fixed set of stateless checks
// evaluated against the parsed tree of one file. The engine performs a
// single traversal, dispatching each node to the rules interested in its
// kind, and contains rule panics so one broken rule cannot silence the
// others.
package rules
