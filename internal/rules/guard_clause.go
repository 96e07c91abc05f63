package rules

import (
	"stcheck/internal/ast"
	"stcheck/internal/diag"
)

// GuardClausePreference flags deep IF nesting that an early return would
// flatten: an IF with a real ELSE branch sitting at depth two or more
// inside another IF's then-branch. The diagnostic points at the outermost
// IF of the nest, once per nest. ELSIF chains stay at the depth of their
// head IF, and ELSE branches, CASE arms and loop bodies open fresh scopes,
// so idiomatic dispatch code does not trip the rule.
type GuardClausePreference struct{}

func (GuardClausePreference) Code() diag.Code               { return diag.RulePreferGuardClause }
func (GuardClausePreference) DefaultSeverity() diag.Severity { return diag.SevInfo }
func (GuardClausePreference) Doc() string {
	return "prefer guard clauses over nested IF/ELSE"
}

func (GuardClausePreference) CheckUnit(ctx *Context, u *ast.Unit) {
	if u.Kind != ast.UnitProgram {
		return
	}
	guardScan(ctx, u.Body)
}

func (GuardClausePreference) CheckMethod(ctx *Context, _ *ast.Unit, m *ast.Method) {
	guardScan(ctx, m.Body)
}

// guardScan walks one statement scope. Each outermost IF is judged as a
// whole nest; container statements recurse as new scopes.
func guardScan(ctx *Context, stmts []ast.Stmt) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.IfStmt:
			if hasDeepElse(st, 1) {
				ctx.Report(st.Sp,
					"deeply nested IF/ELSE, restructure with guard clauses and early returns")
				continue
			}
			for seg := st; seg != nil; seg = elsifContinuation(seg) {
				guardScan(ctx, seg.Then)
			}
			guardScan(ctx, realElse(st))
		case *ast.CaseStmt:
			for _, arm := range st.Arms {
				guardScan(ctx, arm.Body)
			}
			guardScan(ctx, st.Else)
		case *ast.BlockStmt:
			guardScan(ctx, st.Body)
		}
	}
}

// hasDeepElse reports whether the nest rooted at ifs contains, at depth two
// or beyond counting ifs itself as depth, an IF with a non-empty ELSE
// branch. ELSIF continuations keep their head's depth.
func hasDeepElse(ifs *ast.IfStmt, depth int) bool {
	if depth >= 2 && len(realElse(ifs)) > 0 {
		return true
	}
	for _, s := range ifs.Then {
		if inner, ok := s.(*ast.IfStmt); ok && hasDeepElse(inner, depth+1) {
			return true
		}
	}
	if cont := elsifContinuation(ifs); cont != nil {
		return hasDeepElse(cont, depth)
	}
	return false
}

// elsifContinuation returns the IF synthesized from an ELSIF arm, when the
// else branch is exactly that continuation.
func elsifContinuation(ifs *ast.IfStmt) *ast.IfStmt {
	if len(ifs.Else) != 1 {
		return nil
	}
	inner, ok := ifs.Else[0].(*ast.IfStmt)
	if !ok || !inner.FromElsif {
		return nil
	}
	return inner
}

// realElse returns the hand-written ELSE branch, excluding an ELSIF
// continuation.
func realElse(ifs *ast.IfStmt) []ast.Stmt {
	if cont := elsifContinuation(ifs); cont != nil {
		return realElse(cont)
	}
	return ifs.Else
}
