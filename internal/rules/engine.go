package rules

import (
	"fmt"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/source"
)

// Rule is one convention check. Rules are stateless; per-file state lives in
// the Context. A rule additionally implements one or more of the node
// interfaces (UnitRule, BlockRule, DeclRule, MethodRule) declaring which
// nodes it wants to see.
type Rule interface {
	Code() diag.Code
	DefaultSeverity() diag.Severity
	Doc() string
}

// UnitRule is dispatched once per top-level unit.
type UnitRule interface {
	Rule
	CheckUnit(ctx *Context, u *ast.Unit)
}

// BlockRule is dispatched once per declaration block, including method-local
// blocks.
type BlockRule interface {
	Rule
	CheckBlock(ctx *Context, u *ast.Unit, blk *ast.DeclBlock)
}

// DeclRule is dispatched once per declaration.
type DeclRule interface {
	Rule
	CheckDecl(ctx *Context, u *ast.Unit, blk *ast.DeclBlock, d *ast.Decl)
}

// MethodRule is dispatched once per method.
type MethodRule interface {
	Rule
	CheckMethod(ctx *Context, u *ast.Unit, m *ast.Method)
}

// Context carries the per-file inputs a rule may inspect and the reporting
// sink bound to the rule's effective severity.
type Context struct {
	File    *source.File
	Indents map[uint32]string // 1-based line -> raw leading whitespace

	rep  diag.Reporter
	code diag.Code
	sev  diag.Severity
}

// Report emits a diagnostic with the rule's code and effective severity.
func (ctx *Context) Report(sp source.Span, msg string) {
	ctx.rep.Report(ctx.code, ctx.sev, sp, msg, nil, nil)
}

// ReportFix emits a diagnostic carrying a suggested fix.
func (ctx *Context) ReportFix(sp source.Span, msg string, fix diag.Fix) {
	ctx.rep.Report(ctx.code, ctx.sev, sp, msg, nil, []diag.Fix{fix})
}

// Indent returns the raw leading whitespace of the 1-based line containing
// the given offset.
func (ctx *Context) Indent(off uint32) string {
	return ctx.Indents[ctx.File.LineOf(off)]
}

// Override adjusts one rule from configuration. Nil fields keep the rule's
// built-in default.
type Override struct {
	Enabled  *bool
	Severity *diag.Severity
}

// Engine evaluates all enabled rules against parsed files in a single tree
// traversal. Engines are immutable after construction and safe for
// concurrent use from multiple checking goroutines.
type Engine struct {
	rules     []Rule
	overrides map[diag.Code]Override
}

func NewEngine(overrides map[diag.Code]Override) *Engine {
	return &Engine{rules: defaultRules(), overrides: overrides}
}

func defaultRules() []Rule {
	return []Rule{
		ClassNaming{},
		InterfaceNaming{},
		PrivateVariableCasing{},
		ConstantAndEnumCasing{},
		PointerNaming{},
		ClassBodyEmpty{},
		RequiredAttribute{},
		MethodArgumentCount{},
		PossibleDualPurposeMethod{},
		CompoundMethodName{},
		GuardClausePreference{},
		AlignmentFormatting{},
	}
}

// Rules returns the registered rules in evaluation order, for listings.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// ruleState is the per-run activation of one rule. failed latches after the
// first panic so a broken rule yields exactly one RuleInternalError.
type ruleState struct {
	rule   Rule
	ctx    *Context
	failed bool
}

// Check runs every enabled rule over the tree, reporting into rep. A rule
// panic is contained: the rule is disabled for the rest of the file and a
// single Info diagnostic records the fault.
func (e *Engine) Check(file *source.File, tree *ast.File, indents map[uint32]string, rep diag.Reporter) {
	states := make([]*ruleState, 0, len(e.rules))
	for _, r := range e.rules {
		ov := e.overrides[r.Code()]
		if ov.Enabled != nil && !*ov.Enabled {
			continue
		}
		sev := r.DefaultSeverity()
		if ov.Severity != nil {
			sev = *ov.Severity
		}
		states = append(states, &ruleState{
			rule: r,
			ctx: &Context{
				File: file, Indents: indents,
				rep: rep, code: r.Code(), sev: sev,
			},
		})
	}

	for _, u := range tree.Units {
		for _, st := range states {
			if ur, ok := st.rule.(UnitRule); ok {
				dispatch(st, rep, file, func() { ur.CheckUnit(st.ctx, u) })
			}
		}
		for _, blk := range u.DeclBlocks {
			e.checkBlock(states, rep, file, u, blk)
		}
		for _, m := range u.Methods {
			for _, st := range states {
				if mr, ok := st.rule.(MethodRule); ok {
					dispatch(st, rep, file, func() { mr.CheckMethod(st.ctx, u, m) })
				}
			}
			for _, blk := range m.Locals {
				e.checkBlock(states, rep, file, u, blk)
			}
		}
	}
}

func (e *Engine) checkBlock(states []*ruleState, rep diag.Reporter, file *source.File, u *ast.Unit, blk *ast.DeclBlock) {
	for _, st := range states {
		if br, ok := st.rule.(BlockRule); ok {
			dispatch(st, rep, file, func() { br.CheckBlock(st.ctx, u, blk) })
		}
	}
	for _, d := range blk.Decls {
		for _, st := range states {
			if dr, ok := st.rule.(DeclRule); ok {
				dispatch(st, rep, file, func() { dr.CheckDecl(st.ctx, u, blk, d) })
			}
		}
	}
}

func dispatch(st *ruleState, rep diag.Reporter, file *source.File, fn func()) {
	if st.failed {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			st.failed = true
			rep.Report(diag.RuleInternalError, diag.SevInfo,
				source.Span{File: file.ID, Start: 0, End: 0},
				fmt.Sprintf("rule %s failed internally: %v", st.rule.Code(), r),
				nil, nil)
		}
	}()
	fn()
}
