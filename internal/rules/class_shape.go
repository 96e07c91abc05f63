package rules

import (
	"strings"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
)

// ClassBodyEmpty forbids a CLASS from carrying call-interface sections or
// body statements: classes expose behavior through methods only. Each
// offending block and statement gets its own diagnostic.
type ClassBodyEmpty struct{}

func (ClassBodyEmpty) Code() diag.Code               { return diag.RuleClassBodyEmpty }
func (ClassBodyEmpty) DefaultSeverity() diag.Severity { return diag.SevError }
func (ClassBodyEmpty) Doc() string {
	return "CLASS must have no body and no VAR_INPUT/VAR_OUTPUT/VAR_IN_OUT sections"
}

func (ClassBodyEmpty) CheckUnit(ctx *Context, u *ast.Unit) {
	if u.Kind != ast.UnitClass {
		return
	}
	for _, blk := range u.DeclBlocks {
		if blk.Section.IsInterfaceSection() {
			ctx.Report(blk.Span,
				"CLASS "+u.Name.Text+" may not declare a "+blk.Section.String()+" section")
		}
	}
	for _, s := range u.Body {
		ctx.Report(s.Span(),
			"CLASS "+u.Name.Text+" may not contain body statements")
	}
}

// RequiredAttribute flags class-shaped function blocks that lack the
// no_explicit_call attribute. A FUNCTION_BLOCK that has methods but no body
// and no call interface is a class substitute; the attribute keeps it from
// being invoked as a plain FB.
type RequiredAttribute struct{}

func (RequiredAttribute) Code() diag.Code               { return diag.RuleMissingNoExplicitCall }
func (RequiredAttribute) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (RequiredAttribute) Doc() string {
	return "class-shaped FUNCTION_BLOCK must carry {attribute 'no_explicit_call'}"
}

func (RequiredAttribute) CheckUnit(ctx *Context, u *ast.Unit) {
	if u.Kind != ast.UnitFunctionBlock {
		return
	}
	if len(u.Methods) == 0 || len(u.Body) > 0 {
		return
	}
	for _, blk := range u.DeclBlocks {
		if blk.Section.IsInterfaceSection() {
			return
		}
	}
	for _, p := range u.Pragmas {
		if strings.EqualFold(p.Key, "no_explicit_call") {
			return
		}
	}

	attr := "{attribute 'no_explicit_call' := 'do not call this POU directly'}\n"
	insertAt := u.Span
	insertAt.End = insertAt.Start
	ctx.ReportFix(u.Name.Span,
		"FUNCTION_BLOCK "+u.Name.Text+
			" is class-shaped and should carry the no_explicit_call attribute",
		diag.Fix{
			Title: "add {attribute 'no_explicit_call'}",
			Edits: []diag.FixEdit{{Span: insertAt, NewText: attr}},
		})
}
