package rules

import (
	"strings"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
)

// ClassNaming requires CLASS names in PascalCase. One internal underscore is
// tolerated when the trailing segment encodes a type suffix, as in
// AnalogValue_LREAL. FUNCTION_BLOCK names are deliberately out of scope.
type ClassNaming struct{}

func (ClassNaming) Code() diag.Code               { return diag.RuleClassNaming }
func (ClassNaming) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (ClassNaming) Doc() string {
	return "CLASS names must be PascalCase (type suffix after one underscore allowed)"
}

func (ClassNaming) CheckUnit(ctx *Context, u *ast.Unit) {
	if u.Kind != ast.UnitClass || u.Name.Text == "" {
		return
	}
	if classNameOK(u.Name.Text) {
		return
	}
	fixed := pascalFix(u.Name.Text)
	ctx.ReportFix(u.Name.Span,
		"class name '"+u.Name.Text+"' should be PascalCase",
		diag.Fix{
			Title: "rename to '" + fixed + "'",
			Edits: []diag.FixEdit{{Span: u.Name.Span, NewText: fixed}},
		})
}

// InterfaceNaming requires INTERFACE names of the form I_PascalCase.
type InterfaceNaming struct{}

func (InterfaceNaming) Code() diag.Code               { return diag.RuleInterfaceNaming }
func (InterfaceNaming) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (InterfaceNaming) Doc() string {
	return "INTERFACE names must start with I_ followed by PascalCase"
}

func (InterfaceNaming) CheckUnit(ctx *Context, u *ast.Unit) {
	if u.Kind != ast.UnitInterface || u.Name.Text == "" {
		return
	}
	rest, hasPrefix := strings.CutPrefix(u.Name.Text, "I_")
	if hasPrefix && isPascalCase(rest) {
		return
	}

	base := u.Name.Text
	base = strings.TrimLeft(base, "_")
	base = strings.TrimPrefix(base, "I_")
	fixed := "I_" + pascalFix(base)
	ctx.ReportFix(u.Name.Span,
		"interface name '"+u.Name.Text+"' should be I_ followed by PascalCase",
		diag.Fix{
			Title: "rename to '" + fixed + "'",
			Edits: []diag.FixEdit{{Span: u.Name.Span, NewText: fixed}},
		})
}
