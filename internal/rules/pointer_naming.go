package rules

import (
	"stcheck/internal/ast"
	"stcheck/internal/diag"
)

// PointerNaming requires POINTER TO declarations to be named with a
// lowercase 'p' followed by an uppercase letter: pCount, pBuffer.
type PointerNaming struct{}

func (PointerNaming) Code() diag.Code               { return diag.RulePointerNaming }
func (PointerNaming) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (PointerNaming) Doc() string {
	return "POINTER TO variables must be named pXxx"
}

func (PointerNaming) CheckDecl(ctx *Context, _ *ast.Unit, _ *ast.DeclBlock, d *ast.Decl) {
	if !d.IsPointer || d.Name.Text == "" {
		return
	}
	name := d.Name.Text
	if len(name) >= 2 && name[0] == 'p' && isUpperByte(name[1]) {
		return
	}
	fixed := "p" + pascalFix(name)
	ctx.ReportFix(d.Name.Span,
		"pointer '"+name+"' should be named with a 'p' prefix",
		diag.Fix{
			Title: "rename to '" + fixed + "'",
			Edits: []diag.FixEdit{{Span: d.Name.Span, NewText: fixed}},
		})
}
