package rules

import (
	"stcheck/internal/ast"
	"stcheck/internal/diag"
)

// ConstantAndEnumCasing requires ALL_CAPS_WITH_UNDERSCORES for VAR CONSTANT
// declarations and for every inline enumeration member, wherever it appears.
type ConstantAndEnumCasing struct{}

func (ConstantAndEnumCasing) Code() diag.Code               { return diag.RuleConstantAndEnumCasing }
func (ConstantAndEnumCasing) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (ConstantAndEnumCasing) Doc() string {
	return "constants and enumeration members must be ALL_CAPS_WITH_UNDERSCORES"
}

func (ConstantAndEnumCasing) CheckDecl(ctx *Context, _ *ast.Unit, blk *ast.DeclBlock, d *ast.Decl) {
	if blk.Section == ast.SecVarConstant && d.Name.Text != "" && !isAllCaps(d.Name.Text) {
		fixed := allCapsFix(d.Name.Text)
		ctx.ReportFix(d.Name.Span,
			"constant '"+d.Name.Text+"' should be ALL_CAPS_WITH_UNDERSCORES",
			diag.Fix{
				Title: "rename to '" + fixed + "'",
				Edits: []diag.FixEdit{{Span: d.Name.Span, NewText: fixed}},
			})
	}

	if d.Enum == nil {
		return
	}
	for _, m := range d.Enum.Members {
		if m.Text == "" || isAllCaps(m.Text) {
			continue
		}
		fixed := allCapsFix(m.Text)
		ctx.ReportFix(m.Span,
			"enumeration member '"+m.Text+"' should be ALL_CAPS_WITH_UNDERSCORES",
			diag.Fix{
				Title: "rename to '" + fixed + "'",
				Edits: []diag.FixEdit{{Span: m.Span, NewText: fixed}},
			})
	}
}
