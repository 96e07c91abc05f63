package rules

import (
	"strings"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
)

// PrivateVariableCasing requires camelCase for declarations in the private
// sections of a CLASS or FUNCTION_BLOCK. When a variable's name collides
// with a method or property of the same unit (compared with the leading
// underscore stripped) the underscore becomes mandatory, so the backing
// field of a property reads as _value next to PROPERTY Value.
//
// This is a whole-unit rule: it needs the unit's member names before it can
// judge any single declaration.
type PrivateVariableCasing struct{}

func (PrivateVariableCasing) Code() diag.Code               { return diag.RulePrivateVariableCasing }
func (PrivateVariableCasing) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (PrivateVariableCasing) Doc() string {
	return "private variables must be camelCase, underscore-prefixed when shadowing a member"
}

func (PrivateVariableCasing) CheckUnit(ctx *Context, u *ast.Unit) {
	if u.Kind != ast.UnitClass && u.Kind != ast.UnitFunctionBlock {
		return
	}

	members := make(map[string]bool, len(u.Methods)+len(u.Properties))
	for _, m := range u.Methods {
		members[strings.ToUpper(m.Name.Text)] = true
	}
	for _, p := range u.Properties {
		members[strings.ToUpper(p.Name.Text)] = true
	}

	for _, blk := range u.DeclBlocks {
		if blk.Section.IsInterfaceSection() || blk.Section == ast.SecVarConstant {
			continue
		}
		for _, d := range blk.Decls {
			name := d.Name.Text
			if name == "" {
				continue
			}
			bare := strings.TrimPrefix(name, "_")

			if members[strings.ToUpper(bare)] && !strings.HasPrefix(name, "_") {
				ctx.ReportFix(d.Name.Span,
					"variable '"+name+"' clashes with a member of "+u.Name.Text+
						" and must carry a leading underscore",
					diag.Fix{
						Title: "rename to '_" + name + "'",
						Edits: []diag.FixEdit{{Span: d.Name.Span, NewText: "_" + name}},
					})
				continue
			}

			if !isCamelCase(bare) {
				prefix := ""
				if strings.HasPrefix(name, "_") {
					prefix = "_"
				}
				fixed := prefix + camelFix(bare)
				ctx.ReportFix(d.Name.Span,
					"variable '"+name+"' should be camelCase",
					diag.Fix{
						Title: "rename to '" + fixed + "'",
						Edits: []diag.FixEdit{{Span: d.Name.Span, NewText: fixed}},
					})
			}
		}
	}
}
