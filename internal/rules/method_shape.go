package rules

import (
	"fmt"
	"strings"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
)

// MethodArgumentCount flags methods with more than two parameters. Wide
// parameter lists usually mean the method wants a configuration struct or a
// split.
type MethodArgumentCount struct{}

func (MethodArgumentCount) Code() diag.Code               { return diag.RuleMethodArgumentCount }
func (MethodArgumentCount) DefaultSeverity() diag.Severity { return diag.SevInfo }
func (MethodArgumentCount) Doc() string {
	return "methods should take at most two parameters"
}

func (MethodArgumentCount) CheckMethod(ctx *Context, _ *ast.Unit, m *ast.Method) {
	if len(m.Params) <= 2 {
		return
	}
	ctx.Report(m.Name.Span, fmt.Sprintf(
		"method '%s' takes %d parameters, consider splitting it or grouping them in a struct",
		m.Name.Text, len(m.Params)))
}

// PossibleDualPurposeMethod flags BOOL parameters: a flag argument often
// selects between two behaviors that want to be two methods.
type PossibleDualPurposeMethod struct{}

func (PossibleDualPurposeMethod) Code() diag.Code               { return diag.RulePossibleDualPurposeMethod }
func (PossibleDualPurposeMethod) DefaultSeverity() diag.Severity { return diag.SevInfo }
func (PossibleDualPurposeMethod) Doc() string {
	return "a BOOL parameter suggests a method doing two things"
}

func (PossibleDualPurposeMethod) CheckMethod(ctx *Context, _ *ast.Unit, m *ast.Method) {
	for _, p := range m.Params {
		if !strings.EqualFold(p.TypeText, "BOOL") {
			continue
		}
		sp := p.TypeSpan
		if sp.Empty() {
			sp = p.Name.Span
		}
		ctx.Report(sp, fmt.Sprintf(
			"BOOL parameter '%s' of method '%s' may select between two behaviors, consider two methods",
			p.Name.Text, m.Name.Text))
	}
}

// CompoundMethodName flags method names containing "And": DoThisAndThat is
// two methods wearing one name. The match is case-sensitive on purpose,
// "and" inside a word (Standstill, Command) is fine.
type CompoundMethodName struct{}

func (CompoundMethodName) Code() diag.Code               { return diag.RuleCompoundMethodName }
func (CompoundMethodName) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (CompoundMethodName) Doc() string {
	return "method names containing 'And' indicate a compound responsibility"
}

func (CompoundMethodName) CheckMethod(ctx *Context, _ *ast.Unit, m *ast.Method) {
	if !strings.Contains(m.Name.Text, "And") {
		return
	}
	ctx.Report(m.Name.Span,
		"method '"+m.Name.Text+"' looks like it does two things, consider splitting it")
}
