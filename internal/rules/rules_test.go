package rules_test

import (
	"strings"
	"testing"

	"stcheck/internal/diag"
	"stcheck/internal/lexer"
	"stcheck/internal/parser"
	"stcheck/internal/rules"
	"stcheck/internal/source"
)

func checkSource(t *testing.T, src string, overrides map[diag.Code]rules.Override) []diag.Diagnostic {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.st", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(200)
	rep := diag.BagReporter{Bag: bag}
	toks, lx := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	tree := parser.Parse(file, toks, parser.Options{MaxErrors: 200, Reporter: rep})
	rules.NewEngine(overrides).Check(file, tree, lx.Indents(), rep)

	bag.Sort()
	bag.Dedup()
	return bag.Items()
}

func byCode(diags []diag.Diagnostic, code diag.Code) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func TestClassNaming(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"lowercase class flagged", "CLASS cylinder\nEND_CLASS\n", 1},
		{"pascal class clean", "CLASS Cylinder\nEND_CLASS\n", 0},
		{"type suffix allowed", "CLASS AnalogValue_LREAL\nEND_CLASS\n", 0},
		{"lower head with suffix flagged", "CLASS analogValue_LREAL\nEND_CLASS\n", 1},
		{"two underscores flagged", "CLASS Analog_Value_X\nEND_CLASS\n", 1},
		{"function block not class-checked", "FUNCTION_BLOCK cylinder\nEND_FUNCTION_BLOCK\n", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := byCode(checkSource(t, tc.src, nil), diag.RuleClassNaming)
			if len(got) != tc.want {
				t.Fatalf("ClassNaming diagnostics = %d, want %d (%v)", len(got), tc.want, got)
			}
		})
	}
}

func TestClassNamingSuggestsFix(t *testing.T) {
	diags := byCode(checkSource(t, "CLASS cylinder\nEND_CLASS\n", nil), diag.RuleClassNaming)
	if len(diags) != 1 || len(diags[0].Fixes) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	fix := diags[0].Fixes[0]
	if len(fix.Edits) != 1 || fix.Edits[0].NewText != "Cylinder" {
		t.Fatalf("fix = %+v", fix)
	}
}

func TestInterfaceNaming(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"INTERFACE I_Device\nEND_INTERFACE\n", 0},
		{"INTERFACE Device\nEND_INTERFACE\n", 1},
		{"INTERFACE I_device\nEND_INTERFACE\n", 1},
		{"INTERFACE IDevice\nEND_INTERFACE\n", 1},
	}
	for _, tc := range cases {
		got := byCode(checkSource(t, tc.src, nil), diag.RuleInterfaceNaming)
		if len(got) != tc.want {
			t.Errorf("%q: InterfaceNaming = %d, want %d", tc.src, len(got), tc.want)
		}
	}
}

func TestConstantCasing(t *testing.T) {
	bad := "FUNCTION_BLOCK FB_Cfg\nVAR CONSTANT\n\tmaxBufferSize : UDINT := 200;\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, bad, nil), diag.RuleConstantAndEnumCasing)
	if len(got) != 1 {
		t.Fatalf("ConstantAndEnumCasing = %d, want 1 (%v)", len(got), got)
	}
	if len(got[0].Fixes) != 1 || got[0].Fixes[0].Edits[0].NewText != "MAX_BUFFER_SIZE" {
		t.Fatalf("fix = %+v", got[0].Fixes)
	}

	good := "FUNCTION_BLOCK FB_Cfg\nVAR CONSTANT\n\tMAX_BUFFER_SIZE_IN_BYTES : UDINT := 200;\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, good, nil), diag.RuleConstantAndEnumCasing); len(got) != 0 {
		t.Fatalf("clean constant flagged: %v", got)
	}
}

func TestEnumMemberCasing(t *testing.T) {
	src := "PROGRAM P\nVAR\n\tstate : (Idle, RUNNING, fault_state);\nEND_VAR\nEND_PROGRAM\n"
	got := byCode(checkSource(t, src, nil), diag.RuleConstantAndEnumCasing)
	if len(got) != 2 {
		t.Fatalf("enum member diagnostics = %d, want 2 (%v)", len(got), got)
	}
}

func TestPointerNaming(t *testing.T) {
	bad := "FUNCTION_BLOCK FB_Buf\nVAR\n\tcount : POINTER TO INT;\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, bad, nil), diag.RulePointerNaming)
	if len(got) != 1 {
		t.Fatalf("PointerNaming = %d, want 1 (%v)", len(got), got)
	}

	good := "FUNCTION_BLOCK FB_Buf\nVAR\n\tpCount : POINTER TO INT;\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, good, nil), diag.RulePointerNaming); len(got) != 0 {
		t.Fatalf("pCount flagged: %v", got)
	}
}

func TestPrivateVariableCasing(t *testing.T) {
	src := "FUNCTION_BLOCK FB_Axis\nVAR\n\tSpeedValue : LREAL;\n\tgoodName : LREAL;\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, src, nil), diag.RulePrivateVariableCasing)
	if len(got) != 1 {
		t.Fatalf("PrivateVariableCasing = %d, want 1 (%v)", len(got), got)
	}
	if !strings.Contains(got[0].Message, "SpeedValue") {
		t.Fatalf("wrong decl flagged: %v", got[0])
	}
}

func TestPrivateVariableCasingInputsExempt(t *testing.T) {
	src := "FUNCTION_BLOCK FB_Axis\nVAR_INPUT\n\tEnable : BOOL;\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, src, nil), diag.RulePrivateVariableCasing); len(got) != 0 {
		t.Fatalf("VAR_INPUT decl flagged: %v", got)
	}
}

func TestPrivateVariableMemberClashNeedsUnderscore(t *testing.T) {
	src := "FUNCTION_BLOCK FB_Axis\nVAR\n\tvelocity : LREAL;\nEND_VAR\nPROPERTY Velocity : LREAL\nEND_PROPERTY\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, src, nil), diag.RulePrivateVariableCasing)
	if len(got) != 1 || !strings.Contains(got[0].Message, "underscore") {
		t.Fatalf("clash diagnostics = %v", got)
	}

	fixed := "FUNCTION_BLOCK FB_Axis\nVAR\n\t_velocity : LREAL;\nEND_VAR\nPROPERTY Velocity : LREAL\nEND_PROPERTY\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, fixed, nil), diag.RulePrivateVariableCasing); len(got) != 0 {
		t.Fatalf("underscored backing field flagged: %v", got)
	}
}

func TestClassBodyEmpty(t *testing.T) {
	src := "CLASS Cylinder\nVAR_INPUT\n\tenable : BOOL;\nEND_VAR\nx := 1;\nEND_CLASS\n"
	got := byCode(checkSource(t, src, nil), diag.RuleClassBodyEmpty)
	if len(got) != 2 {
		t.Fatalf("ClassBodyEmpty = %d, want 2 (%v)", len(got), got)
	}
	for _, d := range got {
		if d.Severity != diag.SevError {
			t.Errorf("severity = %s, want ERROR", d.Severity)
		}
	}
}

func TestRequiredAttribute(t *testing.T) {
	classShaped := "FUNCTION_BLOCK FB_Svc\nVAR\n\tcount : INT;\nEND_VAR\nMETHOD Start : BOOL\nEND_METHOD\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, classShaped, nil), diag.RuleMissingNoExplicitCall)
	if len(got) != 1 {
		t.Fatalf("MissingNoExplicitCall = %d, want 1 (%v)", len(got), got)
	}

	withAttr := "{attribute 'no_explicit_call' := 'use methods'}\n" + classShaped
	if got := byCode(checkSource(t, withAttr, nil), diag.RuleMissingNoExplicitCall); len(got) != 0 {
		t.Fatalf("attributed FB flagged: %v", got)
	}

	withBody := "FUNCTION_BLOCK FB_Svc\nMETHOD Start : BOOL\nEND_METHOD\nx := 1;\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, withBody, nil), diag.RuleMissingNoExplicitCall); len(got) != 0 {
		t.Fatalf("FB with body flagged: %v", got)
	}
}

func TestMethodArgumentCount(t *testing.T) {
	src := "FUNCTION_BLOCK FB_M\nMETHOD Move : BOOL\nVAR_INPUT\n\ta : INT;\n\tb : INT;\n\tc : INT;\nEND_VAR\nEND_METHOD\nMETHOD Stop : BOOL\nVAR_INPUT\n\tx : INT;\nEND_VAR\nEND_METHOD\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, src, nil), diag.RuleMethodArgumentCount)
	if len(got) != 1 || !strings.Contains(got[0].Message, "Move") {
		t.Fatalf("MethodArgumentCount = %v", got)
	}
}

func TestPossibleDualPurposeMethod(t *testing.T) {
	src := "FUNCTION_BLOCK FB_M\nMETHOD Toggle : BOOL\nVAR_INPUT\n\tenable : BOOL;\nEND_VAR\nEND_METHOD\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, src, nil), diag.RulePossibleDualPurposeMethod)
	if len(got) != 1 {
		t.Fatalf("PossibleDualPurposeMethod = %v", got)
	}
	if got[0].Severity != diag.SevInfo {
		t.Errorf("severity = %s, want INFO", got[0].Severity)
	}
}

func TestCompoundMethodName(t *testing.T) {
	cases := []struct {
		method string
		want   int
	}{
		{"StopAndReset", 1},
		{"Standstill", 0}, // 'and' in lowercase does not count
		{"HandleCommand", 0},
	}
	for _, tc := range cases {
		src := "FUNCTION_BLOCK FB_M\nMETHOD " + tc.method + " : BOOL\nEND_METHOD\nEND_FUNCTION_BLOCK\n"
		got := byCode(checkSource(t, src, nil), diag.RuleCompoundMethodName)
		if len(got) != tc.want {
			t.Errorf("%s: CompoundMethodName = %d, want %d", tc.method, len(got), tc.want)
		}
	}
}

func TestGuardClauseNestedIfElse(t *testing.T) {
	src := "FUNCTION_BLOCK FB_M\nMETHOD Run : BOOL\nIF a THEN\n\tIF b THEN\n\t\tx := 1;\n\tELSE\n\t\ty := 1;\n\tEND_IF\nEND_IF\nEND_METHOD\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, src, nil), diag.RulePreferGuardClause)
	if len(got) != 1 {
		t.Fatalf("PreferGuardClause = %d, want 1 (%v)", len(got), got)
	}
	// points at the outer IF
	outerOff := uint32(strings.Index(src, "IF a"))
	if got[0].Primary.Start != outerOff {
		t.Fatalf("span start = %d, want %d (outer IF)", got[0].Primary.Start, outerOff)
	}
}

func TestGuardClauseSequentialEarlyReturnsClean(t *testing.T) {
	src := "FUNCTION_BLOCK FB_M\nMETHOD Run : BOOL\nIF NOT a THEN\n\tRETURN;\nEND_IF\nIF NOT b THEN\n\tRETURN;\nEND_IF\nx := 1;\nEND_METHOD\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, src, nil), diag.RulePreferGuardClause); len(got) != 0 {
		t.Fatalf("sequential guards flagged: %v", got)
	}
}

func TestGuardClauseElsifChainClean(t *testing.T) {
	src := "FUNCTION_BLOCK FB_M\nMETHOD Run : BOOL\nIF a THEN\n\tx := 1;\nELSIF b THEN\n\tx := 2;\nELSE\n\tx := 3;\nEND_IF\nEND_METHOD\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, src, nil), diag.RulePreferGuardClause); len(got) != 0 {
		t.Fatalf("elsif chain flagged: %v", got)
	}
}

func TestAlignmentWellFormattedClean(t *testing.T) {
	src := "FUNCTION_BLOCK FB_A\nVAR\n\tcount : INT := 0;\n\tsensor AT %IX0.0 : BOOL;\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, src, nil), diag.RuleMisalignedDeclaration); len(got) != 0 {
		t.Fatalf("well-formatted decls flagged: %v", got)
	}
}

func TestAlignmentViolations(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"spaces instead of tab", "FUNCTION_BLOCK FB_A\nVAR\n    count : INT;\nEND_VAR\nEND_FUNCTION_BLOCK\n"},
		{"two spaces before colon", "FUNCTION_BLOCK FB_A\nVAR\n\tcount  : INT;\nEND_VAR\nEND_FUNCTION_BLOCK\n"},
		{"no space after colon", "FUNCTION_BLOCK FB_A\nVAR\n\tcount :INT;\nEND_VAR\nEND_FUNCTION_BLOCK\n"},
		{"no space around assign", "FUNCTION_BLOCK FB_A\nVAR\n\tcount : INT:=0;\nEND_VAR\nEND_FUNCTION_BLOCK\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := byCode(checkSource(t, tc.src, nil), diag.RuleMisalignedDeclaration)
			if len(got) == 0 {
				t.Fatal("no MisalignedDeclaration reported")
			}
		})
	}
}

func TestAlignmentMultiLineInitializer(t *testing.T) {
	clean := "FUNCTION_BLOCK FB_A\nVAR\n\ttimer : FB_Timer := FB_Timer(\n\t\tinterval := T#5s,\n\t\tenabled := TRUE\n\t);\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, clean, nil), diag.RuleMisalignedDeclaration); len(got) != 0 {
		t.Fatalf("clean multi-line initializer flagged: %v", got)
	}

	trailing := "FUNCTION_BLOCK FB_A\nVAR\n\ttimer : FB_Timer := FB_Timer(\n\t\tinterval := T#5s,\n\t\tenabled := TRUE,\n\t);\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	got := byCode(checkSource(t, trailing, nil), diag.RuleMisalignedDeclaration)
	if len(got) != 1 {
		t.Fatalf("trailing comma: diagnostics = %d, want exactly 1 (%v)", len(got), got)
	}
	argOff := uint32(strings.Index(trailing, "enabled := TRUE"))
	if got[0].Primary.Start != argOff {
		t.Fatalf("span start = %d, want %d (last argument)", got[0].Primary.Start, argOff)
	}

	spaceBeforeParen := "FUNCTION_BLOCK FB_A\nVAR\n\ttimer : FB_Timer := FB_Timer (\n\t\tinterval := T#5s\n\t);\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	if got := byCode(checkSource(t, spaceBeforeParen, nil), diag.RuleMisalignedDeclaration); len(got) != 1 {
		t.Fatalf("space before paren: %v", got)
	}

	missingComma := "FUNCTION_BLOCK FB_A\nVAR\n\ttimer : FB_Timer := FB_Timer(\n\t\tinterval := T#5s\n\t\tenabled := TRUE\n\t);\nEND_VAR\nEND_FUNCTION_BLOCK\n"
	got = byCode(checkSource(t, missingComma, nil), diag.RuleMisalignedDeclaration)
	if len(got) != 1 {
		t.Fatalf("missing comma: diagnostics = %d, want exactly 1 (%v)", len(got), got)
	}
	firstArgOff := uint32(strings.Index(missingComma, "interval := T#5s"))
	if got[0].Primary.Start != firstArgOff {
		t.Fatalf("span start = %d, want %d (argument missing its comma)", got[0].Primary.Start, firstArgOff)
	}
}

func TestOverridesDisableAndReclassify(t *testing.T) {
	src := "CLASS cylinder\nEND_CLASS\n"

	off := false
	disabled := map[diag.Code]rules.Override{
		diag.RuleClassNaming: {Enabled: &off},
	}
	if got := byCode(checkSource(t, src, disabled), diag.RuleClassNaming); len(got) != 0 {
		t.Fatalf("disabled rule still reported: %v", got)
	}

	sev := diag.SevError
	raised := map[diag.Code]rules.Override{
		diag.RuleClassNaming: {Severity: &sev},
	}
	got := byCode(checkSource(t, src, raised), diag.RuleClassNaming)
	if len(got) != 1 || got[0].Severity != diag.SevError {
		t.Fatalf("severity override not applied: %v", got)
	}
}

func TestDiagnosticsOrderedByPosition(t *testing.T) {
	src := "CLASS cylinder\nVAR_INPUT\n\tx : INT;\nEND_VAR\nEND_CLASS\n"
	diags := checkSource(t, src, nil)
	for i := 1; i < len(diags); i++ {
		if diags[i].Primary.Start < diags[i-1].Primary.Start {
			t.Fatalf("diagnostics out of order: %v", diags)
		}
	}
}
