package parser_test

import (
	"strings"
	"testing"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/lexer"
	"stcheck/internal/parser"
	"stcheck/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.st", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	toks, _ := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	tree := parser.Parse(file, toks, parser.Options{MaxErrors: 100, Reporter: rep})
	return tree, bag
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestParseFunctionBlock(t *testing.T) {
	src := `{attribute 'no_explicit_call' := 'use methods'}
FUNCTION_BLOCK FB_Motor EXTENDS FB_Base IMPLEMENTS I_Device, I_Resettable
VAR_INPUT
	enable : BOOL;
END_VAR
VAR
	speed : LREAL := 0.0;
	pAxis : POINTER TO AXIS_REF;
	sensor AT %IX0.0 : BOOL;
	state : (IDLE, RUNNING, FAULT) := IDLE;
END_VAR
METHOD PUBLIC Start : BOOL
VAR_INPUT
	rampTime : TIME;
END_VAR
	speed := 10.0;
END_METHOD
PROPERTY Velocity : LREAL
	Velocity := speed;
END_PROPERTY
END_FUNCTION_BLOCK
`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(tree.Units) != 1 {
		t.Fatalf("units = %d", len(tree.Units))
	}
	u := tree.Units[0]

	if u.Kind != ast.UnitFunctionBlock || u.Name.Text != "FB_Motor" {
		t.Fatalf("unit = %s %s", u.Kind, u.Name.Text)
	}
	if len(u.Pragmas) != 1 || u.Pragmas[0].Key != "no_explicit_call" {
		t.Fatalf("pragmas = %+v", u.Pragmas)
	}
	if len(u.BaseTypes) != 1 || u.BaseTypes[0].Text != "FB_Base" {
		t.Fatalf("extends = %+v", u.BaseTypes)
	}
	if len(u.Implements) != 2 || u.Implements[1].Text != "I_Resettable" {
		t.Fatalf("implements = %+v", u.Implements)
	}

	if len(u.DeclBlocks) != 2 {
		t.Fatalf("decl blocks = %d", len(u.DeclBlocks))
	}
	if u.DeclBlocks[0].Section != ast.SecVarInput {
		t.Fatalf("first section = %s", u.DeclBlocks[0].Section)
	}
	private := u.DeclBlocks[1]
	if len(private.Decls) != 4 {
		t.Fatalf("private decls = %d", len(private.Decls))
	}
	if !private.Decls[1].IsPointer {
		t.Error("pAxis should be flagged as pointer")
	}
	if private.Decls[2].Address.Text != "%IX0.0" {
		t.Errorf("address = %q", private.Decls[2].Address.Text)
	}
	enum := private.Decls[3].Enum
	if enum == nil || len(enum.Members) != 3 || enum.Members[2].Text != "FAULT" {
		t.Fatalf("enum = %+v", enum)
	}

	if len(u.Methods) != 1 {
		t.Fatalf("methods = %d", len(u.Methods))
	}
	m := u.Methods[0]
	if m.Name.Text != "Start" || m.Access != "PUBLIC" || m.ReturnType != "BOOL" {
		t.Fatalf("method = %+v", m)
	}
	if len(m.Params) != 1 || m.Params[0].Name.Text != "rampTime" || m.Params[0].TypeText != "TIME" {
		t.Fatalf("params = %+v", m.Params)
	}
	if len(m.Body) != 1 {
		t.Fatalf("method body = %d statements", len(m.Body))
	}

	if len(u.Properties) != 1 || u.Properties[0].Name.Text != "Velocity" {
		t.Fatalf("properties = %+v", u.Properties)
	}
}

func TestParseRecoveryDoesNotHideLaterUnits(t *testing.T) {
	src := `FUNCTION_BLOCK ; garbage here
CLASS Cylinder
END_CLASS
`
	tree, bag := parseSource(t, src)
	if countCode(bag, diag.SynExpectIdentifier) == 0 {
		t.Fatalf("expected an identifier diagnostic, got %v", bag.Items())
	}
	found := false
	for _, u := range tree.Units {
		if u.Kind == ast.UnitClass && u.Name.Text == "Cylinder" {
			found = true
		}
	}
	if !found {
		t.Fatalf("recovery lost the CLASS unit: %+v", tree.Units)
	}
}

func TestParseMismatchedTerminator(t *testing.T) {
	src := `CLASS Cylinder
END_FUNCTION_BLOCK
`
	tree, bag := parseSource(t, src)
	if countCode(bag, diag.SynMismatchedTerminator) != 1 {
		t.Fatalf("want one MismatchedTerminator, got %v", bag.Items())
	}
	if len(tree.Units) != 1 || tree.Units[0].Name.Text != "Cylinder" {
		t.Fatalf("unit still expected: %+v", tree.Units)
	}
}

func TestParseDuplicateEnumMember(t *testing.T) {
	src := `PROGRAM P
VAR
	state : (IDLE, RUN, IDLE);
END_VAR
END_PROGRAM
`
	tree, bag := parseSource(t, src)
	if countCode(bag, diag.SynDuplicateEnumMember) != 1 {
		t.Fatalf("want one DuplicateEnumMember, got %v", bag.Items())
	}
	enum := tree.Units[0].DeclBlocks[0].Decls[0].Enum
	if enum == nil || len(enum.Members) != 2 {
		t.Fatalf("enum members = %+v", enum)
	}
}

func TestParseMultiLineInitializer(t *testing.T) {
	src := "PROGRAM P\nVAR\n\ttimer : FB_Timer := FB_Timer(\n\t\tinterval := T#5s,\n\t\tenabled := TRUE\n\t);\nEND_VAR\nEND_PROGRAM\n"
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	d := tree.Units[0].DeclBlocks[0].Decls[0]
	if d.Init == nil || d.Init.Call == nil {
		t.Fatal("initializer call not parsed")
	}
	call := d.Init.Call
	if call.TypeName.Text != "FB_Timer" {
		t.Fatalf("type name = %q", call.TypeName.Text)
	}
	if len(call.Args) != 2 {
		t.Fatalf("args = %+v", call.Args)
	}
	if call.Args[0].Name != "interval" || call.Args[0].ValueText != "T#5s" {
		t.Fatalf("arg 0 = %+v", call.Args[0])
	}
	if !call.Args[0].Comma {
		t.Error("arg 0 should record its trailing comma")
	}
	if call.Args[1].Comma {
		t.Error("arg 1 has no trailing comma")
	}
	if call.RParen.Empty() {
		t.Error("closing paren span missing")
	}
}

func TestParseInitializerArgsWithoutComma(t *testing.T) {
	src := "PROGRAM P\nVAR\n\ttimer : FB_Timer := FB_Timer(\n\t\tinterval := T#5s\n\t\tenabled := TRUE\n\t);\nEND_VAR\nEND_PROGRAM\n"
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	call := tree.Units[0].DeclBlocks[0].Decls[0].Init.Call
	// the missing comma must not merge the two arguments
	if len(call.Args) != 2 {
		t.Fatalf("args = %+v", call.Args)
	}
	if call.Args[0].Name != "interval" || call.Args[0].ValueText != "T#5s" {
		t.Fatalf("arg 0 = %+v", call.Args[0])
	}
	if call.Args[0].Comma {
		t.Error("arg 0 has no trailing comma in the source")
	}
	if call.Args[1].Name != "enabled" || call.Args[1].ValueText != "TRUE" {
		t.Fatalf("arg 1 = %+v", call.Args[1])
	}
}

func TestParseElsifDesugarsToNestedIf(t *testing.T) {
	src := `PROGRAM P
IF a THEN
	x := 1;
ELSIF b THEN
	x := 2;
ELSE
	x := 3;
END_IF
END_PROGRAM
`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	body := tree.Units[0].Body
	if len(body) != 1 {
		t.Fatalf("body = %d statements", len(body))
	}
	outer, ok := body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("not an if: %T", body[0])
	}
	if outer.FromElsif {
		t.Error("outer if must not be marked FromElsif")
	}
	if len(outer.Else) != 1 {
		t.Fatalf("outer else = %d statements", len(outer.Else))
	}
	inner, ok := outer.Else[0].(*ast.IfStmt)
	if !ok || !inner.FromElsif {
		t.Fatalf("elsif arm not desugared: %+v", outer.Else[0])
	}
	if len(inner.Else) != 1 {
		t.Fatalf("final else lost: %+v", inner.Else)
	}
}

func TestParseStatementShapes(t *testing.T) {
	src := `PROGRAM P
x := 1;
out => y;
DoThing(a, b);
RETURN;
CASE state OF
	IDLE:
		x := 0;
	RUNNING, FAULT:
		x := 1;
ELSE
	x := 2;
END_CASE
FOR i := 0 TO 10 BY 2 DO
	x := x + i;
END_FOR
WHILE x < 100 DO
	x := x * 2;
END_WHILE
REPEAT
	x := x - 1;
UNTIL x = 0
END_REPEAT
END_PROGRAM
`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	body := tree.Units[0].Body
	if len(body) != 8 {
		t.Fatalf("body = %d statements", len(body))
	}
	if _, ok := body[0].(*ast.AssignStmt); !ok {
		t.Errorf("stmt 0: %T", body[0])
	}
	if _, ok := body[1].(*ast.AssignStmt); !ok {
		t.Errorf("stmt 1 (arrow): %T", body[1])
	}
	if _, ok := body[2].(*ast.CallStmt); !ok {
		t.Errorf("stmt 2: %T", body[2])
	}
	if _, ok := body[3].(*ast.ReturnStmt); !ok {
		t.Errorf("stmt 3: %T", body[3])
	}
	cs, ok := body[4].(*ast.CaseStmt)
	if !ok {
		t.Fatalf("stmt 4: %T", body[4])
	}
	if len(cs.Arms) != 2 || len(cs.Else) != 1 {
		t.Fatalf("case arms = %d else = %d", len(cs.Arms), len(cs.Else))
	}
	if !strings.Contains(cs.Arms[1].Labels.Text, "FAULT") {
		t.Errorf("arm labels = %q", cs.Arms[1].Labels.Text)
	}
	for i, want := range []string{"FOR", "WHILE", "REPEAT"} {
		b, ok := body[5+i].(*ast.BlockStmt)
		if !ok || b.Keyword != want {
			t.Errorf("stmt %d: %T (want %s block)", 5+i, body[5+i], want)
		}
	}
}

func TestParseInterfaceRejectsSectionsAndStatements(t *testing.T) {
	src := `INTERFACE I_Device
VAR
	x : INT;
END_VAR
METHOD Start : BOOL
END_METHOD
END_INTERFACE
`
	tree, bag := parseSource(t, src)
	if countCode(bag, diag.SynSectionNotAllowed) != 1 {
		t.Fatalf("want one SectionNotAllowed, got %v", bag.Items())
	}
	u := tree.Units[0]
	if len(u.DeclBlocks) != 0 {
		t.Errorf("interface kept decl blocks: %d", len(u.DeclBlocks))
	}
	if len(u.Methods) != 1 {
		t.Errorf("interface methods = %d", len(u.Methods))
	}
}

func TestParseMultipleBaseTypesOnlyForInterfaces(t *testing.T) {
	src := `FUNCTION_BLOCK FB_Bad EXTENDS A, B
END_FUNCTION_BLOCK
INTERFACE I_Ok EXTENDS I_A, I_B
END_INTERFACE
`
	_, bag := parseSource(t, src)
	if countCode(bag, diag.SynMultipleBaseTypes) != 1 {
		t.Fatalf("want exactly one MultipleBaseTypes, got %v", bag.Items())
	}
}

func TestParseClassKeepsBodyStatements(t *testing.T) {
	src := `CLASS Cylinder
x := 1;
END_CLASS
`
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(tree.Units[0].Body) != 1 {
		t.Fatalf("class body = %d statements", len(tree.Units[0].Body))
	}
}

func TestParseUnknownSectionRecovers(t *testing.T) {
	src := `FUNCTION_BLOCK FB_X
VAR_STAT
	counter : INT;
END_VAR
VAR
	speed : LREAL;
END_VAR
END_FUNCTION_BLOCK
`
	tree, bag := parseSource(t, src)
	if countCode(bag, diag.SynUnknownSection) != 1 {
		t.Fatalf("want exactly one UnknownSection, got %v", bag.Items())
	}
	u := tree.Units[0]
	if len(u.DeclBlocks) != 1 || u.DeclBlocks[0].Decls[0].Name.Text != "speed" {
		t.Fatalf("VAR block after the bad section not parsed: %+v", u.DeclBlocks)
	}
	if len(u.Body) != 0 {
		t.Fatalf("skipped section leaked statements: %d", len(u.Body))
	}
}
