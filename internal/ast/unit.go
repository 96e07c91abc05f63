package ast

import (
	"strings"

	"stcheck/internal/source"
)

// UnitKind discriminates the four top-level constructs.
type UnitKind uint8

const (
	// UnitProgram is a PROGRAM ... END_PROGRAM unit.
	UnitProgram UnitKind = iota
	// UnitFunctionBlock is a FUNCTION_BLOCK ... END_FUNCTION_BLOCK unit.
	UnitFunctionBlock
	// UnitClass is a CLASS ... END_CLASS unit.
	UnitClass
	// UnitInterface is an INTERFACE ... END_INTERFACE unit.
	UnitInterface
)

func (k UnitKind) String() string {
	switch k {
	case UnitProgram:
		return "PROGRAM"
	case UnitFunctionBlock:
		return "FUNCTION_BLOCK"
	case UnitClass:
		return "CLASS"
	case UnitInterface:
		return "INTERFACE"
	}
	return "UNIT(?)"
}

// Name is an identifier with its span, original casing preserved.
type Name struct {
	Text string
	Span source.Span
}

// Pragma is one '{attribute 'key' := 'value'}' annotation. Raw keeps the
// whole pragma text for forms the parser does not recognize.
type Pragma struct {
	Key   string
	Value string
	Raw   string
	Span  source.Span
}

// File is the root of one parsed source file.
type File struct {
	Path  string
	Units []*Unit
	Span  source.Span
}

// Unit is a top-level construct. Immutable after parsing.
type Unit struct {
	Kind       UnitKind
	Name       Name
	BaseTypes  []Name // EXTENDS targets, unresolved
	Implements []Name // IMPLEMENTS targets, unresolved
	Pragmas    []Pragma
	DeclBlocks []*DeclBlock
	Methods    []*Method
	Properties []*Property
	Body       []Stmt // Program/FunctionBlock only
	Span       source.Span
}

// PragmaValue returns the value of the first pragma with the given key.
// Keys compare case-insensitively.
func (u *Unit) PragmaValue(key string) (string, bool) {
	for _, p := range u.Pragmas {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}
