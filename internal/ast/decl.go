package ast

import (
	"stcheck/internal/source"
)

// SectionKind identifies the variable section a declaration block opens.
type SectionKind uint8

const (
	// SecVar is a plain VAR section.
	SecVar SectionKind = iota
	// SecVarInput is a VAR_INPUT section.
	SecVarInput
	// SecVarOutput is a VAR_OUTPUT section.
	SecVarOutput
	// SecVarInOut is a VAR_IN_OUT section.
	SecVarInOut
	// SecVarConstant is a VAR CONSTANT section.
	SecVarConstant
	// SecVarPersistent is a VAR PERSISTENT section.
	SecVarPersistent
	// SecVarRetain is a VAR RETAIN section.
	SecVarRetain
)

func (s SectionKind) String() string {
	switch s {
	case SecVar:
		return "VAR"
	case SecVarInput:
		return "VAR_INPUT"
	case SecVarOutput:
		return "VAR_OUTPUT"
	case SecVarInOut:
		return "VAR_IN_OUT"
	case SecVarConstant:
		return "VAR CONSTANT"
	case SecVarPersistent:
		return "VAR PERSISTENT"
	case SecVarRetain:
		return "VAR RETAIN"
	}
	return "VAR(?)"
}

// IsInterfaceSection reports whether the section is part of the unit's call
// interface (inputs, outputs, in-outs).
func (s SectionKind) IsInterfaceSection() bool {
	switch s {
	case SecVarInput, SecVarOutput, SecVarInOut:
		return true
	default:
		return false
	}
}

// DeclBlock is one VAR ... END_VAR section.
type DeclBlock struct {
	Section SectionKind
	Decls   []*Decl
	Span    source.Span
}

// Decl is a single variable declaration. The punctuation spans (colon, AT,
// assign) are kept so formatting rules can verify spacing without
// re-tokenizing.
type Decl struct {
	Name     Name
	Address  Name // from AT %I* / %QX0.0, zero value when absent
	TypeText string
	TypeSpan source.Span
	// IsPointer is derived: the type expression begins with POINTER TO.
	IsPointer bool
	Enum      *EnumType // inline parenthesized member list, nil otherwise
	Init      *Initializer
	Pragmas   []Pragma

	ColonSpan  source.Span
	AtSpan     source.Span // zero when no AT clause
	AssignSpan source.Span // zero when no initializer

	Span source.Span
}

// EnumType is an inline enumeration type: a parenthesized member list in
// place of a named type.
type EnumType struct {
	Members []Name
	Span    source.Span
}

// Initializer is the right-hand side of ':=' in a declaration. For a call
// form initializer (FB_Init style) Call carries the structured arguments;
// otherwise only Text/Span are set.
type Initializer struct {
	Text string
	Span source.Span
	Call *InitCall
}

// InitCall is a structured 'Type(arg := value, ...)' initializer. Per-arg
// spans are preserved so formatting rules can inspect each line.
type InitCall struct {
	TypeName Name
	LParen   source.Span
	RParen   source.Span
	Args     []InitArg
}

// InitArg is one argument of an InitCall.
type InitArg struct {
	Name      string // parameter name before ':=', "" for positional
	ValueText string
	Span      source.Span
	// Comma reports whether a ',' follows this argument.
	Comma bool
}
