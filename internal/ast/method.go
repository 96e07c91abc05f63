package ast

import (
	"stcheck/internal/source"
)

// Param is one method parameter, collected from the method's VAR_INPUT and
// VAR_OUTPUT sections.
type Param struct {
	Name     Name
	TypeText string
	TypeSpan source.Span
	IsOutput bool
}

// Method belongs to exactly one Unit; it is created while parsing that Unit
// and never shared.
type Method struct {
	Name       Name
	Access     string // PUBLIC/PRIVATE/PROTECTED/INTERNAL, "" when absent
	ReturnType string
	Params     []Param
	Locals     []*DeclBlock // VAR sections other than input/output
	Body       []Stmt
	Pragmas    []Pragma
	Span       source.Span
}

// Property is a PROPERTY member. Only its name and type matter to the
// convention rules; accessor bodies are kept as statements.
type Property struct {
	Name     Name
	TypeText string
	Body     []Stmt
	Pragmas  []Pragma
	Span     source.Span
}
