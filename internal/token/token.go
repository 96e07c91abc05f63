package token

import (
	"stcheck/internal/source"
)

// Token represents a single source token with its location.
// Text is exactly the source slice, original casing preserved.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, time, boolean, or string
// literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, TimeLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == CommentLine || t.Kind == CommentBlock
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwProgram && t.Kind <= KwInternal
}

// IsSectionStart reports whether the token opens a variable section.
func (t Token) IsSectionStart() bool {
	switch t.Kind {
	case KwVar, KwVarInput, KwVarOutput, KwVarInOut:
		return true
	default:
		return false
	}
}

// IsUnitStart reports whether the token opens a top-level unit.
func (t Token) IsUnitStart() bool {
	switch t.Kind {
	case KwProgram, KwFunctionBlock, KwClass, KwInterface:
		return true
	default:
		return false
	}
}

// IsUnitEnd reports whether the token terminates a top-level unit.
func (t Token) IsUnitEnd() bool {
	switch t.Kind {
	case KwEndProgram, KwEndFunctionBlock, KwEndClass, KwEndInterface:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
