package lexer

import (
	"stcheck/internal/diag"
	"stcheck/internal/token"
)

func isBasedDigit(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') || b == '_'
}

// scanNumber scans integer, based (16#FF, 2#1010_0011) and real literals.
// '..' is never consumed: 0..10 lexes as IntLit DotDot IntLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}

	// based literal: base '#' digits
	if lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
		digitStart := lx.cursor.Off
		for !lx.cursor.EOF() && isBasedDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		if lx.cursor.Off == digitStart {
			lx.report(diag.LexBadNumber, sp, "based literal has no digits")
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		return token.Token{Kind: token.IntLit, Span: sp, Text: text}
	}

	kind := token.IntLit

	// fraction, but not the '..' subrange operator
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.RealLit
		lx.cursor.Bump()
		for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
			lx.cursor.Bump()
		}
	}

	// exponent
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.RealLit
			for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		} else {
			// 'e' belongs to a following identifier, not this number
			lx.cursor.Reset(mark)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
