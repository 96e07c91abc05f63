package lexer

import (
	"strings"

	"stcheck/internal/diag"
	"stcheck/internal/token"
)

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

// timeLitPrefixes are the typed-literal prefixes that denote durations and
// dates, e.g. T#5s, LTIME#100ms, DT#2024-01-01-00:00.
var timeLitPrefixes = map[string]bool{
	"T": true, "LT": true, "TIME": true, "LTIME": true,
	"D": true, "LD": true, "DATE": true, "DT": true, "LDT": true,
	"TOD": true, "LTOD": true,
	"TIME_OF_DAY": true, "DATE_AND_TIME": true,
}

// scanIdentOrKeyword scans an identifier and resolves keywords through
// LookupKeyword. An identifier directly followed by '#' is a typed literal
// (T#5s, INT#-3); the whole thing becomes one token.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	lx.cursor.Bump()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	identEnd := lx.cursor.Off
	prefix := string(lx.file.Content[uint32(start):identEnd])

	if lx.cursor.Peek() == '#' {
		return lx.scanTypedLiteral(start, prefix)
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanTypedLiteral consumes '#' and the literal payload after a type prefix.
func (lx *Lexer) scanTypedLiteral(start Mark, prefix string) token.Token {
	lx.cursor.Bump() // '#'

	payloadStart := lx.cursor.Off
	for !lx.cursor.EOF() && isTypedLitPayload(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if lx.cursor.Off == payloadStart {
		lx.report(diag.LexBadNumber, sp, "typed literal "+prefix+"# has no value")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	kind := token.IntLit
	if timeLitPrefixes[strings.ToUpper(prefix)] {
		kind = token.TimeLit
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func isTypedLitPayload(b byte) bool {
	// covers durations (5d12h30m), dates (2024-01-01), times (12:30:00.5)
	// and signed typed numbers (INT#-3)
	return isIdentContinue(b) || b == '.' || b == ':' || b == '-' || b == '+'
}
