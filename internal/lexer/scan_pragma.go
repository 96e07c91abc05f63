package lexer

import (
	"stcheck/internal/diag"
	"stcheck/internal/token"
)

// scanPragma scans a '{...}' attribute pragma as one token, string literals
// inside included. Pragmas do not nest. The parser extracts key and value
// from the token text.
func (lx *Lexer) scanPragma() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // {

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '}' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Pragma, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\'' {
			lx.scanString()
			continue
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedPragma, sp, "unterminated attribute pragma")
	return token.Token{Kind: token.Pragma, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
