package lexer

import (
	"stcheck/internal/diag"
	"stcheck/internal/token"
)

// scanLineComment scans '//' to the end of the line, newline excluded.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // /
	lx.cursor.Bump() // /
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CommentLine, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanBlockComment scans '(* ... *)'. Block comments nest, as in CODESYS.
// An unterminated comment consumes the rest of the file and reports once.
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // (
	lx.cursor.Bump() // *

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		b0, b1, ok := lx.cursor.Peek2()
		switch {
		case ok && b0 == '(' && b1 == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
		case ok && b0 == '*' && b1 == ')':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.report(diag.LexUnterminatedComment, sp, "unterminated block comment")
	}
	return token.Token{Kind: token.CommentBlock, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
