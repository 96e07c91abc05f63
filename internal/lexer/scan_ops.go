package lexer

import (
	"stcheck/internal/diag"
	"stcheck/internal/token"
)

// twoBytePunct maps the two-character punctuation sequences scanned greedily
// ahead of their single-character prefixes.
var twoBytePunct = map[[2]byte]token.Kind{
	{':', '='}: token.Assign,
	{'=', '>'}: token.Arrow,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'<', '>'}: token.NotEq,
	{'.', '.'}: token.DotDot,
}

// scanOperatorOrPunct scans multi-character punctuation greedily before
// single characters, and routes '//' and '(*' to the comment scanners.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	b0 := lx.cursor.Peek()
	b1 := byte(0)
	if _, next, ok := lx.cursor.Peek2(); ok {
		b1 = next
	}

	switch {
	case b0 == '/' && b1 == '/':
		return lx.scanLineComment()
	case b0 == '(' && b1 == '*':
		return lx.scanBlockComment()
	}

	if k, ok := twoBytePunct[[2]byte{b0, b1}]; ok {
		lx.cursor.Bump()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	var kind token.Kind
	switch b0 {
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '=':
		kind = token.Eq
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '^':
		kind = token.Caret
	case '#':
		kind = token.Hash
	default:
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		lx.report(diag.LexUnknownChar, sp, "unrecognized character "+quoteByte(b0))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanDirectAddr scans a direct address: '%' location-prefix [size-prefix]
// then '*' (unassigned placeholder) or dotted digits, e.g. %IX0.0, %Q*, %MW4.
func (lx *Lexer) scanDirectAddr() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // %

	loc := lx.cursor.Peek()
	switch loc {
	case 'I', 'Q', 'M', 'i', 'q', 'm':
		lx.cursor.Bump()
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "malformed direct address")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch lx.cursor.Peek() {
	case 'X', 'B', 'W', 'D', 'L', 'x', 'b', 'w', 'd', 'l':
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '*' {
		lx.cursor.Bump()
	} else {
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if isDec(b) {
				lx.cursor.Bump()
				continue
			}
			if next0, next1, ok := lx.cursor.Peek2(); ok && next0 == '.' && isDec(next1) {
				lx.cursor.Bump()
				continue
			}
			break
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.DirectAddr, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return "'" + string(rune(b)) + "'"
	}
	return "(non-printable)"
}
