package lexer

import (
	"stcheck/internal/diag"
	"stcheck/internal/source"
	"stcheck/internal/token"
)

// Lexer turns one file into a token stream. It never fails: unrecognized
// bytes become Invalid tokens with a diagnostic and scanning continues.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token      // one-token lookahead buffer
	indents map[uint32]string // 1-based line -> raw leading whitespace
}

func New(file *source.File, opts Options) *Lexer {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		look:    nil,
		indents: make(map[uint32]string),
	}
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '\'':
		return lx.scanString()
	case ch == '{':
		return lx.scanPragma()
	case ch == '%':
		return lx.scanDirectAddr()
	default:
		// '//' and '(*' are routed from here too
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize drains the lexer into a slice ending with EOF.
func Tokenize(file *source.File, opts Options) ([]token.Token, *Lexer) {
	lx := New(file, opts)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, lx
}

// Indents returns the raw leading-whitespace text per 1-based line, for
// every line whose start the lexer scanned over. Alignment rules inspect
// this instead of re-reading the file.
func (lx *Lexer) Indents() map[uint32]string {
	return lx.indents
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// skipWhitespace consumes spaces, tabs and newlines. Whenever it stands at
// the start of a line it records the raw indent run for that line.
func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		if lx.atLineStart() {
			lx.recordIndent()
			if lx.cursor.EOF() {
				return
			}
		}
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) atLineStart() bool {
	if lx.cursor.Off == 0 {
		return true
	}
	return lx.file.Content[lx.cursor.Off-1] == '\n'
}

func (lx *Lexer) recordIndent() {
	line := lx.file.LineOf(lx.cursor.Off)
	if _, done := lx.indents[line]; done {
		return
	}
	start := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
	}
	lx.indents[line] = string(lx.file.Content[start:lx.cursor.Off])
}
