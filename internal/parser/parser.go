package parser

import (
	"slices"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/source"
	"stcheck/internal/token"
)

// Options configures one parse.
type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser is the per-file parser state.
type Parser struct {
	file     *source.File
	toks     []token.Token // comment tokens filtered out
	pos      int
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics
}

// Parse is the entry point for one file. The token slice is the full lexer
// output including comments; the parser skips comments but the caller keeps
// them for comment-policy rules. A parse failure never aborts the file:
// panic-mode recovery skips to the next section keyword and resumes.
func Parse(file *source.File, toks []token.Token, opts Options) *ast.File {
	significant := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if !t.IsComment() {
			significant = append(significant, t)
		}
	}
	if len(significant) == 0 || significant[len(significant)-1].Kind != token.EOF {
		significant = append(significant, token.Token{
			Kind: token.EOF,
			Span: source.Span{File: file.ID, Start: uint32(len(file.Content)), End: uint32(len(file.Content))},
		})
	}

	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := Parser{
		file: file,
		toks: significant,
		opts: opts,
	}
	return p.parseFile()
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan returns the best span for a diagnostic at the current position.
// At EOF it points just past the last consumed token.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect consumes a token of the given kind, or reports and returns
// (invalid, false) without consuming.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

// resyncUntil skips tokens until one of the given kinds or EOF. This is the
// panic-mode recovery primitive: each recovery point produced exactly one
// diagnostic before calling it.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(kinds...) {
		p.advance()
	}
}

// sectionSyncKinds are the synchronization targets for panic-mode recovery:
// the next section keyword or unit boundary.
var sectionSyncKinds = []token.Kind{
	token.KwVar, token.KwVarInput, token.KwVarOutput, token.KwVarInOut,
	token.KwEndVar, token.KwMethod, token.KwEndMethod, token.KwProperty,
	token.KwProgram, token.KwEndProgram, token.KwFunctionBlock, token.KwEndFunctionBlock,
	token.KwClass, token.KwEndClass, token.KwInterface, token.KwEndInterface,
}

func (p *Parser) resyncToSection() {
	p.resyncUntil(sectionSyncKinds...)
}

// spanText returns the source text covered by a span.
func (p *Parser) spanText(sp source.Span) string {
	if sp.Start >= sp.End || int(sp.End) > len(p.file.Content) {
		return ""
	}
	return string(p.file.Content[sp.Start:sp.End])
}

// parseFile is the top-level loop: pragmas and units until EOF.
func (p *Parser) parseFile() *ast.File {
	f := &ast.File{Path: p.file.Path}
	startSpan := p.peek().Span

	var pending []ast.Pragma
	for !p.at(token.EOF) {
		switch {
		case p.at(token.Pragma):
			pending = append(pending, parsePragma(p.advance()))
		case p.peek().IsUnitStart():
			u := p.parseUnit(pending)
			pending = nil
			if u != nil {
				f.Units = append(f.Units, u)
			}
		default:
			p.err(diag.SynUnexpectedToken,
				"expected PROGRAM, FUNCTION_BLOCK, CLASS or INTERFACE, got "+describeToken(p.peek()))
			p.advance()
			p.resyncUntil(token.KwProgram, token.KwFunctionBlock, token.KwClass,
				token.KwInterface, token.Pragma)
		}
	}

	f.Span = startSpan.Cover(p.lastSpan)
	return f
}

func describeToken(t token.Token) string {
	if t.Text != "" {
		return "'" + t.Text + "'"
	}
	return t.Kind.String()
}
