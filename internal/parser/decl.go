package parser

import (
	"strings"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/source"
	"stcheck/internal/token"
)

// parseDeclBlock parses VAR[_INPUT|_OUTPUT|_IN_OUT] [CONSTANT|PERSISTENT|
// RETAIN] ... END_VAR. The parser accepts any whitespace layout; formatting
// is checked later by the alignment rule.
func (p *Parser) parseDeclBlock(pragmas []ast.Pragma) *ast.DeclBlock {
	secTok := p.advance()

	var section ast.SectionKind
	switch secTok.Kind {
	case token.KwVarInput:
		section = ast.SecVarInput
	case token.KwVarOutput:
		section = ast.SecVarOutput
	case token.KwVarInOut:
		section = ast.SecVarInOut
	default:
		section = ast.SecVar
		switch p.peek().Kind {
		case token.KwConstant:
			p.advance()
			section = ast.SecVarConstant
		case token.KwPersistent:
			p.advance()
			section = ast.SecVarPersistent
		case token.KwRetain:
			p.advance()
			section = ast.SecVarRetain
		}
	}

	block := &ast.DeclBlock{Section: section, Span: secTok.Span}
	pending := pragmas

	for {
		switch {
		case p.at(token.KwEndVar):
			end := p.advance()
			block.Span = block.Span.Cover(end.Span)
			return block

		case p.at(token.EOF), p.peek().IsUnitEnd(), p.peek().IsUnitStart(),
			p.at(token.KwMethod), p.at(token.KwProperty):
			p.err(diag.SynUnexpectedToken, "expected END_VAR")
			block.Span = block.Span.Cover(p.lastSpan)
			return block

		case p.at(token.Pragma):
			pending = append(pending, parsePragma(p.advance()))

		case p.at(token.Ident):
			d := p.parseDecl(pending)
			pending = nil
			if d != nil {
				block.Decls = append(block.Decls, d)
			}

		default:
			p.err(diag.SynUnexpectedToken,
				"expected a declaration or END_VAR, got "+describeToken(p.peek()))
			p.resyncUntil(token.Semicolon, token.KwEndVar, token.KwMethod,
				token.KwEndFunctionBlock, token.KwEndClass, token.KwEndProgram,
				token.KwEndInterface)
			if p.at(token.Semicolon) {
				p.advance()
			}
		}
	}
}

// parseDecl parses one declaration:
//
//	name [AT %addr] : type [:= initializer] ;
//
// Punctuation spans are preserved for the alignment rule.
func (p *Parser) parseDecl(pragmas []ast.Pragma) *ast.Decl {
	nameTok := p.advance()
	d := &ast.Decl{
		Name:    ast.Name{Text: nameTok.Text, Span: nameTok.Span},
		Pragmas: pragmas,
		Span:    nameTok.Span,
	}

	if p.at(token.KwAt) {
		atTok := p.advance()
		d.AtSpan = atTok.Span
		if addrTok, ok := p.expect(token.DirectAddr, diag.SynUnexpectedToken,
			"expected a direct address after AT"); ok {
			d.Address = ast.Name{Text: addrTok.Text, Span: addrTok.Span}
		}
	}

	colonTok, ok := p.expect(token.Colon, diag.SynExpectColon,
		"expected ':' after variable name")
	if !ok {
		p.recoverDecl()
		return nil
	}
	d.ColonSpan = colonTok.Span

	if p.at(token.LParen) {
		d.Enum = p.parseEnumType()
		if d.Enum != nil {
			d.TypeSpan = d.Enum.Span
			d.TypeText = p.spanText(d.Enum.Span)
		}
	} else if !p.parseDeclType(d) {
		p.recoverDecl()
		return nil
	}

	if p.at(token.Assign) {
		assignTok := p.advance()
		d.AssignSpan = assignTok.Span
		d.Init = p.parseInitializer()
	}

	if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon,
		"expected ';' after declaration"); ok {
		d.Span = d.Span.Cover(semi.Span)
	} else {
		p.recoverDecl()
		d.Span = d.Span.Cover(p.lastSpan)
	}
	return d
}

// recoverDecl skips to the end of the broken declaration.
func (p *Parser) recoverDecl() {
	p.resyncUntil(token.Semicolon, token.KwEndVar, token.KwMethod,
		token.KwEndFunctionBlock, token.KwEndClass, token.KwEndProgram,
		token.KwEndInterface)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseDeclType collects the type expression tokens up to ':=' or ';'.
// Parentheses and brackets (STRING(80), ARRAY[0..7] OF INT) are balanced.
func (p *Parser) parseDeclType(d *ast.Decl) bool {
	start := p.peek().Span
	depth := 0
	count := 0

	d.IsPointer = p.at(token.KwPointer)

	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF, t.IsUnitEnd(), t.IsUnitStart(),
			t.Kind == token.KwEndVar, t.Kind == token.KwMethod:
			if count == 0 {
				p.err(diag.SynExpectType, "expected a type after ':'")
				return false
			}
			d.TypeSpan = start.Cover(p.lastSpan)
			d.TypeText = p.spanText(d.TypeSpan)
			return true
		case depth == 0 && (t.Kind == token.Assign || t.Kind == token.Semicolon):
			if count == 0 {
				p.err(diag.SynExpectType, "expected a type after ':'")
				return false
			}
			d.TypeSpan = start.Cover(p.lastSpan)
			d.TypeText = p.spanText(d.TypeSpan)
			return true
		case t.Kind == token.LParen || t.Kind == token.LBracket:
			depth++
		case t.Kind == token.RParen || t.Kind == token.RBracket:
			depth--
		}
		p.advance()
		count++
	}
}

// parseEnumType parses an inline enumeration: (MEMBER_A, MEMBER_B := 2, ...).
// Member values are allowed and skipped; duplicate member names are reported.
func (p *Parser) parseEnumType() *ast.EnumType {
	lparen := p.advance()
	enum := &ast.EnumType{Span: lparen.Span}
	seen := make(map[string]bool)

	for {
		switch p.peek().Kind {
		case token.RParen:
			r := p.advance()
			enum.Span = enum.Span.Cover(r.Span)
			return enum
		case token.EOF, token.KwEndVar, token.Semicolon:
			p.err(diag.SynUnexpectedToken, "expected ')' to close enumeration")
			enum.Span = enum.Span.Cover(p.lastSpan)
			return enum
		}

		memberTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier,
			"expected enumeration member name")
		if !ok {
			p.resyncUntil(token.Comma, token.RParen, token.Semicolon, token.KwEndVar)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}

		key := strings.ToUpper(memberTok.Text)
		if seen[key] {
			p.report(diag.SynDuplicateEnumMember, diag.SevError, memberTok.Span,
				"duplicate enumeration member "+memberTok.Text)
		} else {
			seen[key] = true
			enum.Members = append(enum.Members, ast.Name{Text: memberTok.Text, Span: memberTok.Span})
		}

		if p.at(token.Assign) {
			p.advance()
			p.skipEnumValue()
		}
		if p.at(token.Comma) {
			p.advance()
		}
	}
}

func (p *Parser) skipEnumValue() {
	for !p.atAny(token.Comma, token.RParen, token.Semicolon, token.KwEndVar, token.EOF) {
		p.advance()
	}
}

// parseInitializer parses the right-hand side of ':='. A 'Type(...)' form
// becomes a structured InitCall with one InitArg per argument; anything else
// stays opaque text.
func (p *Parser) parseInitializer() *ast.Initializer {
	start := p.peek().Span

	if p.at(token.Ident) && p.peekAt(1).Kind == token.LParen {
		return p.parseInitCall()
	}

	depth := 0
	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF, t.Kind == token.KwEndVar, t.IsUnitEnd():
			sp := start.Cover(p.lastSpan)
			return &ast.Initializer{Text: p.spanText(sp), Span: sp}
		case depth == 0 && t.Kind == token.Semicolon:
			sp := start.Cover(p.lastSpan)
			return &ast.Initializer{Text: p.spanText(sp), Span: sp}
		case t.Kind == token.LParen || t.Kind == token.LBracket:
			depth++
		case t.Kind == token.RParen || t.Kind == token.RBracket:
			depth--
		}
		p.advance()
	}
}

func (p *Parser) parseInitCall() *ast.Initializer {
	typeTok := p.advance()
	lparen := p.advance()

	call := &ast.InitCall{
		TypeName: ast.Name{Text: typeTok.Text, Span: typeTok.Span},
		LParen:   lparen.Span,
	}

	for !p.atAny(token.RParen, token.Semicolon, token.KwEndVar, token.EOF) {
		arg := p.parseInitArg()
		call.Args = append(call.Args, arg)
		if p.at(token.Comma) {
			p.advance()
			call.Args[len(call.Args)-1].Comma = true
		}
	}

	end := p.lastSpan
	if rparen, ok := p.expect(token.RParen, diag.SynUnexpectedToken,
		"expected ')' to close initializer"); ok {
		call.RParen = rparen.Span
		end = rparen.Span
	}

	sp := typeTok.Span.Cover(end)
	return &ast.Initializer{Text: p.spanText(sp), Span: sp, Call: call}
}

// parseInitArg parses one 'name := value' or positional 'value' argument.
// The argument span covers the name through the last value token, comma
// excluded, so formatting rules see exactly the argument's own extent.
func (p *Parser) parseInitArg() ast.InitArg {
	var arg ast.InitArg
	startTok := p.peek()
	argStart := startTok.Span

	if startTok.Kind == token.Ident && p.peekAt(1).Kind == token.Assign {
		nameTok := p.advance()
		p.advance() // :=
		arg.Name = nameTok.Text
	}

	valueStart := p.peek().Span
	depth := 0
	for {
		t := p.peek()
		if t.Kind == token.EOF || t.Kind == token.KwEndVar || t.Kind == token.Semicolon {
			break
		}
		if depth == 0 && (t.Kind == token.Comma || t.Kind == token.RParen) {
			break
		}
		// a bare 'name :=' means the next argument started without a
		// separating comma; stop so the arguments stay distinct
		if depth == 0 && t.Kind == token.Ident && p.peekAt(1).Kind == token.Assign {
			break
		}
		switch t.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		}
		p.advance()
	}

	valueSpan := valueStart.Cover(p.lastSpan)
	if valueSpan.Start <= p.lastSpan.Start && p.lastSpan.End >= valueStart.Start {
		arg.ValueText = p.spanText(source.Span{File: valueSpan.File, Start: valueStart.Start, End: p.lastSpan.End})
	}
	arg.Span = source.Span{File: argStart.File, Start: argStart.Start, End: p.lastSpan.End}
	if arg.Span.End < arg.Span.Start {
		arg.Span.End = arg.Span.Start
	}
	return arg
}
