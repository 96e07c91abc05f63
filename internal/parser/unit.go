package parser

import (
	"strings"

	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/token"
)

var unitKindOf = map[token.Kind]ast.UnitKind{
	token.KwProgram:       ast.UnitProgram,
	token.KwFunctionBlock: ast.UnitFunctionBlock,
	token.KwClass:         ast.UnitClass,
	token.KwInterface:     ast.UnitInterface,
}

var terminatorOf = map[ast.UnitKind]token.Kind{
	ast.UnitProgram:       token.KwEndProgram,
	ast.UnitFunctionBlock: token.KwEndFunctionBlock,
	ast.UnitClass:         token.KwEndClass,
	ast.UnitInterface:     token.KwEndInterface,
}

// parseUnit parses one top-level construct including its terminator.
// It never returns nil for a recognized header: even a badly broken unit
// yields a node so rules can still inspect what parsed.
func (p *Parser) parseUnit(pragmas []ast.Pragma) *ast.Unit {
	kwTok := p.advance()
	kind := unitKindOf[kwTok.Kind]

	u := &ast.Unit{
		Kind:    kind,
		Pragmas: pragmas,
		Span:    kwTok.Span,
	}

	if nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier,
		"expected "+kind.String()+" name"); ok {
		u.Name = ast.Name{Text: nameTok.Text, Span: nameTok.Span}
	} else {
		p.resyncToSection()
	}

	if p.at(token.KwExtends) {
		p.advance()
		u.BaseTypes = p.parseNameList()
		if len(u.BaseTypes) > 1 && kind != ast.UnitInterface {
			p.report(diag.SynMultipleBaseTypes, diag.SevError, u.BaseTypes[1].Span,
				kind.String()+" may extend only one base type")
		}
	}

	if p.at(token.KwImplements) {
		implTok := p.advance()
		impls := p.parseNameList()
		if kind == ast.UnitClass || kind == ast.UnitFunctionBlock {
			u.Implements = impls
		} else {
			p.report(diag.SynSectionNotAllowed, diag.SevError, implTok.Span,
				"IMPLEMENTS is only allowed on CLASS and FUNCTION_BLOCK")
		}
	}

	p.parseUnitMembers(u)

	endKind := terminatorOf[kind]
	switch {
	case p.at(endKind):
		end := p.advance()
		u.Span = u.Span.Cover(end.Span)
	case p.peek().IsUnitEnd():
		end := p.advance()
		p.report(diag.SynMismatchedTerminator, diag.SevError, end.Span,
			kind.String()+" "+u.Name.Text+" is terminated by "+end.Kind.String()+
				", expected "+endKind.String())
		u.Span = u.Span.Cover(end.Span)
	default:
		p.report(diag.SynUnterminatedUnit, diag.SevError, p.diagSpan(),
			"missing "+endKind.String()+" for "+kind.String()+" "+u.Name.Text)
		u.Span = u.Span.Cover(p.lastSpan)
	}
	return u
}

// parseUnitMembers parses declaration blocks, methods, properties and body
// statements until a unit boundary.
func (p *Parser) parseUnitMembers(u *ast.Unit) {
	var pending []ast.Pragma
	for {
		switch {
		case p.at(token.EOF), p.peek().IsUnitEnd(), p.peek().IsUnitStart():
			return

		case p.at(token.Pragma):
			pending = append(pending, parsePragma(p.advance()))

		case p.peek().IsSectionStart():
			secTok := p.peek()
			block := p.parseDeclBlock(pending)
			pending = nil
			if block == nil {
				continue
			}
			if u.Kind == ast.UnitInterface {
				p.report(diag.SynSectionNotAllowed, diag.SevError, secTok.Span,
					"variable sections are not allowed in INTERFACE")
				continue
			}
			u.DeclBlocks = append(u.DeclBlocks, block)

		case p.at(token.KwMethod):
			m := p.parseMethod(pending)
			pending = nil
			if m != nil {
				u.Methods = append(u.Methods, m)
			}

		case p.at(token.KwProperty):
			prop := p.parseProperty(pending)
			pending = nil
			if prop != nil {
				u.Properties = append(u.Properties, prop)
			}

		case p.atUnknownSection():
			secTok := p.advance()
			p.report(diag.SynUnknownSection, diag.SevError, secTok.Span,
				"unknown variable section "+secTok.Text)
			p.skipUnknownSection()
			pending = nil

		default:
			// body statement; Class keeps its body so the ClassBodyEmpty
			// rule can point at it, Interface bodies are rejected here
			stmt, ok := p.parseStatement()
			if !ok {
				p.resyncToSection()
				continue
			}
			if stmt == nil {
				continue
			}
			if u.Kind == ast.UnitInterface {
				p.report(diag.SynSectionNotAllowed, diag.SevError, stmt.Span(),
					"statements are not allowed in INTERFACE")
				continue
			}
			u.Body = append(u.Body, stmt)
		}
	}
}

// atUnknownSection reports whether the current token looks like a variable
// section this dialect does not know (VAR_STAT, VAR_TEMP, ...). Known
// sections are keywords, so any VAR_-prefixed identifier qualifies.
func (p *Parser) atUnknownSection() bool {
	t := p.peek()
	return t.Kind == token.Ident && strings.HasPrefix(strings.ToUpper(t.Text), "VAR_")
}

// skipUnknownSection discards the section contents through its END_VAR.
func (p *Parser) skipUnknownSection() {
	for {
		switch {
		case p.at(token.KwEndVar):
			p.advance()
			return
		case p.at(token.EOF), p.peek().IsUnitEnd(), p.peek().IsUnitStart(),
			p.peek().IsSectionStart(), p.at(token.KwMethod), p.at(token.KwProperty):
			return
		default:
			p.advance()
		}
	}
}

// parseNameList parses one or more comma-separated, possibly qualified
// names (Lib.I_Device).
func (p *Parser) parseNameList() []ast.Name {
	var names []ast.Name
	for {
		name, ok := p.parseQualifiedName()
		if !ok {
			return names
		}
		names = append(names, name)
		if !p.at(token.Comma) {
			return names
		}
		p.advance()
	}
}

func (p *Parser) parseQualifiedName() (ast.Name, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		return ast.Name{}, false
	}
	name := ast.Name{Text: first.Text, Span: first.Span}
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		part := p.advance()
		name.Text += "." + part.Text
		name.Span = name.Span.Cover(part.Span)
	}
	return name, true
}
