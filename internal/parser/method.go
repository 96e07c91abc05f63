package parser

import (
	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/token"
)

// parseMethod parses METHOD [access] name [: returnType] with its variable
// sections and body. VAR_INPUT/VAR_OUTPUT declarations become parameters;
// other sections stay as local declaration blocks.
func (p *Parser) parseMethod(pragmas []ast.Pragma) *ast.Method {
	kwTok := p.advance()
	m := &ast.Method{Pragmas: pragmas, Span: kwTok.Span}

	for {
		switch p.peek().Kind {
		case token.KwPublic, token.KwPrivate, token.KwProtected, token.KwInternal:
			m.Access = p.advance().Text
			continue
		case token.KwAbstract, token.KwFinal:
			p.advance()
			continue
		}
		break
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected method name")
	if !ok {
		p.resyncToSection()
		return m
	}
	m.Name = ast.Name{Text: nameTok.Text, Span: nameTok.Span}

	if p.at(token.Colon) {
		p.advance()
		m.ReturnType = p.parseTypeRef()
	}

	for {
		switch {
		case p.at(token.KwEndMethod):
			end := p.advance()
			m.Span = m.Span.Cover(end.Span)
			return m

		case p.at(token.EOF), p.peek().IsUnitEnd(), p.peek().IsUnitStart(),
			p.at(token.KwMethod), p.at(token.KwProperty):
			p.err(diag.SynUnterminatedUnit, "missing END_METHOD for method "+m.Name.Text)
			m.Span = m.Span.Cover(p.lastSpan)
			return m

		case p.at(token.Pragma):
			// declaration-level pragma inside the method header part
			p.advance()

		case p.peek().IsSectionStart():
			block := p.parseDeclBlock(nil)
			if block == nil {
				continue
			}
			switch block.Section {
			case ast.SecVarInput:
				m.Params = append(m.Params, paramsFrom(block, false)...)
			case ast.SecVarOutput:
				m.Params = append(m.Params, paramsFrom(block, true)...)
			default:
				m.Locals = append(m.Locals, block)
			}

		default:
			stmt, ok := p.parseStatement()
			if !ok {
				p.resyncToSection()
				continue
			}
			if stmt != nil {
				m.Body = append(m.Body, stmt)
			}
		}
	}
}

func paramsFrom(block *ast.DeclBlock, isOutput bool) []ast.Param {
	params := make([]ast.Param, 0, len(block.Decls))
	for _, d := range block.Decls {
		params = append(params, ast.Param{
			Name:     d.Name,
			TypeText: d.TypeText,
			TypeSpan: d.TypeSpan,
			IsOutput: isOutput,
		})
	}
	return params
}

// parseProperty parses PROPERTY name : type ... END_PROPERTY. Accessor
// statements are kept as the property body.
func (p *Parser) parseProperty(pragmas []ast.Pragma) *ast.Property {
	kwTok := p.advance()
	prop := &ast.Property{Pragmas: pragmas, Span: kwTok.Span}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected property name")
	if !ok {
		p.resyncToSection()
		return prop
	}
	prop.Name = ast.Name{Text: nameTok.Text, Span: nameTok.Span}

	if p.at(token.Colon) {
		p.advance()
		prop.TypeText = p.parseTypeRef()
	}

	for {
		switch {
		case p.at(token.KwEndProperty):
			end := p.advance()
			prop.Span = prop.Span.Cover(end.Span)
			return prop

		case p.at(token.EOF), p.peek().IsUnitEnd(), p.peek().IsUnitStart(),
			p.at(token.KwMethod), p.at(token.KwProperty):
			p.err(diag.SynUnterminatedUnit, "missing END_PROPERTY for property "+prop.Name.Text)
			prop.Span = prop.Span.Cover(p.lastSpan)
			return prop

		case p.peek().IsSectionStart():
			// accessor locals are irrelevant to the rules; parse and drop
			p.parseDeclBlock(nil)

		default:
			stmt, ok := p.parseStatement()
			if !ok {
				p.resyncToSection()
				continue
			}
			if stmt != nil {
				prop.Body = append(prop.Body, stmt)
			}
		}
	}
}

// parseTypeRef parses a self-delimiting type reference: qualified name,
// POINTER/REFERENCE TO prefix, ARRAY[...] OF prefix, STRING(n).
func (p *Parser) parseTypeRef() string {
	start := p.peek().Span
	firstPos := p.pos

	for p.atAny(token.KwPointer, token.KwReference) {
		p.advance()
		if p.at(token.KwTo) {
			p.advance()
		}
	}

	if p.at(token.KwArray) {
		p.advance()
		if p.at(token.LBracket) {
			depth := 0
			for {
				t := p.peek()
				if t.Kind == token.EOF {
					break
				}
				if t.Kind == token.LBracket {
					depth++
				}
				if t.Kind == token.RBracket {
					depth--
					p.advance()
					if depth == 0 {
						break
					}
					continue
				}
				p.advance()
			}
		}
		if p.at(token.KwOf) {
			p.advance()
		}
		p.parseTypeRef()
		return p.spanText(start.Cover(p.lastSpan))
	}

	if _, ok := p.expect(token.Ident, diag.SynExpectType, "expected a type"); ok {
		for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
			p.advance()
			p.advance()
		}
		// STRING(80) size argument
		if p.at(token.LParen) {
			p.advance()
			p.resyncUntil(token.RParen, token.Semicolon, token.KwEndVar)
			if p.at(token.RParen) {
				p.advance()
			}
		}
	}
	if p.pos == firstPos {
		return ""
	}
	return p.spanText(start.Cover(p.lastSpan))
}
