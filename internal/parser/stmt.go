package parser

import (
	"stcheck/internal/ast"
	"stcheck/internal/diag"
	"stcheck/internal/source"
	"stcheck/internal/token"
)

// stmtBoundaryKinds close the surrounding construct; a statement never
// consumes across them.
var stmtBoundaryKinds = []token.Kind{
	token.KwProgram, token.KwEndProgram,
	token.KwFunctionBlock, token.KwEndFunctionBlock,
	token.KwClass, token.KwEndClass,
	token.KwInterface, token.KwEndInterface,
	token.KwMethod, token.KwEndMethod,
	token.KwProperty, token.KwEndProperty,
	token.KwVar, token.KwVarInput, token.KwVarOutput, token.KwVarInOut, token.KwEndVar,
	token.KwElsif, token.KwElse, token.KwEndIf,
	token.KwEndCase, token.KwEndFor, token.KwEndWhile, token.KwUntil, token.KwEndRepeat,
}

func (p *Parser) atStmtBoundary() bool {
	return p.atAny(stmtBoundaryKinds...)
}

// parseStatement parses a single statement. It returns (nil, true) for
// statements that produce no node (empty ';', consumed stray closer) and
// (nil, false) when the caller should resynchronize.
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.KwIf:
		kw := p.advance()
		return p.parseIfTail(kw.Span, false), true

	case token.KwCase:
		return p.parseCase(), true

	case token.KwReturn:
		kw := p.advance()
		sp := kw.Span
		if p.at(token.Semicolon) {
			sp = sp.Cover(p.advance().Span)
		}
		return &ast.ReturnStmt{Sp: sp}, true

	case token.KwExit:
		kw := p.advance()
		sp := kw.Span
		if p.at(token.Semicolon) {
			sp = sp.Cover(p.advance().Span)
		}
		return &ast.CallStmt{Call: ast.Expr{Text: kw.Text, Span: kw.Span}, Sp: sp}, true

	case token.KwFor:
		return p.parseLoop("FOR", token.KwDo, token.KwEndFor), true
	case token.KwWhile:
		return p.parseLoop("WHILE", token.KwDo, token.KwEndWhile), true
	case token.KwRepeat:
		return p.parseRepeat(), true

	case token.Semicolon:
		p.advance()
		return nil, true

	case token.Pragma:
		p.advance()
		return nil, true

	case token.EOF:
		return nil, false

	default:
		if p.atStmtBoundary() {
			p.err(diag.SynUnexpectedToken, "unexpected "+describeToken(p.peek()))
			p.advance()
			return nil, true
		}
		return p.parseExprStatement()
	}
}

// parseStatementsUntil parses statements until stop() holds, a construct
// boundary, or EOF.
func (p *Parser) parseStatementsUntil(stop func() bool) []ast.Stmt {
	var out []ast.Stmt
	for !p.at(token.EOF) && !stop() && !p.atStmtBoundary() {
		s, ok := p.parseStatement()
		if !ok {
			p.resyncStmt()
			continue
		}
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (p *Parser) resyncStmt() {
	p.resyncUntil(append([]token.Kind{token.Semicolon}, stmtBoundaryKinds...)...)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseIfTail parses the remainder of IF/ELSIF after its keyword. ELSIF
// arms become a nested IfStmt as the sole statement of the else branch;
// the innermost arm consumes the shared END_IF.
func (p *Parser) parseIfTail(kwSpan source.Span, fromElsif bool) ast.Stmt {
	cond := p.collectExprUntil(token.KwThen)
	p.expect(token.KwThen, diag.SynUnexpectedToken, "expected THEN after IF condition")

	ifs := &ast.IfStmt{Cond: cond, FromElsif: fromElsif, Sp: kwSpan}
	ifs.Then = p.parseStatementsUntil(func() bool {
		return p.atAny(token.KwElsif, token.KwElse, token.KwEndIf)
	})

	switch p.peek().Kind {
	case token.KwElsif:
		elsifTok := p.advance()
		nested := p.parseIfTail(elsifTok.Span, true)
		ifs.Else = []ast.Stmt{nested}
		ifs.Sp = ifs.Sp.Cover(nested.Span())
		return ifs
	case token.KwElse:
		p.advance()
		ifs.Else = p.parseStatementsUntil(func() bool { return p.at(token.KwEndIf) })
	}

	if end, ok := p.expect(token.KwEndIf, diag.SynUnexpectedToken, "expected END_IF"); ok {
		ifs.Sp = ifs.Sp.Cover(end.Span)
	}
	if p.at(token.Semicolon) {
		ifs.Sp = ifs.Sp.Cover(p.advance().Span)
	}
	return ifs
}

func (p *Parser) parseCase() ast.Stmt {
	kw := p.advance()
	disc := p.collectExprUntil(token.KwOf)
	p.expect(token.KwOf, diag.SynUnexpectedToken, "expected OF after CASE discriminant")

	cs := &ast.CaseStmt{Disc: disc, Sp: kw.Span}

	for !p.atAny(token.KwElse, token.KwEndCase, token.EOF) && !p.atHardBoundary() {
		posBefore := p.pos
		labels := p.collectExprUntil(token.Colon)
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' after CASE labels")
		body := p.parseStatementsUntil(func() bool {
			return p.atCaseLabel() || p.atAny(token.KwElse, token.KwEndCase)
		})
		cs.Arms = append(cs.Arms, ast.CaseArm{Labels: labels, Body: body})
		if p.pos == posBefore {
			p.advance()
		}
	}

	if p.at(token.KwElse) {
		p.advance()
		cs.Else = p.parseStatementsUntil(func() bool { return p.at(token.KwEndCase) })
	}
	if end, ok := p.expect(token.KwEndCase, diag.SynUnexpectedToken, "expected END_CASE"); ok {
		cs.Sp = cs.Sp.Cover(end.Span)
	}
	if p.at(token.Semicolon) {
		cs.Sp = cs.Sp.Cover(p.advance().Span)
	}
	return cs
}

// atHardBoundary is atStmtBoundary minus the if/case closers that CASE
// parsing handles itself.
func (p *Parser) atHardBoundary() bool {
	if !p.atStmtBoundary() {
		return false
	}
	switch p.peek().Kind {
	case token.KwElse, token.KwEndCase:
		return false
	}
	return true
}

// atCaseLabel reports whether the upcoming tokens look like the label set
// of the next CASE arm: a short run of label-shaped tokens ending in ':'.
func (p *Parser) atCaseLabel() bool {
	for n := 0; n < 16; n++ {
		t := p.peekAt(n)
		switch t.Kind {
		case token.Colon:
			return n > 0
		case token.Ident, token.IntLit, token.TimeLit, token.StringLit,
			token.Dot, token.DotDot, token.Comma, token.Minus, token.Plus,
			token.KwTrue, token.KwFalse:
			continue
		default:
			return false
		}
	}
	return false
}

func (p *Parser) parseLoop(keyword string, headerEnd, bodyEnd token.Kind) ast.Stmt {
	kw := p.advance()
	header := p.collectExprUntil(headerEnd)
	p.expect(headerEnd, diag.SynUnexpectedToken, "expected DO")

	b := &ast.BlockStmt{Keyword: keyword, Header: header, Sp: kw.Span}
	b.Body = p.parseStatementsUntil(func() bool { return p.at(bodyEnd) })

	if end, ok := p.expect(bodyEnd, diag.SynUnexpectedToken, "expected "+bodyEnd.String()); ok {
		b.Sp = b.Sp.Cover(end.Span)
	}
	if p.at(token.Semicolon) {
		b.Sp = b.Sp.Cover(p.advance().Span)
	}
	return b
}

func (p *Parser) parseRepeat() ast.Stmt {
	kw := p.advance()
	b := &ast.BlockStmt{Keyword: "REPEAT", Sp: kw.Span}
	b.Body = p.parseStatementsUntil(func() bool { return p.at(token.KwUntil) })

	p.expect(token.KwUntil, diag.SynUnexpectedToken, "expected UNTIL")
	b.Header = p.collectExprUntil(token.KwEndRepeat)

	if end, ok := p.expect(token.KwEndRepeat, diag.SynUnexpectedToken, "expected END_REPEAT"); ok {
		b.Sp = b.Sp.Cover(end.Span)
	}
	if p.at(token.Semicolon) {
		b.Sp = b.Sp.Cover(p.advance().Span)
	}
	return b
}

// parseExprStatement parses an assignment or call statement. A construct
// closer may end the statement without ';' (tolerated, a formatting
// concern, not a grammar one).
func (p *Parser) parseExprStatement() (ast.Stmt, bool) {
	startTok := p.peek()
	target := p.collectExprUntil(token.Assign, token.Arrow)

	switch p.peek().Kind {
	case token.Assign, token.Arrow:
		p.advance()
		value := p.collectExprUntil()
		sp := startTok.Span.Cover(p.lastSpan)
		if p.at(token.Semicolon) {
			sp = sp.Cover(p.advance().Span)
		}
		return &ast.AssignStmt{Target: target, Value: value, Sp: sp}, true

	case token.Semicolon:
		semi := p.advance()
		return &ast.CallStmt{Call: target, Sp: startTok.Span.Cover(semi.Span)}, true

	default:
		if target.Text == "" {
			p.err(diag.SynUnexpectedToken, "expected a statement, got "+describeToken(p.peek()))
			return nil, false
		}
		return &ast.CallStmt{Call: target, Sp: startTok.Span.Cover(p.lastSpan)}, true
	}
}

// collectExprUntil consumes tokens as one opaque expression until a stop
// kind at bracket depth zero, a ';', a construct boundary, or EOF.
// Expressions are never parsed deeper: rules only inspect surface text.
func (p *Parser) collectExprUntil(stops ...token.Kind) ast.Expr {
	first := p.peek()
	depth := 0
	consumed := false

	for {
		t := p.peek()
		if t.Kind == token.EOF || t.Kind == token.Semicolon || p.atStmtBoundary() {
			break
		}
		if t.Kind == token.KwThen || t.Kind == token.KwDo || t.Kind == token.KwOf {
			// control keywords end an expression even when not asked for
			break
		}
		if depth == 0 && containsKind(stops, t.Kind) {
			break
		}
		switch t.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		}
		p.advance()
		consumed = true
	}

	if !consumed {
		return ast.Expr{Text: "", Span: p.diagSpan()}
	}
	sp := first.Span.Cover(p.lastSpan)
	return ast.Expr{Text: p.spanText(sp), Span: sp}
}

func containsKind(kinds []token.Kind, k token.Kind) bool {
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}
