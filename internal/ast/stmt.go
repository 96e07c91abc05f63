package ast

import (
	"stcheck/internal/source"
)

// Expr is an opaque expression: raw token-span text. Rules only inspect
// surface shape, so expressions are never parsed deeper.
type Expr struct {
	Text string
	Span source.Span
}

// Stmt is the polymorphic statement node.
type Stmt interface {
	Span() source.Span
	stmtNode()
}

// IfStmt is IF cond THEN ... [ELSE ...] END_IF. ELSIF chains are represented
// as a nested IfStmt as the sole statement of the Else branch.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	// FromElsif marks Ifs synthesized from an ELSIF arm.
	FromElsif bool
	Sp        source.Span
}

// CaseArm is one (label-set, branch) pair of a CASE statement.
type CaseArm struct {
	Labels Expr
	Body   []Stmt
}

// CaseStmt is CASE disc OF arms [ELSE ...] END_CASE.
type CaseStmt struct {
	Disc Expr
	Arms []CaseArm
	Else []Stmt
	Sp   source.Span
}

// ReturnStmt is a bare RETURN.
type ReturnStmt struct {
	Sp source.Span
}

// AssignStmt is target := value (or target => value for outputs).
type AssignStmt struct {
	Target Expr
	Value  Expr
	Sp     source.Span
}

// CallStmt is an expression statement, usually an FB or method invocation.
type CallStmt struct {
	Call Expr
	Sp   source.Span
}

// BlockStmt wraps loop constructs (FOR/WHILE/REPEAT): an opaque header and
// the nested body. Rules only need the nesting, not loop semantics.
type BlockStmt struct {
	Keyword string // FOR, WHILE, REPEAT
	Header  Expr
	Body    []Stmt
	Sp      source.Span
}

func (s *IfStmt) Span() source.Span     { return s.Sp }
func (s *CaseStmt) Span() source.Span   { return s.Sp }
func (s *ReturnStmt) Span() source.Span { return s.Sp }
func (s *AssignStmt) Span() source.Span { return s.Sp }
func (s *CallStmt) Span() source.Span   { return s.Sp }
func (s *BlockStmt) Span() source.Span  { return s.Sp }

func (*IfStmt) stmtNode()     {}
func (*CaseStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
func (*AssignStmt) stmtNode() {}
func (*CallStmt) stmtNode()   {}
func (*BlockStmt) stmtNode()  {}
