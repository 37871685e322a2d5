// Package ast defines the abstract syntax tree produced by the parser.
//
// The node set is closed: Program, three statement kinds and five expression
// kinds. Every node keeps the token it was built from, and every node renders
// to a canonical string that makes operator binding explicit, e.g.
// "-a * b" renders as "((-a) * b)".
package ast

import (
	"strings"

	"github.com/lpp-lang/lpp/internal/lexer"
)

// Node is the base interface for all AST nodes
type Node interface {
	// TokenLiteral returns the literal of the token the node was built from
	TokenLiteral() string
	// String returns the canonical rendering of the node
	String() string
}

// Statement represents all statement nodes
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// ====== Program ======

// Program is the root of every tree the parser produces
type Program struct {
	Statements []Statement
}

// NewProgram creates a program from the given statements.
func NewProgram(statements ...Statement) *Program {
	return &Program{Statements: statements}
}

// TokenLiteral returns the literal of the first statement, or "" when empty.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out strings.Builder
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// ====== Statements ======

// LetStatement binds a name: `variable <name> = <value>;`
type LetStatement struct {
	Token lexer.Token
	Name  *Identifier
	Value Expression
}

// NewLetStatement creates a let statement. It panics with a
// *ConstructionError if tok is not a valid token.
func NewLetStatement(tok lexer.Token, name *Identifier, value Expression) *LetStatement {
	mustToken("LetStatement", tok)
	return &LetStatement{Token: tok, Name: name, Value: value}
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LetStatement) String() string {
	var out strings.Builder
	out.WriteString(ls.TokenLiteral())
	out.WriteString(" ")
	if ls.Name != nil {
		out.WriteString(ls.Name.String())
	}
	out.WriteString(" = ")
	out.WriteString(exprString(ls.Value))
	out.WriteString(";")
	return out.String()
}

// ReturnStatement is `regresa <value>;`
type ReturnStatement struct {
	Token lexer.Token
	Value Expression
}

// NewReturnStatement creates a return statement.
func NewReturnStatement(tok lexer.Token, value Expression) *ReturnStatement {
	mustToken("ReturnStatement", tok)
	return &ReturnStatement{Token: tok, Value: value}
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	return rs.TokenLiteral() + " " + exprString(rs.Value) + ";"
}

// ExpressionStatement wraps an expression used as a statement. Expression may
// be nil when the statement started but no expression could be parsed; such a
// statement renders as "".
type ExpressionStatement struct {
	Token      lexer.Token // first token of the expression
	Expression Expression
}

// NewExpressionStatement creates an expression statement.
func NewExpressionStatement(tok lexer.Token, expression Expression) *ExpressionStatement {
	mustToken("ExpressionStatement", tok)
	return &ExpressionStatement{Token: tok, Expression: expression}
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string       { return exprString(es.Expression) }

// ====== Expressions ======

// Identifier is a name reference
type Identifier struct {
	Token lexer.Token
	Value string
}

// NewIdentifier creates an identifier whose value is the token literal.
func NewIdentifier(tok lexer.Token) *Identifier {
	mustToken("Identifier", tok)
	return &Identifier{Token: tok, Value: tok.Literal}
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is a base-10 integer constant
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

// NewIntegerLiteral creates an integer literal.
func NewIntegerLiteral(tok lexer.Token, value int64) *IntegerLiteral {
	mustToken("IntegerLiteral", tok)
	return &IntegerLiteral{Token: tok, Value: value}
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// BooleanLiteral is `verdadero` or `falso`
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

// NewBooleanLiteral creates a boolean literal.
func NewBooleanLiteral(tok lexer.Token, value bool) *BooleanLiteral {
	mustToken("BooleanLiteral", tok)
	return &BooleanLiteral{Token: tok, Value: value}
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

// PrefixExpression is `<operator><right>`, e.g. `-x` or `!ok`
type PrefixExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	Right    Expression
}

// NewPrefixExpression creates a prefix expression; the operator is the token literal.
func NewPrefixExpression(tok lexer.Token, right Expression) *PrefixExpression {
	mustToken("PrefixExpression", tok)
	return &PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + exprString(pe.Right) + ")"
}

// InfixExpression is `<left> <operator> <right>`
type InfixExpression struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

// NewInfixExpression creates an infix expression; the operator is the token literal.
func NewInfixExpression(tok lexer.Token, left, right Expression) *InfixExpression {
	mustToken("InfixExpression", tok)
	return &InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + exprString(ie.Left) + " " + ie.Operator + " " + exprString(ie.Right) + ")"
}

// exprString renders a possibly missing operand as "".
func exprString(e Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}
