package parser

import (
	"strconv"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/i18n"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// ====== Expression Parsing (Pratt Parser) ======

// Precedence levels for operators, lowest to highest
type Precedence int

const (
	_ Precedence = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // < >
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -X !X
	CALL        // myFunction(X)
)

// precedences maps token types to their precedence levels
var precedences = map[lexer.TokenType]Precedence{
	lexer.EQ:     EQUALS,
	lexer.NOT_EQ: EQUALS,

	lexer.LT: LESSGREATER,
	lexer.GT: LESSGREATER,

	lexer.PLUS:  SUM,
	lexer.MINUS: SUM,

	lexer.MULTIPLICATION: PRODUCT,
	lexer.DIVISION:       PRODUCT,
}

// precedenceOf returns the binding power of a token type; types absent from
// the table bind at LOWEST, which ends an expression.
func precedenceOf(tt lexer.TokenType) Precedence {
	if p, ok := precedences[tt]; ok {
		return p
	}
	return LOWEST
}

// peekPrecedence returns the precedence of the peek token
func (p *Parser) peekPrecedence() Precedence {
	return precedenceOf(p.peek.Type)
}

// currentPrecedence returns the precedence of the current token
func (p *Parser) currentPrecedence() Precedence {
	return precedenceOf(p.current.Type)
}

// hasPrefixRule reports whether an expression may start with tt
func hasPrefixRule(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.INT, lexer.TRUE, lexer.FALSE,
		lexer.MINUS, lexer.NEGATION, lexer.LPAREN:
		return true
	}
	return false
}

// hasInfixRule reports whether tt may continue an expression as a binary operator
func hasInfixRule(tt lexer.TokenType) bool {
	switch tt {
	case lexer.PLUS, lexer.MINUS, lexer.MULTIPLICATION, lexer.DIVISION,
		lexer.EQ, lexer.NOT_EQ, lexer.LT, lexer.GT:
		return true
	}
	return false
}

// parseExpression parses an expression whose operators all bind tighter than
// precedence. It returns nil after recording an error.
func (p *Parser) parseExpression(precedence Precedence) ast.Expression {
	if !hasPrefixRule(p.current.Type) {
		p.noPrefixParseFnError(p.current)
		return nil
	}

	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		if !hasInfixRule(p.peek.Type) {
			return left
		}
		p.nextToken()
		left = p.parseInfixExpression(left)
	}

	return left
}

// parsePrefix dispatches on the current token; callers check hasPrefixRule first
func (p *Parser) parsePrefix() ast.Expression {
	switch p.current.Type {
	case lexer.IDENT:
		return p.parseIdentifier()
	case lexer.INT:
		return p.parseIntegerLiteral()
	case lexer.TRUE, lexer.FALSE:
		return p.parseBooleanLiteral()
	case lexer.MINUS, lexer.NEGATION:
		return p.parsePrefixExpression()
	case lexer.LPAREN:
		return p.parseGroupedExpression()
	}
	invariant("no prefix rule for " + p.current.Type.String())
	return nil
}

func (p *Parser) noPrefixParseFnError(tok lexer.Token) {
	msg := p.catalog.Message(i18n.MsgNoPrefixParseFn, i18n.Args{"Literal": tok.Literal})
	p.addError(tok, msg, "expression parsing")
}

// parseIdentifier parses an identifier
func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewIdentifier(p.current)
}

// parseIntegerLiteral parses a base-10 integer literal
func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.current.Literal, 10, 64)
	if err != nil {
		msg := p.catalog.Message(i18n.MsgIntegerParse, i18n.Args{"Literal": p.current.Literal})
		p.addError(p.current, msg, "integer parsing")
		return nil
	}

	return ast.NewIntegerLiteral(p.current, value)
}

// parseBooleanLiteral parses verdadero / falso
func (p *Parser) parseBooleanLiteral() ast.Expression {
	return ast.NewBooleanLiteral(p.current, p.currentTokenIs(lexer.TRUE))
}

// parsePrefixExpression parses `-X` and `!X`
func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.current

	p.nextToken()
	right := p.parseExpression(PREFIX)

	return ast.NewPrefixExpression(tok, right)
}

// parseGroupedExpression parses `( X )`; the parentheses leave no node behind
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return exp
}

// parseInfixExpression parses the right operand of the operator at current.
// Parsing the operand at the operator's own precedence makes chains of equal
// precedence associate to the left.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.current

	precedence := p.currentPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)

	return ast.NewInfixExpression(tok, left, right)
}
