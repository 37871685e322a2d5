// Package parser builds an AST from the token stream of a lexer.
//
// Statements are dispatched on their first token; expressions are parsed with
// a Pratt (operator precedence) engine. Syntax errors never abort the parse:
// they are accumulated and the parser resumes at the next statement.
package parser

import (
	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/i18n"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// Parser holds a two-token window over the lexer output. A Parser is used for
// one parse job and is not safe for concurrent use.
type Parser struct {
	lexer   *lexer.Lexer
	current lexer.Token
	peek    lexer.Token

	errors      []*ParseError
	suggestions []Suggestion

	filename string
	catalog  *i18n.Catalog
}

// Option configures a Parser.
type Option func(*Parser)

// WithCatalog selects the catalog diagnostics are rendered with.
func WithCatalog(c *i18n.Catalog) Option {
	return func(p *Parser) {
		if c != nil {
			p.catalog = c
		}
	}
}

// WithFilename attaches a file name to every ParseError.
func WithFilename(name string) Option {
	return func(p *Parser) { p.filename = name }
}

// New creates a parser reading from l. It panics with an *InvariantError if
// l is nil.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	if l == nil {
		invariant("lexer is nil")
	}

	p := &Parser{
		lexer:   l,
		catalog: i18n.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	// Read the first two tokens
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the diagnostic messages recorded so far, in order.
func (p *Parser) Errors() []string {
	msgs := make([]string, len(p.errors))
	for i, err := range p.errors {
		msgs[i] = err.Message
	}
	return msgs
}

// Diagnostics returns the recorded errors with their positions.
func (p *Parser) Diagnostics() []*ParseError {
	return p.errors
}

// Suggestions returns the fix suggestions recorded so far. They are advisory
// and never counted as errors.
func (p *Parser) Suggestions() []Suggestion {
	return p.suggestions
}

// ParseProgram parses statements until EOF. It always returns a program;
// malformed statements are reported through Errors and skipped.
func (p *Parser) ParseProgram() *ast.Program {
	if p.lexer == nil {
		invariant("parser used before initialization; use parser.New")
	}

	program := ast.NewProgram()

	for !p.currentTokenIs(lexer.EOF) {
		start := p.current
		errCount := len(p.errors)

		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}

		if len(p.errors) > errCount {
			p.synchronize(start)
			continue
		}
		p.nextToken()
	}

	return program
}

// nextToken advances the parser to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// peekTokenIs checks if the peek token is of the given type
func (p *Parser) peekTokenIs(tokenType lexer.TokenType) bool {
	return p.peek.Type == tokenType
}

// expectPeek advances if the peek token matches the expected type
func (p *Parser) expectPeek(tokenType lexer.TokenType) bool {
	if p.peekTokenIs(tokenType) {
		p.nextToken()
		return true
	}
	p.peekError(tokenType)
	return false
}

// peekError records a peek token mismatch error
func (p *Parser) peekError(expected lexer.TokenType) {
	msg := p.catalog.Message(i18n.MsgExpectedToken, i18n.Args{
		"Expected": p.catalog.TokenName(expected),
		"Actual":   p.peek.Literal,
	})
	p.addError(p.peek, msg, "token mismatch")
}

// addError adds an error to the parser's error list
func (p *Parser) addError(at lexer.Token, message, context string) {
	p.errors = append(p.errors, &ParseError{
		File:     p.filename,
		Position: at.Pos,
		Message:  message,
		Context:  context,
	})
}

// synchronize discards the rest of a failed statement. It stops after the
// next `;`, before a `variable` or `regresa` keyword, or at the first token
// of a new line, so programs written without semicolons keep parsing.
func (p *Parser) synchronize(start lexer.Token) {
	for !p.currentTokenIs(lexer.EOF) {
		switch p.current.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			return
		case lexer.LET, lexer.RETURN:
			if p.current.Pos != start.Pos {
				return
			}
		}

		line := p.current.Pos.Line
		p.nextToken()
		if p.current.Pos.Line > line {
			return
		}
	}
}

// ====== Statements ======

func (p *Parser) parseStatement() ast.Statement {
	switch p.current.Type {
	case lexer.LET:
		if stmt := p.parseLetStatement(); stmt != nil {
			return stmt
		}
		return nil
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `variable <ident> = <expr>[;]`. It returns nil
// when the name or the `=` is missing.
func (p *Parser) parseLetStatement() *ast.LetStatement {
	tok := p.current

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdentifier(p.current)

	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}

	p.nextToken()
	value := p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return ast.NewLetStatement(tok, name, value)
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.current

	p.nextToken()
	value := p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return ast.NewReturnStatement(tok, value)
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.current

	if p.currentTokenIs(lexer.IDENT) && p.peekTokenIs(lexer.IDENT) {
		p.suggestKeyword(p.current)
	}

	expr := p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return ast.NewExpressionStatement(tok, expr)
}
