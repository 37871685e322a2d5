// Package lexer implements the lexical analyzer: it turns source text into a
// stream of tokens, one per NextToken call.
package lexer

import (
	"unicode/utf8"
)

// eof is the character sentinel once the input is exhausted.
const eof rune = -1

// Lexer scans a source string. A Lexer is not safe for concurrent use.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	width        int  // byte width of ch
	line         int  // current line number
	column       int  // current column number
}

// New creates a new lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = eof
		l.width = 0
	} else {
		l.ch, l.width = utf8.DecodeRuneInString(l.input[l.readPosition:])
	}
	l.position = l.readPosition
	l.readPosition += l.width
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// skipWhitespace skips spaces, tabs, newlines and carriage returns
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// isLetter reports whether ch may appear in an identifier: ASCII letters,
// the Spanish letters á é í ó ú ñ in either case, and underscore.
func isLetter(ch rune) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', ch == '_':
		return true
	}
	switch ch {
	case 'á', 'é', 'í', 'ó', 'ú', 'ñ', 'Á', 'É', 'Í', 'Ó', 'Ú', 'Ñ':
		return true
	}
	return false
}

// isDigit checks if character is ASCII digit
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// NextToken scans the input and returns the next token. Once the input is
// exhausted every call returns an EOF token with an empty literal.
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	startPos := l.currentPosition()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(EQ, "==", startPos)
		} else {
			tok = newToken(ASSIGN, "=", startPos)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(NOT_EQ, "!=", startPos)
		} else {
			tok = newToken(NEGATION, "!", startPos)
		}
	case '+':
		tok = newToken(PLUS, "+", startPos)
	case '-':
		tok = newToken(MINUS, "-", startPos)
	case '*':
		tok = newToken(MULTIPLICATION, "*", startPos)
	case '/':
		tok = newToken(DIVISION, "/", startPos)
	case '<':
		tok = newToken(LT, "<", startPos)
	case '>':
		tok = newToken(GT, ">", startPos)
	case '(':
		tok = newToken(LPAREN, "(", startPos)
	case ')':
		tok = newToken(RPAREN, ")", startPos)
	case '{':
		tok = newToken(LBRACE, "{", startPos)
	case '}':
		tok = newToken(RBRACE, "}", startPos)
	case ',':
		tok = newToken(COMMA, ",", startPos)
	case ';':
		tok = newToken(SEMICOLON, ";", startPos)
	case eof:
		return newToken(EOF, "", startPos)
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return newToken(LookupIdent(literal), literal, startPos)
		}
		if isDigit(l.ch) {
			return newToken(INT, l.readNumber(), startPos)
		}
		// raw bytes, so invalid UTF-8 is reported as written
		tok = newToken(ILLEGAL, l.input[l.position:l.readPosition], startPos)
	}

	l.readChar()
	return tok
}

// Tokens drains the lexer and returns every remaining token, EOF included.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

func (l *Lexer) currentPosition() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

func newToken(tokenType TokenType, literal string, pos Position) Token {
	return Token{Type: tokenType, Literal: literal, Pos: pos}
}
