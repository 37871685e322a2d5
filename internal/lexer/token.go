package lexer

import "fmt"

// TokenType represents the category of a token
type TokenType int

// Token types
const (
	_ TokenType = iota

	// 特殊トークン
	ILLEGAL
	EOF

	// リテラル
	IDENT
	INT

	// 演算子
	ASSIGN
	PLUS
	MINUS
	MULTIPLICATION
	DIVISION
	LT
	GT
	EQ
	NOT_EQ
	NEGATION

	// 記号
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	SEMICOLON

	// キーワード
	LET
	RETURN
	FUNCTION
	IF
	ELSE
	TRUE
	FALSE

	tokenTypeCount
)

// tokenNames provides string representations for token types
var tokenNames = [tokenTypeCount]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT: "IDENT",
	INT:   "INT",

	ASSIGN:         "ASSIGN",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	MULTIPLICATION: "MULTIPLICATION",
	DIVISION:       "DIVISION",
	LT:             "LT",
	GT:             "GT",
	EQ:             "EQ",
	NOT_EQ:         "NOT_EQ",
	NEGATION:       "NEGATION",

	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",

	LET:      "LET",
	RETURN:   "RETURN",
	FUNCTION: "FUNCTION",
	IF:       "IF",
	ELSE:     "ELSE",
	TRUE:     "TRUE",
	FALSE:    "FALSE",
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if tt.IsValid() {
		return tokenNames[tt]
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// IsValid reports whether tt is one of the declared token types.
// The zero TokenType is never valid.
func (tt TokenType) IsValid() bool {
	return tt > 0 && tt < tokenTypeCount
}

// TokenTypes returns every declared token type in declaration order.
func TokenTypes() []TokenType {
	types := make([]TokenType, 0, tokenTypeCount-1)
	for tt := ILLEGAL; tt < tokenTypeCount; tt++ {
		types = append(types, tt)
	}
	return types
}

// LookupTokenType resolves a name such as "NOT_EQ" to its token type.
func LookupTokenType(name string) (TokenType, bool) {
	for tt := ILLEGAL; tt < tokenTypeCount; tt++ {
		if tokenNames[tt] == name {
			return tt, true
		}
	}
	return 0, false
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset in source
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token. Tokens are values and are never mutated
// after the lexer returns them.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// NewToken builds a token without position information.
func NewToken(tokenType TokenType, literal string) Token {
	return Token{Type: tokenType, Literal: literal}
}

// Equal reports whether two tokens have the same type and literal.
// Positions are ignored.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Literal == other.Literal
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"variable":      LET,
	"procedimiento": FUNCTION,
	"regresa":       RETURN,
	"si":            IF,
	"si_no":         ELSE,
	"verdadero":     TRUE,
	"falso":         FALSE,
}

// LookupIdent checks if identifier is keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words of the language, unordered.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	return words
}
