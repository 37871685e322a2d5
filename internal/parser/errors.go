package parser

import (
	"fmt"

	"github.com/lpp-lang/lpp/internal/lexer"
)

// ParseError represents a parsing error with context
type ParseError struct {
	File     string
	Position lexer.Position
	Message  string
	Context  string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%s: %s", e.File, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// InvariantError reports misuse of the parser itself, such as a nil lexer or
// a Parser that was not built with New. It is raised with panic and never
// recorded as a diagnostic.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "parser: " + e.Message
}

func invariant(msg string) {
	panic(&InvariantError{Message: msg})
}
