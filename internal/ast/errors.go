package ast

import (
	"fmt"

	"github.com/lpp-lang/lpp/internal/lexer"
)

// ConstructionError reports an attempt to build a node from something that is
// not a valid token. It is raised with panic: a parser that produces one has
// violated its own invariants.
type ConstructionError struct {
	Node  string
	Token lexer.Token
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("ast: cannot build %s: %s isn't a valid Token", e.Node, e.Token)
}

func mustToken(node string, tok lexer.Token) {
	if !tok.Type.IsValid() {
		panic(&ConstructionError{Node: node, Token: tok})
	}
}
