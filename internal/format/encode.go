package format

import (
	"encoding/json"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// dumpConfig keeps Dump output stable across runs
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// ToMap converts node into plain maps, slices and scalars suitable for any
// generic encoder. A nil node maps to nil.
func ToMap(node ast.Node) map[string]any {
	switch n := node.(type) {
	case *ast.Program:
		stmts := make([]any, 0, len(n.Statements))
		for _, s := range n.Statements {
			stmts = append(stmts, ToMap(s))
		}
		return map[string]any{"type": "Program", "statements": stmts}
	case *ast.LetStatement:
		m := nodeMap("LetStatement", n.Token)
		if n.Name != nil {
			m["name"] = ToMap(n.Name)
		} else {
			m["name"] = nil
		}
		m["value"] = exprMap(n.Value)
		return m
	case *ast.ReturnStatement:
		m := nodeMap("ReturnStatement", n.Token)
		m["value"] = exprMap(n.Value)
		return m
	case *ast.ExpressionStatement:
		m := nodeMap("ExpressionStatement", n.Token)
		m["expression"] = exprMap(n.Expression)
		return m
	case *ast.Identifier:
		m := nodeMap("Identifier", n.Token)
		m["value"] = n.Value
		return m
	case *ast.IntegerLiteral:
		m := nodeMap("IntegerLiteral", n.Token)
		m["value"] = n.Value
		return m
	case *ast.BooleanLiteral:
		m := nodeMap("BooleanLiteral", n.Token)
		m["value"] = n.Value
		return m
	case *ast.PrefixExpression:
		m := nodeMap("PrefixExpression", n.Token)
		m["operator"] = n.Operator
		m["right"] = exprMap(n.Right)
		return m
	case *ast.InfixExpression:
		m := nodeMap("InfixExpression", n.Token)
		m["left"] = exprMap(n.Left)
		m["operator"] = n.Operator
		m["right"] = exprMap(n.Right)
		return m
	}
	return nil
}

func exprMap(e ast.Expression) any {
	if e == nil {
		return nil
	}
	return ToMap(e)
}

func nodeMap(kind string, tok lexer.Token) map[string]any {
	return map[string]any{
		"type":     kind,
		"position": tok.Pos.String(),
	}
}

// TokenMap converts a token into a plain map.
func TokenMap(tok lexer.Token) map[string]any {
	return map[string]any{
		"type":    tok.Type.String(),
		"literal": tok.Literal,
		"line":    tok.Pos.Line,
		"column":  tok.Pos.Column,
		"offset":  tok.Pos.Offset,
	}
}

// TokenMaps converts every token with TokenMap.
func TokenMaps(tokens []lexer.Token) []map[string]any {
	out := make([]map[string]any, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenMap(tok)
	}
	return out
}

// JSON renders node as indented JSON followed by a newline.
func JSON(node ast.Node) ([]byte, error) {
	out, err := json.MarshalIndent(ToMap(node), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// YAML renders node as a YAML document.
func YAML(node ast.Node) ([]byte, error) {
	return yaml.Marshal(ToMap(node))
}

// Dump renders any value with its Go types spelled out, for debugging.
func Dump(v any) string {
	return dumpConfig.Sdump(v)
}
