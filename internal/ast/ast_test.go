package ast

import (
	"errors"
	"testing"

	"github.com/lpp-lang/lpp/internal/lexer"
)

func ident(name string) *Identifier {
	return NewIdentifier(lexer.NewToken(lexer.IDENT, name))
}

func integer(literal string, value int64) *IntegerLiteral {
	return NewIntegerLiteral(lexer.NewToken(lexer.INT, literal), value)
}

func TestLetStatementString(t *testing.T) {
	program := NewProgram(
		NewLetStatement(
			lexer.NewToken(lexer.LET, "variable"),
			ident("mi_var"),
			ident("otra_var"),
		),
	)

	if got := program.String(); got != "variable mi_var = otra_var;" {
		t.Errorf("program.String() wrong. got=%q", got)
	}
}

func TestReturnStatementString(t *testing.T) {
	tests := []struct {
		value    Expression
		expected string
	}{
		{ident("x"), "regresa x;"},
		{integer("5", 5), "regresa 5;"},
	}

	for _, tt := range tests {
		program := NewProgram(NewReturnStatement(lexer.NewToken(lexer.RETURN, "regresa"), tt.value))
		if got := program.String(); got != tt.expected {
			t.Errorf("expected=%q, got=%q", tt.expected, got)
		}
	}
}

func TestExpressionRendering(t *testing.T) {
	minus := lexer.NewToken(lexer.MINUS, "-")
	mul := lexer.NewToken(lexer.MULTIPLICATION, "*")
	eq := lexer.NewToken(lexer.EQ, "==")

	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"identifier", ident("foo"), "foo"},
		{"integer", integer("42", 42), "42"},
		{"true", NewBooleanLiteral(lexer.NewToken(lexer.TRUE, "verdadero"), true), "verdadero"},
		{"false", NewBooleanLiteral(lexer.NewToken(lexer.FALSE, "falso"), false), "falso"},
		{"prefix", NewPrefixExpression(minus, ident("a")), "(-a)"},
		{
			"nested infix",
			NewInfixExpression(mul, NewPrefixExpression(minus, ident("a")), ident("b")),
			"((-a) * b)",
		},
		{
			"comparison",
			NewInfixExpression(eq, integer("1", 1), NewBooleanLiteral(lexer.NewToken(lexer.TRUE, "verdadero"), true)),
			"(1 == verdadero)",
		},
		{"missing operand", NewPrefixExpression(minus, nil), "(-)"},
		{"empty expression statement", NewExpressionStatement(minus, nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestProgramConcatenatesStatements(t *testing.T) {
	program := NewProgram(
		NewLetStatement(lexer.NewToken(lexer.LET, "variable"), ident("x"), integer("1", 1)),
		NewExpressionStatement(lexer.NewToken(lexer.IDENT, "x"), ident("x")),
		NewReturnStatement(lexer.NewToken(lexer.RETURN, "regresa"), ident("x")),
	)

	expected := "variable x = 1;xregresa x;"
	if got := program.String(); got != expected {
		t.Errorf("expected=%q, got=%q", expected, got)
	}
}

func TestProgramTokenLiteral(t *testing.T) {
	if got := NewProgram().TokenLiteral(); got != "" {
		t.Errorf("empty program TokenLiteral() = %q, want \"\"", got)
	}

	program := NewProgram(NewReturnStatement(lexer.NewToken(lexer.RETURN, "regresa"), ident("x")))
	if got := program.TokenLiteral(); got != "regresa" {
		t.Errorf("TokenLiteral() = %q, want %q", got, "regresa")
	}
}

func TestConstructionRequiresValidToken(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for zero token")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error value, got %T", r)
		}
		var ce *ConstructionError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *ConstructionError, got %T", err)
		}
		if ce.Node != "Identifier" {
			t.Errorf("ce.Node = %q", ce.Node)
		}
	}()

	NewIdentifier(lexer.Token{Literal: "x"})
}

func TestInspectVisitsInOrder(t *testing.T) {
	program := NewProgram(
		NewLetStatement(
			lexer.NewToken(lexer.LET, "variable"),
			ident("x"),
			NewInfixExpression(lexer.NewToken(lexer.PLUS, "+"), integer("1", 1), NewPrefixExpression(lexer.NewToken(lexer.MINUS, "-"), ident("y"))),
		),
	)

	var visited []string
	Inspect(program, func(n Node) bool {
		if n != nil {
			visited = append(visited, n.TokenLiteral())
		}
		return true
	})

	expected := []string{"variable", "variable", "x", "+", "1", "-", "y"}
	if len(visited) != len(expected) {
		t.Fatalf("visited %v, expected %v", visited, expected)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("visited[%d] = %q, expected %q", i, visited[i], expected[i])
		}
	}
}
