package format

import (
	"strings"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// TreeOptions controls the indented tree renderer
type TreeOptions struct {
	// IndentSize specifies the number of spaces per level
	IndentSize int
	// PreferTabs uses tabs instead of spaces for indentation
	PreferTabs bool
	// Positions appends line:column to every node
	Positions bool
}

// DefaultTreeOptions returns default tree options
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{IndentSize: 2}
}

// TreeFormatter renders a syntax tree as one node per line, children indented
// below their parent.
type TreeFormatter struct {
	options TreeOptions
	indent  int
	buffer  strings.Builder
}

// NewTreeFormatter creates a new tree formatter with the given options
func NewTreeFormatter(options TreeOptions) *TreeFormatter {
	return &TreeFormatter{options: options}
}

// Tree renders node with the default options.
func Tree(node ast.Node) string {
	return NewTreeFormatter(DefaultTreeOptions()).Format(node)
}

// Format renders node and returns the text
func (f *TreeFormatter) Format(node ast.Node) string {
	f.buffer.Reset()
	f.indent = 0

	if node != nil {
		f.formatNode(node)
	}

	return f.buffer.String()
}

func (f *TreeFormatter) formatNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		f.line("Program", "", nil)
		f.children(func() {
			for _, s := range n.Statements {
				f.formatNode(s)
			}
		})
	case *ast.LetStatement:
		f.line("LetStatement", n.Token.Literal, &n.Token.Pos)
		f.children(func() {
			if n.Name != nil {
				f.formatNode(n.Name)
			} else {
				f.missing()
			}
			f.formatExpr(n.Value)
		})
	case *ast.ReturnStatement:
		f.line("ReturnStatement", n.Token.Literal, &n.Token.Pos)
		f.children(func() { f.formatExpr(n.Value) })
	case *ast.ExpressionStatement:
		f.line("ExpressionStatement", "", &n.Token.Pos)
		f.children(func() { f.formatExpr(n.Expression) })
	case *ast.Identifier:
		f.line("Identifier", n.Value, &n.Token.Pos)
	case *ast.IntegerLiteral:
		f.line("IntegerLiteral", n.Token.Literal, &n.Token.Pos)
	case *ast.BooleanLiteral:
		f.line("BooleanLiteral", n.Token.Literal, &n.Token.Pos)
	case *ast.PrefixExpression:
		f.line("PrefixExpression", n.Operator, &n.Token.Pos)
		f.children(func() { f.formatExpr(n.Right) })
	case *ast.InfixExpression:
		f.line("InfixExpression", n.Operator, &n.Token.Pos)
		f.children(func() {
			f.formatExpr(n.Left)
			f.formatExpr(n.Right)
		})
	default:
		f.line("Unknown", node.String(), nil)
	}
}

func (f *TreeFormatter) formatExpr(e ast.Expression) {
	if e == nil {
		f.missing()
		return
	}
	f.formatNode(e)
}

func (f *TreeFormatter) missing() {
	f.line("<missing>", "", nil)
}

func (f *TreeFormatter) children(fn func()) {
	f.indent++
	fn()
	f.indent--
}

func (f *TreeFormatter) line(kind, detail string, pos *lexer.Position) {
	f.writeIndent()
	f.buffer.WriteString(kind)
	if detail != "" {
		f.buffer.WriteString(" ")
		f.buffer.WriteString(detail)
	}
	if f.options.Positions && pos != nil {
		f.buffer.WriteString(" @")
		f.buffer.WriteString(pos.String())
	}
	f.buffer.WriteString("\n")
}

func (f *TreeFormatter) writeIndent() {
	if f.options.PreferTabs {
		f.buffer.WriteString(strings.Repeat("\t", f.indent))
	} else {
		f.buffer.WriteString(strings.Repeat(" ", f.indent*f.options.IndentSize))
	}
}
