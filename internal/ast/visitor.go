package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls
// fn(node) first; if fn returns true, Inspect recurses into each non-nil child
// of node, followed by a call of fn(nil).
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, fn)
		}
	case *LetStatement:
		if n.Name != nil {
			Inspect(n.Name, fn)
		}
		inspectExpr(n.Value, fn)
	case *ReturnStatement:
		inspectExpr(n.Value, fn)
	case *ExpressionStatement:
		inspectExpr(n.Expression, fn)
	case *PrefixExpression:
		inspectExpr(n.Right, fn)
	case *InfixExpression:
		inspectExpr(n.Left, fn)
		inspectExpr(n.Right, fn)
	case *Identifier, *IntegerLiteral, *BooleanLiteral:
		// leaves
	}

	fn(nil)
}

func inspectExpr(e Expression, fn func(Node) bool) {
	if e != nil {
		Inspect(e, fn)
	}
}
