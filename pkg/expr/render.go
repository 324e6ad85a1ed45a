package expr

import "strconv"

// Repr produces the canonical textual form of an expression tree. Every
// operator application is bracketed with <...>, so precedence is explicit in
// the nesting regardless of the original source grouping; explicit source
// parentheses render as plain (...). Replacing < and > with parentheses
// yields an input that re-evaluates to the same value.
func Repr(node Node) string {
	switch n := node.(type) {
	case *LiteralNode:
		return strconv.FormatInt(n.Val, 10)
	case *UnaryNode:
		return "<-" + Repr(n.Operand) + ">"
	case *GroupNode:
		return "(" + Repr(n.Inner) + ")"
	case *BinaryNode:
		return "<" + Repr(n.Left) + opSymbol(n.Op) + Repr(n.Right) + ">"
	default:
		return "?"
	}
}

func opSymbol(op TokenType) string {
	switch op {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	default:
		return "?"
	}
}
