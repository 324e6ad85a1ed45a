package expr

import (
	"fmt"

	"github.com/lemonberrylabs/arith/pkg/types"
)

// Evaluate computes the integer value of an expression tree. Division
// truncates toward zero; dividing by zero fails with a ZeroDivisionError.
// Arithmetic uses native int64 semantics, so results wrap on overflow
// (literals themselves are range-checked by the lexer).
func Evaluate(node Node) (int64, error) {
	switch n := node.(type) {
	case *LiteralNode:
		return n.Val, nil
	case *UnaryNode:
		v, err := Evaluate(n.Operand)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case *GroupNode:
		return Evaluate(n.Inner)
	case *BinaryNode:
		return evalBinary(n)
	default:
		return 0, fmt.Errorf("unsupported expression node type: %T", node)
	}
}

func evalBinary(n *BinaryNode) (int64, error) {
	left, err := Evaluate(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := Evaluate(n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case TokenPlus:
		return left + right, nil
	case TokenMinus:
		return left - right, nil
	case TokenStar:
		return left * right, nil
	case TokenSlash:
		if right == 0 {
			return 0, types.NewZeroDivisionError()
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("unsupported binary operator: %s", n.Op)
	}
}
