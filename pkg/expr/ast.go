package expr

// Node is the interface for all expression AST nodes. The node set is closed:
// evaluation and rendering perform exhaustive case analysis over it.
type Node interface {
	nodeType() string
}

// LiteralNode represents an integer literal.
type LiteralNode struct {
	Val int64
}

func (n *LiteralNode) nodeType() string { return "Literal" }

// UnaryNode represents unary negation of a literal (e.g., -5). Negation is
// the only unary operator in the grammar, and it only allows a literal
// operand; -(expr) and --n do not parse.
type UnaryNode struct {
	Operand Node
}

func (n *UnaryNode) nodeType() string { return "Unary" }

// GroupNode represents an explicitly parenthesized sub-expression. It
// evaluates identically to its inner node and exists only so rendering can
// preserve the source grouping.
type GroupNode struct {
	Inner Node
}

func (n *GroupNode) nodeType() string { return "Group" }

// BinaryNode represents a binary arithmetic operation (e.g., a + b).
type BinaryNode struct {
	Op    TokenType
	Left  Node
	Right Node
}

func (n *BinaryNode) nodeType() string { return "Binary" }
