// Package expr implements the arithmetic expression language: a lazy lexer, a
// recursive-descent parser, an evaluator, and a canonical renderer for
// integer expressions built from + - * / and parentheses.
package expr

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenInt TokenType = iota // integer literal

	// Arithmetic
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Brackets
	TokenLParen // (
	TokenRParen // )

	// Special
	TokenEOF // end of expression
)

// Token represents a single lexical token.
type Token struct {
	Type   TokenType
	Value  string // raw string value
	IntVal int64  // parsed int (for TokenInt)
	Pos    int    // position in source
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenInt:
		return "INT"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}
