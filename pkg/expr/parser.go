package expr

import (
	"fmt"

	"github.com/lemonberrylabs/arith/pkg/types"
)

// MaxExpressionLength is the maximum allowed length for a single expression.
const MaxExpressionLength = 400

// Parser is a recursive descent parser for arithmetic expressions. It pulls
// tokens from the lexer one at a time, holding exactly one pending token of
// lookahead; there is no backtracking.
type Parser struct {
	lex *Lexer
	tok Token // pending token, not yet consumed
}

// Result holds the outcome of a successful evaluation.
type Result struct {
	Value int64
	Repr  string
}

// Parse parses a complete expression string into an AST. Tokens left over
// after the top-level expression are rejected.
func Parse(input string) (Node, error) {
	if len(input) > MaxExpressionLength {
		return nil, types.NewValueError(
			fmt.Sprintf("expression exceeds maximum length of %d characters", MaxExpressionLength), -1)
	}

	p := &Parser{lex: NewLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.tok.Type != TokenEOF {
		return nil, types.NewTrailingInputError(p.tok.Type.String(), p.tok.Pos)
	}

	return node, nil
}

// EvaluateString parses, evaluates, and renders an expression in one call.
// This is the entry point used by the CLI and the API.
func EvaluateString(input string) (Result, error) {
	node, err := Parse(input)
	if err != nil {
		return Result{}, err
	}
	v, err := Evaluate(node)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Repr: Repr(node)}, nil
}

// advance pulls the next token from the lexer into the pending slot.
func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseExpression parses a left-associative chain of terms joined by + or -.
// The two operators chain at equal priority.
func (p *Parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.tok.Type == TokenPlus || p.tok.Type == TokenMinus {
		op := p.tok.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseTerm parses a left-associative chain of factors joined by * or /.
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.tok.Type == TokenStar || p.tok.Type == TokenSlash {
		op := p.tok.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseFactor parses a literal, a negated literal, or a parenthesized
// expression. Unary minus applies to an integer literal only: -(expr) and
// chained minuses do not parse.
func (p *Parser) parseFactor() (Node, error) {
	tok := p.tok

	switch tok.Type {
	case TokenInt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralNode{Val: tok.IntVal}, nil

	case TokenMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand := p.tok
		if operand.Type == TokenEOF {
			return nil, types.NewUnexpectedEndOfInputError(operand.Pos)
		}
		if operand.Type != TokenInt {
			return nil, types.NewUnexpectedTokenError(operand.Type.String(), operand.Pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &UnaryNode{Operand: &LiteralNode{Val: operand.IntVal}}, nil

	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != TokenRParen {
			return nil, types.NewUnbalancedParenthesisError(p.tok.Pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &GroupNode{Inner: inner}, nil

	case TokenEOF:
		return nil, types.NewUnexpectedEndOfInputError(tok.Pos)

	default:
		return nil, types.NewUnexpectedTokenError(tok.Type.String(), tok.Pos)
	}
}
