// Package types defines the tagged error model shared by the lexer, parser,
// and evaluator.
package types

import (
	"fmt"
	"strings"
)

// Error tag constants identifying evaluation failure modes.
const (
	TagInvalidCharacterError      = "InvalidCharacterError"
	TagUnexpectedEndOfInputError  = "UnexpectedEndOfInputError"
	TagUnexpectedTokenError       = "UnexpectedTokenError"
	TagUnbalancedParenthesisError = "UnbalancedParenthesisError"
	TagTrailingInputError         = "TrailingInputError"
	TagZeroDivisionError          = "ZeroDivisionError"
	TagValueError                 = "ValueError"
)

// EvalError represents a failure in tokenizing, parsing, or evaluating an
// expression. Pos is a byte index into the source where the failure was
// detected, or -1 when no position applies.
type EvalError struct {
	Message string
	Pos     int
	Tags    []string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at position %d (tags=[%s])", e.Message, e.Pos, strings.Join(e.Tags, ", "))
	}
	return fmt.Sprintf("%s (tags=[%s])", e.Message, strings.Join(e.Tags, ", "))
}

// HasTag returns true if the error has the specified tag.
func (e *EvalError) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Common error constructors.

// NewInvalidCharacterError reports a character outside the expression alphabet.
func NewInvalidCharacterError(ch byte, pos int) *EvalError {
	return &EvalError{
		Message: fmt.Sprintf("invalid character %q", string(ch)),
		Pos:     pos,
		Tags:    []string{TagInvalidCharacterError},
	}
}

// NewUnexpectedEndOfInputError reports input that ran out where a grammar rule
// still needed a token.
func NewUnexpectedEndOfInputError(pos int) *EvalError {
	return &EvalError{
		Message: "unexpected end of input",
		Pos:     pos,
		Tags:    []string{TagUnexpectedEndOfInputError},
	}
}

// NewUnexpectedTokenError reports a token incompatible with the grammar rule
// that received it.
func NewUnexpectedTokenError(tok string, pos int) *EvalError {
	return &EvalError{
		Message: fmt.Sprintf("unexpected token %s", tok),
		Pos:     pos,
		Tags:    []string{TagUnexpectedTokenError},
	}
}

// NewUnbalancedParenthesisError reports an opened group that was not closed at
// the expected position.
func NewUnbalancedParenthesisError(pos int) *EvalError {
	return &EvalError{
		Message: "unbalanced parenthesis",
		Pos:     pos,
		Tags:    []string{TagUnbalancedParenthesisError},
	}
}

// NewTrailingInputError reports tokens remaining after a complete expression.
func NewTrailingInputError(tok string, pos int) *EvalError {
	return &EvalError{
		Message: fmt.Sprintf("trailing input %s after expression", tok),
		Pos:     pos,
		Tags:    []string{TagTrailingInputError},
	}
}

// NewZeroDivisionError creates a ZeroDivisionError.
func NewZeroDivisionError() *EvalError {
	return &EvalError{Message: "division by zero", Pos: -1, Tags: []string{TagZeroDivisionError}}
}

// NewValueError creates a ValueError.
func NewValueError(msg string, pos int) *EvalError {
	return &EvalError{Message: msg, Pos: pos, Tags: []string{TagValueError}}
}
