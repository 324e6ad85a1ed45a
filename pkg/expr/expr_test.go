package expr

import (
	"errors"
	"strings"
	"testing"

	"github.com/lemonberrylabs/arith/pkg/types"
)

func TestLiteralExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		repr  string
	}{
		{"0", 0, "0"},
		{"7", 7, "7"},
		{"42", 42, "42"},
		{"1234567890", 1234567890, "1234567890"},
		{"  42", 42, "42"},
		{"42  ", 42, "42"},
		{"\t 42 \n", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := EvaluateString(tt.input)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if res.Value != tt.want {
				t.Errorf("got %d, want %d", res.Value, tt.want)
			}
			if res.Repr != tt.repr {
				t.Errorf("got repr %q, want %q", res.Repr, tt.repr)
			}
		})
	}
}

func TestArithmeticExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1 + 2", 3},
		{"10 - 3", 7},
		{"4 * 5", 20},
		{"10 / 3", 3},
		{"2 + 3 * 4", 14},   // precedence
		{"(2 + 3) * 4", 20}, // parens
		{"1-2-3", -4},       // left-associative
		{"1-2+3", 2},        // + and - chain at equal priority
		{"24/4/2", 3},       // left-associative division
		{"7/2", 3},          // truncates toward zero
		{"-7/2", -3},        // truncates toward zero
		{"-5", -5},
		{"-5 * -5", 25},
		{"  12   +   3 ", 15},
		{"-1 * (-2 + 5)", -3},
		{"12 + 34 - (56 / 7) * 8", -18},
		{"(-12 + 34) * ((56 / 7) + 8)", 352},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := EvaluateString(tt.input)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			if res.Value != tt.want {
				t.Errorf("got %d, want %d", res.Value, tt.want)
			}
		})
	}
}

func TestRendering(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12", "12"},
		{"-5", "<-5>"},
		{"1+2", "<1+2>"},
		{"1+2*3", "<1+<2*3>>"},
		{"1-2-3", "<<1-2>-3>"},
		{"(1+2)*3", "<(<1+2>)*3>"},
		{"(7)", "(7)"},
		{"((7))", "((7))"},
		{"-1 * (-2 + 5)", "<<-1>*(<<-2>+5>)>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if got := Repr(node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// The canonical rendering, read back with angle brackets as ordinary
// parentheses, must evaluate to the same value as the original input.
func TestRenderingRoundTrip(t *testing.T) {
	replacer := strings.NewReplacer("<", "(", ">", ")")

	inputs := []string{
		"42",
		"-5",
		"1+2*3",
		"1-2-3",
		"(2 + 3) * 4",
		"-1 * (-2 + 5)",
		"12 + 34 - (56 / 7) * 8",
		"(-12 + 34) * ((56 / 7) + 8)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			res, err := EvaluateString(input)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}
			again, err := EvaluateString(replacer.Replace(res.Repr))
			if err != nil {
				t.Fatalf("re-eval of %q failed: %v", res.Repr, err)
			}
			if again.Value != res.Value {
				t.Errorf("round trip of %q: got %d, want %d", res.Repr, again.Value, res.Value)
			}
		})
	}
}

func TestErrorCases(t *testing.T) {
	tests := []struct {
		input string
		tag   string
	}{
		{"1/0", types.TagZeroDivisionError},
		{"3 * (2 - 2 / (1 - 1))", types.TagZeroDivisionError},
		{"1 $ 2", types.TagInvalidCharacterError},
		{"a + 1", types.TagInvalidCharacterError},
		{"", types.TagUnexpectedEndOfInputError},
		{"   ", types.TagUnexpectedEndOfInputError},
		{"1+", types.TagUnexpectedEndOfInputError},
		{"-", types.TagUnexpectedEndOfInputError},
		{"(1+2", types.TagUnbalancedParenthesisError},
		{"((1)", types.TagUnbalancedParenthesisError},
		{"1+2)", types.TagTrailingInputError},
		{"1 2", types.TagTrailingInputError},
		{"(1)(2)", types.TagTrailingInputError},
		{"--1", types.TagUnexpectedTokenError},
		{"-(1+2)", types.TagUnexpectedTokenError},
		{")", types.TagUnexpectedTokenError},
		{"*3", types.TagUnexpectedTokenError},
		{"1++2", types.TagUnexpectedTokenError},
		{"99999999999999999999", types.TagValueError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := EvaluateString(tt.input)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var ee *types.EvalError
			if !errors.As(err, &ee) {
				t.Fatalf("expected EvalError, got %T: %v", err, err)
			}
			if !ee.HasTag(tt.tag) {
				t.Errorf("expected tag %s, got %v", tt.tag, ee.Tags)
			}
		})
	}
}

func TestInvalidCharacterPosition(t *testing.T) {
	_, err := EvaluateString("12 # 3")
	var ee *types.EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EvalError, got %v", err)
	}
	if ee.Pos != 3 {
		t.Errorf("expected position 3, got %d", ee.Pos)
	}
}

func TestMaxExpressionLength(t *testing.T) {
	input := "1" + strings.Repeat("+1", MaxExpressionLength)
	_, err := Parse(input)
	if err == nil {
		t.Fatal("expected error for oversized expression")
	}
	var ee *types.EvalError
	if !errors.As(err, &ee) || !ee.HasTag(types.TagValueError) {
		t.Fatalf("expected ValueError, got %v", err)
	}
	// No single source position applies to a length failure.
	if ee.Pos != -1 {
		t.Errorf("expected position -1, got %d", ee.Pos)
	}
}
