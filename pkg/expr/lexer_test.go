package expr

import (
	"errors"
	"testing"

	"github.com/lemonberrylabs/arith/pkg/types"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"", []TokenType{TokenEOF}},
		{"   ", []TokenType{TokenEOF}},
		{"42", []TokenType{TokenInt, TokenEOF}},
		{"1+2", []TokenType{TokenInt, TokenPlus, TokenInt, TokenEOF}},
		{"(1-2)*3/4", []TokenType{
			TokenLParen, TokenInt, TokenMinus, TokenInt, TokenRParen,
			TokenStar, TokenInt, TokenSlash, TokenInt, TokenEOF,
		}},
		{"  12   +   3 ", []TokenType{TokenInt, TokenPlus, TokenInt, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.want))
			}
			for i, tok := range tokens {
				if tok.Type != tt.want[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.Type, tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeMergesDigits(t *testing.T) {
	tokens, err := NewLexer("12 34").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[0].IntVal != 12 || tokens[1].IntVal != 34 {
		t.Errorf("got %d and %d, want 12 and 34", tokens[0].IntVal, tokens[1].IntVal)
	}
	if tokens[0].Pos != 0 || tokens[1].Pos != 3 {
		t.Errorf("got positions %d and %d, want 0 and 3", tokens[0].Pos, tokens[1].Pos)
	}
}

func TestLexerExhaustion(t *testing.T) {
	l := NewLexer("1")

	tok, err := l.Next()
	if err != nil || tok.Type != TokenInt {
		t.Fatalf("expected INT, got %v (%v)", tok.Type, err)
	}

	// Once exhausted, Next keeps returning EOF.
	for i := 0; i < 3; i++ {
		tok, err = l.Next()
		if err != nil || tok.Type != TokenEOF {
			t.Fatalf("expected EOF, got %v (%v)", tok.Type, err)
		}
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	_, err := NewLexer("1 + x").Tokenize()
	if err == nil {
		t.Fatal("expected error, got none")
	}
	var ee *types.EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EvalError, got %T", err)
	}
	if !ee.HasTag(types.TagInvalidCharacterError) {
		t.Errorf("expected InvalidCharacterError tag, got %v", ee.Tags)
	}
	if ee.Pos != 4 {
		t.Errorf("expected position 4, got %d", ee.Pos)
	}
}

func TestLexerLiteralOutOfRange(t *testing.T) {
	// One past MaxInt64.
	_, err := NewLexer("9223372036854775808").Tokenize()
	if err == nil {
		t.Fatal("expected error, got none")
	}
	var ee *types.EvalError
	if !errors.As(err, &ee) || !ee.HasTag(types.TagValueError) {
		t.Errorf("expected ValueError, got %v", err)
	}

	// MaxInt64 itself is fine.
	tokens, err := NewLexer("9223372036854775807").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if tokens[0].IntVal != 9223372036854775807 {
		t.Errorf("got %d, want MaxInt64", tokens[0].IntVal)
	}
}
