package expr

import (
	"strconv"
	"unicode"

	"github.com/lemonberrylabs/arith/pkg/types"
)

// Lexer tokenizes an arithmetic expression string. Tokens are produced on
// demand via Next; the parser pulls exactly one token per grammar step.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the entire input and returns all tokens, ending with a
// TokenEOF entry.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens, nil
}

// Next returns the next token from the input. Whitespace is skipped before
// every token, including the first, so untrimmed input lexes correctly. Once
// the input is exhausted, Next keeps returning TokenEOF.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]

	if ch >= '0' && ch <= '9' {
		return l.readNumber()
	}

	switch ch {
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: l.pos - 1}, nil
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: l.pos - 1}, nil
	case '*':
		l.pos++
		return Token{Type: TokenStar, Value: "*", Pos: l.pos - 1}, nil
	case '/':
		l.pos++
		return Token{Type: TokenSlash, Value: "/", Pos: l.pos - 1}, nil
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: l.pos - 1}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: l.pos - 1}, nil
	}

	return Token{}, types.NewInvalidCharacterError(ch, l.pos)
}

// readNumber reads a decimal integer literal, consuming the longest run of
// digits. Literals must fit in int64; out-of-range literals are a checked
// failure rather than silent wraparound.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos++
	}

	raw := l.input[start:l.pos]
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Token{}, types.NewValueError("integer literal "+raw+" out of range", start)
	}
	return Token{Type: TokenInt, Value: raw, IntVal: i, Pos: start}, nil
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}
