package lexer

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

var (
	ErrMismatchedParens = errors.New("lexer: mismatched parentheses")
	ErrOverflow         = errors.New("lexer: number literal out of range")
)

// BadTokenError reports a character the scanner does not recognize.
type BadTokenError struct {
	Char rune
}

func (e *BadTokenError) Error() string {
	return fmt.Sprintf("lexer: bad token %q", e.Char)
}

// Scanner performs lexical analysis on an arithmetic expression.
type Scanner struct {
	source string
	cursor int
	depth  int // open brackets not yet closed
	tokens []Token
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.cursor = 0
	s.depth = 0
	s.tokens = nil
}

// Tokenize scans expr into tokens. See Scanner.Scan.
func Tokenize(expr string) ([]Token, error) {
	return NewScanner(expr).Scan()
}

// Scan walks the whole source and returns its tokens in source order.
//
// A digit following a Number token is folded into it, even across skipped
// whitespace: "1 2" scans as the single number 12. Scanning stops at the
// first error.
func (s *Scanner) Scan() ([]Token, error) {
	for s.cursor < len(s.source) {
		ch, size := utf8.DecodeRuneInString(s.source[s.cursor:])
		s.cursor += size

		switch {
		case isDigit(ch):
			if err := s.digit(int64(ch - '0')); err != nil {
				return nil, err
			}
		case ch == '(':
			s.emit(Open())
			s.depth++
		case ch == ')':
			s.emit(Close())
			if s.depth == 0 {
				return nil, ErrMismatchedParens
			}
			s.depth--
		case ch == '+':
			s.emit(Op(OpAdd))
		case ch == '-':
			s.emit(Op(OpSub))
		case ch == '*':
			s.emit(Op(OpMul))
		case ch == '/':
			s.emit(Op(OpDiv))
		case ch == ' ' || ch == '\n':
			// skipped, no token
		default:
			return nil, &BadTokenError{Char: ch}
		}
	}

	if s.depth != 0 {
		return nil, ErrMismatchedParens
	}
	return s.tokens, nil
}

func (s *Scanner) digit(d int64) error {
	if n := len(s.tokens); n > 0 && s.tokens[n-1].Kind == KindNumber {
		v := s.tokens[n-1].Value
		if v > (math.MaxInt64-d)/10 {
			return ErrOverflow
		}
		s.tokens[n-1].Value = v*10 + d
		return nil
	}
	s.emit(Number(d))
	return nil
}

func (s *Scanner) emit(tok Token) {
	s.tokens = append(s.tokens, tok)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
