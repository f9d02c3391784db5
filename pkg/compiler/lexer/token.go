package lexer

import (
	"strconv"
	"strings"
)

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNumber
	KindOperator
	KindBracket
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindBracket:
		return "bracket"
	default:
		return "invalid"
	}
}

// Operator is one of the four binary arithmetic operators.
type Operator uint8

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// Precedence returns the binding strength of the operator. All operators are
// left-associative.
func (o Operator) Precedence() int {
	switch o {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	default:
		return 0
	}
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Bracket is an opening or closing parenthesis.
type Bracket uint8

const (
	BracketOpen Bracket = iota + 1
	BracketClose
)

func (b Bracket) String() string {
	switch b {
	case BracketOpen:
		return "("
	case BracketClose:
		return ")"
	default:
		return "?"
	}
}

// Token is a tagged union: Kind selects which of Value, Op or Bracket is set.
// Tokens carry no source position.
type Token struct {
	Kind    Kind
	Value   int64
	Op      Operator
	Bracket Bracket
}

// Number returns a number token.
func Number(n int64) Token { return Token{Kind: KindNumber, Value: n} }

// Op returns an operator token.
func Op(op Operator) Token { return Token{Kind: KindOperator, Op: op} }

// Open returns an opening bracket token.
func Open() Token { return Token{Kind: KindBracket, Bracket: BracketOpen} }

// Close returns a closing bracket token.
func Close() Token { return Token{Kind: KindBracket, Bracket: BracketClose} }

// String returns the lexeme of the token.
func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatInt(t.Value, 10)
	case KindOperator:
		return t.Op.String()
	case KindBracket:
		return t.Bracket.String()
	default:
		return "<invalid>"
	}
}

// Format joins the lexemes of tokens with single spaces, e.g. "12 3 +".
func Format(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.String())
	}
	return sb.String()
}
