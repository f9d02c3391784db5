// Package calc chains tokenization, postfix conversion and evaluation into a
// single call.
package calc

import (
	"errors"

	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
	"github.com/agenthands/rpncalc/pkg/compiler/parser"
	"github.com/agenthands/rpncalc/pkg/vm"
)

// SampleExpression is evaluated when the CLI is run without arguments.
const SampleExpression = "3 + 5 * (10 - 4) / 2"

// Calculate evaluates an infix arithmetic expression. The first stage error
// is returned unwrapped.
func Calculate(expr string) (int64, error) {
	return CalculateLimited(expr, 0)
}

// CalculateLimited is Calculate with an evaluation gas limit. A limit of zero
// or less means unlimited.
func CalculateLimited(expr string, gasLimit int) (int64, error) {
	code, err := Compile(expr)
	if err != nil {
		return 0, err
	}
	return vm.EvaluateLimited(code, gasLimit)
}

// Compile tokenizes expr and returns it in postfix order.
func Compile(expr string) ([]lexer.Token, error) {
	tokens, err := lexer.Tokenize(expr)
	if err != nil {
		return nil, err
	}
	return parser.ToRPN(tokens), nil
}

// Error kinds reported by Kind.
const (
	KindBadToken          = "bad_token"
	KindMismatchedParens  = "mismatched_parens"
	KindDivisionByZero    = "division_by_zero"
	KindInvalidExpression = "invalid_expression"
	KindOverflow          = "overflow"
	KindGasExhausted      = "gas_exhausted"
	KindUnknown           = "unknown"
)

// Kind classifies an error returned by Calculate. It returns "" for nil.
func Kind(err error) string {
	var bad *lexer.BadTokenError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &bad):
		return KindBadToken
	case errors.Is(err, lexer.ErrMismatchedParens):
		return KindMismatchedParens
	case errors.Is(err, vm.ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, vm.ErrInvalidExpression):
		return KindInvalidExpression
	case errors.Is(err, lexer.ErrOverflow), errors.Is(err, vm.ErrOverflow):
		return KindOverflow
	case errors.Is(err, vm.ErrGasExhausted):
		return KindGasExhausted
	default:
		return KindUnknown
	}
}
