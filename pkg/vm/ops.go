package vm

import (
	"math"

	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
)

// apply computes a op b. Results that do not fit in an int64 are ErrOverflow.
func apply(op lexer.Operator, a, b int64) (int64, error) {
	switch op {
	case lexer.OpAdd:
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return 0, ErrOverflow
		}
		return a + b, nil

	case lexer.OpSub:
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return 0, ErrOverflow
		}
		return a - b, nil

	case lexer.OpMul:
		if a == 0 || b == 0 {
			return 0, nil
		}
		c := a * b
		if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, ErrOverflow
		}
		return c, nil

	case lexer.OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		if a == math.MinInt64 && b == -1 {
			return 0, ErrOverflow
		}
		return a / b, nil

	default:
		return 0, ErrInvalidExpression
	}
}
