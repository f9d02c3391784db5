// Package parser reorders infix token streams into postfix (RPN) order.
package parser

import "github.com/agenthands/rpncalc/pkg/compiler/lexer"

// ToRPN converts infix tokens to postfix order using the shunting-yard
// algorithm.
//
// ToRPN does not validate its input. A closing bracket with no matching
// opening bracket on the operator stack simply stops popping, and an unclosed
// opening bracket is flushed to the output, where the evaluator rejects it.
// Tokens produced by lexer.Tokenize are always balanced.
func ToRPN(tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(tokens))
	ops := make([]lexer.Token, 0, len(tokens)/2)

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.KindNumber:
			out = append(out, tok)

		case lexer.KindOperator:
			prec := tok.Op.Precedence()
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind != lexer.KindOperator || prec > top.Op.Precedence() {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)

		case lexer.KindBracket:
			if tok.Bracket == lexer.BracketOpen {
				ops = append(ops, tok)
				continue
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == lexer.KindBracket && top.Bracket == lexer.BracketOpen {
					break
				}
				out = append(out, top)
			}

		default:
			// unknown kinds never come out of the lexer
		}
	}

	for i := len(ops) - 1; i >= 0; i-- {
		out = append(out, ops[i])
	}
	return out
}
