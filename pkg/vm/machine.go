package vm

import (
	"errors"
	"sync"

	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
)

var (
	ErrInvalidExpression = errors.New("vm: invalid expression")
	ErrDivisionByZero    = errors.New("vm: division by zero")
	ErrOverflow          = errors.New("vm: integer overflow")
	ErrGasExhausted      = errors.New("vm: gas exhausted")
)

// StackDepth is the initial operand stack capacity. The stack grows past it
// when an expression nests deeper.
const StackDepth = 64

// Machine evaluates postfix token streams on an operand stack.
// A Machine is not safe for concurrent use; take one per evaluation from
// GetMachine.
type Machine struct {
	Stack []int64
	IP    int // index of the next token
}

var machinePool = sync.Pool{
	New: func() any {
		return &Machine{Stack: make([]int64, 0, StackDepth)}
	},
}

// GetMachine returns a clean machine from the pool.
func GetMachine() *Machine {
	return machinePool.Get().(*Machine)
}

// PutMachine resets m and returns it to the pool.
func PutMachine(m *Machine) {
	m.Reset()
	machinePool.Put(m)
}

// Reset clears the machine state for reuse (sync.Pool compliant).
func (m *Machine) Reset() {
	m.Stack = m.Stack[:0]
	m.IP = 0
}

// Push adds a value to the stack.
func (m *Machine) Push(v int64) {
	m.Stack = append(m.Stack, v)
}

// Pop removes and returns the top value. ok is false when the stack is empty.
func (m *Machine) Pop() (v int64, ok bool) {
	n := len(m.Stack)
	if n == 0 {
		return 0, false
	}
	v = m.Stack[n-1]
	m.Stack = m.Stack[:n-1]
	return v, true
}

// Run executes postfix tokens, consuming one unit of gas per token, and
// returns the single value left on the stack.
func (m *Machine) Run(code []lexer.Token, gasLimit int) (int64, error) {
	for m.IP < len(code) {
		if gasLimit <= 0 {
			return 0, ErrGasExhausted
		}
		gasLimit--

		tok := code[m.IP]
		m.IP++

		switch tok.Kind {
		case lexer.KindNumber:
			m.Push(tok.Value)

		case lexer.KindOperator:
			if len(m.Stack) < 2 {
				return 0, ErrInvalidExpression
			}
			b, _ := m.Pop()
			a, _ := m.Pop()
			res, err := apply(tok.Op, a, b)
			if err != nil {
				return 0, err
			}
			m.Push(res)

		default:
			return 0, ErrInvalidExpression
		}
	}

	if len(m.Stack) != 1 {
		return 0, ErrInvalidExpression
	}
	return m.Stack[0], nil
}

// Evaluate runs postfix tokens on a pooled machine.
func Evaluate(tokens []lexer.Token) (int64, error) {
	return EvaluateLimited(tokens, len(tokens))
}

// EvaluateLimited is Evaluate with a caller supplied gas limit. A limit of
// zero or less means len(tokens).
func EvaluateLimited(tokens []lexer.Token, gasLimit int) (int64, error) {
	if gasLimit <= 0 {
		gasLimit = len(tokens)
	}
	m := GetMachine()
	defer PutMachine(m)
	return m.Run(tokens, gasLimit)
}
