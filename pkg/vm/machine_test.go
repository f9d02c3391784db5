package vm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
	"github.com/agenthands/rpncalc/pkg/vm"
)

func num(n int64) lexer.Token { return lexer.Number(n) }

var (
	add = lexer.Op(lexer.OpAdd)
	sub = lexer.Op(lexer.OpSub)
	mul = lexer.Op(lexer.OpMul)
	div = lexer.Op(lexer.OpDiv)
)

func TestMachineReset(t *testing.T) {
	m := &vm.Machine{}

	// Dirty the machine
	m.Push(100)
	m.Push(200)
	m.IP = 5

	m.Reset()

	assert.Empty(t, m.Stack)
	assert.Zero(t, m.IP)
}

func TestMachineStackOps(t *testing.T) {
	m := &vm.Machine{}

	m.Push(42)
	require.Len(t, m.Stack, 1)

	v, ok := m.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(42), v)

	_, ok = m.Pop()
	assert.False(t, ok, "pop on empty stack")
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		code []lexer.Token
		want int64
	}{
		{"single number", []lexer.Token{num(7)}, 7},
		{"add", []lexer.Token{num(12), num(3), add}, 15},
		{"operand order for sub", []lexer.Token{num(10), num(4), sub}, 6},
		{"operand order for div", []lexer.Token{num(20), num(5), div}, 4},
		{"negative result", []lexer.Token{num(1), num(2), sub}, -1},
		{"truncating division", []lexer.Token{num(7), num(2), div}, 3},
		{"truncates toward zero", []lexer.Token{num(0), num(7), sub, num(2), div}, -3},
		{"mixed", []lexer.Token{num(3), num(5), num(10), num(4), sub, mul, num(2), div, add}, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vm.Evaluate(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name string
		code []lexer.Token
		want error
	}{
		{"empty", nil, vm.ErrInvalidExpression},
		{"operator without operands", []lexer.Token{add}, vm.ErrInvalidExpression},
		{"one operand", []lexer.Token{num(1), mul}, vm.ErrInvalidExpression},
		{"leftover operands", []lexer.Token{num(1), num(2)}, vm.ErrInvalidExpression},
		{"stray bracket", []lexer.Token{num(1), lexer.Open()}, vm.ErrInvalidExpression},
		{"invalid kind", []lexer.Token{{Kind: lexer.KindInvalid}}, vm.ErrInvalidExpression},
		{"division by zero", []lexer.Token{num(10), num(0), div}, vm.ErrDivisionByZero},
		{"add overflow", []lexer.Token{num(math.MaxInt64), num(1), add}, vm.ErrOverflow},
		{"mul overflow", []lexer.Token{num(math.MaxInt64), num(2), mul}, vm.ErrOverflow},
		{"sub overflow", []lexer.Token{num(0), num(math.MaxInt64), sub, num(2), sub}, vm.ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vm.Evaluate(tt.code)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMinIntEdges(t *testing.T) {
	// 0 - MaxInt64 - 1 == MinInt64
	minInt := []lexer.Token{num(0), num(math.MaxInt64), sub, num(1), sub}
	got, err := vm.Evaluate(minInt)
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), got)

	_, err = vm.Evaluate(append(append([]lexer.Token{}, minInt...), num(0), num(1), sub, div))
	assert.ErrorIs(t, err, vm.ErrOverflow, "MinInt64 / -1")

	_, err = vm.Evaluate(append(append([]lexer.Token{}, minInt...), num(0), num(1), sub, mul))
	assert.ErrorIs(t, err, vm.ErrOverflow, "MinInt64 * -1")
}

func TestEvaluateLimited(t *testing.T) {
	code := []lexer.Token{num(1), num(2), add, num(3), add}

	_, err := vm.EvaluateLimited(code, 3)
	assert.ErrorIs(t, err, vm.ErrGasExhausted)

	got, err := vm.EvaluateLimited(code, len(code))
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)

	got, err = vm.EvaluateLimited(code, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
}

func TestPooledMachineIsClean(t *testing.T) {
	_, err := vm.Evaluate([]lexer.Token{num(1), num(2)})
	require.ErrorIs(t, err, vm.ErrInvalidExpression)

	m := vm.GetMachine()
	defer vm.PutMachine(m)
	assert.Empty(t, m.Stack)
	assert.Zero(t, m.IP)
}
