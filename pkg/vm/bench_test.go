package vm_test

import (
	"testing"

	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
	"github.com/agenthands/rpncalc/pkg/vm"
)

func BenchmarkEvaluate(b *testing.B) {
	// 1 2 + 3 + ... 1000 +
	code := []lexer.Token{lexer.Number(1)}
	for i := int64(2); i <= 1000; i++ {
		code = append(code, lexer.Number(i), lexer.Op(lexer.OpAdd))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := vm.Evaluate(code); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMachineRun(b *testing.B) {
	code := []lexer.Token{
		lexer.Number(3), lexer.Number(5), lexer.Number(10), lexer.Number(4),
		lexer.Op(lexer.OpSub), lexer.Op(lexer.OpMul), lexer.Number(2),
		lexer.Op(lexer.OpDiv), lexer.Op(lexer.OpAdd),
	}
	m := &vm.Machine{}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Reset()
		if _, err := m.Run(code, len(code)); err != nil {
			b.Fatal(err)
		}
	}
}
