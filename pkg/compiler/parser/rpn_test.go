package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
	"github.com/agenthands/rpncalc/pkg/compiler/parser"
)

func TestToRPN(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"12+3", "12 3 +"},
		{"1 + 2 * 3", "1 2 3 * +"},
		{"(1 + 2) * 3", "1 2 + 3 *"},
		{"8 - 3 - 2", "8 3 - 2 -"},
		{"8 / 4 / 2", "8 4 / 2 /"},
		{"2 * 3 + 4", "2 3 * 4 +"},
		{"3 + 5 * (10 - 4) / 2", "3 5 10 4 - * 2 / +"},
		{"((7))", "7"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, err := lexer.Tokenize(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lexer.Format(parser.ToRPN(toks)))
		})
	}
}

func TestToRPNSingleNumberUnchanged(t *testing.T) {
	in := []lexer.Token{lexer.Number(42)}
	if diff := cmp.Diff(in, parser.ToRPN(in)); diff != "" {
		t.Errorf("ToRPN changed a bare number (-want +got):\n%s", diff)
	}
}

func TestToRPNDoesNotMutateInput(t *testing.T) {
	in := []lexer.Token{lexer.Number(1), lexer.Op(lexer.OpAdd), lexer.Number(2)}
	snapshot := append([]lexer.Token(nil), in...)
	_ = parser.ToRPN(in)
	assert.Equal(t, snapshot, in)
}

// Input that bypassed the lexer's bracket check is tolerated, not rejected.
func TestToRPNUnbalancedIsPermissive(t *testing.T) {
	stray := []lexer.Token{lexer.Number(1), lexer.Op(lexer.OpAdd), lexer.Number(2), lexer.Close()}
	assert.Equal(t, "1 2 +", lexer.Format(parser.ToRPN(stray)))

	unclosed := []lexer.Token{lexer.Open(), lexer.Number(1), lexer.Op(lexer.OpAdd), lexer.Number(2)}
	assert.Equal(t, "1 2 + (", lexer.Format(parser.ToRPN(unclosed)))
}

func TestToRPNIgnoresInvalidKind(t *testing.T) {
	in := []lexer.Token{lexer.Number(1), {Kind: lexer.KindInvalid}, lexer.Number(2)}
	assert.Equal(t, "1 2", lexer.Format(parser.ToRPN(in)))
}
