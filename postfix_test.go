package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpPrecsExist(t *testing.T) {
	for i, r := range Operators {
		if p := opinfo(OpAdd + Op(i)); p.prec == 0 {
			t.Errorf("no precedence for %c", r)
		}
	}
	if p := opinfo(OpNeg); p.prec == 0 {
		t.Error("no precedence for unary minus")
	}
}

func TestPrecTable(t *testing.T) {
	add, sub, mul, div := opinfo(OpAdd), opinfo(OpSub), opinfo(OpMul), opinfo(OpDiv)
	pow, neg := opinfo(OpPow), opinfo(OpNeg)
	for _, p := range []operator{add, sub, mul, div} {
		assert.Less(t, p.prec, pow.prec)
		assert.False(t, p.right)
	}
	assert.Equal(t, add.prec, sub.prec)
	assert.Equal(t, mul.prec, div.prec)
	assert.Less(t, add.prec, mul.prec)
	assert.Less(t, pow.prec, neg.prec)
	assert.True(t, pow.right)
	assert.True(t, neg.right)
}

func TestAnnotate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ops  []Op
	}{
		{"start", "-3", []Op{OpNeg}},
		{"sub", "5-3", []Op{OpSub}},
		{"paren", "(-3)", []Op{OpNeg}},
		{"after-pow", "2^-3", []Op{OpPow, OpNeg}},
		{"after-mul", "2*-3", []Op{OpMul, OpNeg}},
		{"double", "--3", []Op{OpNeg, OpNeg}},
		{"after-close", "(1)-2", []Op{OpSub}},
		{"sub-neg", "1--2", []Op{OpSub, OpNeg}},
		{"plus-untouched", "+3", []Op{OpAdd}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			require.NoError(t, err)
			var ops []Op
			for _, tok := range Annotate(toks) {
				if tok.Kind == TokenOp {
					ops = append(ops, tok.Op)
				}
			}
			assert.Equal(t, c.ops, ops)
		})
	}
}

func TestAnnotateCopies(t *testing.T) {
	toks, err := Tokenize("-1")
	require.NoError(t, err)
	a := Annotate(toks)
	assert.Equal(t, OpNeg, a[0].Op)
	assert.Equal(t, OpSub, toks[0].Op, "Annotate modified its input")
	assert.Empty(t, Annotate(nil))
}

func TestPostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "1", "1"},
		{"paren", "((1))", "1"},
		{"empty-paren", "()", ""},
		{"prec", "2+3*4", "2 3 4 * +"},
		{"group", "(2+3)*4", "2 3 + 4 *"},
		{"pow-right", "2^3^2", "2 3 2 ^ ^"},
		{"sub-left", "1-2-3", "1 2 - 3 -"},
		{"div-left", "8/4/2", "8 4 / 2 /"},
		{"neg-add", "-3+5", "3 ~ 5 +"},
		{"mul-neg", "2*-3", "2 3 ~ *"},
		{"pow-neg", "2^-2", "2 2 ~ ^"},
		{"neg-pow", "-2^2", "2 ~ 2 ^"},
		{"negneg", "--3", "3 ~ ~"},
		{"mixed", "2*(3+4)^2", "2 3 4 + 2 ^ *"},
		{"descending", "1+2*3^4-5", "1 2 3 4 ^ * + 5 -"},
		{"dangling", "3-", "3 -"},
		{"spaces", " 1 +\t2 ", "1 2 +"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			postfix, err := Compile(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.rpn, FormatTokens(postfix))
			for _, tok := range postfix {
				assert.NotEqual(t, TokenLeftParen, tok.Kind)
				assert.NotEqual(t, TokenRightParen, tok.Kind)
			}
		})
	}
}

func TestPostfixErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		col     int
		problem ParseProblem
	}{
		{"unclosed", "(2+3", 0, UnclosedOpen},
		{"unopened", "2+3)", 3, UnmatchedClose},
		{"backwards", ")(", 0, UnmatchedClose},
		{"inner-unclosed", "((1)", 0, UnclosedOpen},
		{"extra-close", "(1))", 3, UnmatchedClose},
		{"late-unclosed", "1+(2*(3)", 2, UnclosedOpen},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			postfix, err := Compile(c.src)
			assert.Nil(t, postfix)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "%v is not a *ParseError", err)
			assert.Equal(t, c.col, pe.Pos())
			assert.Equal(t, c.problem, pe.Problem)
			assert.Contains(t, err.Error(), "mismatched parentheses")
		})
	}
}
