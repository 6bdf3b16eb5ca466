package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesStructure(t *testing.T) {
	e, err := Parse("2+3*4")
	require.NoError(t, err)

	sum, ok := e.(*Sum)
	require.True(t, ok, "top level should stay a sum, not fold to 14")
	require.Len(t, sum.Terms, 2)
	_, ok = sum.Terms[1].(*Product)
	assert.True(t, ok)
}

func TestParseDivisionAndNegation(t *testing.T) {
	e, err := Parse("10/4")
	require.NoError(t, err)
	prod, ok := e.(*Product)
	require.True(t, ok)
	_, ok = prod.Factors[1].(*Power)
	assert.True(t, ok, "division parses as multiplication by an inverse")

	e, err = Parse("-x")
	require.NoError(t, err)
	prod, ok = e.(*Product)
	require.True(t, ok)
	n, ok := prod.Factors[0].(*Number)
	require.True(t, ok)
	assert.Equal(t, "-1", n.Val.RatString())
}

func TestParsePowerRightAssociative(t *testing.T) {
	e, err := Parse("2^3^2")
	require.NoError(t, err)
	pow, ok := e.(*Power)
	require.True(t, ok)
	_, ok = pow.Exp.(*Power)
	assert.True(t, ok, "2^3^2 must nest as 2^(3^2)")

	r, err := evalExact(Simplify(e))
	require.NoError(t, err)
	assert.Equal(t, "512", r.RatString())
}

func TestParseDecimalLiteralIsExact(t *testing.T) {
	e, err := Parse("0.25")
	require.NoError(t, err)
	n, ok := e.(*Number)
	require.True(t, ok)
	assert.Equal(t, "1/4", n.Val.RatString())
}

func TestParseFunctionCalls(t *testing.T) {
	e, err := Parse("log(8, 2)")
	require.NoError(t, err)
	call, ok := e.(*Call)
	require.True(t, ok)
	assert.Equal(t, "log", call.Name)
	assert.Len(t, call.Args, 2)

	_, err = Parse("sqrt(4)")
	require.NoError(t, err)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"implicit multiplication", "2x", "write 2*x"},
		{"trailing operator", "2+", "unexpected end"},
		{"unknown function", "foo(1)", `unknown function "foo"`},
		{"unknown function lists known set", "foo(1)", "sqrt"},
		{"wrong arity", "sqrt(1, 2)", "argument"},
		{"double dot", "1..2", "two decimal points"},
		{"unclosed paren", "(1+2", "closing parenthesis"},
		{"stray dot", ".", "decimal point"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := Parse("1+2 %")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Pos)
}

func TestBareFunctionNameIsVariable(t *testing.T) {
	// "sqrt" without a call is just a symbol the caller may bind.
	e, err := Parse("sqrt + 1")
	require.NoError(t, err)
	eng := NewEngine()
	assert.Equal(t, []string{"sqrt"}, eng.FreeVariables(e))
}
