package symbolic

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) Expr {
	t.Helper()
	e, err := Parse(text)
	require.NoError(t, err)
	return e
}

func TestEvaluateExact(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	for _, tc := range []struct {
		in    string
		value float64
		exact string
	}{
		{"2+3*4", 14, "14"},
		{"1/3", 1.0 / 3.0, "1/3"},
		{"10/4", 2.5, "5/2"},
		{"(1+2)*(3+4)", 21, "21"},
		{"2^10", 1024, "1024"},
		{"0.1+0.2", 0.3, "3/10"},
		{"-5+3", -2, "-2"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			v, exact, err := eng.Evaluate(ctx, mustParse(t, tc.in))
			require.NoError(t, err)
			assert.InDelta(t, tc.value, v, 1e-12)
			assert.Equal(t, tc.exact, exact)
		})
	}
}

func TestEvaluateFloatFallback(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	v, exact, err := eng.Evaluate(ctx, mustParse(t, "sqrt(2)"))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, v, 1e-12)
	assert.NotEmpty(t, exact)

	v, _, err = eng.Evaluate(ctx, mustParse(t, "2*pi"))
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi, v, 1e-12)

	v, _, err = eng.Evaluate(ctx, mustParse(t, "log(8, 2)"))
	require.NoError(t, err)
	assert.InDelta(t, 3, v, 1e-12)

	v, _, err = eng.Evaluate(ctx, mustParse(t, "2^0.5"))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, v, 1e-12)
}

func TestEvaluateErrors(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	_, _, err := eng.Evaluate(ctx, mustParse(t, "1/0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")

	_, _, err = eng.Evaluate(ctx, mustParse(t, "sqrt(-1)"))
	require.Error(t, err)

	_, _, err = eng.Evaluate(ctx, mustParse(t, "ln(0)"))
	require.Error(t, err)

	_, _, err = eng.Evaluate(ctx, mustParse(t, "x+1"))
	require.Error(t, err, "free variable cannot evaluate")
}

func TestEvaluateHonorsContext(t *testing.T) {
	eng := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := eng.Evaluate(ctx, mustParse(t, "1+1"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFreeVariables(t *testing.T) {
	eng := NewEngine()

	assert.Equal(t, []string{"b", "a", "c"},
		eng.FreeVariables(mustParse(t, "b + a*c + b")))
	assert.Empty(t, eng.FreeVariables(mustParse(t, "2*pi + e")),
		"constants are not free variables")
	assert.Empty(t, eng.FreeVariables(mustParse(t, "1+2")))
}

func TestSolveLinearEquation(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	roots, err := eng.SolveEquation(ctx, mustParse(t, "2*x+4"), mustParse(t, "0"), "x")
	require.NoError(t, err)
	assert.Equal(t, []float64{-2}, roots)

	roots, err = eng.SolveEquation(ctx, mustParse(t, "3*x-1"), mustParse(t, "x+5"), "x")
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, roots)
}

func TestSolveQuadraticEquation(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	roots, err := eng.SolveEquation(ctx, mustParse(t, "x^2-5*x+6"), mustParse(t, "0"), "x")
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.InDelta(t, 2, roots[0], 1e-9)
	assert.InDelta(t, 3, roots[1], 1e-9)

	// Repeated root collapses to one value.
	roots, err = eng.SolveEquation(ctx, mustParse(t, "x^2-2*x+1"), mustParse(t, "0"), "x")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.InDelta(t, 1, roots[0], 1e-9)
}

func TestSolveEquationEdgeCases(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	// Identity: every x satisfies it, zero roots, nil error.
	roots, err := eng.SolveEquation(ctx, mustParse(t, "x+1"), mustParse(t, "x+1"), "x")
	require.NoError(t, err)
	assert.Empty(t, roots)

	_, err = eng.SolveEquation(ctx, mustParse(t, "x+1"), mustParse(t, "x+2"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no solution")

	_, err = eng.SolveEquation(ctx, mustParse(t, "x^2+1"), mustParse(t, "0"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no real solution")

	_, err = eng.SolveEquation(ctx, mustParse(t, "x^3"), mustParse(t, "0"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestSolveSystem(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	sol, err := eng.SolveSystem(ctx, []Equation{
		{LHS: mustParse(t, "x+y"), RHS: mustParse(t, "3")},
		{LHS: mustParse(t, "x-y"), RHS: mustParse(t, "1")},
	}, []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, 2, sol["x"], 1e-12)
	assert.InDelta(t, 1, sol["y"], 1e-12)
}

func TestSolveSystemThreeUnknowns(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	sol, err := eng.SolveSystem(ctx, []Equation{
		{LHS: mustParse(t, "x+y+z"), RHS: mustParse(t, "6")},
		{LHS: mustParse(t, "2*x-y"), RHS: mustParse(t, "0")},
		{LHS: mustParse(t, "z-x"), RHS: mustParse(t, "2")},
	}, []string{"x", "y", "z"})
	require.NoError(t, err)
	assert.InDelta(t, 1, sol["x"], 1e-12)
	assert.InDelta(t, 2, sol["y"], 1e-12)
	assert.InDelta(t, 3, sol["z"], 1e-12)
}

func TestSolveSystemFailures(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	_, err := eng.SolveSystem(ctx, []Equation{
		{LHS: mustParse(t, "x+y"), RHS: mustParse(t, "3")},
	}, []string{"x", "y"})
	require.Error(t, err, "one equation cannot determine two unknowns")

	_, err = eng.SolveSystem(ctx, []Equation{
		{LHS: mustParse(t, "x"), RHS: mustParse(t, "1")},
		{LHS: mustParse(t, "x"), RHS: mustParse(t, "2")},
	}, []string{"x"})
	require.ErrorIs(t, err, errNoSolution)

	_, err = eng.SolveSystem(ctx, []Equation{
		{LHS: mustParse(t, "x*y"), RHS: mustParse(t, "1")},
		{LHS: mustParse(t, "x+y"), RHS: mustParse(t, "2")},
	}, []string{"x", "y"})
	require.Error(t, err, "nonlinear systems are rejected")
}

func TestSimplifyFoldsConstants(t *testing.T) {
	e := Simplify(mustParse(t, "1+2+3"))
	n, ok := e.(*Number)
	require.True(t, ok)
	assert.Equal(t, "6", n.Val.RatString())

	e = Simplify(mustParse(t, "0*x"))
	n, ok = e.(*Number)
	require.True(t, ok)
	assert.Equal(t, "0", n.Val.RatString())

	e = Simplify(mustParse(t, "x^1"))
	_, ok = e.(*Variable)
	assert.True(t, ok)

	e = Simplify(mustParse(t, "x^0"))
	n, ok = e.(*Number)
	require.True(t, ok)
	assert.Equal(t, "1", n.Val.RatString())
}
