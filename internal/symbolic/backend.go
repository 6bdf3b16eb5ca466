package symbolic

import (
	"context"
	"fmt"
)

// Equation pairs the two sides of one equation for the system solver.
type Equation struct {
	LHS, RHS Expr
}

// Backend is the capability boundary between the solving orchestrator and
// the symbolic-algebra engine: parse without evaluating, reduce to a number,
// solve for unknowns. The in-process Engine is the default implementation;
// a remote CAS can be swapped in without the orchestrator noticing.
type Backend interface {
	// Parse builds an unevaluated expression tree. The text contains no '='.
	Parse(text string) (Expr, error)

	// FreeVariables lists free symbols in first-appearance order,
	// excluding known constants (pi, e).
	FreeVariables(e Expr) []string

	// Evaluate reduces e to a number. The second return is the exact form
	// when one exists ("1/3"), otherwise the rendered float.
	Evaluate(ctx context.Context, e Expr) (float64, string, error)

	// SolveEquation solves lhs == rhs for a single unknown, returning the
	// real roots in ascending order. A true identity yields zero roots and
	// a nil error.
	SolveEquation(ctx context.Context, lhs, rhs Expr, unknown string) ([]float64, error)

	// SolveSystem solves a linear system for the given unknowns.
	SolveSystem(ctx context.Context, eqs []Equation, unknowns []string) (map[string]float64, error)
}

// Engine is the built-in exact-rational backend. It is stateless; the zero
// value is ready to use and safe for concurrent calls.
type Engine struct{}

// NewEngine returns the built-in symbolic engine.
func NewEngine() *Engine { return &Engine{} }

func (*Engine) Parse(text string) (Expr, error) { return Parse(text) }

func (*Engine) FreeVariables(e Expr) []string {
	var out []string
	freeVariables(e, map[string]struct{}{}, &out)
	return out
}

// Evaluate reduces e to a number, preferring the exact rational path and
// falling back to float arithmetic for functions and constants.
func (*Engine) Evaluate(ctx context.Context, e Expr) (float64, string, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", err
	}
	simplified := Simplify(e)
	if exact, err := evalExact(simplified); err == nil {
		f, _ := exact.Float64()
		return f, exact.RatString(), nil
	}
	f, err := evalFloat(simplified)
	if err != nil {
		return 0, "", err
	}
	return f, FormatFloat(f), nil
}

func (*Engine) SolveEquation(ctx context.Context, lhs, rhs Expr, unknown string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	residual := &Sum{Terms: []Expr{lhs, &Product{Factors: []Expr{numInt(-1), rhs}}}}
	return solveUnivariate(residual, unknown)
}

func (*Engine) SolveSystem(ctx context.Context, eqs []Equation, unknowns []string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(unknowns) == 0 {
		return nil, fmt.Errorf("no unknowns to solve for")
	}
	residuals := make([]Expr, len(eqs))
	for i, eq := range eqs {
		residuals[i] = &Sum{Terms: []Expr{eq.LHS, &Product{Factors: []Expr{numInt(-1), eq.RHS}}}}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return solveLinearSystem(residuals, unknowns)
}

var _ Backend = (*Engine)(nil)
