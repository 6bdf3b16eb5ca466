package mathsolver

import "context"

// Expr is an opaque parsed expression. Implementations carry their own AST;
// the orchestrator only threads values between Backend calls and renders
// them for diagnostics.
type Expr interface {
	String() string
}

// Equation pairs the two sides of one equation for the system solver.
type Equation struct {
	LHS, RHS Expr
}

// Backend is the symbolic-algebra capability behind the solving pipeline.
// When provided via WithBackend it replaces the built-in exact-rational
// engine, e.g. with a remote CAS. Implementations must be safe for
// concurrent calls and honor context cancellation on the blocking
// operations.
type Backend interface {
	// Parse builds an unevaluated expression from validated text containing
	// no '='. It must not fold "2+3" to 5.
	Parse(text string) (Expr, error)

	// FreeVariables lists free symbols in first-appearance order, excluding
	// constants the backend resolves itself (pi, e).
	FreeVariables(e Expr) []string

	// Evaluate reduces e to a number plus an exact rendering ("1/3") when
	// one exists.
	Evaluate(ctx context.Context, e Expr) (float64, string, error)

	// SolveEquation returns the real roots of lhs == rhs in ascending
	// order. A true identity yields zero roots and a nil error.
	SolveEquation(ctx context.Context, lhs, rhs Expr, unknown string) ([]float64, error)

	// SolveSystem solves a linear system for the given unknowns.
	SolveSystem(ctx context.Context, eqs []Equation, unknowns []string) (map[string]float64, error)
}
