// Package symbolic is the in-process symbolic-algebra backend: a
// structure-preserving parser, an exact-rational expression tree, and
// closed-form equation solvers. The pipeline consumes it through the Backend
// interface so the whole engine can be swapped for a remote CAS without
// touching the orchestrator.
package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Expr is one node of an expression tree. The engine's own trees are built
// from the node types below and are immutable: Simplify and substitution
// return new nodes, so a parsed expression can be shared across concurrent
// solve calls. The interface is deliberately minimal so a replacement
// Backend can carry its own AST through the orchestrator.
type Expr interface {
	String() string
}

// Number is an exact rational scalar. Float literals are converted to exact
// rationals at parse time, so arithmetic on them never accumulates error.
type Number struct{ Val *big.Rat }

// Variable is a free symbol.
type Variable struct{ Name string }

// Sum is an n-ary addition. The parser emits two-term sums; Simplify
// flattens and folds them.
type Sum struct{ Terms []Expr }

// Product is an n-ary multiplication. Division parses as multiplication by
// Power(divisor, -1); negation as multiplication by -1.
type Product struct{ Factors []Expr }

// Power is base^exponent, right-associative.
type Power struct{ Base, Exp Expr }

// Call is a named function application: sqrt, sin, log, ...
type Call struct {
	Name string
	Args []Expr
}

func num(r *big.Rat) *Number         { return &Number{Val: r} }
func numInt(n int64) *Number         { return &Number{Val: new(big.Rat).SetInt64(n)} }
func variable(name string) *Variable { return &Variable{Name: name} }

func (n *Number) String() string {
	return n.Val.RatString()
}

func (v *Variable) String() string { return v.Name }

func (s *Sum) String() string {
	parts := make([]string, 0, len(s.Terms))
	for i, t := range s.Terms {
		str := t.String()
		if i > 0 && !strings.HasPrefix(str, "-") {
			str = "+ " + str
		} else if i > 0 {
			str = "- " + strings.TrimPrefix(str, "-")
		}
		parts = append(parts, str)
	}
	return strings.Join(parts, " ")
}

func (p *Product) String() string {
	parts := make([]string, 0, len(p.Factors))
	for _, f := range p.Factors {
		str := f.String()
		if needsParens(f) {
			str = "(" + str + ")"
		}
		parts = append(parts, str)
	}
	return strings.Join(parts, "*")
}

func (p *Power) String() string {
	base := p.Base.String()
	if needsParens(p.Base) {
		base = "(" + base + ")"
	}
	exp := p.Exp.String()
	if needsParens(p.Exp) || strings.HasPrefix(exp, "-") {
		exp = "(" + exp + ")"
	}
	return base + "^" + exp
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// needsParens reports whether e must be parenthesized when rendered inside a
// product or power.
func needsParens(e Expr) bool {
	switch v := e.(type) {
	case *Sum:
		return true
	case *Number:
		return v.Val.Sign() < 0 || !v.Val.IsInt()
	case *Product:
		return true
	}
	return false
}

// FormatFloat renders a float the way results are reported: no exponent
// notation for the magnitudes this pipeline produces, trailing zeros
// stripped.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}

// freeVariables walks e and appends variable names to out in first-visit
// order, which for parsed expressions is left-to-right source order.
func freeVariables(e Expr, seen map[string]struct{}, out *[]string) {
	switch v := e.(type) {
	case *Variable:
		if isConstantName(v.Name) {
			return
		}
		if _, ok := seen[v.Name]; !ok {
			seen[v.Name] = struct{}{}
			*out = append(*out, v.Name)
		}
	case *Sum:
		for _, t := range v.Terms {
			freeVariables(t, seen, out)
		}
	case *Product:
		for _, f := range v.Factors {
			freeVariables(f, seen, out)
		}
	case *Power:
		freeVariables(v.Base, seen, out)
		freeVariables(v.Exp, seen, out)
	case *Call:
		for _, a := range v.Args {
			freeVariables(a, seen, out)
		}
	}
}

// substitute returns e with every occurrence of name replaced by val.
func substitute(e Expr, name string, val Expr) Expr {
	switch v := e.(type) {
	case *Number:
		return v
	case *Variable:
		if v.Name == name {
			return val
		}
		return v
	case *Sum:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = substitute(t, name, val)
		}
		return &Sum{Terms: terms}
	case *Product:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factors[i] = substitute(f, name, val)
		}
		return &Product{Factors: factors}
	case *Power:
		return &Power{Base: substitute(v.Base, name, val), Exp: substitute(v.Exp, name, val)}
	case *Call:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = substitute(a, name, val)
		}
		return &Call{Name: v.Name, Args: args}
	}
	return e
}

// Simplify folds rational constants and flattens nested sums/products.
// It is deterministic: same input tree, same output tree. It deliberately
// stops short of canonical forms — the pipeline only needs constant folding,
// not a full CAS normalization.
func Simplify(e Expr) Expr {
	switch v := e.(type) {
	case *Number, *Variable:
		return e

	case *Sum:
		var flat []Expr
		acc := new(big.Rat)
		hasConst := false
		for _, t := range v.Terms {
			t = Simplify(t)
			switch tv := t.(type) {
			case *Sum:
				flat = append(flat, tv.Terms...)
			case *Number:
				acc.Add(acc, tv.Val)
				hasConst = true
			default:
				flat = append(flat, t)
			}
		}
		if hasConst && acc.Sign() != 0 || len(flat) == 0 {
			flat = append(flat, num(acc))
		}
		if len(flat) == 1 {
			return flat[0]
		}
		return &Sum{Terms: flat}

	case *Product:
		var flat []Expr
		acc := big.NewRat(1, 1)
		for _, f := range v.Factors {
			f = Simplify(f)
			switch fv := f.(type) {
			case *Product:
				flat = append(flat, fv.Factors...)
			case *Number:
				acc.Mul(acc, fv.Val)
			default:
				flat = append(flat, f)
			}
		}
		if acc.Sign() == 0 {
			return numInt(0)
		}
		if acc.Cmp(big.NewRat(1, 1)) != 0 || len(flat) == 0 {
			flat = append([]Expr{num(acc)}, flat...)
		}
		if len(flat) == 1 {
			return flat[0]
		}
		return &Product{Factors: flat}

	case *Power:
		base := Simplify(v.Base)
		exp := Simplify(v.Exp)
		if en, ok := exp.(*Number); ok {
			if en.Val.Sign() == 0 {
				return numInt(1)
			}
			if en.Val.Cmp(big.NewRat(1, 1)) == 0 {
				return base
			}
			if bn, ok := base.(*Number); ok && en.Val.IsInt() {
				if folded, ok := ratPow(bn.Val, en.Val.Num()); ok {
					return num(folded)
				}
			}
		}
		return &Power{Base: base, Exp: exp}

	case *Call:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = Simplify(a)
		}
		return &Call{Name: v.Name, Args: args}
	}
	return e
}

// ratPow raises base to an integer exponent exactly. Exponent magnitude is
// capped so pathological inputs (2^10000000) cannot eat the process.
func ratPow(base *big.Rat, exp *big.Int) (*big.Rat, bool) {
	if !exp.IsInt64() {
		return nil, false
	}
	n := exp.Int64()
	if n > 4096 || n < -4096 {
		return nil, false
	}
	neg := n < 0
	if neg {
		if base.Sign() == 0 {
			return nil, false
		}
		n = -n
	}
	out := big.NewRat(1, 1)
	sq := new(big.Rat).Set(base)
	for n > 0 {
		if n&1 == 1 {
			out.Mul(out, sq)
		}
		sq.Mul(sq, sq)
		n >>= 1
	}
	if neg {
		out.Inv(out)
	}
	return out, true
}

func isConstantName(name string) bool {
	return name == "pi" || name == "e"
}

// knownFunctions is the closed set of function names the evaluator accepts.
var knownFunctions = map[string]int{
	"sin": 1, "cos": 1, "tan": 1,
	"asin": 1, "acos": 1, "atan": 1,
	"sqrt": 1, "exp": 1, "ln": 1, "abs": 1,
	"log": -1, // log(x) natural, log(x, base)
}

// KnownFunctionNames returns the accepted function names, sorted, for error
// messages.
func KnownFunctionNames() []string {
	names := make([]string, 0, len(knownFunctions))
	for n := range knownFunctions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// errNonNumeric marks an expression that cannot be reduced to a number.
type errNonNumeric struct{ what string }

func (e errNonNumeric) Error() string {
	return fmt.Sprintf("cannot reduce %s to a number", e.what)
}
