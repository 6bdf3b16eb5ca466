package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
)

// maxPolyDegree bounds coefficient extraction; the closed-form solvers stop
// at quadratics anyway, the cap just keeps pathological products cheap.
const maxPolyDegree = 16

// polynomial extracts the coefficients of e as a univariate polynomial in
// varName: result[k] is the exact coefficient of varName^k. It fails when e
// is not polynomial in varName (variable inside a call, in an exponent, in
// a divisor) or when a coefficient is not rational (pi, sin(2), another
// free variable).
func polynomial(e Expr, varName string) (map[int]*big.Rat, error) {
	switch v := e.(type) {
	case *Number:
		return map[int]*big.Rat{0: v.Val}, nil

	case *Variable:
		if v.Name == varName {
			return map[int]*big.Rat{1: big.NewRat(1, 1)}, nil
		}
		return nil, fmt.Errorf("coefficient involving %q is not rational", v.Name)

	case *Sum:
		acc := map[int]*big.Rat{}
		for _, t := range v.Terms {
			p, err := polynomial(t, varName)
			if err != nil {
				return nil, err
			}
			polyAddInto(acc, p)
		}
		return acc, nil

	case *Product:
		acc := map[int]*big.Rat{0: big.NewRat(1, 1)}
		for _, f := range v.Factors {
			p, err := polynomial(f, varName)
			if err != nil {
				return nil, err
			}
			acc, err = polyMul(acc, p)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	case *Power:
		expRat, err := evalExact(v.Exp)
		if err != nil {
			return nil, fmt.Errorf("exponent must be constant: %w", err)
		}
		if !expRat.IsInt() || !expRat.Num().IsInt64() {
			return nil, fmt.Errorf("exponent %s is not an integer", expRat.RatString())
		}
		n := expRat.Num().Int64()
		base, err := polynomial(v.Base, varName)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			// Negative powers are fine for constants (1/2 parses as 2^-1),
			// fatal for the unknown (1/x is not polynomial).
			c, ok := polyConstant(base)
			if !ok {
				return nil, fmt.Errorf("%q appears in a divisor or negative power", varName)
			}
			r, ok := ratPow(c, big.NewInt(n))
			if !ok || c.Sign() == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return map[int]*big.Rat{0: r}, nil
		}
		acc := map[int]*big.Rat{0: big.NewRat(1, 1)}
		for i := int64(0); i < n; i++ {
			acc, err = polyMul(acc, base)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	case *Call:
		return nil, fmt.Errorf("function call %q cannot be solved in closed form", v.Name)
	}
	return nil, fmt.Errorf("unsupported expression")
}

func polyAddInto(dst, src map[int]*big.Rat) {
	for deg, c := range src {
		if cur, ok := dst[deg]; ok {
			dst[deg] = new(big.Rat).Add(cur, c)
		} else {
			dst[deg] = new(big.Rat).Set(c)
		}
	}
}

func polyMul(a, b map[int]*big.Rat) (map[int]*big.Rat, error) {
	out := map[int]*big.Rat{}
	for da, ca := range a {
		for db, cb := range b {
			deg := da + db
			if deg > maxPolyDegree {
				return nil, fmt.Errorf("polynomial degree exceeds %d", maxPolyDegree)
			}
			prod := new(big.Rat).Mul(ca, cb)
			if cur, ok := out[deg]; ok {
				out[deg] = new(big.Rat).Add(cur, prod)
			} else {
				out[deg] = prod
			}
		}
	}
	return out, nil
}

// polyConstant returns the degree-0 coefficient when the polynomial has no
// higher non-zero terms.
func polyConstant(p map[int]*big.Rat) (*big.Rat, bool) {
	c := new(big.Rat)
	for deg, v := range p {
		if deg == 0 {
			c.Set(v)
			continue
		}
		if v.Sign() != 0 {
			return nil, false
		}
	}
	return c, true
}

func polyDegree(p map[int]*big.Rat) int {
	deg := 0
	for d, c := range p {
		if c.Sign() != 0 && d > deg {
			deg = d
		}
	}
	return deg
}

var errNoSolution = fmt.Errorf("equation has no solution")

// solveUnivariate solves residual == 0 for varName. Linear equations solve
// exactly over the rationals; quadratics fall back to float arithmetic for
// irrational roots. An identity (0 == 0) yields zero roots with nil error;
// the caller distinguishes a true statement from "no solution".
func solveUnivariate(residual Expr, varName string) ([]float64, error) {
	coeffs, err := polynomial(Simplify(residual), varName)
	if err != nil {
		return nil, err
	}

	switch deg := polyDegree(coeffs); deg {
	case 0:
		c, _ := polyConstant(coeffs)
		if c.Sign() != 0 {
			return nil, errNoSolution
		}
		return nil, nil

	case 1:
		a := coeffOrZero(coeffs, 1)
		b := coeffOrZero(coeffs, 0)
		root := new(big.Rat).Neg(b)
		root.Quo(root, a)
		f, _ := root.Float64()
		return []float64{f}, nil

	case 2:
		a, _ := coeffOrZero(coeffs, 2).Float64()
		b, _ := coeffOrZero(coeffs, 1).Float64()
		c, _ := coeffOrZero(coeffs, 0).Float64()
		disc := b*b - 4*a*c
		switch {
		case disc < 0:
			return nil, fmt.Errorf("equation has no real solution")
		case disc == 0:
			return []float64{-b / (2 * a)}, nil
		default:
			s := math.Sqrt(disc)
			roots := []float64{(-b - s) / (2 * a), (-b + s) / (2 * a)}
			sort.Float64s(roots)
			return roots, nil
		}

	default:
		return nil, fmt.Errorf("degree %d equations are not supported", deg)
	}
}

func coeffOrZero(p map[int]*big.Rat, deg int) *big.Rat {
	if c, ok := p[deg]; ok {
		return c
	}
	return new(big.Rat)
}

// linearForm is the representation c0 + Σ coeffs[name]·name used by the
// system solver.
type linearForm struct {
	constant *big.Rat
	coeffs   map[string]*big.Rat
}

func newLinearForm() *linearForm {
	return &linearForm{constant: new(big.Rat), coeffs: map[string]*big.Rat{}}
}

func (l *linearForm) addCoeff(name string, c *big.Rat) {
	if cur, ok := l.coeffs[name]; ok {
		l.coeffs[name] = new(big.Rat).Add(cur, c)
	} else {
		l.coeffs[name] = new(big.Rat).Set(c)
	}
}

func (l *linearForm) add(o *linearForm) {
	l.constant.Add(l.constant, o.constant)
	for name, c := range o.coeffs {
		l.addCoeff(name, c)
	}
}

func (l *linearForm) scale(c *big.Rat) {
	l.constant.Mul(l.constant, c)
	for name, v := range l.coeffs {
		l.coeffs[name] = new(big.Rat).Mul(v, c)
	}
}

func (l *linearForm) isConstant() bool {
	for _, c := range l.coeffs {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// extractLinear converts e to a linear form over its variables, or fails
// when e is nonlinear (a product of two variable terms, a variable in a
// power or call).
func extractLinear(e Expr) (*linearForm, error) {
	switch v := e.(type) {
	case *Number:
		l := newLinearForm()
		l.constant.Set(v.Val)
		return l, nil

	case *Variable:
		if isConstantName(v.Name) {
			return nil, fmt.Errorf("constant %q is not supported in systems", v.Name)
		}
		l := newLinearForm()
		l.addCoeff(v.Name, big.NewRat(1, 1))
		return l, nil

	case *Sum:
		acc := newLinearForm()
		for _, t := range v.Terms {
			lt, err := extractLinear(t)
			if err != nil {
				return nil, err
			}
			acc.add(lt)
		}
		return acc, nil

	case *Product:
		var varPart *linearForm
		scalar := big.NewRat(1, 1)
		for _, f := range v.Factors {
			lf, err := extractLinear(f)
			if err != nil {
				return nil, err
			}
			if lf.isConstant() {
				scalar.Mul(scalar, lf.constant)
				continue
			}
			if varPart != nil {
				return nil, fmt.Errorf("system equations must be linear")
			}
			varPart = lf
		}
		if varPart == nil {
			l := newLinearForm()
			l.constant.Set(scalar)
			return l, nil
		}
		varPart.scale(scalar)
		return varPart, nil

	case *Power:
		c, err := evalExact(v)
		if err != nil {
			return nil, fmt.Errorf("system equations must be linear")
		}
		l := newLinearForm()
		l.constant.Set(c)
		return l, nil

	case *Call:
		return nil, fmt.Errorf("function calls are not supported in systems")
	}
	return nil, fmt.Errorf("unsupported expression")
}

// solveLinearSystem solves residuals == 0 for unknowns by Gaussian
// elimination over exact rationals. Each residual must be linear in the
// unknowns. Returns values per unknown; fails on singular or inconsistent
// systems.
func solveLinearSystem(residuals []Expr, unknowns []string) (map[string]float64, error) {
	n := len(residuals)
	m := len(unknowns)
	if n < m {
		return nil, fmt.Errorf("%d equation(s) cannot determine %d unknown(s)", n, m)
	}

	idx := make(map[string]int, m)
	for i, u := range unknowns {
		idx[u] = i
	}

	// Augmented matrix: rows of [a0 .. am-1 | -constant].
	rows := make([][]*big.Rat, 0, n)
	for _, r := range residuals {
		lf, err := extractLinear(Simplify(r))
		if err != nil {
			return nil, err
		}
		row := make([]*big.Rat, m+1)
		for j := range row {
			row[j] = new(big.Rat)
		}
		for name, c := range lf.coeffs {
			j, ok := idx[name]
			if !ok {
				if c.Sign() != 0 {
					return nil, fmt.Errorf("variable %q is not among the unknowns", name)
				}
				continue
			}
			row[j].Set(c)
		}
		row[m].Neg(lf.constant)
		rows = append(rows, row)
	}

	// Forward elimination with partial pivoting by non-zero check.
	rank := 0
	for col := 0; col < m && rank < n; col++ {
		pivot := -1
		for r := rank; r < n; r++ {
			if rows[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, fmt.Errorf("system is underdetermined in %q", unknowns[col])
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]

		inv := new(big.Rat).Inv(rows[rank][col])
		for j := col; j <= m; j++ {
			rows[rank][j] = new(big.Rat).Mul(rows[rank][j], inv)
		}
		for r := 0; r < n; r++ {
			if r == rank || rows[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(rows[r][col])
			for j := col; j <= m; j++ {
				delta := new(big.Rat).Mul(factor, rows[rank][j])
				rows[r][j] = new(big.Rat).Sub(rows[r][j], delta)
			}
		}
		rank++
	}

	// Remaining rows must be 0 = 0.
	for r := rank; r < n; r++ {
		if rows[r][m].Sign() != 0 {
			return nil, errNoSolution
		}
	}

	out := make(map[string]float64, m)
	for j, u := range unknowns {
		f, _ := rows[j][m].Float64()
		out[u] = f
	}
	return out, nil
}
