package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// evalExact reduces e to an exact rational. It fails on free variables,
// constants like pi, and function calls — those force the float path.
func evalExact(e Expr) (*big.Rat, error) {
	switch v := e.(type) {
	case *Number:
		return v.Val, nil
	case *Variable:
		return nil, errNonNumeric{what: "variable " + v.Name}
	case *Sum:
		acc := new(big.Rat)
		for _, t := range v.Terms {
			r, err := evalExact(t)
			if err != nil {
				return nil, err
			}
			acc.Add(acc, r)
		}
		return acc, nil
	case *Product:
		acc := big.NewRat(1, 1)
		for _, f := range v.Factors {
			r, err := evalExact(f)
			if err != nil {
				return nil, err
			}
			acc.Mul(acc, r)
		}
		return acc, nil
	case *Power:
		base, err := evalExact(v.Base)
		if err != nil {
			return nil, err
		}
		exp, err := evalExact(v.Exp)
		if err != nil {
			return nil, err
		}
		if !exp.IsInt() {
			return nil, errNonNumeric{what: "fractional exponent"}
		}
		if base.Sign() == 0 && exp.Sign() < 0 {
			return nil, fmt.Errorf("division by zero")
		}
		out, ok := ratPow(base, exp.Num())
		if !ok {
			return nil, errNonNumeric{what: "oversized exponent"}
		}
		return out, nil
	case *Call:
		return nil, errNonNumeric{what: "call to " + v.Name}
	}
	return nil, errNonNumeric{what: "expression"}
}

// evalFloat reduces e to a float64, resolving pi and e and applying the
// known function set. Free variables are an error — the orchestrator reports
// them as unresolved before evaluation runs.
func evalFloat(e Expr) (float64, error) {
	switch v := e.(type) {
	case *Number:
		f, _ := v.Val.Float64()
		return f, nil
	case *Variable:
		switch v.Name {
		case "pi":
			return math.Pi, nil
		case "e":
			return math.E, nil
		}
		return 0, errNonNumeric{what: "variable " + v.Name}
	case *Sum:
		acc := 0.0
		for _, t := range v.Terms {
			f, err := evalFloat(t)
			if err != nil {
				return 0, err
			}
			acc += f
		}
		return acc, nil
	case *Product:
		acc := 1.0
		for _, fct := range v.Factors {
			f, err := evalFloat(fct)
			if err != nil {
				return 0, err
			}
			acc *= f
		}
		return acc, nil
	case *Power:
		base, err := evalFloat(v.Base)
		if err != nil {
			return 0, err
		}
		exp, err := evalFloat(v.Exp)
		if err != nil {
			return 0, err
		}
		if base == 0 && exp < 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return checkDomain(math.Pow(base, exp), "power")
	case *Call:
		args := make([]float64, len(v.Args))
		for i, a := range v.Args {
			f, err := evalFloat(a)
			if err != nil {
				return 0, err
			}
			args[i] = f
		}
		return applyFunction(v.Name, args)
	}
	return 0, errNonNumeric{what: "expression"}
}

func applyFunction(name string, args []float64) (float64, error) {
	x := args[0]
	var out float64
	switch name {
	case "sin":
		out = math.Sin(x)
	case "cos":
		out = math.Cos(x)
	case "tan":
		out = math.Tan(x)
	case "asin":
		out = math.Asin(x)
	case "acos":
		out = math.Acos(x)
	case "atan":
		out = math.Atan(x)
	case "sqrt":
		out = math.Sqrt(x)
	case "exp":
		out = math.Exp(x)
	case "ln":
		out = math.Log(x)
	case "abs":
		out = math.Abs(x)
	case "log":
		if len(args) == 2 {
			out = math.Log(x) / math.Log(args[1])
		} else {
			out = math.Log(x)
		}
	default:
		return 0, fmt.Errorf("unknown function %q", name)
	}
	return checkDomain(out, name)
}

func checkDomain(v float64, op string) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s is undefined for the given input", op)
	}
	return v, nil
}
