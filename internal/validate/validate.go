// Package validate performs structural well-formedness checks on a
// normalized expression before it reaches the symbolic backend. Checks are
// ordered cheapest-first and the first failure wins; validation depends only
// on structure, never on label values.
package validate

import (
	"strings"
	"unicode"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
)

// Check runs the validation sequence and returns nil when expr is
// structurally sound. It is a pure function: re-running it on the same
// input always yields the same result.
func Check(expr string) *model.PipelineError {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return model.Errf(model.ErrInvalidCharacter, "empty expression")
	}
	if err := checkWhitelist(trimmed); err != nil {
		return err
	}
	if err := checkBalance(trimmed); err != nil {
		return err
	}
	if err := checkOperators(trimmed); err != nil {
		return err
	}
	return checkEmptyGroups(trimmed)
}

// checkWhitelist enforces the normalized character set: digits, letters,
// arithmetic operators, parentheses, decimal points, equals, commas, and
// whitespace. Anything else is an OCR artifact the normalizer did not map.
func checkWhitelist(expr string) *model.PipelineError {
	for _, r := range expr {
		switch {
		case unicode.IsDigit(r), unicode.IsLetter(r):
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
		case r == '(' || r == ')' || r == '.' || r == '=' || r == ',':
		case r == ' ' || r == '\t':
		default:
			return model.Errf(model.ErrInvalidCharacter, "character %q is not allowed", r)
		}
	}
	return nil
}

// checkBalance runs a depth counter over the expression: the counter must
// never go negative and must return to zero at the end.
func checkBalance(expr string) *model.PipelineError {
	depth := 0
	for _, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return model.Errf(model.ErrUnbalancedParentheses, "unexpected closing parenthesis")
			}
		}
	}
	if depth != 0 {
		return model.Errf(model.ErrUnbalancedParentheses, "%d unclosed parenthesis group(s)", depth)
	}
	return nil
}

func isBinaryOp(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/' || r == '^'
}

// checkOperators rejects adjacent binary operators, operators that dangle
// before a closing parenthesis, an equals sign, a comma, or the end of the
// string, and misplaced equals signs. Unary minus is permitted at the
// expression start, after an opening parenthesis, comma, or equals sign,
// and after one other operator — but "--" is not.
func checkOperators(expr string) *model.PipelineError {
	var prev rune // previous significant (non-space) rune; 0 at start
	for _, r := range expr {
		if r == ' ' || r == '\t' {
			continue
		}
		switch {
		case isBinaryOp(r):
			unaryPos := prev == 0 || prev == '(' || prev == ',' || prev == '='
			if r == '-' {
				// Unary minus also rides after one binary operator, minus excluded.
				if prev == '-' {
					return model.Errf(model.ErrMalformedOperatorSequence, "operator %q cannot follow %q", r, prev)
				}
			} else if unaryPos || isBinaryOp(prev) {
				where := "another operator"
				if prev == 0 {
					where = "the start of the expression"
				} else if !isBinaryOp(prev) {
					where = string(prev)
				}
				return model.Errf(model.ErrMalformedOperatorSequence, "operator %q cannot follow %s", r, where)
			}
		case r == ')' || r == ',' || r == '=':
			if isBinaryOp(prev) {
				return model.Errf(model.ErrMalformedOperatorSequence, "operator %q cannot precede %q", prev, r)
			}
			if r == '=' && (prev == 0 || prev == '=' || prev == '(') {
				return model.Errf(model.ErrMalformedOperatorSequence, "misplaced equals sign")
			}
		}
		prev = r
	}
	if isBinaryOp(prev) || prev == '=' {
		return model.Errf(model.ErrMalformedOperatorSequence, "expression ends with %q", prev)
	}
	return nil
}

func checkEmptyGroups(expr string) *model.PipelineError {
	var prev rune
	for _, r := range expr {
		if r == ' ' || r == '\t' {
			continue
		}
		if prev == '(' && r == ')' {
			return model.Errf(model.ErrEmptyGroup, "empty parenthesis group")
		}
		prev = r
	}
	return nil
}
