// Package labels resolves user-declared labels (points, sides, angles) to
// numeric values inside an expression. Matching is boundary-aware: a label
// named "a" replaces the standalone token a but never the a inside "max" or
// "area".
package labels

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
)

// Substitute replaces every standalone occurrence of a labeled variable with
// its value, parenthesized so negative values and operator precedence cannot
// change the expression's meaning. It returns the substituted expression and
// the label names actually used, in first-use order.
//
// Labels with no occurrence in the expression are simply unused; tokens with
// no matching label stay free for the solver. Callers must run
// model.ValidateLabels first — duplicate names are a request-level error
// detected before substitution.
func Substitute(expr string, lbs []model.Label) (string, []string) {
	if expr == "" || len(lbs) == 0 {
		return expr, nil
	}

	values := make(map[string]float64, len(lbs))
	for _, l := range lbs {
		values[l.Name] = l.Value
	}

	var b strings.Builder
	b.Grow(len(expr))
	var used []string
	seen := make(map[string]struct{})

	runes := []rune(expr)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		// Consume a full identifier token. A letter glued to a digit or
		// underscore on its left ("2a") is not a standalone token: leave
		// it for the parser to reject.
		start := i
		glued := start > 0 && isTokenRune(runes[start-1])
		for i < len(runes) && isTokenRune(runes[i]) {
			i++
		}
		tok := string(runes[start:i])

		v, ok := values[tok]
		if !ok || glued {
			b.WriteString(tok)
			continue
		}
		b.WriteByte('(')
		b.WriteString(formatValue(v))
		b.WriteByte(')')
		if _, dup := seen[tok]; !dup {
			seen[tok] = struct{}{}
			used = append(used, tok)
		}
	}
	return b.String(), used
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// formatValue renders without exponent notation so the result stays inside
// the validator's character whitelist.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
