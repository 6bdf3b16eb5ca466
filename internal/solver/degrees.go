package solver

import (
	"strings"
	"unicode"
)

// degreeFuncs are the trig calls whose arguments are reinterpreted as
// degrees when degree mode is on. Inverse trig is excluded: its input is a
// ratio, not an angle.
var degreeFuncs = map[string]bool{"sin": true, "cos": true, "tan": true}

// convertDegrees rewrites each trig-call argument as (arg)*pi/180 so that
// sin(90) means the sine of 90 degrees. The scan tracks parenthesis depth,
// so nested calls like sin(cos(60)) convert at every level. Runs only on
// text that already passed validation; balance is guaranteed.
func convertDegrees(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	runes := []rune(text)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) && runes[i] != '_' {
			b.WriteRune(runes[i])
			i++
			continue
		}

		start := i
		for i < len(runes) && isIdentRune(runes[i]) {
			i++
		}
		name := string(runes[start:i])
		if !degreeFuncs[name] || i >= len(runes) || runes[i] != '(' {
			b.WriteString(name)
			continue
		}

		// Find the call's closing parenthesis.
		depth := 0
		j := i
		for ; j < len(runes); j++ {
			if runes[j] == '(' {
				depth++
			} else if runes[j] == ')' {
				if depth--; depth == 0 {
					break
				}
			}
		}
		if j == len(runes) {
			b.WriteString(name)
			continue
		}

		b.WriteString(name)
		b.WriteString("((")
		b.WriteString(convertDegrees(string(runes[i+1 : j])))
		b.WriteString(")*pi/180)")
		i = j + 1
	}
	return b.String()
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
