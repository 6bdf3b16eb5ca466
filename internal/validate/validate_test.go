package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
)

func TestCheckValid(t *testing.T) {
	for _, expr := range []string{
		"2+3",
		"2 + 3 * 4",
		"(2+3)*4",
		"x+2=5",
		"-5+2",
		"(-2)*3",
		"2*-3",
		"2+-3",
		"sqrt(9)",
		"max(a, b)",
		"x^2 - 4 = 0",
		"3.14 * r^2",
	} {
		assert.Nil(t, Check(expr), "expected %q to validate", expr)
	}
}

func TestCheckFailures(t *testing.T) {
	tests := []struct {
		expr string
		kind model.ErrorKind
	}{
		{"", model.ErrInvalidCharacter},
		{"   ", model.ErrInvalidCharacter},
		{"2+3#", model.ErrInvalidCharacter},
		{"2$3", model.ErrInvalidCharacter},
		{"2+3?", model.ErrInvalidCharacter},

		{"(2+3", model.ErrUnbalancedParentheses},
		{"2+3)", model.ErrUnbalancedParentheses},
		{")2+3(", model.ErrUnbalancedParentheses},
		{"((2+3)", model.ErrUnbalancedParentheses},

		{"2++3", model.ErrMalformedOperatorSequence},
		{"2**3", model.ErrMalformedOperatorSequence},
		{"2--3", model.ErrMalformedOperatorSequence},
		{"*2", model.ErrMalformedOperatorSequence},
		{"2+", model.ErrMalformedOperatorSequence},
		{"(2+)", model.ErrMalformedOperatorSequence},
		{"2+=3", model.ErrMalformedOperatorSequence},
		{"=2+3", model.ErrMalformedOperatorSequence},
		{"x==2", model.ErrMalformedOperatorSequence},
		{"x=", model.ErrMalformedOperatorSequence},

		{"()", model.ErrEmptyGroup},
		{"2+()", model.ErrEmptyGroup},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := Check(tt.expr)
			require.NotNil(t, err, "expected %q to fail", tt.expr)
			assert.Equal(t, tt.kind, err.Kind)
		})
	}
}

func TestCheckWhitelistLetters(t *testing.T) {
	assert.Nil(t, Check("sin(x)"))
	assert.Nil(t, Check("log(100, 10)"))
}

func TestCheckIdempotent(t *testing.T) {
	for _, expr := range []string{"2+3", "(2+3", "2++3", "()"} {
		first := Check(expr)
		for i := 0; i < 3; i++ {
			again := Check(expr)
			if first == nil {
				assert.Nil(t, again)
			} else {
				require.NotNil(t, again)
				assert.Equal(t, first.Kind, again.Kind)
			}
		}
	}
}
