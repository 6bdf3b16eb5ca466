package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	p := New(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain expression passes through", in: "2+3", want: "2+3"},
		{name: "what is", in: "What is 2+3?", want: "2+3"},
		{name: "whats contraction", in: "what's 10/2", want: "10/2"},
		{name: "calculate", in: "Calculate 5*6", want: "5*6"},
		{name: "solve equation", in: "Solve x+2=5", want: "x+2=5"},
		{name: "find", in: "find x^2=9", want: "x^2=9"},
		{name: "stacked lead-ins", in: "solve find x+1=2", want: "x+1=2"},
		{name: "trailing period", in: "calculate 2*2.", want: "2*2"},
		{name: "trailing bang", in: "2+2!", want: "2+2"},
		{name: "equals question mark tail", in: "2+3 = ?", want: "2+3"},
		{name: "mid-string phrase untouched", in: "2+solve", want: "2+solve"},
		{name: "phrase prefix of identifier untouched", in: "solveit", want: "solveit"},
		{name: "equation equals survives", in: "x=5.", want: "x=5"},
		{name: "only punctuation", in: "???", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "lead-in with no residue", in: "solve?", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Extract(tt.in))
		})
	}
}

func TestExtractCustomLeadIns(t *testing.T) {
	p := New([]string{"berechne"})
	assert.Equal(t, "2+3", p.Extract("Berechne 2+3"))
	// Stock phrases are replaced, not merged.
	assert.Equal(t, "calculate 2+3", p.Extract("calculate 2+3"))
}
