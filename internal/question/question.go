// Package question strips natural-language wrapping from a user question to
// expose the embedded math expression. It never decides validity — when no
// expression-like residue remains the empty string goes forward and the
// validator reports the failure.
package question

import "strings"

// DefaultLeadIns are the recognized lead-in phrases, stripped only when they
// appear at the start of the question. Longer phrases first so "what is"
// wins over a bare "what".
func DefaultLeadIns() []string {
	return []string{
		"what is",
		"what's",
		"please calculate",
		"calculate",
		"compute",
		"evaluate",
		"simplify",
		"solve for",
		"solve",
		"find",
	}
}

// Preprocessor extracts candidate expressions from questions.
// Immutable after construction; safe for concurrent use.
type Preprocessor struct {
	leadIns []string
}

// New builds a Preprocessor. A nil set means DefaultLeadIns.
func New(leadIns []string) *Preprocessor {
	if leadIns == nil {
		leadIns = DefaultLeadIns()
	}
	return &Preprocessor{leadIns: leadIns}
}

// Extract peels recognized lead-in phrases from the start of q
// (case-insensitive, repeatedly, so "solve find x" loses both) and trailing
// question punctuation. Phrases occurring mid-string are left alone.
func (p *Preprocessor) Extract(q string) string {
	s := strings.TrimSpace(q)

	for {
		stripped := false
		for _, phrase := range p.leadIns {
			if len(s) < len(phrase) {
				continue
			}
			if !strings.EqualFold(s[:len(phrase)], phrase) {
				continue
			}
			// The phrase must end at a word boundary: "solveit" keeps its
			// prefix, "solve it" loses it.
			rest := s[len(phrase):]
			if rest != "" && !isBoundary(rest[0]) {
				continue
			}
			s = strings.TrimSpace(rest)
			stripped = true
			break
		}
		if !stripped {
			break
		}
	}

	// Trailing "= ?" first (as in "2+3 = ?"), then bare punctuation.
	s = strings.TrimSpace(s)
	if trimmed := strings.TrimRight(s, " ?.!"); trimmed != s {
		s = strings.TrimSpace(trimmed)
		s = strings.TrimSpace(strings.TrimSuffix(s, "="))
	}
	return s
}

// isBoundary is true for any byte that cannot continue an identifier, so a
// lead-in never swallows the front of a longer word.
func isBoundary(b byte) bool {
	isLetter := b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
	return !isLetter && b != '_'
}
