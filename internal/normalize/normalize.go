// Package normalize cleans raw OCR text into the character set the rest of
// the pipeline understands. The correction table is ordered configuration,
// not control flow: operators extend it (YAML file or facade option) without
// touching this package.
package normalize

import (
	"strings"
	"unicode"
)

// Correction is one table entry. When Standalone is set the match fires only
// at token boundaries — a letter/digit misread like l→1 must not rewrite the
// l inside "log".
type Correction struct {
	From       string `yaml:"from"`
	To         string `yaml:"to"`
	Standalone bool   `yaml:"standalone,omitempty"`
}

// DefaultTable is the stock OCR correction set: visually ambiguous
// letter/digit pairs, Unicode math operators mapped to ASCII, and bracket
// variants folded to parentheses. Order matters — the scan applies the first
// entry that matches at each position.
func DefaultTable() []Correction {
	return []Correction{
		// Letter/digit misreads, token-boundary only.
		{From: "l", To: "1", Standalone: true},
		{From: "I", To: "1", Standalone: true},
		{From: "O", To: "0", Standalone: true},
		{From: "o", To: "0", Standalone: true},
		{From: "S", To: "5", Standalone: true},
		{From: "Z", To: "2", Standalone: true},
		{From: "z", To: "2", Standalone: true},

		// Unicode math operators and symbols.
		{From: "×", To: "*"},
		{From: "÷", To: "/"},
		{From: "−", To: "-"}, // U+2212 minus sign
		{From: "–", To: "-"}, // en dash
		{From: "—", To: "-"}, // em dash
		{From: "²", To: "^2"},
		{From: "³", To: "^3"},
		{From: "√", To: "sqrt"},
		{From: "π", To: "pi"},
		{From: "∞", To: ""},

		// Bracket variants.
		{From: "[", To: "("},
		{From: "{", To: "("},
		{From: "]", To: ")"},
		{From: "}", To: ")"},
	}
}

// Normalizer applies an ordered correction table to raw text.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	table []Correction
}

// New builds a Normalizer. A nil table means DefaultTable; extra entries
// passed by the caller are appended after the stock set, so operator
// additions never shadow the defaults by accident.
func New(table []Correction, extra ...Correction) *Normalizer {
	if table == nil {
		table = DefaultTable()
	}
	merged := make([]Correction, 0, len(table)+len(extra))
	merged = append(merged, table...)
	merged = append(merged, extra...)
	return &Normalizer{table: merged}
}

// Normalize collapses whitespace and applies the correction table in a
// single left-to-right scan over the input. Each position is rewritten at
// most once: a replacement's output is never re-scanned, so one correction
// cannot cascade into another. Empty input yields empty output.
func (n *Normalizer) Normalize(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(collapsed))
	runes := []rune(collapsed)
	for i := 0; i < len(runes); {
		rest := string(runes[i:])
		applied := false
		for _, c := range n.table {
			if !strings.HasPrefix(rest, c.From) {
				continue
			}
			if c.Standalone && !standaloneAt(runes, i, len([]rune(c.From))) {
				continue
			}
			b.WriteString(c.To)
			i += len([]rune(c.From))
			applied = true
			break
		}
		if !applied {
			b.WriteRune(runes[i])
			i++
		}
	}
	return strings.TrimSpace(b.String())
}

// standaloneAt reports whether the match of width w starting at i is not
// adjacent to a letter or digit on either side.
func standaloneAt(runes []rune, i, w int) bool {
	if i > 0 && isWordRune(runes[i-1]) {
		return false
	}
	if end := i + w; end < len(runes) && isWordRune(runes[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
