// Package model defines the request/response envelopes, the error taxonomy,
// and the request-level validation shared by the solving pipeline and the
// geometric formula registry. Types here are pure data — no I/O, no imports
// from other internal packages.
package model

import (
	"math"
	"unicode"
)

// Label is a user-declared name/value pair (a point, side, or angle from the
// canvas) to substitute into the expression before solving.
type Label struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SolveRequest is the input to the solving pipeline. Exactly one of
// Expression/Question should be set; when both are, Expression wins and
// Question is ignored.
type SolveRequest struct {
	Expression string  `json:"expression,omitempty"`
	Question   string  `json:"question,omitempty"`
	Labels     []Label `json:"labels,omitempty"`
}

// Assignment is one solved unknown. Assignments are ordered by the position
// at which each variable first appears in the original expression.
type Assignment struct {
	Var   string  `json:"var"`
	Value float64 `json:"value"`
}

// SolveResponse is the single result shape returned to callers. A response
// either fully succeeds (Status "ok", one of Value/Assignments populated)
// or fully fails (Status "error", ErrorKind and Message populated).
type SolveResponse struct {
	Status string `json:"status"`

	// Value is set for arithmetic evaluations. Symbolic carries the exact
	// form when the result is not a plain number (e.g. "pi/2"); for plain
	// numbers it matches Value's rendering.
	Value    *float64 `json:"value,omitempty"`
	Symbolic string   `json:"symbolic,omitempty"`

	// Assignments is set when one or more unknowns were solved.
	Assignments []Assignment `json:"assignments,omitempty"`

	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// OK reports whether the response is a success.
func (r SolveResponse) OK() bool { return r.Status == "ok" }

// FailureResponse builds an error response from a pipeline error.
func FailureResponse(err *PipelineError) SolveResponse {
	return SolveResponse{Status: "error", ErrorKind: err.Kind, Message: err.Message}
}

// ValueResponse builds a success response for an arithmetic evaluation.
func ValueResponse(v float64, symbolic string) SolveResponse {
	return SolveResponse{Status: "ok", Value: &v, Symbolic: symbolic}
}

// AssignmentsResponse builds a success response for solved unknowns.
func AssignmentsResponse(a []Assignment) SolveResponse {
	return SolveResponse{Status: "ok", Assignments: a}
}

// ValidateLabels checks request labels before substitution runs: names must
// be identifier-shaped, values finite, and names unique. Duplicate names are
// rejected even when the values agree — the input is ambiguous and validity
// must not depend on the values carried.
func ValidateLabels(labels []Label) *PipelineError {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if !IsIdentifier(l.Name) {
			return Errf(ErrConflictingLabel, "label name %q is not a valid identifier", l.Name)
		}
		if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
			return Errf(ErrConflictingLabel, "label %q has a non-finite value", l.Name)
		}
		if _, dup := seen[l.Name]; dup {
			return Errf(ErrConflictingLabel, "label %q declared more than once", l.Name)
		}
		seen[l.Name] = struct{}{}
	}
	return nil
}

// IsIdentifier reports whether s is a non-empty run of letters optionally
// followed by digits/underscores — the token shape the substitution engine
// matches against.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case r == '_' && i > 0:
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
