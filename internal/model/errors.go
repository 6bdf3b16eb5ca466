package model

import "fmt"

// ErrorKind is the stable machine-readable classification carried by every
// failure response. Kinds are part of the external contract — renaming one
// is a breaking change for callers that switch on it.
type ErrorKind string

const (
	// Expression validation failures.
	ErrInvalidCharacter          ErrorKind = "invalid_character"
	ErrUnbalancedParentheses     ErrorKind = "unbalanced_parentheses"
	ErrMalformedOperatorSequence ErrorKind = "malformed_operator_sequence"
	ErrEmptyGroup                ErrorKind = "empty_group"

	// Request-level failures.
	ErrConflictingLabel   ErrorKind = "conflicting_label"
	ErrUnresolvedVariable ErrorKind = "unresolved_variable"

	// Formula registry failures.
	ErrUnknownShape           ErrorKind = "unknown_shape"
	ErrUnsupportedCalculation ErrorKind = "unsupported_calculation"
	ErrMissingParameter       ErrorKind = "missing_parameter"
	ErrInvalidParameter       ErrorKind = "invalid_parameter"

	// Backend failures.
	ErrSolveBackend       ErrorKind = "solve_backend_error"
	ErrBackendUnavailable ErrorKind = "backend_unavailable"
)

// PipelineError is a typed failure produced inside the solving pipeline or
// the formula registry. It is converted into a response envelope at the
// orchestration boundary and never escapes the module as a raw error.
type PipelineError struct {
	Kind    ErrorKind
	Message string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errf builds a PipelineError with a formatted message.
func Errf(kind ErrorKind, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
