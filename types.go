package mathsolver

// Public request/response types. These mirror the internal model so external
// consumers never import internal packages; conversion helpers live in
// mathsolver.go, the only file that sees both sides of the boundary.

// Label binds a variable name to a numeric value before solving.
type Label struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SolveRequest is the input to the solving pipeline. Provide exactly one of
// Expression/Question; when both are set Expression wins.
type SolveRequest struct {
	Expression string  `json:"expression,omitempty"`
	Question   string  `json:"question,omitempty"`
	Labels     []Label `json:"labels,omitempty"`
}

// Assignment is one solved unknown. A quadratic with two real roots yields
// two assignments for the same variable, smaller root first.
type Assignment struct {
	Var   string  `json:"var"`
	Value float64 `json:"value"`
}

// ErrorKind is the stable machine-readable failure classification.
type ErrorKind string

// Failure classifications, stable across releases.
const (
	ErrInvalidCharacter          ErrorKind = "invalid_character"
	ErrUnbalancedParentheses     ErrorKind = "unbalanced_parentheses"
	ErrMalformedOperatorSequence ErrorKind = "malformed_operator_sequence"
	ErrEmptyGroup                ErrorKind = "empty_group"
	ErrConflictingLabel          ErrorKind = "conflicting_label"
	ErrUnresolvedVariable        ErrorKind = "unresolved_variable"
	ErrUnknownShape              ErrorKind = "unknown_shape"
	ErrUnsupportedCalculation    ErrorKind = "unsupported_calculation"
	ErrMissingParameter          ErrorKind = "missing_parameter"
	ErrInvalidParameter          ErrorKind = "invalid_parameter"
	ErrSolveBackend              ErrorKind = "solve_backend_error"
	ErrBackendUnavailable        ErrorKind = "backend_unavailable"
)

// SolveResponse is the single result shape for solve calls: either a full
// success (Value or Assignments) or a typed failure, never both.
type SolveResponse struct {
	Status string `json:"status"`

	Value       *float64     `json:"value,omitempty"`
	Symbolic    string       `json:"symbolic,omitempty"`
	Assignments []Assignment `json:"assignments,omitempty"`

	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// OK reports whether the response is a success.
func (r SolveResponse) OK() bool { return r.Status == "ok" }

// CalcType identifies which geometric quantity to compute.
type CalcType string

// Supported calculation types.
const (
	CalcArea        CalcType = "area"
	CalcPerimeter   CalcType = "perimeter"
	CalcVolume      CalcType = "volume"
	CalcSurfaceArea CalcType = "surfaceArea"
)

// CalcRequest asks for one geometric quantity of one catalog shape.
type CalcRequest struct {
	Shape  string             `json:"shape"`
	Calc   CalcType           `json:"calcType"`
	Params map[string]float64 `json:"params"`
}

// CalcResponse carries the computed value or a typed failure.
type CalcResponse struct {
	Status    string    `json:"status"`
	Value     float64   `json:"value,omitempty"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// OK reports whether the response is a success.
func (r CalcResponse) OK() bool { return r.Status == "ok" }

// ShapeSpec describes one catalog shape: its name and the parameters each
// supported calculation requires.
type ShapeSpec struct {
	Name   string                `json:"name"`
	Params map[CalcType][]string `json:"calculations"`
}

// Correction is one OCR correction table entry. Standalone entries match
// only at token boundaries, so "l" corrects to "1" without touching "ln".
type Correction struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Standalone bool   `json:"standalone,omitempty"`
}
