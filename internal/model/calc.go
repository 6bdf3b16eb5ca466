package model

// CalcType identifies which geometric quantity to compute.
type CalcType string

const (
	CalcArea        CalcType = "area"
	CalcPerimeter   CalcType = "perimeter"
	CalcVolume      CalcType = "volume"
	CalcSurfaceArea CalcType = "surfaceArea"
)

// Valid reports whether c is one of the four supported calculation types.
func (c CalcType) Valid() bool {
	switch c {
	case CalcArea, CalcPerimeter, CalcVolume, CalcSurfaceArea:
		return true
	}
	return false
}

// CalcRequest asks the formula registry for one quantity of one shape.
// Params is validated against the shape's spec before any formula runs.
type CalcRequest struct {
	Shape  string             `json:"shape"`
	Calc   CalcType           `json:"calcType"`
	Params map[string]float64 `json:"params"`
}

// CalcResponse is the formula registry's result envelope.
type CalcResponse struct {
	Status    string    `json:"status"`
	Value     float64   `json:"value,omitempty"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// CalcFailure builds an error response from a pipeline error.
func CalcFailure(err *PipelineError) CalcResponse {
	return CalcResponse{Status: "error", ErrorKind: err.Kind, Message: err.Message}
}

// CalcValue builds a success response.
func CalcValue(v float64) CalcResponse {
	return CalcResponse{Status: "ok", Value: v}
}
