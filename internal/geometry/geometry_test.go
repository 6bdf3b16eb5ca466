package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
)

func TestListStableOrder(t *testing.T) {
	want := []string{
		"Rectangle", "Square", "Circle", "Triangle", "Trapezoid",
		"Parallelogram", "Ellipse", "RegularPolygon", "Cylinder",
		"Sphere", "Cone", "Pyramid",
	}
	assert.Equal(t, want, ShapeNames())

	specs := List()
	require.Len(t, specs, len(want))
	for i, spec := range specs {
		assert.Equal(t, want[i], spec.Name)
	}

	// Listing twice gives the same order.
	assert.Equal(t, specs, List())
}

func TestListReturnsCopies(t *testing.T) {
	specs := List()
	specs[0].Params[model.CalcArea][0] = "mutated"
	assert.Equal(t, "l", List()[0].Params[model.CalcArea][0])
}

func TestCalculateFormulas(t *testing.T) {
	for _, tc := range []struct {
		name   string
		shape  string
		calc   model.CalcType
		params map[string]float64
		want   float64
	}{
		{"rectangle area", "Rectangle", model.CalcArea, map[string]float64{"l": 5, "w": 3}, 15},
		{"rectangle perimeter", "Rectangle", model.CalcPerimeter, map[string]float64{"l": 5, "w": 3}, 16},
		{"rectangle volume", "Rectangle", model.CalcVolume, map[string]float64{"l": 2, "w": 3, "h": 4}, 24},
		{"square area", "Square", model.CalcArea, map[string]float64{"s": 4}, 16},
		{"square volume", "Square", model.CalcVolume, map[string]float64{"s": 2, "h": 5}, 20},
		{"circle area", "Circle", model.CalcArea, map[string]float64{"r": 2}, 4 * math.Pi},
		{"circle perimeter", "Circle", model.CalcPerimeter, map[string]float64{"r": 1}, 2 * math.Pi},
		{"circle volume is ball volume", "Circle", model.CalcVolume, map[string]float64{"r": 3}, 36 * math.Pi},
		{"triangle area", "Triangle", model.CalcArea, map[string]float64{"b": 6, "h": 4}, 12},
		{"triangle perimeter", "Triangle", model.CalcPerimeter, map[string]float64{"b": 3, "s": 4, "side3": 5}, 12},
		{"triangle volume", "Triangle", model.CalcVolume, map[string]float64{"b": 6, "h": 4, "depth": 2}, 24},
		{"trapezoid area", "Trapezoid", model.CalcArea, map[string]float64{"top_base": 3, "bottom_base": 5, "h": 4}, 16},
		{"trapezoid perimeter", "Trapezoid", model.CalcPerimeter,
			map[string]float64{"top_base": 3, "bottom_base": 5, "left_side": 2, "right_side": 2}, 12},
		{"parallelogram area", "Parallelogram", model.CalcArea, map[string]float64{"b": 4, "h": 3}, 12},
		{"parallelogram perimeter", "Parallelogram", model.CalcPerimeter, map[string]float64{"b": 4, "s": 3}, 14},
		{"ellipse area", "Ellipse", model.CalcArea, map[string]float64{"major": 3, "minor": 2}, 6 * math.Pi},
		{"polygon perimeter", "RegularPolygon", model.CalcPerimeter, map[string]float64{"s": 2, "vertices": 6}, 12},
		{"cylinder volume", "Cylinder", model.CalcVolume, map[string]float64{"r": 2, "h": 5}, 20 * math.Pi},
		{"cylinder surface", "Cylinder", model.CalcSurfaceArea, map[string]float64{"r": 2, "h": 3}, 20 * math.Pi},
		{"sphere volume", "Sphere", model.CalcVolume, map[string]float64{"r": 3}, 36 * math.Pi},
		{"sphere surface", "Sphere", model.CalcSurfaceArea, map[string]float64{"r": 2}, 16 * math.Pi},
		{"cone volume", "Cone", model.CalcVolume, map[string]float64{"r": 3, "h": 4}, 12 * math.Pi},
		{"cone surface", "Cone", model.CalcSurfaceArea, map[string]float64{"r": 3, "h": 4}, 24 * math.Pi},
		{"pyramid volume", "Pyramid", model.CalcVolume, map[string]float64{"base_area": 9, "h": 4}, 12},
		{"pyramid surface", "Pyramid", model.CalcSurfaceArea,
			map[string]float64{"base_area": 9, "base_perimeter": 12, "slant_height": 5}, 39},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, perr := Calculate(model.CalcRequest{Shape: tc.shape, Calc: tc.calc, Params: tc.params})
			require.Nil(t, perr)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCalculateEllipseRamanujan(t *testing.T) {
	got, perr := Calculate(model.CalcRequest{
		Shape:  "Ellipse",
		Calc:   model.CalcPerimeter,
		Params: map[string]float64{"major": 3, "minor": 2},
	})
	require.Nil(t, perr)

	a, b := 3.0, 2.0
	h := ((a - b) / (a + b)) * ((a - b) / (a + b))
	want := math.Pi * (a + b) * (1 + (3*h)/(10+math.Sqrt(4-3*h)))
	assert.InDelta(t, want, got, 1e-12)
}

func TestCalculateCircleDegenerateEllipse(t *testing.T) {
	// A circle rendered as an ellipse: Ramanujan is exact when a == b.
	got, perr := Calculate(model.CalcRequest{
		Shape:  "Ellipse",
		Calc:   model.CalcPerimeter,
		Params: map[string]float64{"major": 2, "minor": 2},
	})
	require.Nil(t, perr)
	assert.InDelta(t, 4*math.Pi, got, 1e-9)
}

func TestCalculateValidationOrder(t *testing.T) {
	for _, tc := range []struct {
		name string
		req  model.CalcRequest
		kind model.ErrorKind
	}{
		{"unknown shape", model.CalcRequest{Shape: "Hexagon", Calc: model.CalcArea}, model.ErrUnknownShape},
		{"unknown shape wins over bad calc", model.CalcRequest{Shape: "Hexagon", Calc: "girth"}, model.ErrUnknownShape},
		{"unknown calc type", model.CalcRequest{Shape: "Circle", Calc: "girth"}, model.ErrUnsupportedCalculation},
		{"unsupported calc", model.CalcRequest{Shape: "Sphere", Calc: model.CalcPerimeter}, model.ErrUnsupportedCalculation},
		{"missing parameter", model.CalcRequest{Shape: "Rectangle", Calc: model.CalcArea,
			Params: map[string]float64{"l": 5}}, model.ErrMissingParameter},
		{"negative radius", model.CalcRequest{Shape: "Circle", Calc: model.CalcArea,
			Params: map[string]float64{"r": -1}}, model.ErrInvalidParameter},
		{"zero side", model.CalcRequest{Shape: "Square", Calc: model.CalcArea,
			Params: map[string]float64{"s": 0}}, model.ErrInvalidParameter},
		{"nan parameter", model.CalcRequest{Shape: "Circle", Calc: model.CalcArea,
			Params: map[string]float64{"r": math.NaN()}}, model.ErrInvalidParameter},
		{"fractional vertices", model.CalcRequest{Shape: "RegularPolygon", Calc: model.CalcArea,
			Params: map[string]float64{"s": 1, "vertices": 4.5}}, model.ErrInvalidParameter},
		{"too few vertices", model.CalcRequest{Shape: "RegularPolygon", Calc: model.CalcArea,
			Params: map[string]float64{"s": 1, "vertices": 2}}, model.ErrInvalidParameter},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, perr := Calculate(tc.req)
			require.NotNil(t, perr)
			assert.Equal(t, tc.kind, perr.Kind)
			assert.NotEmpty(t, perr.Message)
		})
	}
}

func TestCalculateMissingListsAllParams(t *testing.T) {
	_, perr := Calculate(model.CalcRequest{Shape: "Triangle", Calc: model.CalcPerimeter,
		Params: map[string]float64{"b": 3}})
	require.NotNil(t, perr)
	assert.Equal(t, model.ErrMissingParameter, perr.Kind)
	assert.Contains(t, perr.Message, "s")
	assert.Contains(t, perr.Message, "side3")
}

func TestCalculateIgnoresExtraParams(t *testing.T) {
	got, perr := Calculate(model.CalcRequest{Shape: "Square", Calc: model.CalcArea,
		Params: map[string]float64{"s": 3, "bogus": -1}})
	require.Nil(t, perr)
	assert.InDelta(t, 9, got, 1e-12)
}

func TestCatalogConcurrentReads(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_, perr := Calculate(model.CalcRequest{Shape: "Circle", Calc: model.CalcArea,
					Params: map[string]float64{"r": 2}})
				if perr != nil {
					t.Error(perr)
					return
				}
				_ = List()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
