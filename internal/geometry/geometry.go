// Package geometry is the closed catalog of shape formulas: twelve shapes,
// each with per-calculation required parameter lists. The catalog is built
// once at package init and read-only afterwards, so concurrent Calculate
// calls need no locking.
package geometry

import (
	"math"
	"sort"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
)

// formula computes one quantity from a validated parameter map. Every
// required parameter is present and positive by the time a formula runs.
type formula func(p map[string]float64) float64

type calcSpec struct {
	params []string
	fn     formula
}

// ShapeSpec describes one catalog entry: the shape name and, per supported
// calculation, the parameters it requires in declaration order.
type ShapeSpec struct {
	Name   string                      `json:"name"`
	Params map[model.CalcType][]string `json:"calculations"`
}

type shapeEntry struct {
	name  string
	calcs map[model.CalcType]calcSpec
}

// catalogOrder fixes the listing order; catalog indexes the same entries by
// name for dispatch.
var (
	catalogOrder []shapeEntry
	catalog      map[string]*shapeEntry
)

func init() {
	catalogOrder = []shapeEntry{
		{name: "Rectangle", calcs: map[model.CalcType]calcSpec{
			model.CalcArea:      {[]string{"l", "w"}, func(p map[string]float64) float64 { return p["l"] * p["w"] }},
			model.CalcPerimeter: {[]string{"l", "w"}, func(p map[string]float64) float64 { return 2 * (p["l"] + p["w"]) }},
			model.CalcVolume:    {[]string{"l", "w", "h"}, func(p map[string]float64) float64 { return p["l"] * p["w"] * p["h"] }},
		}},
		{name: "Square", calcs: map[model.CalcType]calcSpec{
			model.CalcArea:      {[]string{"s"}, func(p map[string]float64) float64 { return p["s"] * p["s"] }},
			model.CalcPerimeter: {[]string{"s"}, func(p map[string]float64) float64 { return 4 * p["s"] }},
			model.CalcVolume:    {[]string{"s", "h"}, func(p map[string]float64) float64 { return p["s"] * p["s"] * p["h"] }},
		}},
		{name: "Circle", calcs: map[model.CalcType]calcSpec{
			model.CalcArea:      {[]string{"r"}, func(p map[string]float64) float64 { return math.Pi * p["r"] * p["r"] }},
			model.CalcPerimeter: {[]string{"r"}, func(p map[string]float64) float64 { return 2 * math.Pi * p["r"] }},
			// Volume and surface area treat r as the radius of the ball.
			model.CalcVolume:      {[]string{"r"}, sphereVolume},
			model.CalcSurfaceArea: {[]string{"r"}, sphereSurface},
		}},
		{name: "Triangle", calcs: map[model.CalcType]calcSpec{
			model.CalcArea:      {[]string{"b", "h"}, func(p map[string]float64) float64 { return 0.5 * p["b"] * p["h"] }},
			model.CalcPerimeter: {[]string{"b", "s", "side3"}, func(p map[string]float64) float64 { return p["b"] + p["s"] + p["side3"] }},
			model.CalcVolume:    {[]string{"b", "h", "depth"}, func(p map[string]float64) float64 { return 0.5 * p["b"] * p["h"] * p["depth"] }},
		}},
		{name: "Trapezoid", calcs: map[model.CalcType]calcSpec{
			model.CalcArea: {[]string{"top_base", "bottom_base", "h"}, func(p map[string]float64) float64 {
				return 0.5 * (p["top_base"] + p["bottom_base"]) * p["h"]
			}},
			model.CalcPerimeter: {[]string{"top_base", "bottom_base", "left_side", "right_side"}, func(p map[string]float64) float64 {
				return p["top_base"] + p["bottom_base"] + p["left_side"] + p["right_side"]
			}},
		}},
		{name: "Parallelogram", calcs: map[model.CalcType]calcSpec{
			model.CalcArea:      {[]string{"b", "h"}, func(p map[string]float64) float64 { return p["b"] * p["h"] }},
			model.CalcPerimeter: {[]string{"b", "s"}, func(p map[string]float64) float64 { return 2 * (p["b"] + p["s"]) }},
		}},
		{name: "Ellipse", calcs: map[model.CalcType]calcSpec{
			model.CalcArea: {[]string{"major", "minor"}, func(p map[string]float64) float64 {
				return math.Pi * p["major"] * p["minor"]
			}},
			model.CalcPerimeter: {[]string{"major", "minor"}, ellipsePerimeter},
		}},
		{name: "RegularPolygon", calcs: map[model.CalcType]calcSpec{
			model.CalcArea: {[]string{"s", "vertices"}, func(p map[string]float64) float64 {
				n := p["vertices"]
				return (n * p["s"] * p["s"]) / (4 * math.Tan(math.Pi/n))
			}},
			model.CalcPerimeter: {[]string{"s", "vertices"}, func(p map[string]float64) float64 {
				return p["vertices"] * p["s"]
			}},
		}},
		{name: "Cylinder", calcs: map[model.CalcType]calcSpec{
			model.CalcVolume: {[]string{"r", "h"}, func(p map[string]float64) float64 {
				return math.Pi * p["r"] * p["r"] * p["h"]
			}},
			model.CalcSurfaceArea: {[]string{"r", "h"}, func(p map[string]float64) float64 {
				return 2 * math.Pi * p["r"] * (p["r"] + p["h"])
			}},
		}},
		{name: "Sphere", calcs: map[model.CalcType]calcSpec{
			model.CalcVolume:      {[]string{"r"}, sphereVolume},
			model.CalcSurfaceArea: {[]string{"r"}, sphereSurface},
		}},
		{name: "Cone", calcs: map[model.CalcType]calcSpec{
			model.CalcVolume: {[]string{"r", "h"}, func(p map[string]float64) float64 {
				return math.Pi * p["r"] * p["r"] * p["h"] / 3
			}},
			model.CalcSurfaceArea: {[]string{"r", "h"}, func(p map[string]float64) float64 {
				slant := math.Sqrt(p["r"]*p["r"] + p["h"]*p["h"])
				return math.Pi * p["r"] * (p["r"] + slant)
			}},
		}},
		{name: "Pyramid", calcs: map[model.CalcType]calcSpec{
			model.CalcVolume: {[]string{"base_area", "h"}, func(p map[string]float64) float64 {
				return p["base_area"] * p["h"] / 3
			}},
			model.CalcSurfaceArea: {[]string{"base_area", "base_perimeter", "slant_height"}, func(p map[string]float64) float64 {
				return p["base_area"] + 0.5*p["base_perimeter"]*p["slant_height"]
			}},
		}},
	}

	catalog = make(map[string]*shapeEntry, len(catalogOrder))
	for i := range catalogOrder {
		catalog[catalogOrder[i].name] = &catalogOrder[i]
	}
}

func sphereVolume(p map[string]float64) float64 {
	r := p["r"]
	return 4.0 / 3.0 * math.Pi * r * r * r
}

func sphereSurface(p map[string]float64) float64 {
	r := p["r"]
	return 4 * math.Pi * r * r
}

// ellipsePerimeter is Ramanujan's approximation.
func ellipsePerimeter(p map[string]float64) float64 {
	a, b := p["major"], p["minor"]
	h := ((a - b) / (a + b)) * ((a - b) / (a + b))
	return math.Pi * (a + b) * (1 + (3*h)/(10+math.Sqrt(4-3*h)))
}

// List returns the catalog in its stable definition order. The returned
// specs are fresh copies; callers may not mutate the catalog through them.
func List() []ShapeSpec {
	out := make([]ShapeSpec, 0, len(catalogOrder))
	for _, entry := range catalogOrder {
		spec := ShapeSpec{Name: entry.name, Params: make(map[model.CalcType][]string, len(entry.calcs))}
		for calc, cs := range entry.calcs {
			params := make([]string, len(cs.params))
			copy(params, cs.params)
			spec.Params[calc] = params
		}
		out = append(out, spec)
	}
	return out
}

// ShapeNames returns the shape names in catalog order.
func ShapeNames() []string {
	out := make([]string, len(catalogOrder))
	for i, entry := range catalogOrder {
		out[i] = entry.name
	}
	return out
}

// Calculate validates the request in a fixed order (shape, calculation,
// missing parameters, invalid parameters) and dispatches to the formula.
// Validation failures come back as typed errors, never partial results.
func Calculate(req model.CalcRequest) (float64, *model.PipelineError) {
	entry, ok := catalog[req.Shape]
	if !ok {
		return 0, model.Errf(model.ErrUnknownShape, "unknown shape %q", req.Shape)
	}

	if !req.Calc.Valid() {
		return 0, model.Errf(model.ErrUnsupportedCalculation,
			"unknown calculation type %q", string(req.Calc))
	}
	cs, ok := entry.calcs[req.Calc]
	if !ok {
		return 0, model.Errf(model.ErrUnsupportedCalculation,
			"%s does not support %s", req.Shape, string(req.Calc))
	}

	var missing []string
	for _, name := range cs.params {
		if _, present := req.Params[name]; !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return 0, model.Errf(model.ErrMissingParameter,
			"%s %s requires parameter(s) %v", req.Shape, string(req.Calc), missing)
	}

	for _, name := range cs.params {
		v := req.Params[name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, model.Errf(model.ErrInvalidParameter,
				"parameter %q must be a finite number", name)
		}
		if v <= 0 {
			return 0, model.Errf(model.ErrInvalidParameter,
				"parameter %q must be positive, got %v", name, v)
		}
		if name == "vertices" {
			if v != math.Trunc(v) {
				return 0, model.Errf(model.ErrInvalidParameter,
					"parameter %q must be an integer, got %v", name, v)
			}
			if v < 3 {
				return 0, model.Errf(model.ErrInvalidParameter,
					"parameter %q must be at least 3, got %v", name, v)
			}
		}
	}

	return cs.fn(req.Params), nil
}
