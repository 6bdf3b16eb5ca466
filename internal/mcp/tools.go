package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/geometry"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
)

func (s *Server) registerTools() {
	// solve_expression — run the full solving pipeline.
	s.mcpServer.AddTool(
		mcplib.NewTool("solve_expression",
			mcplib.WithDescription(`Solve a mathematical expression, equation, or system of equations.

Accepts noisy OCR-style input: common character misreads (l for 1, O for 0)
and unicode operators are corrected before solving. Natural-language
lead-ins like "What is ..." are stripped when the input is passed as a
question.

INPUT FORMS:
- Arithmetic: "2+3*4" returns the value.
- Equation: "x+2=5" returns the solved unknown(s); quadratics return both
  real roots.
- System: "x+y=3; x-y=1" — equations separated by semicolons.
- Labels bind variables to numbers before solving.

Provide exactly one of expression/question; expression wins if both are set.`),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("expression",
				mcplib.Description("The expression or equation to solve, e.g. \"2+3*4\" or \"x+2=5\""),
			),
			mcplib.WithString("question",
				mcplib.Description("A natural-language question containing the expression, e.g. \"What is 2+3?\""),
			),
			mcplib.WithObject("labels",
				mcplib.Description("Variable bindings applied before solving, e.g. {\"a\": 3, \"b\": 4}"),
			),
		),
		s.handleSolve,
	)

	// calculate_shape — one geometric quantity for one shape.
	s.mcpServer.AddTool(
		mcplib.NewTool("calculate_shape",
			mcplib.WithDescription(`Calculate a geometric quantity (area, perimeter, volume, surfaceArea) for a shape in the catalog.

Use list_shapes to discover the supported shapes and the parameters each
calculation requires. All length parameters must be strictly positive;
RegularPolygon additionally needs an integer vertices >= 3.

EXAMPLE: shape="Rectangle", calc_type="area", params={"l": 5, "w": 3}.`),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("shape",
				mcplib.Description("Catalog shape name, e.g. Rectangle, Circle, Cylinder"),
				mcplib.Required(),
			),
			mcplib.WithString("calc_type",
				mcplib.Description("One of: area, perimeter, volume, surfaceArea"),
				mcplib.Required(),
			),
			mcplib.WithObject("params",
				mcplib.Description("Shape parameters by name, e.g. {\"l\": 5, \"w\": 3}"),
				mcplib.Required(),
			),
		),
		s.handleCalculate,
	)

	// list_shapes — the static catalog.
	s.mcpServer.AddTool(
		mcplib.NewTool("list_shapes",
			mcplib.WithDescription("List the supported shapes with their calculation types and required parameters."),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
		),
		s.handleListShapes,
	)
}

func (s *Server) handleSolve(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	expression := request.GetString("expression", "")
	questionText := request.GetString("question", "")
	if expression == "" && questionText == "" {
		return errorResult("one of expression or question is required"), nil
	}

	labels, err := labelsFromArguments(request.GetArguments())
	if err != nil {
		return errorResult(err.Error()), nil
	}

	resp := s.pipeline.Solve(ctx, model.SolveRequest{
		Expression: expression,
		Question:   questionText,
		Labels:     labels,
	})
	if !resp.OK() {
		return errorResult(fmt.Sprintf("%s: %s", resp.ErrorKind, resp.Message)), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleCalculate(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	shape := request.GetString("shape", "")
	calcType := request.GetString("calc_type", "")
	if shape == "" || calcType == "" {
		return errorResult("shape and calc_type are required"), nil
	}

	params, err := numberMapArgument(request.GetArguments(), "params")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	value, perr := geometry.Calculate(model.CalcRequest{
		Shape:  shape,
		Calc:   model.CalcType(calcType),
		Params: params,
	})
	if perr != nil {
		return errorResult(fmt.Sprintf("%s: %s", perr.Kind, perr.Message)), nil
	}
	return jsonResult(model.CalcValue(value))
}

func (s *Server) handleListShapes(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	return jsonResult(geometry.List())
}

// labelsFromArguments reads the optional labels object. Keys are sorted so
// the substitution order does not depend on map iteration.
func labelsFromArguments(args map[string]any) ([]model.Label, error) {
	raw, ok := args["labels"]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("labels must be an object of name -> number")
	}

	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	labels := make([]model.Label, 0, len(names))
	for _, name := range names {
		v, ok := obj[name].(float64)
		if !ok {
			return nil, fmt.Errorf("label %q must be a number", name)
		}
		labels = append(labels, model.Label{Name: name, Value: v})
	}
	return labels, nil
}

func numberMapArgument(args map[string]any, key string) (map[string]float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return map[string]float64{}, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object of name -> number", key)
	}
	out := make(map[string]float64, len(obj))
	for name, v := range obj {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%s %q must be a number", key, name)
		}
		out[name] = f
	}
	return out, nil
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encode result: %v", err)), nil
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: string(data)},
		},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
