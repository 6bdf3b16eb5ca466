// Command mathsolver is the CLI for the solving pipeline and the shape
// formula registry.
//
// Usage:
//
//	mathsolver solve <expression> [name=value ...]
//	mathsolver question <text>
//	mathsolver calc <shape> <calcType> [name=value ...]
//	mathsolver shapes
//	mathsolver mcp
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	mathsolver "github.com/sakshiSakshi77/AI-powered-MathSolver"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run0())
}

func run0() int {
	level := slog.LevelInfo
	if os.Getenv("MATHSOLVER_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, os.Args[1:]); err != nil {
		slog.Error("fatal error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("a subcommand is required")
	}

	app, err := mathsolver.New(
		mathsolver.WithLogger(logger),
		mathsolver.WithVersion(version),
	)
	if err != nil {
		return err
	}
	defer func() { _ = app.Shutdown(context.Background()) }()

	switch args[0] {
	case "solve":
		return cmdSolve(ctx, app, args[1:])
	case "question":
		return cmdQuestion(ctx, app, args[1:])
	case "calc":
		return cmdCalc(ctx, app, args[1:])
	case "shapes":
		return cmdShapes(app)
	case "mcp":
		logger.Info("mcp server starting", "transport", "stdio", "version", version)
		return app.ServeMCP()
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func cmdSolve(ctx context.Context, app *mathsolver.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mathsolver solve <expression> [name=value ...]")
	}
	labels, err := parseLabels(args[1:])
	if err != nil {
		return err
	}
	resp := app.Solve(ctx, mathsolver.SolveRequest{
		Expression: args[0],
		Labels:     labels,
	})
	return printJSON(resp)
}

func cmdQuestion(ctx context.Context, app *mathsolver.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mathsolver question <text>")
	}
	resp := app.Solve(ctx, mathsolver.SolveRequest{
		Question: strings.Join(args, " "),
	})
	return printJSON(resp)
}

func cmdCalc(ctx context.Context, app *mathsolver.App, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: mathsolver calc <shape> <calcType> [name=value ...]")
	}
	params := map[string]float64{}
	for _, arg := range args[2:] {
		name, value, err := parsePair(arg)
		if err != nil {
			return err
		}
		params[name] = value
	}
	resp := app.Calculate(ctx, mathsolver.CalcRequest{
		Shape:  args[0],
		Calc:   mathsolver.CalcType(args[1]),
		Params: params,
	})
	return printJSON(resp)
}

func cmdShapes(app *mathsolver.App) error {
	return printJSON(app.Shapes())
}

func parseLabels(args []string) ([]mathsolver.Label, error) {
	labels := make([]mathsolver.Label, 0, len(args))
	for _, arg := range args {
		name, value, err := parsePair(arg)
		if err != nil {
			return nil, err
		}
		labels = append(labels, mathsolver.Label{Name: name, Value: value})
	}
	return labels, nil
}

func parsePair(arg string) (string, float64, error) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("argument %q is not name=value", arg)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("argument %q: %q is not a number", arg, raw)
	}
	return name, value, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Fprintf(os.Stderr, `mathsolver %s

Usage:
  mathsolver solve <expression> [name=value ...]   solve an expression, equation, or system
  mathsolver question <text>                       solve a natural-language question
  mathsolver calc <shape> <calcType> [name=value ...]
                                                   compute a geometric quantity
  mathsolver shapes                                list the shape catalog
  mathsolver mcp                                   serve the MCP protocol over stdio
`, version)
}
