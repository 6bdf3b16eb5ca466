// Package mathsolver is the public API for embedding the math solving
// pipeline: OCR-aware normalization, question extraction, label
// substitution, validation, and symbolic solving, plus a geometric formula
// registry.
//
//	app, err := mathsolver.New(
//	    mathsolver.WithVersion(version),
//	    mathsolver.WithLogger(logger),
//	)
//	if err != nil { ... }
//	resp := app.Solve(ctx, mathsolver.SolveRequest{Expression: "x+2=5"})
//
// The import graph enforces a strict no-cycle rule: mathsolver (root)
// imports internal/*, but internal/* never imports the root. Public types
// (SolveRequest, CalcResponse, ...) are standalone structs with no internal
// imports; conversion helpers live here because this is the only file that
// sees both sides of the boundary.
package mathsolver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/config"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/geometry"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/mcp"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/normalize"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/question"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/solver"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/symbolic"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/telemetry"
)

// App is the configured solver. Construct with New(); App has no public
// fields and is safe for concurrent use.
type App struct {
	cfg          config.Config
	pipeline     *solver.Pipeline
	logger       *slog.Logger
	version      string
	otelShutdown telemetry.Shutdown
}

// New initialises the solver: loads configuration from the environment
// (plus .env when present), builds the correction table and lead-in set,
// wires telemetry, and returns a ready App. It starts no goroutines.
func New(opts ...Option) (*App, error) {
	o := resolvedOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	version := o.version
	if version == "" {
		version = "dev"
	}

	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	timeout := cfg.SolveTimeout
	if o.hasTimeout {
		timeout = o.solveTimeout
	}
	degreeMode := cfg.DegreeMode || o.degreeMode

	otelShutdown, err := telemetry.Init(context.Background(),
		cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	normalizer, err := buildNormalizer(cfg, o.corrections)
	if err != nil {
		return nil, err
	}
	preprocessor, err := buildPreprocessor(cfg, o.leadIns)
	if err != nil {
		return nil, err
	}

	var backend symbolic.Backend = symbolic.NewEngine()
	if o.backend != nil {
		backend = backendAdapter{b: o.backend}
	}

	pipeline := solver.New(normalizer, preprocessor, backend, logger, timeout, degreeMode)

	logger.Info("mathsolver ready",
		"version", version,
		"solve_timeout", timeout.String(),
		"degree_mode", degreeMode)

	return &App{
		cfg:          cfg,
		pipeline:     pipeline,
		logger:       logger,
		version:      version,
		otelShutdown: otelShutdown,
	}, nil
}

func buildNormalizer(cfg config.Config, extra []Correction) (*normalize.Normalizer, error) {
	// Operator entries go ahead of the stock table: the scan applies the
	// first matching entry at each position, so earlier entries override.
	var table []normalize.Correction
	for _, c := range extra {
		table = append(table, normalize.Correction{From: c.From, To: c.To, Standalone: c.Standalone})
	}
	if cfg.CorrectionsFile != "" {
		loaded, err := normalize.LoadTable(cfg.CorrectionsFile)
		if err != nil {
			return nil, fmt.Errorf("corrections: %w", err)
		}
		table = append(table, loaded...)
	}
	return normalize.New(append(table, normalize.DefaultTable()...)), nil
}

func buildPreprocessor(cfg config.Config, extra []string) (*question.Preprocessor, error) {
	leadIns := question.DefaultLeadIns()
	if cfg.LeadInsFile != "" {
		loaded, err := question.LoadLeadIns(cfg.LeadInsFile)
		if err != nil {
			return nil, fmt.Errorf("lead-ins: %w", err)
		}
		leadIns = append(leadIns, loaded...)
	}
	for _, phrase := range extra {
		if trimmed := strings.TrimSpace(strings.ToLower(phrase)); trimmed != "" {
			leadIns = append(leadIns, trimmed)
		}
	}
	// Longest first so "what is" wins over a bare "what".
	sort.SliceStable(leadIns, func(i, j int) bool { return len(leadIns[i]) > len(leadIns[j]) })
	return question.New(leadIns), nil
}

// Solve runs the full solving pipeline for one request.
func (a *App) Solve(ctx context.Context, req SolveRequest) SolveResponse {
	resp := a.pipeline.Solve(ctx, toInternalSolveRequest(req))
	return toPublicSolveResponse(resp)
}

// SolveBatch solves independent requests concurrently and returns responses
// in request order. Failures stay in-band per response; the batch itself
// never fails.
func (a *App) SolveBatch(ctx context.Context, reqs []SolveRequest) []SolveResponse {
	out := make([]SolveResponse, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			out[i] = a.Solve(ctx, req)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return out
}

// Calculate computes one geometric quantity from the shape catalog. The
// lookup is pure and non-blocking; ctx is accepted for interface symmetry
// with Solve.
func (a *App) Calculate(ctx context.Context, req CalcRequest) CalcResponse {
	value, perr := geometry.Calculate(model.CalcRequest{
		Shape:  req.Shape,
		Calc:   model.CalcType(req.Calc),
		Params: req.Params,
	})
	if perr != nil {
		return CalcResponse{Status: "error", ErrorKind: ErrorKind(perr.Kind), Message: perr.Message}
	}
	return CalcResponse{Status: "ok", Value: value}
}

// Shapes lists the shape catalog in its stable definition order.
func (a *App) Shapes() []ShapeSpec {
	specs := geometry.List()
	out := make([]ShapeSpec, len(specs))
	for i, spec := range specs {
		params := make(map[CalcType][]string, len(spec.Params))
		for calc, names := range spec.Params {
			params[CalcType(calc)] = names
		}
		out[i] = ShapeSpec{Name: spec.Name, Params: params}
	}
	return out
}

// ServeMCP serves the Model Context Protocol over stdin/stdout, blocking
// until the transport closes.
func (a *App) ServeMCP() error {
	return mcp.New(a.pipeline, a.logger, a.version).ServeStdio()
}

// Version returns the version string the App was built with.
func (a *App) Version() string { return a.version }

// Shutdown flushes telemetry. Call during graceful shutdown.
func (a *App) Shutdown(ctx context.Context) error {
	if a.otelShutdown == nil {
		return nil
	}
	return a.otelShutdown(ctx)
}

// backendAdapter lets a caller-supplied Backend stand in for the internal
// engine. The public and internal Expr interfaces are structurally
// identical, so values pass through unchanged.
type backendAdapter struct {
	b Backend
}

func (a backendAdapter) Parse(text string) (symbolic.Expr, error) {
	return a.b.Parse(text)
}

func (a backendAdapter) FreeVariables(e symbolic.Expr) []string {
	return a.b.FreeVariables(e)
}

func (a backendAdapter) Evaluate(ctx context.Context, e symbolic.Expr) (float64, string, error) {
	return a.b.Evaluate(ctx, e)
}

func (a backendAdapter) SolveEquation(ctx context.Context, lhs, rhs symbolic.Expr, unknown string) ([]float64, error) {
	return a.b.SolveEquation(ctx, lhs, rhs, unknown)
}

func (a backendAdapter) SolveSystem(ctx context.Context, eqs []symbolic.Equation, unknowns []string) (map[string]float64, error) {
	pub := make([]Equation, len(eqs))
	for i, eq := range eqs {
		pub[i] = Equation{LHS: eq.LHS, RHS: eq.RHS}
	}
	return a.b.SolveSystem(ctx, pub, unknowns)
}

func toInternalSolveRequest(req SolveRequest) model.SolveRequest {
	labels := make([]model.Label, len(req.Labels))
	for i, l := range req.Labels {
		labels[i] = model.Label{Name: l.Name, Value: l.Value}
	}
	return model.SolveRequest{
		Expression: req.Expression,
		Question:   req.Question,
		Labels:     labels,
	}
}

func toPublicSolveResponse(resp model.SolveResponse) SolveResponse {
	out := SolveResponse{
		Status:    resp.Status,
		Value:     resp.Value,
		Symbolic:  resp.Symbolic,
		ErrorKind: ErrorKind(resp.ErrorKind),
		Message:   resp.Message,
	}
	if len(resp.Assignments) > 0 {
		out.Assignments = make([]Assignment, len(resp.Assignments))
		for i, a := range resp.Assignments {
			out.Assignments[i] = Assignment{Var: a.Var, Value: a.Value}
		}
	}
	return out
}
