// Package solver is the orchestrator: it runs a raw request through
// normalization, question extraction, label substitution, and structural
// validation, then classifies the problem and dispatches to the symbolic
// backend. Every call is independent; the pipeline holds no per-request
// state.
package solver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/labels"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/model"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/normalize"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/question"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/symbolic"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/telemetry"
	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/validate"
)

var (
	tracer = otel.Tracer("mathsolver/solver")
	meter  = telemetry.Meter("mathsolver/solver")
)

// Pipeline wires the pipeline stages around a symbolic backend.
type Pipeline struct {
	normalizer *normalize.Normalizer
	questions  *question.Preprocessor
	backend    symbolic.Backend
	logger     *slog.Logger

	// timeout bounds each backend dispatch; zero means no bound beyond
	// the caller's context.
	timeout time.Duration

	// degreeMode reinterprets trig-call arguments as degrees.
	degreeMode bool
}

// New builds a pipeline. Nil stage arguments fall back to defaults; a nil
// backend falls back to the in-process engine.
func New(n *normalize.Normalizer, q *question.Preprocessor, backend symbolic.Backend, logger *slog.Logger, timeout time.Duration, degreeMode bool) *Pipeline {
	if n == nil {
		n = normalize.New(normalize.DefaultTable())
	}
	if q == nil {
		q = question.New(question.DefaultLeadIns())
	}
	if backend == nil {
		backend = symbolic.NewEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		normalizer: n,
		questions:  q,
		backend:    backend,
		logger:     logger,
		timeout:    timeout,
		degreeMode: degreeMode,
	}
}

// Solve runs the full pipeline for one request. It never panics and never
// returns a partial result: either a typed success or a typed failure.
func (p *Pipeline) Solve(ctx context.Context, req model.SolveRequest) model.SolveResponse {
	reqID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "solver.Solve",
		trace.WithAttributes(attribute.String("mathsolver.request_id", reqID)))
	defer span.End()

	start := time.Now()
	resp := p.run(ctx, reqID, req)

	outcome := "ok"
	if !resp.OK() {
		outcome = string(resp.ErrorKind)
	}
	span.SetAttributes(attribute.String("mathsolver.outcome", outcome))

	attrs := otelmetric.WithAttributes(attribute.String("outcome", outcome))
	if counter, err := meter.Int64Counter("mathsolver.solve.total"); err == nil {
		counter.Add(ctx, 1, attrs)
	}
	if hist, err := meter.Float64Histogram("mathsolver.solve.duration",
		otelmetric.WithUnit("ms")); err == nil {
		hist.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
	}

	if resp.OK() {
		p.logger.InfoContext(ctx, "solve completed",
			"request_id", reqID,
			"duration_ms", time.Since(start).Milliseconds())
	} else {
		p.logger.InfoContext(ctx, "solve failed",
			"request_id", reqID,
			"error_kind", string(resp.ErrorKind),
			"message", resp.Message,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return resp
}

func (p *Pipeline) run(ctx context.Context, reqID string, req model.SolveRequest) model.SolveResponse {
	// Stage 1: choose the candidate text. Expression wins when both are set.
	text := req.Expression
	if text == "" {
		text = p.questions.Extract(req.Question)
	}
	p.logger.DebugContext(ctx, "candidate text", "request_id", reqID, "text", text)

	// Stage 2: OCR corrections.
	text = p.normalizer.Normalize(text)
	p.logger.DebugContext(ctx, "normalized", "request_id", reqID, "text", text)

	// Stage 3: labels.
	if perr := model.ValidateLabels(req.Labels); perr != nil {
		return model.FailureResponse(perr)
	}
	text, used := labels.Substitute(text, req.Labels)
	if len(used) > 0 {
		p.logger.DebugContext(ctx, "labels substituted", "request_id", reqID, "used", used)
	}

	// Stage 4: structural validation per equation chunk. The backend is
	// never called for input that fails here.
	chunks := splitChunks(text)
	if len(chunks) == 0 {
		return model.FailureResponse(model.Errf(model.ErrInvalidCharacter, "empty expression"))
	}
	for _, chunk := range chunks {
		if perr := validate.Check(chunk); perr != nil {
			return model.FailureResponse(perr)
		}
		if strings.Count(chunk, "=") > 1 {
			return model.FailureResponse(model.Errf(model.ErrMalformedOperatorSequence,
				"more than one equals sign in %q", chunk))
		}
	}

	// Stage 5: degree-mode trig conversion, on validated text only.
	if p.degreeMode {
		for i, chunk := range chunks {
			chunks[i] = convertDegrees(chunk)
		}
		p.logger.DebugContext(ctx, "degree conversion applied", "request_id", reqID)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// Remaining stages: parse, classify, dispatch.
	switch {
	case len(chunks) == 1 && !strings.Contains(chunks[0], "="):
		return p.evaluate(ctx, chunks[0])
	case len(chunks) == 1:
		return p.solveEquation(ctx, chunks[0])
	default:
		return p.solveSystem(ctx, chunks)
	}
}

// splitChunks splits a multi-equation input on ';' and drops blanks, so a
// trailing semicolon is not an error.
func splitChunks(text string) []string {
	parts := strings.Split(text, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// evaluate handles the no-equals branch: a bare arithmetic expression.
func (p *Pipeline) evaluate(ctx context.Context, text string) model.SolveResponse {
	expr, err := p.backend.Parse(text)
	if err != nil {
		return model.FailureResponse(p.backendFailure(ctx, err))
	}
	if free := p.backend.FreeVariables(expr); len(free) > 0 {
		return model.FailureResponse(model.Errf(model.ErrUnresolvedVariable,
			"unresolved variable(s): %s", strings.Join(free, ", ")))
	}
	value, exact, err := p.backend.Evaluate(ctx, expr)
	if err != nil {
		return model.FailureResponse(p.backendFailure(ctx, err))
	}
	return model.ValueResponse(value, exact)
}

// parsedEquation is one '='-separated chunk after backend parsing.
type parsedEquation struct {
	lhs, rhs symbolic.Expr
}

func (p *Pipeline) parseEquation(ctx context.Context, chunk string, unknowns *[]string, seen map[string]struct{}) (parsedEquation, *model.PipelineError) {
	sides := strings.SplitN(chunk, "=", 2)
	if len(sides) != 2 {
		return parsedEquation{}, model.Errf(model.ErrMalformedOperatorSequence,
			"equation %q is missing an equals sign", chunk)
	}
	lhs, err := p.backend.Parse(sides[0])
	if err != nil {
		return parsedEquation{}, p.backendFailure(ctx, err)
	}
	rhs, err := p.backend.Parse(sides[1])
	if err != nil {
		return parsedEquation{}, p.backendFailure(ctx, err)
	}
	for _, side := range []symbolic.Expr{lhs, rhs} {
		for _, name := range p.backend.FreeVariables(side) {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				*unknowns = append(*unknowns, name)
			}
		}
	}
	return parsedEquation{lhs: lhs, rhs: rhs}, nil
}

// solveEquation handles a single chunk containing one '='.
func (p *Pipeline) solveEquation(ctx context.Context, chunk string) model.SolveResponse {
	var unknowns []string
	eq, perr := p.parseEquation(ctx, chunk, &unknowns, map[string]struct{}{})
	if perr != nil {
		return model.FailureResponse(perr)
	}

	switch len(unknowns) {
	case 0:
		// A variable-free equation is a claim: true yields an empty
		// assignment set, false is unsolvable.
		lv, _, err := p.backend.Evaluate(ctx, eq.lhs)
		if err != nil {
			return model.FailureResponse(p.backendFailure(ctx, err))
		}
		rv, _, err := p.backend.Evaluate(ctx, eq.rhs)
		if err != nil {
			return model.FailureResponse(p.backendFailure(ctx, err))
		}
		if lv != rv {
			return model.FailureResponse(model.Errf(model.ErrSolveBackend,
				"equation has no solution: %s != %s", symbolic.FormatFloat(lv), symbolic.FormatFloat(rv)))
		}
		return model.AssignmentsResponse(nil)

	case 1:
		roots, err := p.backend.SolveEquation(ctx, eq.lhs, eq.rhs, unknowns[0])
		if err != nil {
			return model.FailureResponse(p.backendFailure(ctx, err))
		}
		assignments := make([]model.Assignment, 0, len(roots))
		for _, root := range roots {
			assignments = append(assignments, model.Assignment{Var: unknowns[0], Value: root})
		}
		return model.AssignmentsResponse(assignments)

	default:
		// One equation cannot pin several unknowns; let the system solver
		// produce the diagnosis.
		solved, err := p.backend.SolveSystem(ctx, []symbolic.Equation{{LHS: eq.lhs, RHS: eq.rhs}}, unknowns)
		if err != nil {
			return model.FailureResponse(p.backendFailure(ctx, err))
		}
		return model.AssignmentsResponse(orderAssignments(solved, unknowns))
	}
}

// solveSystem handles ';'-separated equations. Every chunk must carry an
// equals sign.
func (p *Pipeline) solveSystem(ctx context.Context, chunks []string) model.SolveResponse {
	var unknowns []string
	seen := map[string]struct{}{}
	eqs := make([]symbolic.Equation, 0, len(chunks))
	for _, chunk := range chunks {
		if !strings.Contains(chunk, "=") {
			return model.FailureResponse(model.Errf(model.ErrMalformedOperatorSequence,
				"system member %q has no equals sign", chunk))
		}
		eq, perr := p.parseEquation(ctx, chunk, &unknowns, seen)
		if perr != nil {
			return model.FailureResponse(perr)
		}
		eqs = append(eqs, symbolic.Equation{LHS: eq.lhs, RHS: eq.rhs})
	}
	if len(unknowns) == 0 {
		return model.FailureResponse(model.Errf(model.ErrSolveBackend,
			"system contains no unknowns"))
	}

	solved, err := p.backend.SolveSystem(ctx, eqs, unknowns)
	if err != nil {
		return model.FailureResponse(p.backendFailure(ctx, err))
	}
	return model.AssignmentsResponse(orderAssignments(solved, unknowns))
}

// orderAssignments renders the solver's map in first-appearance order.
func orderAssignments(solved map[string]float64, unknowns []string) []model.Assignment {
	out := make([]model.Assignment, 0, len(solved))
	for _, name := range unknowns {
		if v, ok := solved[name]; ok {
			out = append(out, model.Assignment{Var: name, Value: v})
		}
	}
	return out
}

// backendFailure maps a backend error to the pipeline taxonomy: context
// expiry means the backend was unavailable within its budget, anything else
// is a solve failure. Neither is retried.
func (p *Pipeline) backendFailure(ctx context.Context, err error) *model.PipelineError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return model.Errf(model.ErrBackendUnavailable, "solve backend unavailable: %v", err)
	}
	return model.Errf(model.ErrSolveBackend, "%v", err)
}
