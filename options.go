package mathsolver

import (
	"log/slog"
	"time"
)

// Option configures an App.
type Option func(*resolvedOptions)

// resolvedOptions holds all extension points after applying defaults.
// Unexported — callers use the With* functions.
type resolvedOptions struct {
	logger       *slog.Logger
	version      string
	backend      Backend
	corrections  []Correction
	leadIns      []string
	solveTimeout time.Duration
	hasTimeout   bool
	degreeMode   bool
}

// WithLogger sets the structured logger for the App.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithVersion sets the version string reported in logs and telemetry.
func WithVersion(version string) Option {
	return func(o *resolvedOptions) { o.version = version }
}

// WithBackend replaces the built-in symbolic engine with a custom
// implementation. Only the last call wins.
func WithBackend(b Backend) Option {
	return func(o *resolvedOptions) { o.backend = b }
}

// WithCorrections adds OCR correction entries ahead of the stock table and
// any entries loaded from MATHSOLVER_CORRECTIONS_FILE. Earlier entries win
// at each scan position, so an entry given here overrides a stock one for
// the same source text.
func WithCorrections(entries ...Correction) Option {
	return func(o *resolvedOptions) { o.corrections = append(o.corrections, entries...) }
}

// WithLeadIns adds question lead-in phrases recognized in addition to the
// defaults ("what is", "calculate", ...).
func WithLeadIns(phrases ...string) Option {
	return func(o *resolvedOptions) { o.leadIns = append(o.leadIns, phrases...) }
}

// WithSolveTimeout bounds each backend dispatch, overriding
// MATHSOLVER_SOLVE_TIMEOUT. Zero disables the bound.
func WithSolveTimeout(d time.Duration) Option {
	return func(o *resolvedOptions) {
		o.solveTimeout = d
		o.hasTimeout = true
	}
}

// WithDegreeMode makes the pipeline interpret trigonometric call arguments
// as degrees, so sin(90) evaluates to 1. Inverse trig inputs are ratios and
// stay untouched. Equivalent to MATHSOLVER_DEGREE_MODE=true.
func WithDegreeMode() Option {
	return func(o *resolvedOptions) { o.degreeMode = true }
}
