package main

import (
	"go.uber.org/zap"

	"github.com/chazu/partition/pkg/config"
	"github.com/chazu/partition/pkg/engine"
	"github.com/chazu/partition/pkg/intervals"
	"github.com/chazu/partition/pkg/partition"
)

// App is the command-line backend. It owns the expression engine and turns
// evaluated regions into printable results.
type App struct {
	engine *engine.Engine
	logger *zap.Logger
}

// EvalErrorData is an eval error as reported to the user.
type EvalErrorData struct {
	Line    int
	Message string
}

// EvalResult is the full result of evaluating one expression.
type EvalResult struct {
	Set    *intervals.Set
	Pieces []intervals.Interval
	Size   float64

	// Barycenter is only meaningful when HasBarycenter is set.
	Barycenter    float64
	HasBarycenter bool

	Inf float64
	Sup float64

	Errors []EvalErrorData
}

// NewApp creates a new App whose engine follows cfg.
func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.EvalTimeout),
			engine.WithTolerance(cfg.Tolerance),
			engine.WithLogger(logger.Named("engine")),
		),
		logger: logger,
	}
}

// Evaluate takes Lisp source and returns the region it denotes together
// with its metrics, or the errors that prevented evaluation.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Pieces: []intervals.Interval{},
		Errors: []EvalErrorData{},
	}

	set, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.logger.Error("Evaluate fatal error", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Message: e.Message,
			})
		}
		return result
	}

	result.Set = set
	result.Pieces = append(result.Pieces, set.AsList()...)
	result.Size = set.Size()
	result.Inf = set.Inf()
	result.Sup = set.Sup()

	if b, err := set.Barycenter(); err == nil {
		result.Barycenter = float64(b)
		result.HasBarycenter = true
	} else {
		a.logger.Debug("No barycenter", zap.Error(err))
	}

	return result
}

// Check evaluates source and locates each abscissa against the result.
// Locations are nil when evaluation failed.
func (a *App) Check(source string, xs []float64) ([]partition.Location, EvalResult) {
	result := a.Evaluate(source)
	if result.Set == nil {
		return nil, result
	}

	locations := make([]partition.Location, len(xs))
	for i, x := range xs {
		locations[i] = result.Set.CheckPoint(intervals.Point(x))
	}
	return locations, result
}
