// Package engine evaluates region expressions written in a small Lisp.
// It wraps zygomys in a sandboxed environment and produces an interval set
// from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"

	"github.com/chazu/partition/pkg/intervals"
	"github.com/chazu/partition/pkg/matherr"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for region evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	timeout   time.Duration
	tolerance float64
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the hard limit for a single evaluation.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithTolerance sets the tolerance of the cuts built by the interval builtin.
func WithTolerance(tol float64) Option {
	return func(e *Engine) { e.tolerance = tol }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		timeout:   EvalTimeout,
		tolerance: intervals.DefaultTolerance,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate takes Lisp source code and produces the region its last
// expression evaluates to. Each call creates a fresh zygomys sandbox for
// deterministic evaluation.
//
// Return semantics:
//   - On success: returns set + nil errors + nil error
//   - On parse/eval failure: returns nil set + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error,
//     an evaluation error wrapping the cause
func (e *Engine) Evaluate(source string) (*intervals.Set, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	log := e.logger.With(zap.Uint64("generation", gen))
	log.Debug("Evaluating expression", zap.Int("bytes", len(source)))

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: matherr.New(matherr.KindEvaluation, matherr.EvaluationPanic, fmt.Sprint(r))}
			}
		}()

		set, evalErrs, err := e.evaluate(source)
		ch <- evalResult{set: set, errors: evalErrs, err: err}
	}()

	set, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
	if err != nil {
		err = matherr.Wrap(err, matherr.KindEvaluation, matherr.EvaluationFailed, err).
			SetContext("generation", gen)
	}
	switch {
	case err != nil:
		log.Warn("Evaluation failed", zap.Error(err))
	case len(evalErrs) > 0:
		log.Debug("Evaluation reported errors", zap.Int("count", len(evalErrs)), zap.String("first", evalErrs[0].Error()))
	default:
		log.Debug("Evaluation succeeded", zap.Stringer("set", set))
	}
	return set, evalErrs, err
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*intervals.Set, []EvalError, error) {
	// Empty source is a valid program that produces the empty set.
	if strings.TrimSpace(source) == "" {
		return intervals.Empty(e.tolerance), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, e.tolerance)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	value, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	region, ok := value.(*sexpRegion)
	if !ok {
		msg := matherr.New(matherr.KindEvaluation, matherr.ExpectedRegion, value.SexpString(nil)).Error()
		return nil, []EvalError{{Message: msg}}, nil
	}
	return region.set, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{
		Message: strings.TrimSpace(msg),
	}}
}
