package engine

import (
	"sync"
	"time"

	"github.com/chazu/partition/pkg/intervals"
	"github.com/chazu/partition/pkg/matherr"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult is the internal type used to pass evaluation results through channels.
type evalResult struct {
	set    *intervals.Set
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds timeout. It uses a generation counter to
// discard stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*intervals.Set, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			// A newer evaluation was started; discard this result.
			return nil, nil, matherr.New(matherr.KindEvaluation, matherr.EvaluationSuperseded).
				SetContext("generation", gen)
		}

		return res.set, res.errors, res.err

	case <-timer.C:
		return nil, nil, matherr.New(matherr.KindEvaluation, matherr.EvaluationTimeout, timeout.String()).
			SetContext("generation", gen)
	}
}
