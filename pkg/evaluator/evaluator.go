package evaluator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/ishanwen-byte/pfga-go/internal/types"
	"github.com/ishanwen-byte/pfga-go/pkg/genome"
)

// Evaluator runs genome evaluation hooks and waits for all of them
type Evaluator struct {
	config types.EvaluatorConfig
	logger *logrus.Logger

	mu    sync.Mutex
	stats types.EvaluationStats
}

// New creates a new Evaluator instance
func New(config types.EvaluatorConfig) *Evaluator {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	if config.ParallelWorkers < 1 {
		config.ParallelWorkers = 1
	}

	return &Evaluator{
		config: config,
		logger: logger,
	}
}

// SetLogger replaces the evaluator's logger
func (e *Evaluator) SetLogger(logger *logrus.Logger) {
	e.logger = logger
}

// EvaluateAll evaluates every genome and returns once all have finished.
// With a single worker genomes are evaluated one after another in argument
// order. Evaluation failures and timeouts are recorded on the genome and
// counted, not returned; the only error is the caller's context error.
func (e *Evaluator) EvaluateAll(ctx context.Context, genomes ...*genome.Genome) error {
	if e.config.ParallelWorkers == 1 || len(genomes) < 2 {
		for _, g := range genomes {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.evaluate(ctx, g)
		}
		return ctx.Err()
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(e.config.ParallelWorkers)
	for _, g := range genomes {
		g := g
		p.Go(func(ctx context.Context) error {
			e.evaluate(ctx, g)
			return nil
		})
	}
	_ = p.Wait()

	return ctx.Err()
}

// evaluate runs a single hook under the configured timeout
func (e *Evaluator) evaluate(ctx context.Context, g *genome.Genome) {
	evalCtx := ctx
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(ctx, time.Duration(e.config.Timeout)*time.Second)
		defer cancel()
	}

	startTime := time.Now()
	err := g.Evaluate(evalCtx)
	duration := time.Since(startTime)

	e.mu.Lock()
	e.stats.TotalEvaluations++
	timedOut := err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(evalCtx.Err(), context.DeadlineExceeded))
	switch {
	case timedOut:
		e.stats.TimedOutEvals++
	case err != nil:
		e.stats.FailedEvals++
	}
	e.mu.Unlock()

	fields := logrus.Fields{
		"genome":   genome.ShortID(g),
		"duration": duration,
	}
	switch {
	case timedOut:
		e.logger.WithFields(fields).Warn("Genome evaluation timed out, fitness left stale")
	case err != nil:
		e.logger.WithFields(fields).WithError(err).Warn("Genome evaluation failed")
	default:
		e.logger.WithFields(fields).Debug("Genome evaluated")
	}
}

// Stats returns a snapshot of the evaluation counters
func (e *Evaluator) Stats() types.EvaluationStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stats
}
