// Package worker runs the per-player evaluation stage of a ranking pass.
//
// Workers drain jobs off the queue, evaluate each candidate's window,
// source and metrics, and hand the outcomes to a collector. The pool is
// created per run and drains to completion when the queue closes.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/scoutline/pennant/internal/adapters/mq/queue"
	"github.com/scoutline/pennant/internal/domain/model"
	"github.com/scoutline/pennant/pkg/logger"
	"github.com/scoutline/pennant/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
)

// Job is what workers read off the queue.
type Job = queue.Job

// Outcome is one candidate's evaluated state, ready for cohort
// percentile ranking and assembly.
type Outcome struct {
	Meta         model.PlayerMeta
	Window       model.Window
	Source       model.Source
	Metrics      map[model.Metric]model.MetricValue
	TrendMetrics map[model.Metric]model.MetricValue
	Grade        *model.ScoutingGrade
	Prediction   *model.MLPrediction
}

// Evaluator computes the outcome for one candidate.
type Evaluator interface {
	Evaluate(ctx context.Context, job Job) (Outcome, error)
}

// Collector receives evaluated outcomes.
type Collector interface {
	Collect(ctx context.Context, o Outcome)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs until its channel drains or ctx is canceled.
type Worker struct {
	queue     Queue
	evaluator Evaluator
	collector Collector
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a new worker with configuration options.
func NewWorker(q Queue, evaluator Evaluator, collector Collector, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		evaluator: evaluator,
		collector: collector,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "evaluation failed", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker before its channel drains.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process evaluates a single candidate.
func (w *Worker) process(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	evalStart := time.Now()
	outcome, err := w.evaluator.Evaluate(ctx, job)
	metrics.RecordEvaluationLatency(float64(time.Since(evalStart).Milliseconds()))

	if err != nil {
		metrics.RecordEvaluationError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "evaluation_error")
		w.logger.Error(ctx, "evaluation failed for player",
			logger.String("playerID", job.Meta.PlayerID),
			logger.Error(err),
		)
		return fmt.Errorf("evaluate player %s: %w", job.Meta.PlayerID, err)
	}

	metrics.RecordPlayerBySource(string(outcome.Source))
	w.collector.Collect(ctx, outcome)

	return nil
}

// Pool manages multiple workers for one ranking pass.
type Pool struct {
	workers []*Worker

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool. A count below one sizes the pool
// from the CPU count.
func NewPool(workerCount int, q Queue, evaluator Evaluator, collector Collector) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*Worker, workerCount),
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(
			q,
			evaluator,
			collector,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has drained and exited, or ctx ends.
func (p *Pool) Wait(ctx context.Context) error {
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			return fmt.Errorf("worker pool wait: %w", ctx.Err())
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}

// Shutdown stops all workers without waiting for the queue to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, workerShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.shutdown:
		default:
			close(w.shutdown)
		}
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerActiveCount(0)
	return nil
}
