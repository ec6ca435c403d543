package engine

import (
	"github.com/scoutline/pennant/internal/adapters/repository"
	"github.com/scoutline/pennant/internal/domain/composite"
	"github.com/scoutline/pennant/internal/domain/fallback"
	"github.com/scoutline/pennant/internal/domain/ranking"
	"github.com/scoutline/pennant/internal/domain/window"
	"github.com/scoutline/pennant/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSelector replaces the window selector.
func WithSelector(s *window.Selector) Option {
	return func(e *Engine) {
		if s != nil {
			e.selector = s
		}
	}
}

// WithResolver replaces the source fallback resolver.
func WithResolver(r *fallback.Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithScorer replaces the composite scorer.
func WithScorer(s *composite.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithAssembler replaces the ranking assembler.
func WithAssembler(a *ranking.Assembler) Option {
	return func(e *Engine) {
		if a != nil {
			e.assembler = a
		}
	}
}

// WithBoard replaces the standings board the engine publishes to.
func WithBoard(b *repository.Board) Option {
	return func(e *Engine) {
		if b != nil {
			e.board = b
		}
	}
}

// WithWorkerCount sets the number of evaluation workers per run.
func WithWorkerCount(count int) Option {
	return func(e *Engine) {
		if count > 0 {
			e.workerCount = count
		}
	}
}

// WithQueueSize bounds the evaluation job queue.
func WithQueueSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.queueSize = size
		}
	}
}

// WithPreferMLBaseline substitutes model-predicted grades for scouting
// grades when a prediction exists.
func WithPreferMLBaseline(prefer bool) Option {
	return func(e *Engine) {
		e.preferML = prefer
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
