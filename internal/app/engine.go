// Package engine orchestrates one ranking pass end to end: window
// selection, source resolution and metric extraction fan out across a
// worker pool, then cohort percentiles, composite scores and final
// assembly run over the collected outcomes.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/scoutline/pennant/internal/adapters/mq/queue"
	workerpool "github.com/scoutline/pennant/internal/adapters/mq/worker"
	"github.com/scoutline/pennant/internal/adapters/repository"
	"github.com/scoutline/pennant/internal/domain/composite"
	"github.com/scoutline/pennant/internal/domain/extract"
	"github.com/scoutline/pennant/internal/domain/fallback"
	"github.com/scoutline/pennant/internal/domain/model"
	"github.com/scoutline/pennant/internal/domain/percentile"
	"github.com/scoutline/pennant/internal/domain/ranking"
	"github.com/scoutline/pennant/internal/domain/window"
	"github.com/scoutline/pennant/pkg/logger"
	"github.com/scoutline/pennant/pkg/metrics"
)

// Default engine configuration constants.
const (
	defaultWorkerCount = 8
	defaultQueueSize   = 10_000
)

// Report is the outcome of one ranking run.
type Report struct {
	RunID    string
	Season   int
	AsOf     time.Time
	Ranked   []model.RankedPlayer
	Unranked []model.UnrankedPlayer
	Elapsed  time.Duration
}

// Engine wires the pipeline stages together. Construct once, run per
// snapshot; runs are independent and reproducible.
type Engine struct {
	selector  *window.Selector
	resolver  *fallback.Resolver
	scorer    *composite.Scorer
	assembler *ranking.Assembler
	board     *repository.Board

	workerCount int
	queueSize   int
	preferML    bool

	logger logger.Logger
}

// New creates an Engine with configuration options. Components not
// supplied are built with their package defaults.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		logger:      logger.Get().Named("engine"),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.selector == nil {
		e.selector = window.New()
	}
	if e.resolver == nil {
		e.resolver = fallback.New(extract.New())
	}
	if e.scorer == nil {
		s, err := composite.New(composite.DefaultHitterWeights(), composite.DefaultPitcherWeights())
		if err != nil {
			return nil, fmt.Errorf("default composite weights: %w", err)
		}
		e.scorer = s
	}
	if e.assembler == nil {
		e.assembler = ranking.New()
	}
	if e.board == nil {
		e.board = repository.NewBoard()
	}

	return e, nil
}

// Board returns the standings board the engine publishes to.
func (e *Engine) Board() *repository.Board {
	return e.board
}

// Run executes one ranking pass over a snapshot. today is the ranking
// date; passing it explicitly keeps runs reproducible.
func (e *Engine) Run(ctx context.Context, snap *repository.Snapshot, today time.Time) (*Report, error) {
	if snap == nil || len(snap.Players) == 0 {
		return nil, ErrEmptySnapshot
	}

	start := time.Now()
	runID := uuid.NewString()
	season := model.DefaultSeasonBounds(snap.Season)

	e.logger.Info(ctx, "ranking run started",
		logger.String("run_id", runID),
		logger.Int("season", snap.Season),
		logger.Int("players", len(snap.Players)),
	)

	outcomes, err := e.evaluateAll(ctx, snap, season, today)
	if err != nil {
		metrics.RecordErrorByComponent("engine", "evaluation")
		return nil, err
	}

	index := buildIndex(outcomes, snap.Season)

	evals := make([]ranking.Evaluation, 0, len(outcomes))
	for i := range outcomes {
		evals = append(evals, e.scoreOutcome(ctx, &outcomes[i], index, snap.Season))
	}

	result := e.assembler.Assemble(evals)

	e.board.Publish(runID, result.Ranked, result.Unranked)

	elapsed := time.Since(start)
	metrics.RecordRankingRun()
	metrics.RecordRunDuration(elapsed.Seconds())
	metrics.UpdatePlayersRanked(len(result.Ranked))
	metrics.UpdatePlayersUnranked(len(result.Unranked))
	metrics.UpdateBoardSize(len(result.Ranked))

	e.logger.Info(ctx, "ranking run complete",
		logger.String("run_id", runID),
		logger.Int("ranked", len(result.Ranked)),
		logger.Int("unranked", len(result.Unranked)),
		logger.Duration("elapsed", elapsed),
	)

	return &Report{
		RunID:    runID,
		Season:   snap.Season,
		AsOf:     today,
		Ranked:   result.Ranked,
		Unranked: result.Unranked,
		Elapsed:  elapsed,
	}, nil
}

// evaluateAll fans the snapshot out over the worker pool and collects
// one outcome per candidate, ordered by player id for determinism.
func (e *Engine) evaluateAll(ctx context.Context, snap *repository.Snapshot, season model.SeasonBounds, today time.Time) ([]workerpool.Outcome, error) {
	q := jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(e.queueSize))
	collector := &outcomeCollector{}
	ev := &evaluator{
		selector: e.selector,
		resolver: e.resolver,
		season:   season,
		today:    today,
	}

	pool := workerpool.NewPool(e.workerCount, q, ev, collector)
	pool.Start(ctx)

	for i := range snap.Players {
		if !q.Enqueue(ctx, snap.Players[i]) {
			_ = q.Close()
			return nil, fmt.Errorf("%w: player %s", ErrQueueFull, snap.Players[i].Meta.PlayerID)
		}
	}
	if err := q.Close(); err != nil {
		return nil, fmt.Errorf("close queue: %w", err)
	}
	if err := pool.Wait(ctx); err != nil {
		return nil, err
	}

	outcomes := collector.drain()
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Meta.PlayerID < outcomes[j].Meta.PlayerID
	})
	return outcomes, nil
}

// scoreOutcome turns one evaluated candidate into a ranking evaluation:
// oriented cohort percentiles, composite and trend composite, baseline.
func (e *Engine) scoreOutcome(ctx context.Context, o *workerpool.Outcome, index *percentile.Index, season int) ranking.Evaluation {
	eval := ranking.Evaluation{
		Meta:   o.Meta,
		Source: o.Source,
	}

	if len(o.Metrics) > 0 {
		pcts := make(map[model.Metric]float64, len(o.Metrics))
		for m, mv := range o.Metrics {
			key := percentile.Key{Metric: m, Level: o.Meta.Level, Season: season, Role: o.Meta.Role}
			pct, ok := index.Percentile(key, mv.Value)
			if !ok {
				eval.Indeterminate = true
			}
			pcts[m] = pct
		}
		eval.Percentiles = pcts

		score, breakdown, err := e.scorer.Score(o.Meta.Role, pcts)
		if err == nil {
			eval.Composite = score
			eval.HasComposite = true
			eval.Breakdown = breakdown
		} else {
			e.logger.Warn(ctx, "composite unavailable",
				logger.String("playerID", o.Meta.PlayerID),
				logger.Error(err),
			)
		}
	}

	// Trend percentiles rank the recent sub-window against the same
	// full-window cohorts, so the two composites share a scale.
	if eval.HasComposite && len(o.TrendMetrics) > 0 {
		tp := make(map[model.Metric]float64, len(o.TrendMetrics))
		for m, mv := range o.TrendMetrics {
			key := percentile.Key{Metric: m, Level: o.Meta.Level, Season: season, Role: o.Meta.Role}
			if pct, ok := index.Percentile(key, mv.Value); ok {
				tp[m] = pct
			}
		}
		if score, _, err := e.scorer.Score(o.Meta.Role, tp); err == nil {
			eval.TrendComposite = score
			eval.HasTrend = true
		}
	}

	switch {
	case e.preferML && o.Prediction != nil:
		eval.BaselineGrade = o.Prediction.PredictedFV
		eval.BaselineSource = ranking.BaselineML
		eval.HasBaseline = true
	case o.Grade != nil:
		eval.BaselineGrade = o.Grade.FutureValue
		eval.BaselineSource = ranking.BaselineScouting
		eval.HasBaseline = true
	case o.Prediction != nil:
		eval.BaselineGrade = o.Prediction.PredictedFV
		eval.BaselineSource = ranking.BaselineML
		eval.HasBaseline = true
	}

	return eval
}

// buildIndex collects every determinate metric value into its cohort and
// seals the index for the scoring phase.
func buildIndex(outcomes []workerpool.Outcome, season int) *percentile.Index {
	index := percentile.NewIndex()
	for i := range outcomes {
		o := &outcomes[i]
		for m, mv := range o.Metrics {
			index.Add(percentile.Key{
				Metric: m,
				Level:  o.Meta.Level,
				Season: season,
				Role:   o.Meta.Role,
			}, mv.Value)
		}
	}
	index.Seal()
	return index
}

// evaluator implements the worker evaluation stage: pick the window,
// resolve the source, extract full-window and trend metrics.
type evaluator struct {
	selector *window.Selector
	resolver *fallback.Resolver
	season   model.SeasonBounds
	today    time.Time
}

func (ev *evaluator) Evaluate(_ context.Context, job workerpool.Job) (workerpool.Outcome, error) {
	lastObs, hasObs := lastObservation(&job)
	w := ev.selector.Select(ev.today, ev.season, lastObs, hasObs)

	data := fallback.PlayerData{
		Meta:     job.Meta,
		Pitches:  job.Pitches,
		GameLogs: job.GameLogs,
	}
	source, mvs := ev.resolver.Resolve(data, w)

	out := workerpool.Outcome{
		Meta:       job.Meta,
		Window:     w,
		Source:     source,
		Metrics:    mvs,
		Grade:      job.Grade,
		Prediction: job.Prediction,
	}

	// The trend sub-window only counts when the same source clears its
	// thresholds there too; comparing across sources would compare
	// incompatible scales.
	if source != model.SourceGradesOnly {
		if tw := ev.selector.Trend(w); !tw.IsZero() {
			tsource, tmvs := ev.resolver.Resolve(data, tw)
			if tsource == source {
				out.TrendMetrics = tmvs
			}
		}
	}

	return out, nil
}

// lastObservation finds the newest row date across both performance
// collections.
func lastObservation(job *workerpool.Job) (time.Time, bool) {
	var last time.Time
	found := false
	for i := range job.Pitches {
		if job.Pitches[i].GameDate.After(last) {
			last = job.Pitches[i].GameDate
			found = true
		}
	}
	for i := range job.GameLogs {
		if job.GameLogs[i].GameDate.After(last) {
			last = job.GameLogs[i].GameDate
			found = true
		}
	}
	return last, found
}

// outcomeCollector accumulates worker outcomes for the scoring phase.
type outcomeCollector struct {
	mu       sync.Mutex
	outcomes []workerpool.Outcome
}

func (c *outcomeCollector) Collect(_ context.Context, o workerpool.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, o)
}

func (c *outcomeCollector) drain() []workerpool.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.outcomes
	c.outcomes = nil
	return out
}
