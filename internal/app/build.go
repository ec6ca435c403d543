package engine

import (
	"fmt"

	"github.com/scoutline/pennant/internal/config"
	"github.com/scoutline/pennant/internal/domain/composite"
	"github.com/scoutline/pennant/internal/domain/extract"
	"github.com/scoutline/pennant/internal/domain/fallback"
	"github.com/scoutline/pennant/internal/domain/ranking"
	"github.com/scoutline/pennant/internal/domain/window"
)

// FromConfig builds an Engine with every pipeline stage configured from
// the loaded service configuration.
func FromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	scorer, err := composite.New(
		config.MetricWeights(cfg.HitterWeights),
		config.MetricWeights(cfg.PitcherWeights),
	)
	if err != nil {
		return nil, fmt.Errorf("composite weights: %w", err)
	}

	base := []Option{
		WithSelector(window.New(
			window.WithTrailingDays(cfg.TrailingWindowDays),
			window.WithGraceDays(cfg.SeasonEndGraceDays),
			window.WithTrendDays(cfg.TrendWindowDays),
		)),
		WithResolver(fallback.New(extract.New(),
			fallback.WithMinPitchesHitter(cfg.MinPitchSampleHitter),
			fallback.WithMinPitchesPitcher(cfg.MinPitchSamplePitcher),
			fallback.WithMinPlateAppearances(cfg.MinPlateAppearancesFallback),
		)),
		WithScorer(scorer),
		WithAssembler(ranking.New(
			ranking.WithModifierScale(cfg.ModifierScale),
			ranking.WithTrendThreshold(cfg.TrendThreshold),
			ranking.WithTrendBonus(cfg.TrendBonus),
			ranking.WithAgeScale(cfg.AgeAdjustmentScale),
		)),
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithPreferMLBaseline(cfg.PreferMLBaseline),
	}

	return New(append(base, opts...)...)
}
