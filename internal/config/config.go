// Package config defines service configuration structures and loading.
//
// Conventions:
// - Defaults come from New(); Load layers a YAML file and env vars on top.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"runtime"

	"github.com/scoutline/pennant/internal/domain/composite"
	"github.com/scoutline/pennant/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the metrics listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// DatabaseURL selects the Postgres row source when set.
	DatabaseURL string `koanf:"database_url"`

	// FixturePath selects the YAML fixture row source when set.
	FixturePath string `koanf:"fixture_path"`

	// QueueSize bounds the in-memory evaluation job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the row deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// Window selection.
	TrailingWindowDays int `koanf:"trailing_window_days"`
	SeasonEndGraceDays int `koanf:"season_end_grace_days"`
	TrendWindowDays    int `koanf:"trend_window_days"`

	// Source sample thresholds.
	MinPitchSampleHitter        int `koanf:"min_pitch_sample_hitter"`
	MinPitchSamplePitcher       int `koanf:"min_pitch_sample_pitcher"`
	MinPlateAppearancesFallback int `koanf:"min_plate_appearances_fallback"`

	// Score assembly.
	ModifierScale      float64 `koanf:"modifier_scale"`
	TrendThreshold     float64 `koanf:"trend_threshold"`
	TrendBonus         float64 `koanf:"trend_bonus"`
	AgeAdjustmentScale float64 `koanf:"age_adjustment_scale"`

	// PreferMLBaseline substitutes the model-predicted grade for the
	// scouting grade when a prediction exists.
	PreferMLBaseline bool `koanf:"prefer_ml_baseline"`

	// Composite weight vectors per role, keyed by metric name. Each
	// vector must sum to 1.0.
	HitterWeights  map[string]float64 `koanf:"hitter_weights"`
	PitcherWeights map[string]float64 `koanf:"pitcher_weights"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                    "info",
		Addr:                        ":9090",
		QueueSize:                   10_000,
		WorkerCount:                 runtime.NumCPU() * 4,
		DedupeSize:                  500_000,
		TrailingWindowDays:          60,
		SeasonEndGraceDays:          14,
		TrendWindowDays:             21,
		MinPitchSampleHitter:        100,
		MinPitchSamplePitcher:       200,
		MinPlateAppearancesFallback: 40,
		ModifierScale:               10.0,
		TrendThreshold:              7.5,
		TrendBonus:                  2.0,
		AgeAdjustmentScale:          3.0,
		PreferMLBaseline:            false,
		HitterWeights:               weightNames(composite.DefaultHitterWeights()),
		PitcherWeights:              weightNames(composite.DefaultPitcherWeights()),
	}
}

func weightNames(w map[model.Metric]float64) map[string]float64 {
	out := make(map[string]float64, len(w))
	for m, v := range w {
		out[string(m)] = v
	}
	return out
}

// MetricWeights converts a config weight vector back to metric keys.
func MetricWeights(w map[string]float64) map[model.Metric]float64 {
	out := make(map[model.Metric]float64, len(w))
	for name, v := range w {
		out[model.Metric(name)] = v
	}
	return out
}
