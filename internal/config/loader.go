package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const weightSumTolerance = 1e-9

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PENNANT_CONFIG is set
//  3. env (prefix PENNANT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PENNANT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PENNANT_ADDR, PENNANT_WORKER_COUNT, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PENNANT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "pennant_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on configurations that would otherwise surface as
// subtle ranking skew mid-run.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.TrailingWindowDays < 1 || c.SeasonEndGraceDays < 0 || c.TrendWindowDays < 1 {
		return fmt.Errorf("%w: window days out of range", ErrInvalidConfig)
	}
	if c.MinPitchSampleHitter < 1 || c.MinPitchSamplePitcher < 1 || c.MinPlateAppearancesFallback < 1 {
		return fmt.Errorf("%w: sample thresholds must be positive", ErrInvalidConfig)
	}
	if c.ModifierScale < 0 || c.TrendThreshold < 0 || c.TrendBonus < 0 || c.AgeAdjustmentScale < 0 {
		return fmt.Errorf("%w: score adjustments must be non-negative", ErrInvalidConfig)
	}
	if err := validateWeights("hitter_weights", c.HitterWeights); err != nil {
		return err
	}
	if err := validateWeights("pitcher_weights", c.PitcherWeights); err != nil {
		return err
	}
	return nil
}

func validateWeights(name string, weights map[string]float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
	}
	sum := 0.0
	for metric, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: %s[%s] is negative", ErrInvalidConfig, name, metric)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: %s sum to %.6f, want 1.0", ErrInvalidConfig, name, sum)
	}
	return nil
}
