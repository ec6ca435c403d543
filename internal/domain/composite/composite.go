// Package composite blends per-metric percentiles into one 0-100 score.
//
// Each role carries a fixed weight vector summing to 1.0. When a player
// is missing metrics, the absent weight is redistributed proportionally
// across the metrics that are present, so partial data does not drift the
// composite toward "average". The per-metric contribution breakdown is
// returned for explainability and always sums to the composite.
package composite

import (
	"fmt"
	"math"
	"sort"

	"github.com/scoutline/pennant/internal/domain/model"
)

const weightSumTolerance = 1e-9

// Scorer computes weighted composite percentiles. Construction fails fast
// on a structurally invalid weight vector; it is never silently
// renormalized.
type Scorer struct {
	weights map[model.Role]map[model.Metric]float64
}

// New creates a Scorer from per-role weight vectors.
func New(hitter, pitcher map[model.Metric]float64) (*Scorer, error) {
	if err := validate(model.RoleHitter, hitter); err != nil {
		return nil, err
	}
	if err := validate(model.RolePitcher, pitcher); err != nil {
		return nil, err
	}
	return &Scorer{
		weights: map[model.Role]map[model.Metric]float64{
			model.RoleHitter:  copyWeights(hitter),
			model.RolePitcher: copyWeights(pitcher),
		},
	}, nil
}

func validate(role model.Role, w map[model.Metric]float64) error {
	if len(w) == 0 {
		return fmt.Errorf("%w: empty %s weight vector", ErrInvalidWeights, role)
	}
	sum := 0.0
	for m, v := range w {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %f for %s/%s", ErrInvalidWeights, v, role, m)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: %s weights sum to %f, want 1.0", ErrInvalidWeights, role, sum)
	}
	return nil
}

func copyWeights(w map[model.Metric]float64) map[model.Metric]float64 {
	out := make(map[model.Metric]float64, len(w))
	for m, v := range w {
		out[m] = v
	}
	return out
}

// Score blends the given percentiles into a composite for the role.
// Metrics absent from the role's weight vector are ignored. Returns
// ErrNoMetrics when none of the weighted metrics are present; the caller
// treats that as "no performance signal", not a failure.
func (s *Scorer) Score(role model.Role, percentiles map[model.Metric]float64) (float64, []model.Contribution, error) {
	weights, ok := s.weights[role]
	if !ok {
		return 0, nil, fmt.Errorf("%w: unknown role %q", ErrInvalidWeights, role)
	}

	present := make([]model.Metric, 0, len(percentiles))
	presentSum := 0.0
	for m := range percentiles {
		if w, ok := weights[m]; ok && w > 0 {
			present = append(present, m)
			presentSum += w
		}
	}
	if len(present) == 0 || presentSum == 0 {
		return 0, nil, ErrNoMetrics
	}

	// Deterministic breakdown order regardless of map iteration.
	sort.Slice(present, func(i, j int) bool { return present[i] < present[j] })

	compositeTotal := 0.0
	breakdown := make([]model.Contribution, 0, len(present))
	for _, m := range present {
		effective := weights[m] / presentSum
		contribution := percentiles[m] * effective
		compositeTotal += contribution
		breakdown = append(breakdown, model.Contribution{
			Metric:       m,
			Percentile:   percentiles[m],
			Weight:       effective,
			Contribution: contribution,
		})
	}

	return compositeTotal, breakdown, nil
}

// DefaultHitterWeights is the stock hitter vector. Pitch-level and
// game-log metrics share one vector; only one source's metrics are ever
// present in a single pass, and redistribution handles the rest.
func DefaultHitterWeights() map[model.Metric]float64 {
	return map[model.Metric]float64{
		model.MetricContactRate:     0.20,
		model.MetricChaseRate:       0.15,
		model.MetricWhiffRate:       0.10,
		model.MetricZoneContactRate: 0.10,
		model.MetricHardHitRate:     0.20,
		model.MetricBattingAvg:      0.05,
		model.MetricOnBasePct:       0.10,
		model.MetricStrikeoutRate:   0.05,
		model.MetricWalkRate:        0.05,
	}
}

// DefaultPitcherWeights is the stock pitcher vector.
func DefaultPitcherWeights() map[model.Metric]float64 {
	return map[model.Metric]float64{
		model.MetricWhiffRate:     0.25,
		model.MetricChaseRate:     0.15,
		model.MetricZoneRate:      0.10,
		model.MetricHardHitRate:   0.15,
		model.MetricAvgVelocity:   0.10,
		model.MetricStrikeoutRate: 0.15,
		model.MetricWalkRate:      0.10,
	}
}
