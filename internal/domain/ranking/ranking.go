// Package ranking assembles final scores, ranks and tiers.
//
// final = baseline grade + performance modifier + trend adjustment + age
// adjustment. The modifier maps a composite percentile to bounded points
// with a piecewise-linear curve around the median, so the middle of the
// distribution moves scores more than the tails do. Ordering is a strict
// total order: ties break by baseline grade, then composite percentile,
// then player id, reproducibly across runs.
package ranking

import (
	"math"
	"sort"

	"github.com/scoutline/pennant/internal/domain/model"
)

// Default assembly constants.
const (
	defaultModifierScale  = 10.0
	defaultTrendThreshold = 7.5
	defaultTrendBonus     = 2.0
	defaultAgeScale       = 3.0
	defaultBaselineGrade  = 40.0 // stock FV for a player with performance but no report

	// Share of the modifier scale earned inside the +/-25 percentile
	// band around the median. The remaining share is spread over the
	// tails, flattening the curve at the extremes.
	innerBandShare = 0.7
	innerBandWidth = 25.0
)

// Baseline source labels.
const (
	BaselineScouting = "scouting"
	BaselineML       = "ml"
	BaselineDefault  = "default"
)

// Evaluation is the per-player input to assembly, produced upstream by
// the resolver, percentile and composite phases.
type Evaluation struct {
	Meta           model.PlayerMeta
	BaselineGrade  float64
	BaselineSource string
	HasBaseline    bool
	Composite      float64
	HasComposite   bool
	TrendComposite float64
	HasTrend       bool
	Source         model.Source
	Indeterminate  bool
	Percentiles    map[model.Metric]float64
	Breakdown      []model.Contribution
}

// Result is one ranking pass's output: the strictly ordered list plus the
// players that could not be scored at all.
type Result struct {
	Ranked   []model.RankedPlayer
	Unranked []model.UnrankedPlayer
}

// Assembler combines evaluations into a ranked list.
type Assembler struct {
	modifierScale  float64
	trendThreshold float64
	trendBonus     float64
	ageScale       float64
}

// New creates an Assembler with configuration options.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		modifierScale:  defaultModifierScale,
		trendThreshold: defaultTrendThreshold,
		trendBonus:     defaultTrendBonus,
		ageScale:       defaultAgeScale,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Modifier maps a composite percentile to signed points. 50 maps to 0;
// the inner band climbs steeply, the tails flatten, and the result is
// bounded by the modifier scale at 0 and 100.
func (a *Assembler) Modifier(pct float64) float64 {
	pct = math.Max(0, math.Min(100, pct))
	delta := pct - 50.0
	abs := math.Abs(delta)
	sign := 1.0
	if delta < 0 {
		sign = -1.0
	}
	if abs <= innerBandWidth {
		return sign * (abs / innerBandWidth) * innerBandShare * a.modifierScale
	}
	outer := (abs - innerBandWidth) / (50.0 - innerBandWidth)
	return sign * (innerBandShare + outer*(1-innerBandShare)) * a.modifierScale
}

// trend returns the hot/cold adjustment: a material recent improvement
// over the full-window composite earns the bonus, a material decline the
// penalty, anything inside the dead band nothing.
func (a *Assembler) trend(e *Evaluation) float64 {
	if !e.HasTrend || !e.HasComposite {
		return 0
	}
	delta := e.TrendComposite - e.Composite
	switch {
	case delta >= a.trendThreshold:
		return a.trendBonus
	case delta <= -a.trendThreshold:
		return -a.trendBonus
	default:
		return 0
	}
}

// ageAdjustment rewards being younger than the level's cohort average and
// penalizes being older, bounded so age never dominates the score.
func (a *Assembler) ageAdjustment(age, levelAvg float64) float64 {
	if age <= 0 || levelAvg <= 0 {
		return 0
	}
	adj := (levelAvg - age) * (a.ageScale / 2)
	return math.Max(-a.ageScale, math.Min(a.ageScale, adj))
}

// levelAverageAges computes the mean age per level over the population
// being ranked, so the age baseline adapts to the cohort at hand.
func levelAverageAges(evals []Evaluation) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range evals {
		if evals[i].Meta.Age > 0 {
			sums[evals[i].Meta.Level] += evals[i].Meta.Age
			counts[evals[i].Meta.Level]++
		}
	}
	out := make(map[string]float64, len(sums))
	for level, sum := range sums {
		out[level] = sum / float64(counts[level])
	}
	return out
}

// Assemble scores, sorts and tiers the population. Players lacking both a
// performance signal and a baseline grade are excluded from the ranked
// list and reported separately; they are never silently scored as zero.
func (a *Assembler) Assemble(evals []Evaluation) Result {
	avgAges := levelAverageAges(evals)

	ranked := make([]model.RankedPlayer, 0, len(evals))
	unranked := make([]model.UnrankedPlayer, 0)

	for i := range evals {
		e := &evals[i]

		if !e.HasBaseline && !e.HasComposite {
			unranked = append(unranked, model.UnrankedPlayer{
				PlayerID: e.Meta.PlayerID,
				Name:     e.Meta.Name,
				Level:    e.Meta.Level,
				Reason:   model.ReasonNoData,
			})
			continue
		}

		baseline := e.BaselineGrade
		baselineSource := e.BaselineSource
		if !e.HasBaseline {
			baseline = defaultBaselineGrade
			baselineSource = BaselineDefault
		}

		modifier := 0.0
		compositePct := 0.0
		if e.HasComposite {
			compositePct = e.Composite
			modifier = a.Modifier(e.Composite)
		}
		trendAdj := a.trend(e)
		ageAdj := a.ageAdjustment(e.Meta.Age, avgAges[e.Meta.Level])

		ranked = append(ranked, model.RankedPlayer{
			PlayerID:            e.Meta.PlayerID,
			Name:                e.Meta.Name,
			Level:               e.Meta.Level,
			Role:                e.Meta.Role,
			BaselineGrade:       baseline,
			BaselineSource:      baselineSource,
			CompositePercentile: compositePct,
			PerformanceModifier: modifier,
			TrendAdjustment:     trendAdj,
			AgeAdjustment:       ageAdj,
			FinalScore:          baseline + modifier + trendAdj + ageAdj,
			Source:              e.Source,
			Indeterminate:       e.Indeterminate,
			Percentiles:         e.Percentiles,
			Breakdown:           e.Breakdown,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		if ranked[i].BaselineGrade != ranked[j].BaselineGrade {
			return ranked[i].BaselineGrade > ranked[j].BaselineGrade
		}
		if ranked[i].CompositePercentile != ranked[j].CompositePercentile {
			return ranked[i].CompositePercentile > ranked[j].CompositePercentile
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Tier = tierFor(i+1, len(ranked))
	}

	sort.Slice(unranked, func(i, j int) bool {
		return unranked[i].PlayerID < unranked[j].PlayerID
	})

	return Result{Ranked: ranked, Unranked: unranked}
}

// Tier bands as cumulative shares of the ranked list. Boundaries adapt to
// the population size because they are rank fractions, not raw scores.
var tierBands = []struct {
	share float64
	tier  model.Tier
}{
	{0.02, model.TierElite},
	{0.10, model.TierImpact},
	{0.35, model.TierSolid},
	{0.75, model.TierFringe},
}

func tierFor(rank, total int) model.Tier {
	for _, band := range tierBands {
		if float64(rank) <= math.Ceil(band.share*float64(total)) {
			return band.tier
		}
	}
	return model.TierOrg
}
