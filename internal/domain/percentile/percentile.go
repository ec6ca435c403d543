// Package percentile computes cohort percentile ranks.
//
// A cohort is every eligible metric value sharing (metric, level, season,
// role). Percentiles use rank-based linear interpolation between adjacent
// order statistics, matching PERCENTILE_CONT semantics: the minimum of a
// cohort maps to 0, the maximum to 100, and ties share a percentile. A
// degenerate cohort (fewer than the minimum members) yields 50.0 flagged
// indeterminate rather than a silently wrong number.
package percentile

import (
	"math"
	"sort"

	"github.com/scoutline/pennant/internal/domain/model"
)

// Indeterminate is the percentile reported for degenerate cohorts.
const Indeterminate = 50.0

const defaultMinCohortSize = 2

// Rank returns value's percentile in [0,100] within cohort. The second
// return is false when the cohort is too small to say anything, in which
// case the percentile is Indeterminate.
func Rank(value float64, cohort []float64) (float64, bool) {
	s := make([]float64, 0, len(cohort))
	for _, v := range cohort {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			s = append(s, v)
		}
	}
	sort.Float64s(s)
	return rankSorted(value, s)
}

// rankSorted is Rank over a cohort already sorted and free of NaN/Inf.
// Index lookups call it directly so sealed cohorts are not re-sorted on
// every player.
func rankSorted(value float64, s []float64) (float64, bool) {
	if len(s) < defaultMinCohortSize {
		return Indeterminate, false
	}

	n := len(s)
	less, equal := 0, 0
	for _, v := range s {
		switch {
		case v < value:
			less++
		case v == value:
			equal++
		}
	}

	var pos float64
	switch {
	case equal > 0:
		// Ties share the mean of their order-statistic positions.
		pos = float64(less) + float64(equal-1)/2
	case less == 0:
		return 0, true
	case less == n:
		return 100, true
	default:
		// Interpolate between the adjacent order statistics.
		lo, hi := s[less-1], s[less]
		pos = float64(less-1) + (value-lo)/(hi-lo)
	}

	return 100 * pos / float64(n-1), true
}

// Key identifies one comparison cohort. Cohort membership is never mixed
// across level, season or role boundaries.
type Key struct {
	Metric model.Metric
	Level  string
	Season int
	Role   model.Role
}

// Index holds the cohort values for one ranking run. It is built once,
// sealed, and read-only thereafter; it is never carried across runs.
type Index struct {
	minCohort int
	cohorts   map[Key][]float64
	sealed    bool
}

// NewIndex creates an empty cohort index with configuration options.
func NewIndex(opts ...IndexOption) *Index {
	x := &Index{
		minCohort: defaultMinCohortSize,
		cohorts:   make(map[Key][]float64),
	}

	for _, opt := range opts {
		opt(x)
	}

	return x
}

// Add records one eligible metric value in its cohort. Values with an
// undersized sample never reach the index; that exclusion happens in
// extraction, not here. Add panics after Seal: the index is read-only
// during the percentile phase.
func (x *Index) Add(key Key, value float64) {
	if x.sealed {
		panic("percentile: Add after Seal")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	x.cohorts[key] = append(x.cohorts[key], value)
}

// Seal sorts every cohort and freezes the index. Lookups trust this
// order; Percentile panics when called on an unsealed index.
func (x *Index) Seal() {
	for _, vs := range x.cohorts {
		sort.Float64s(vs)
	}
	x.sealed = true
}

// CohortSize returns the number of members in a cohort.
func (x *Index) CohortSize(key Key) int {
	return len(x.cohorts[key])
}

// Percentile returns the oriented percentile of value within its cohort:
// for metrics where lower is better for the role, the raw rank is
// inverted so that 100 always means "good". The second return is false
// for a degenerate cohort.
func (x *Index) Percentile(key Key, value float64) (float64, bool) {
	if !x.sealed {
		panic("percentile: Percentile before Seal")
	}
	cohort := x.cohorts[key]
	if len(cohort) < x.minCohort {
		return Indeterminate, false
	}
	pct, ok := rankSorted(value, cohort)
	if !ok {
		return Indeterminate, false
	}
	if !model.HigherIsBetter(key.Role, key.Metric) {
		pct = 100 - pct
	}
	return pct, true
}

// IndexOption applies a configuration option to the Index.
type IndexOption func(*Index)

// WithMinCohortSize sets the smallest cohort that yields a determinate
// percentile.
func WithMinCohortSize(n int) IndexOption {
	return func(x *Index) {
		if n >= defaultMinCohortSize {
			x.minCohort = n
		}
	}
}
