package percentile_test

import (
	"testing"

	"github.com/scoutline/pennant/internal/domain/model"
	"github.com/scoutline/pennant/internal/domain/percentile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRank(t *testing.T) {
	Convey("Given a cohort of distinct values", t, func() {
		cohort := []float64{0.10, 0.20, 0.30, 0.40, 0.50}

		Convey("Then the minimum maps to 0 and the maximum to 100", func() {
			lo, ok := percentile.Rank(0.10, cohort)
			So(ok, ShouldBeTrue)
			So(lo, ShouldAlmostEqual, 0)

			hi, ok := percentile.Rank(0.50, cohort)
			So(ok, ShouldBeTrue)
			So(hi, ShouldAlmostEqual, 100)
		})

		Convey("Then members fall on their fractional rank", func() {
			mid, _ := percentile.Rank(0.30, cohort)
			So(mid, ShouldAlmostEqual, 50)

			q, _ := percentile.Rank(0.20, cohort)
			So(q, ShouldAlmostEqual, 25)
		})

		Convey("Then values between members interpolate linearly", func() {
			p, _ := percentile.Rank(0.35, cohort)
			So(p, ShouldAlmostEqual, 62.5)
		})

		Convey("Then the rank is monotonically non-decreasing in value", func() {
			prev := -1.0
			for v := 0.05; v <= 0.55; v += 0.01 {
				p, _ := percentile.Rank(v, cohort)
				So(p, ShouldBeGreaterThanOrEqualTo, prev)
				So(p, ShouldBeBetweenOrEqual, 0, 100)
				prev = p
			}
		})
	})

	Convey("Given a cohort with ties", t, func() {
		cohort := []float64{0.2, 0.3, 0.3, 0.3, 0.4}

		Convey("Then tied values share the mean-rank percentile", func() {
			p, ok := percentile.Rank(0.3, cohort)
			So(ok, ShouldBeTrue)
			So(p, ShouldAlmostEqual, 50)
		})
	})

	Convey("Given a degenerate cohort", t, func() {
		Convey("When the cohort has a single member", func() {
			p, ok := percentile.Rank(0.3, []float64{0.3})
			So(ok, ShouldBeFalse)
			So(p, ShouldAlmostEqual, percentile.Indeterminate)
		})

		Convey("When the cohort is empty", func() {
			p, ok := percentile.Rank(0.3, nil)
			So(ok, ShouldBeFalse)
			So(p, ShouldAlmostEqual, percentile.Indeterminate)
		})
	})
}

func TestIndex(t *testing.T) {
	hitterContact := percentile.Key{
		Metric: model.MetricContactRate,
		Level:  "AA",
		Season: 2025,
		Role:   model.RoleHitter,
	}
	hitterChase := percentile.Key{
		Metric: model.MetricChaseRate,
		Level:  "AA",
		Season: 2025,
		Role:   model.RoleHitter,
	}

	Convey("Given a sealed index with two cohorts", t, func() {
		idx := percentile.NewIndex()
		for _, v := range []float64{0.70, 0.75, 0.80, 0.85, 0.90} {
			idx.Add(hitterContact, v)
		}
		for _, v := range []float64{0.20, 0.25, 0.30, 0.35, 0.40} {
			idx.Add(hitterChase, v)
		}
		idx.Seal()

		Convey("Then higher-is-better metrics rank upward", func() {
			p, ok := idx.Percentile(hitterContact, 0.90)
			So(ok, ShouldBeTrue)
			So(p, ShouldAlmostEqual, 100)
		})

		Convey("Then lower-is-better metrics are inverted so 100 means good", func() {
			p, ok := idx.Percentile(hitterChase, 0.20)
			So(ok, ShouldBeTrue)
			So(p, ShouldAlmostEqual, 100)

			p, _ = idx.Percentile(hitterChase, 0.40)
			So(p, ShouldAlmostEqual, 0)
		})

		Convey("Then cohorts never mix across key boundaries", func() {
			other := hitterContact
			other.Level = "AAA"
			So(idx.CohortSize(other), ShouldEqual, 0)

			p, ok := idx.Percentile(other, 0.80)
			So(ok, ShouldBeFalse)
			So(p, ShouldAlmostEqual, percentile.Indeterminate)
		})

		Convey("Then adding after Seal panics", func() {
			So(func() { idx.Add(hitterContact, 0.5) }, ShouldPanic)
		})
	})

	Convey("Given cohort values added out of order", t, func() {
		idx := percentile.NewIndex()
		raw := []float64{0.85, 0.70, 0.90, 0.75, 0.80}
		for _, v := range raw {
			idx.Add(hitterContact, v)
		}
		idx.Seal()

		Convey("Then sealed lookups agree with Rank over the raw cohort", func() {
			for _, v := range []float64{0.70, 0.72, 0.80, 0.90} {
				want, _ := percentile.Rank(v, raw)
				got, ok := idx.Percentile(hitterContact, v)
				So(ok, ShouldBeTrue)
				So(got, ShouldAlmostEqual, want)
			}
		})
	})

	Convey("Given an unsealed index", t, func() {
		idx := percentile.NewIndex()
		idx.Add(hitterContact, 0.5)
		idx.Add(hitterContact, 0.6)

		Convey("Then a lookup before Seal panics", func() {
			So(func() { idx.Percentile(hitterContact, 0.5) }, ShouldPanic)
		})
	})

	Convey("Given an index with a raised minimum cohort size", t, func() {
		idx := percentile.NewIndex(percentile.WithMinCohortSize(4))
		for _, v := range []float64{0.1, 0.2, 0.3} {
			idx.Add(hitterContact, v)
		}
		idx.Seal()

		Convey("Then a three-member cohort is indeterminate", func() {
			p, ok := idx.Percentile(hitterContact, 0.2)
			So(ok, ShouldBeFalse)
			So(p, ShouldAlmostEqual, percentile.Indeterminate)
		})
	})
}
