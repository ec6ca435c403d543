package window_test

import (
	"testing"
	"time"

	"github.com/scoutline/pennant/internal/domain/model"
	"github.com/scoutline/pennant/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSelect(t *testing.T) {
	Convey("Given a selector with a 60 day trailing window and 14 day grace", t, func() {
		sel := window.New(
			window.WithTrailingDays(60),
			window.WithGraceDays(14),
		)
		season := model.DefaultSeasonBounds(2025)

		Convey("When the season is active and recently observed", func() {
			today := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
			lastObs := today.AddDate(0, 0, -2)

			w := sel.Select(today, season, lastObs, true)

			Convey("Then the window is the trailing period", func() {
				So(w.IsZero(), ShouldBeFalse)
				So(w.End.Equal(today), ShouldBeTrue)
				So(w.Start.Equal(today.AddDate(0, 0, -60)), ShouldBeTrue)
			})
		})

		Convey("When the last observation is older than the grace period", func() {
			today := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
			lastObs := time.Date(2025, time.September, 14, 0, 0, 0, 0, time.UTC)

			w := sel.Select(today, season, lastObs, true)

			Convey("Then the window covers the whole season, not a trailing slice", func() {
				So(w.Start.Equal(season.Start), ShouldBeTrue)
				So(w.End.Equal(season.End), ShouldBeTrue)

				// The trailing window would have destroyed most of the
				// season's observations; the full-season override must not.
				graceDays := 14
				seasonLen := int(season.End.Sub(season.Start).Hours() / 24)
				So(w.Days(), ShouldBeGreaterThanOrEqualTo, seasonLen-graceDays)
			})
		})

		Convey("When the trailing window would cross the season start", func() {
			today := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
			lastObs := today.AddDate(0, 0, -1)

			w := sel.Select(today, season, lastObs, true)

			Convey("Then the window is clamped to the season boundary", func() {
				So(w.Start.Equal(season.Start), ShouldBeTrue)
				So(w.End.Equal(today), ShouldBeTrue)
			})
		})

		Convey("When the season has no observations", func() {
			today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

			w := sel.Select(today, season, time.Time{}, false)

			Convey("Then the zero window is returned, not an error", func() {
				So(w.IsZero(), ShouldBeTrue)
			})
		})
	})
}

func TestTrend(t *testing.T) {
	Convey("Given a selector with a 21 day trend sub-window", t, func() {
		sel := window.New(window.WithTrendDays(21))

		Convey("When the base window is long enough", func() {
			base := model.Window{
				Start: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
			}

			tw := sel.Trend(base)

			Convey("Then the trend window is the last 21 days of the base", func() {
				So(tw.IsZero(), ShouldBeFalse)
				So(tw.End.Equal(base.End), ShouldBeTrue)
				So(tw.Start.Equal(base.End.AddDate(0, 0, -21)), ShouldBeTrue)
			})
		})

		Convey("When the base window is too short for a meaningful comparison", func() {
			base := model.Window{
				Start: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
			}

			Convey("Then the zero window is returned", func() {
				So(sel.Trend(base).IsZero(), ShouldBeTrue)
			})
		})

		Convey("When the base window is zero", func() {
			So(sel.Trend(model.Window{}).IsZero(), ShouldBeTrue)
		})
	})
}
