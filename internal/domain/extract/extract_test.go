package extract_test

import (
	"testing"
	"time"

	"github.com/scoutline/pennant/internal/domain/extract"
	"github.com/scoutline/pennant/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// pitch builds one raw event with the flags relevant to extraction.
func pitch(inZone, swing, contact, inPlay bool, launch float64) model.RawEvent {
	return model.RawEvent{
		PlayerID:    "p1",
		Level:       "AA",
		Season:      2025,
		GameDate:    time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		InZone:      inZone,
		Swing:       swing,
		Contact:     contact,
		InPlay:      inPlay,
		LaunchSpeed: launch,
	}
}

func repeat(ev model.RawEvent, n int) []model.RawEvent {
	out := make([]model.RawEvent, n)
	for i := range out {
		out[i] = ev
	}
	return out
}

func TestFromPitches(t *testing.T) {
	Convey("Given an extractor with a swing floor of 20", t, func() {
		ex := extract.New(
			extract.WithMinDenominator(20),
			extract.WithMinBattedBalls(10),
		)

		Convey("When a hitter has 30 swings with 24 contacts", func() {
			events := append(
				repeat(pitch(true, true, true, false, 0), 24),
				repeat(pitch(true, true, false, false, 0), 6)...,
			)

			got := ex.FromPitches(events, model.RoleHitter)

			Convey("Then contact and whiff rates are computed with the swing denominator", func() {
				So(got[model.MetricContactRate].Value, ShouldAlmostEqual, 0.8)
				So(got[model.MetricContactRate].SampleSize, ShouldEqual, 30)
				So(got[model.MetricContactRate].Source, ShouldEqual, model.SourcePitchLevel)
				So(got[model.MetricWhiffRate].Value, ShouldAlmostEqual, 0.2)
			})

			Convey("And rates without enough denominator are structurally absent", func() {
				_, ok := got[model.MetricChaseRate] // no out-of-zone pitches at all
				So(ok, ShouldBeFalse)
				_, ok = got[model.MetricHardHitRate]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a hitter sees 40 pitches out of the zone and chases 10", func() {
			events := append(
				repeat(pitch(false, true, false, false, 0), 10),
				repeat(pitch(false, false, false, false, 0), 30)...,
			)

			got := ex.FromPitches(events, model.RoleHitter)

			Convey("Then chase rate uses the out-of-zone denominator", func() {
				So(got[model.MetricChaseRate].Value, ShouldAlmostEqual, 0.25)
				So(got[model.MetricChaseRate].SampleSize, ShouldEqual, 40)
			})
		})

		Convey("When a hitter puts 12 balls in play, 3 of them hard", func() {
			events := append(
				repeat(pitch(true, true, true, true, 101.0), 3),
				repeat(pitch(true, true, true, true, 84.0), 9)...,
			)

			got := ex.FromPitches(events, model.RoleHitter)

			Convey("Then hard-hit rate is computed over batted balls", func() {
				So(got[model.MetricHardHitRate].Value, ShouldAlmostEqual, 0.25)
				So(got[model.MetricHardHitRate].SampleSize, ShouldEqual, 12)
			})
		})

		Convey("When there are fewer swings than the floor", func() {
			events := repeat(pitch(true, true, true, false, 0), 19)

			got := ex.FromPitches(events, model.RoleHitter)

			Convey("Then swing-based rates are omitted entirely", func() {
				_, ok := got[model.MetricContactRate]
				So(ok, ShouldBeFalse)
				_, ok = got[model.MetricWhiffRate]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When there are no events at all", func() {
			got := ex.FromPitches(nil, model.RoleHitter)

			Convey("Then the result is empty, not zero-filled", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the role is pitcher", func() {
			ex := extract.New(
				extract.WithMinDenominator(20),
				extract.WithMinPitches(40),
			)
			inZone := repeat(model.RawEvent{InZone: true, Swing: true, Contact: false, Velocity: 94.0}, 30)
			outZone := repeat(model.RawEvent{InZone: false, Swing: false, Velocity: 92.0}, 30)
			events := append(inZone, outZone...)

			got := ex.FromPitches(events, model.RolePitcher)

			Convey("Then zone rate and average velocity use the pitch denominator", func() {
				So(got[model.MetricZoneRate].Value, ShouldAlmostEqual, 0.5)
				So(got[model.MetricZoneRate].SampleSize, ShouldEqual, 60)
				So(got[model.MetricAvgVelocity].Value, ShouldAlmostEqual, 93.0)
			})

			Convey("And hitter-only metrics are absent", func() {
				_, ok := got[model.MetricContactRate]
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestFromGameLogs(t *testing.T) {
	Convey("Given an extractor with a plate-appearance floor of 20", t, func() {
		ex := extract.New(extract.WithMinDenominator(20))

		Convey("When a hitter has 40 PA summed over the window", func() {
			rows := []model.GameLogRow{
				{PlayerID: "p1", PlateAppearances: 22, AtBats: 20, Hits: 6, Walks: 2, Strikeouts: 5},
				{PlayerID: "p1", PlateAppearances: 18, AtBats: 15, Hits: 6, Walks: 2, Strikeouts: 3, HitByPitch: 1},
			}

			got := ex.FromGameLogs(rows, model.RoleHitter)

			Convey("Then batting average is hits over at-bats", func() {
				So(got[model.MetricBattingAvg].Value, ShouldAlmostEqual, 12.0/35.0)
				So(got[model.MetricBattingAvg].SampleSize, ShouldEqual, 35)
				So(got[model.MetricBattingAvg].Source, ShouldEqual, model.SourceGameLog)
			})

			Convey("And on-base percentage counts walks and hit-by-pitch", func() {
				So(got[model.MetricOnBasePct].Value, ShouldAlmostEqual, 17.0/40.0)
			})

			Convey("And strikeout and walk rates use plate appearances", func() {
				So(got[model.MetricStrikeoutRate].Value, ShouldAlmostEqual, 8.0/40.0)
				So(got[model.MetricWalkRate].Value, ShouldAlmostEqual, 4.0/40.0)
			})
		})

		Convey("When the summed denominator is below the floor", func() {
			rows := []model.GameLogRow{
				{PlayerID: "p1", PlateAppearances: 12, AtBats: 11, Hits: 3, Strikeouts: 4},
			}

			got := ex.FromGameLogs(rows, model.RoleHitter)

			Convey("Then no rate is produced", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the role is pitcher", func() {
			rows := []model.GameLogRow{
				{PlayerID: "p2", PlateAppearances: 50, Strikeouts: 15, Walks: 4},
			}

			got := ex.FromGameLogs(rows, model.RolePitcher)

			Convey("Then only strikeout and walk rates are produced", func() {
				So(got[model.MetricStrikeoutRate].Value, ShouldAlmostEqual, 0.30)
				So(got[model.MetricWalkRate].Value, ShouldAlmostEqual, 0.08)
				So(len(got), ShouldEqual, 2)
			})
		})
	})
}
