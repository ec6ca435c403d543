package simdata_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/scoutline/pennant/internal/domain/model"
	"github.com/scoutline/pennant/internal/simdata"
)

func TestGenerator(t *testing.T) {
	asOf := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	Convey("Given a seeded generator", t, func() {
		gen := simdata.New(
			simdata.WithSeed(42),
			simdata.WithLevels([]string{"A", "AA"}),
			simdata.WithPlayersPerLevel(30),
		)

		Convey("When generating a snapshot", func() {
			snap := gen.Generate(asOf)

			Convey("Then the population has the requested shape", func() {
				So(snap.Season, ShouldEqual, 2025)
				So(snap.Players, ShouldHaveLength, 60)
				So(snap.Levels, ShouldResemble, []string{"A", "AA"})
			})

			Convey("Then both roles and several sources appear", func() {
				var hitters, pitchers, withPitches, withLogs, gradesOnly, noData int
				for _, p := range snap.Players {
					if p.Meta.Role == model.RoleHitter {
						hitters++
					} else {
						pitchers++
					}
					switch {
					case len(p.Pitches) > 0:
						withPitches++
					case len(p.GameLogs) > 0:
						withLogs++
					case p.Grade != nil:
						gradesOnly++
					default:
						noData++
					}
				}
				So(hitters, ShouldBeGreaterThan, 0)
				So(pitchers, ShouldBeGreaterThan, 0)
				So(withPitches, ShouldBeGreaterThan, 0)
				So(withLogs, ShouldBeGreaterThan, 0)
				So(gradesOnly, ShouldBeGreaterThan, 0)
			})

			Convey("Then every grade is on the 20-80 scale and rows are dated before asOf", func() {
				for _, p := range snap.Players {
					if p.Grade != nil {
						So(p.Grade.FutureValue, ShouldBeBetweenOrEqual, 20, 80)
					}
					for _, ev := range p.Pitches {
						So(ev.GameDate.Before(asOf), ShouldBeTrue)
					}
				}
			})
		})

		Convey("When generating twice with the same seed", func() {
			a := gen.Generate(asOf)
			b := simdata.New(
				simdata.WithSeed(42),
				simdata.WithLevels([]string{"A", "AA"}),
				simdata.WithPlayersPerLevel(30),
			).Generate(asOf)

			Convey("Then the snapshots are identical", func() {
				So(b, ShouldResemble, a)
			})
		})

		Convey("When generating with a different seed", func() {
			a := gen.Generate(asOf)
			b := simdata.New(
				simdata.WithSeed(7),
				simdata.WithLevels([]string{"A", "AA"}),
				simdata.WithPlayersPerLevel(30),
			).Generate(asOf)

			Convey("Then the snapshots differ", func() {
				So(b, ShouldNotResemble, a)
			})
		})
	})
}
