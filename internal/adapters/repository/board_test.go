package repository_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/scoutline/pennant/internal/adapters/repository"
	"github.com/scoutline/pennant/internal/domain/model"
)

func TestBoard(t *testing.T) {
	ctx := context.Background()

	ranked := []model.RankedPlayer{
		{Rank: 1, PlayerID: "p-1", Name: "Ace", FinalScore: 61.5},
		{Rank: 2, PlayerID: "p-2", Name: "Deuce", FinalScore: 55.0},
		{Rank: 3, PlayerID: "p-3", Name: "Trey", FinalScore: 48.2},
	}
	unranked := []model.UnrankedPlayer{
		{PlayerID: "p-9", Name: "Ghost", Reason: model.ReasonNoData},
	}

	Convey("Given an empty board", t, func() {
		b := repository.NewBoard()

		Convey("Then lookups report no standings", func() {
			_, err := b.TopN(ctx, 5)
			So(err, ShouldEqual, repository.ErrNoStandings)

			_, err = b.Rank(ctx, "p-1")
			So(err, ShouldEqual, repository.ErrNoStandings)

			So(b.Count(ctx), ShouldEqual, 0)
			So(b.RunID(), ShouldBeEmpty)
		})
	})

	Convey("Given a board with one published run", t, func() {
		b := repository.NewBoard()
		b.Publish("run-1", ranked, unranked)

		Convey("When asking for the top two", func() {
			top, err := b.TopN(ctx, 2)

			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 2)
			So(top[0].PlayerID, ShouldEqual, "p-1")
			So(top[1].PlayerID, ShouldEqual, "p-2")
		})

		Convey("When asking for more entries than exist", func() {
			top, err := b.TopN(ctx, 100)

			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 3)
		})

		Convey("When asking with a non-positive limit", func() {
			_, err := b.TopN(ctx, 0)
			So(err, ShouldEqual, repository.ErrInvalidLimit)
		})

		Convey("When looking up a ranked player", func() {
			e, err := b.Rank(ctx, "p-3")

			So(err, ShouldBeNil)
			So(e.Rank, ShouldEqual, 3)
		})

		Convey("When looking up an unknown player", func() {
			_, err := b.Rank(ctx, "nobody")
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("Then unranked players are retained", func() {
			u := b.Unranked(ctx)
			So(u, ShouldHaveLength, 1)
			So(u[0].Reason, ShouldEqual, model.ReasonNoData)
		})

		Convey("When a new run is published", func() {
			b.Publish("run-2", ranked[:1], nil)

			Convey("Then the old run is replaced wholesale", func() {
				So(b.RunID(), ShouldEqual, "run-2")
				So(b.Count(ctx), ShouldEqual, 1)

				_, err := b.Rank(ctx, "p-2")
				So(err, ShouldEqual, repository.ErrNotFound)
				So(b.Unranked(ctx), ShouldBeEmpty)
			})
		})
	})
}
