package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	engine "github.com/scoutline/pennant/internal/app"
	"github.com/scoutline/pennant/internal/domain/model"
)

func sampleReport() *engine.Report {
	return &engine.Report{
		RunID:  "run-1",
		Season: 2025,
		AsOf:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Ranked: []model.RankedPlayer{
			{
				Rank: 1, PlayerID: "p-1", Name: "Ace", Level: "A", Role: model.RoleHitter,
				BaselineGrade: 55, BaselineSource: "scouting", CompositePercentile: 88,
				PerformanceModifier: 8.2, FinalScore: 63.2, Tier: model.TierElite,
				Source: model.SourcePitchLevel,
			},
			{
				Rank: 2, PlayerID: "p-2", Level: "A", Role: model.RolePitcher,
				BaselineGrade: 45, BaselineSource: "default", CompositePercentile: 50,
				FinalScore: 45, Tier: model.TierOrg, Source: model.SourceGameLog,
				Indeterminate: true,
			},
		},
		Unranked: []model.UnrankedPlayer{
			{PlayerID: "p-9", Level: "A", Reason: model.ReasonNoData},
		},
		Elapsed: 12 * time.Millisecond,
	}
}

func TestRenderTable(t *testing.T) {
	Convey("Given a report", t, func() {
		var buf bytes.Buffer

		Convey("When rendered as a table", func() {
			So(renderTable(&buf, sampleReport(), 0), ShouldBeNil)
			out := buf.String()

			Convey("Then it lists ranked and unranked players", func() {
				So(out, ShouldContainSubstring, "RANK")
				So(out, ShouldContainSubstring, "Ace")
				So(out, ShouldContainSubstring, "Elite")
				So(out, ShouldContainSubstring, "2 ranked, 1 unranked")
				So(out, ShouldContainSubstring, "insufficient_data")
			})

			Convey("Then indeterminate scores are flagged", func() {
				So(out, ShouldContainSubstring, "*")
			})

			Convey("Then a nameless player falls back to its id", func() {
				So(out, ShouldContainSubstring, "p-2")
			})
		})

		Convey("When rendered with a top limit", func() {
			So(renderTable(&buf, sampleReport(), 1), ShouldBeNil)

			Convey("Then only the top row prints, but totals stay whole", func() {
				So(buf.String(), ShouldContainSubstring, "Ace")
				So(buf.String(), ShouldNotContainSubstring, "game_log")
				So(buf.String(), ShouldContainSubstring, "2 ranked")
			})
		})
	})
}

func TestRenderJSON(t *testing.T) {
	Convey("Given a report rendered as JSON", t, func() {
		var buf bytes.Buffer
		So(renderJSON(&buf, sampleReport(), 1), ShouldBeNil)

		Convey("Then the output is valid JSON with truncated standings", func() {
			var decoded struct {
				RunID  string `json:"RunID"`
				Ranked []struct {
					PlayerID string `json:"player_id"`
				} `json:"Ranked"`
			}
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded.RunID, ShouldEqual, "run-1")
			So(decoded.Ranked, ShouldHaveLength, 1)
			So(decoded.Ranked[0].PlayerID, ShouldEqual, "p-1")
		})
	})
}
