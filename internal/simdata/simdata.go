// Package simdata generates deterministic synthetic populations for
// local runs, fixtures and load tests.
//
// The generator is seeded: the same seed always yields the same
// snapshot, so a fixture written today replays identically later.
package simdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/scoutline/pennant/internal/adapters/repository"
	"github.com/scoutline/pennant/internal/domain/model"
)

// Default generation constants.
const (
	defaultSeed            = 1
	defaultPlayersPerLevel = 40
	defaultSeason          = 2025

	pitchesPerPlayer = 400
	gamesPerPlayer   = 25
)

// Archetype shares within a level. The remainder are performance-only
// or grade-only edge cases.
const (
	sharePitchTracked = 0.55 // full pitch-level coverage
	shareGameLogOnly  = 0.25 // coarse stats only
	shareGradesOnly   = 0.12 // scouting report, no performance rows
	shareNoData       = 0.03 // neither rows nor report
)

// Generator builds synthetic candidate populations.
type Generator struct {
	seed            int64
	season          int
	levels          []string
	playersPerLevel int
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:            defaultSeed,
		season:          defaultSeason,
		levels:          []string{"A", "A+", "AA"},
		playersPerLevel: defaultPlayersPerLevel,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate builds a full snapshot as of the given date.
func (g *Generator) Generate(asOf time.Time) *repository.Snapshot {
	rng := rand.New(rand.NewSource(g.seed))

	snap := &repository.Snapshot{
		Season: g.season,
		Levels: g.levels,
		AsOf:   asOf,
	}

	for li, level := range g.levels {
		for i := 0; i < g.playersPerLevel; i++ {
			role := model.RoleHitter
			if i%3 == 2 {
				role = model.RolePitcher
			}
			id := fmt.Sprintf("sim-%s-%03d", level, i)
			meta := model.PlayerMeta{
				PlayerID: id,
				Name:     fmt.Sprintf("Player %s-%03d", level, i),
				Role:     role,
				Level:    level,
				Season:   g.season,
				// Older cohorts at higher levels, with per-player jitter.
				Age: 18.5 + float64(li)*1.4 + rng.Float64()*3,
			}

			pr := repository.PlayerRows{Meta: meta}
			skill := rng.Float64() // 0 weak .. 1 elite

			switch kind := rng.Float64(); {
			case kind < sharePitchTracked:
				pr.Pitches = g.pitches(rng, meta, skill, asOf)
				pr.Grade = g.grade(rng, meta, skill)
			case kind < sharePitchTracked+shareGameLogOnly:
				pr.GameLogs = g.logs(rng, meta, skill, asOf)
				pr.Grade = g.grade(rng, meta, skill)
			case kind < sharePitchTracked+shareGameLogOnly+shareGradesOnly:
				pr.Grade = g.grade(rng, meta, skill)
			case kind < sharePitchTracked+shareGameLogOnly+shareGradesOnly+shareNoData:
				// Nothing: exercised by the unranked path.
			default:
				// Performance rows without a report: default baseline path.
				pr.Pitches = g.pitches(rng, meta, skill, asOf)
			}

			if pr.Grade != nil && rng.Float64() < 0.3 {
				pr.Prediction = &model.MLPrediction{
					PlayerID:    id,
					Season:      g.season,
					PredictedFV: clampFV(pr.Grade.FutureValue + rng.Float64()*10 - 5),
					Confidence:  0.5 + rng.Float64()*0.5,
				}
			}

			snap.Players = append(snap.Players, pr)
		}
	}

	return snap
}

// pitches generates a skill-correlated pitch history inside the trailing
// two months before asOf.
func (g *Generator) pitches(rng *rand.Rand, meta model.PlayerMeta, skill float64, asOf time.Time) []model.RawEvent {
	events := make([]model.RawEvent, 0, pitchesPerPlayer)
	contactP := 0.55 + 0.35*skill
	chaseP := 0.40 - 0.25*skill
	if meta.Role == model.RolePitcher {
		// For pitchers skill inverts the batter-facing rates.
		contactP = 0.90 - 0.35*skill
		chaseP = 0.15 + 0.25*skill
	}

	for i := 0; i < pitchesPerPlayer; i++ {
		inZone := rng.Float64() < 0.48
		var swing bool
		if inZone {
			swing = rng.Float64() < 0.65
		} else {
			swing = rng.Float64() < chaseP
		}
		contact := swing && rng.Float64() < contactP
		inPlay := contact && rng.Float64() < 0.6

		launch := 0.0
		if inPlay {
			launch = 78 + 18*skill + rng.Float64()*14
		}

		events = append(events, model.RawEvent{
			EventID:     fmt.Sprintf("%s-ev-%05d", meta.PlayerID, i),
			PlayerID:    meta.PlayerID,
			Level:       meta.Level,
			Season:      meta.Season,
			GameID:      fmt.Sprintf("%s-g-%03d", meta.PlayerID, i/16),
			GameDate:    asOf.AddDate(0, 0, -(i/16)%55 - 1),
			Velocity:    86 + 8*skill + rng.Float64()*4,
			SpinRate:    1900 + 500*skill + rng.Float64()*200,
			InZone:      inZone,
			Swing:       swing,
			Contact:     contact,
			InPlay:      inPlay,
			LaunchSpeed: launch,
		})
	}
	return events
}

// logs generates skill-correlated game logs.
func (g *Generator) logs(rng *rand.Rand, meta model.PlayerMeta, skill float64, asOf time.Time) []model.GameLogRow {
	rows := make([]model.GameLogRow, 0, gamesPerPlayer)
	for i := 0; i < gamesPerPlayer; i++ {
		pa := 3 + rng.Intn(3)
		hits := 0
		walks := 0
		strikeouts := 0
		for p := 0; p < pa; p++ {
			switch r := rng.Float64(); {
			case r < 0.18+0.14*skill:
				hits++
			case r < 0.28+0.18*skill:
				walks++
			case r < 0.55-0.12*skill:
				strikeouts++
			}
		}
		ab := pa - walks
		rows = append(rows, model.GameLogRow{
			RowID:            fmt.Sprintf("%s-gl-%03d", meta.PlayerID, i),
			PlayerID:         meta.PlayerID,
			Level:            meta.Level,
			Season:           meta.Season,
			GameDate:         asOf.AddDate(0, 0, -(i%55 + 1)),
			PlateAppearances: pa,
			AtBats:           ab,
			Hits:             hits,
			Walks:            walks,
			Strikeouts:       strikeouts,
		})
	}
	return rows
}

func (g *Generator) grade(rng *rand.Rand, meta model.PlayerMeta, skill float64) *model.ScoutingGrade {
	fv := clampFV(35 + 25*skill + rng.Float64()*10 - 5)
	return &model.ScoutingGrade{
		PlayerID:    meta.PlayerID,
		ReportYear:  meta.Season,
		FutureValue: fv,
		Tools: map[string]int{
			"hit":   20 + int(40*skill) + rng.Intn(10),
			"power": 20 + int(35*skill) + rng.Intn(15),
		},
	}
}

func clampFV(fv float64) float64 {
	if fv < 20 {
		return 20
	}
	if fv > 80 {
		return 80
	}
	return fv
}
