package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scoutline/pennant/internal/domain/dedupe"
	"github.com/scoutline/pennant/internal/domain/model"
)

// fixtureFile is the on-disk YAML shape. It mirrors the domain records
// closely but keeps its own tags so the domain package stays free of
// serialization concerns.
type fixtureFile struct {
	Season  int             `yaml:"season"`
	Levels  []string        `yaml:"levels"`
	AsOf    time.Time       `yaml:"as_of"`
	Players []fixturePlayer `yaml:"players"`
}

type fixturePlayer struct {
	PlayerID   string             `yaml:"player_id"`
	Name       string             `yaml:"name"`
	Role       string             `yaml:"role"`
	Level      string             `yaml:"level"`
	Season     int                `yaml:"season"`
	Age        float64            `yaml:"age"`
	Pitches    []fixturePitch     `yaml:"pitches,omitempty"`
	GameLogs   []fixtureGameLog   `yaml:"game_logs,omitempty"`
	Grade      *fixtureGrade      `yaml:"grade,omitempty"`
	Prediction *fixturePrediction `yaml:"prediction,omitempty"`
}

type fixturePitch struct {
	EventID     string    `yaml:"event_id"`
	GameID      string    `yaml:"game_id"`
	GameDate    time.Time `yaml:"game_date"`
	Velocity    float64   `yaml:"velocity"`
	SpinRate    float64   `yaml:"spin_rate,omitempty"`
	InZone      bool      `yaml:"in_zone"`
	Swing       bool      `yaml:"swing"`
	Contact     bool      `yaml:"contact"`
	InPlay      bool      `yaml:"in_play"`
	LaunchSpeed float64   `yaml:"launch_speed,omitempty"`
	LaunchAngle float64   `yaml:"launch_angle,omitempty"`
	Outcome     string    `yaml:"outcome,omitempty"`
}

type fixtureGameLog struct {
	RowID            string    `yaml:"row_id"`
	GameDate         time.Time `yaml:"game_date"`
	PlateAppearances int       `yaml:"pa"`
	AtBats           int       `yaml:"ab"`
	Hits             int       `yaml:"h"`
	Walks            int       `yaml:"bb"`
	Strikeouts       int       `yaml:"so"`
	HitByPitch       int       `yaml:"hbp"`
	SacFlies         int       `yaml:"sf"`
}

type fixtureGrade struct {
	ReportYear  int            `yaml:"report_year"`
	FutureValue float64        `yaml:"future_value"`
	Tools       map[string]int `yaml:"tools,omitempty"`
}

type fixturePrediction struct {
	PredictedFV float64 `yaml:"predicted_fv"`
	Confidence  float64 `yaml:"confidence"`
}

// FixtureSource reads a candidate population from a YAML fixture file.
// It serves local runs and the seeded simulation data; the file's season
// and as-of date win over the caller's when set, so a fixture replays
// identically regardless of when it is loaded.
type FixtureSource struct {
	path       string
	newDeduper func() dedupe.Deduper
}

// NewFixtureSource creates a source backed by the fixture at path.
func NewFixtureSource(path string, opts ...FixtureOption) *FixtureSource {
	s := &FixtureSource{
		path:       path,
		newDeduper: func() dedupe.Deduper { return dedupe.NewInMemoryDeduper() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchSnapshot loads and validates the fixture. Rows with replayed ids
// are dropped, never double counted. The deduper is scoped to this one
// fetch: ids seen here carry no weight on the next fetch, so the same
// source returns the same snapshot every time.
func (s *FixtureSource) FetchSnapshot(ctx context.Context, season int, levels []string, asOf time.Time) (*Snapshot, error) {
	deduper := s.newDeduper()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", s.path, err)
	}

	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFixture, err)
	}

	if f.Season == 0 {
		f.Season = season
	}
	if f.AsOf.IsZero() {
		f.AsOf = asOf
	}
	if len(f.Levels) == 0 {
		f.Levels = levels
	}

	snap := &Snapshot{
		Season: f.Season,
		Levels: f.Levels,
		AsOf:   f.AsOf,
	}
	wanted := levelSet(f.Levels)

	for _, fp := range f.Players {
		if fp.PlayerID == "" {
			return nil, fmt.Errorf("%w: player with empty id", ErrBadFixture)
		}
		role := model.Role(fp.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: player %s has unknown role %q", ErrBadFixture, fp.PlayerID, fp.Role)
		}
		if len(wanted) > 0 && !wanted[fp.Level] {
			continue
		}

		pr := PlayerRows{
			Meta: model.PlayerMeta{
				PlayerID: fp.PlayerID,
				Name:     fp.Name,
				Role:     role,
				Level:    fp.Level,
				Season:   fp.Season,
				Age:      fp.Age,
			},
		}
		if pr.Meta.Season == 0 {
			pr.Meta.Season = f.Season
		}

		for _, p := range fp.Pitches {
			if deduper.SeenAndRecord(ctx, p.EventID) {
				continue
			}
			pr.Pitches = append(pr.Pitches, model.RawEvent{
				EventID:     p.EventID,
				PlayerID:    fp.PlayerID,
				Level:       fp.Level,
				Season:      pr.Meta.Season,
				GameID:      p.GameID,
				GameDate:    p.GameDate,
				Velocity:    p.Velocity,
				SpinRate:    p.SpinRate,
				InZone:      p.InZone,
				Swing:       p.Swing,
				Contact:     p.Contact,
				InPlay:      p.InPlay,
				LaunchSpeed: p.LaunchSpeed,
				LaunchAngle: p.LaunchAngle,
				Outcome:     p.Outcome,
			})
		}

		for _, g := range fp.GameLogs {
			if deduper.SeenAndRecord(ctx, g.RowID) {
				continue
			}
			pr.GameLogs = append(pr.GameLogs, model.GameLogRow{
				RowID:            g.RowID,
				PlayerID:         fp.PlayerID,
				Level:            fp.Level,
				Season:           pr.Meta.Season,
				GameDate:         g.GameDate,
				PlateAppearances: g.PlateAppearances,
				AtBats:           g.AtBats,
				Hits:             g.Hits,
				Walks:            g.Walks,
				Strikeouts:       g.Strikeouts,
				HitByPitch:       g.HitByPitch,
				SacFlies:         g.SacFlies,
			})
		}

		if fp.Grade != nil {
			if fp.Grade.FutureValue < 20 || fp.Grade.FutureValue > 80 {
				return nil, fmt.Errorf("%w: player %s grade %.1f outside 20-80", ErrBadFixture, fp.PlayerID, fp.Grade.FutureValue)
			}
			pr.Grade = &model.ScoutingGrade{
				PlayerID:    fp.PlayerID,
				ReportYear:  fp.Grade.ReportYear,
				FutureValue: fp.Grade.FutureValue,
				Tools:       fp.Grade.Tools,
			}
		}
		if fp.Prediction != nil {
			pr.Prediction = &model.MLPrediction{
				PlayerID:    fp.PlayerID,
				Season:      pr.Meta.Season,
				PredictedFV: fp.Prediction.PredictedFV,
				Confidence:  fp.Prediction.Confidence,
			}
		}

		snap.Players = append(snap.Players, pr)
	}

	return snap, nil
}

// WriteFixture serializes a snapshot to YAML at path. Used by the seed
// command to persist generated populations.
func WriteFixture(path string, snap *Snapshot) error {
	f := fixtureFile{
		Season: snap.Season,
		Levels: snap.Levels,
		AsOf:   snap.AsOf,
	}
	for _, pr := range snap.Players {
		fp := fixturePlayer{
			PlayerID: pr.Meta.PlayerID,
			Name:     pr.Meta.Name,
			Role:     string(pr.Meta.Role),
			Level:    pr.Meta.Level,
			Season:   pr.Meta.Season,
			Age:      pr.Meta.Age,
		}
		for _, p := range pr.Pitches {
			fp.Pitches = append(fp.Pitches, fixturePitch{
				EventID:     p.EventID,
				GameID:      p.GameID,
				GameDate:    p.GameDate,
				Velocity:    p.Velocity,
				SpinRate:    p.SpinRate,
				InZone:      p.InZone,
				Swing:       p.Swing,
				Contact:     p.Contact,
				InPlay:      p.InPlay,
				LaunchSpeed: p.LaunchSpeed,
				LaunchAngle: p.LaunchAngle,
				Outcome:     p.Outcome,
			})
		}
		for _, g := range pr.GameLogs {
			fp.GameLogs = append(fp.GameLogs, fixtureGameLog{
				RowID:            g.RowID,
				GameDate:         g.GameDate,
				PlateAppearances: g.PlateAppearances,
				AtBats:           g.AtBats,
				Hits:             g.Hits,
				Walks:            g.Walks,
				Strikeouts:       g.Strikeouts,
				HitByPitch:       g.HitByPitch,
				SacFlies:         g.SacFlies,
			})
		}
		if pr.Grade != nil {
			fp.Grade = &fixtureGrade{
				ReportYear:  pr.Grade.ReportYear,
				FutureValue: pr.Grade.FutureValue,
				Tools:       pr.Grade.Tools,
			}
		}
		if pr.Prediction != nil {
			fp.Prediction = &fixturePrediction{
				PredictedFV: pr.Prediction.PredictedFV,
				Confidence:  pr.Prediction.Confidence,
			}
		}
		f.Players = append(f.Players, fp)
	}

	out, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

func levelSet(levels []string) map[string]bool {
	m := make(map[string]bool, len(levels))
	for _, l := range levels {
		m[l] = true
	}
	return m
}
