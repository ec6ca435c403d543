package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/scoutline/pennant/internal/domain/dedupe"
	"github.com/scoutline/pennant/internal/domain/model"
)

const hoursPerYear = 24 * 365.25

// PostgresSource materializes a snapshot from the ingestion schema:
// players, raw_events, game_logs, scouting_grades, ml_predictions.
// Queries only read; the ingestion pipeline owns all writes.
type PostgresSource struct {
	db         *sqlx.DB
	newDeduper func() dedupe.Deduper
}

// NewPostgresSource wraps an open connection pool.
func NewPostgresSource(db *sqlx.DB, opts ...PostgresOption) *PostgresSource {
	s := &PostgresSource{
		db:         db,
		newDeduper: func() dedupe.Deduper { return dedupe.NewInMemoryDeduper() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenPostgresSource connects to url and verifies the connection.
func OpenPostgresSource(ctx context.Context, url string, opts ...PostgresOption) (*PostgresSource, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewPostgresSource(db, opts...), nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

type playerRow struct {
	PlayerID  string    `db:"player_id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	Level     string    `db:"level"`
	Season    int       `db:"season"`
	BirthDate time.Time `db:"birth_date"`
}

type rawEventRow struct {
	EventID     string    `db:"event_id"`
	PlayerID    string    `db:"player_id"`
	Level       string    `db:"level"`
	Season      int       `db:"season"`
	GameID      string    `db:"game_id"`
	GameDate    time.Time `db:"game_date"`
	Velocity    float64   `db:"velocity"`
	SpinRate    float64   `db:"spin_rate"`
	InZone      bool      `db:"in_zone"`
	Swing       bool      `db:"swing"`
	Contact     bool      `db:"contact"`
	InPlay      bool      `db:"in_play"`
	LaunchSpeed float64   `db:"launch_speed"`
	LaunchAngle float64   `db:"launch_angle"`
	Outcome     string    `db:"outcome"`
}

type gameLogRow struct {
	RowID            string    `db:"row_id"`
	PlayerID         string    `db:"player_id"`
	Level            string    `db:"level"`
	Season           int       `db:"season"`
	GameDate         time.Time `db:"game_date"`
	PlateAppearances int       `db:"pa"`
	AtBats           int       `db:"ab"`
	Hits             int       `db:"h"`
	Walks            int       `db:"bb"`
	Strikeouts       int       `db:"so"`
	HitByPitch       int       `db:"hbp"`
	SacFlies         int       `db:"sf"`
}

type gradeRow struct {
	PlayerID    string  `db:"player_id"`
	ReportYear  int     `db:"report_year"`
	FutureValue float64 `db:"future_value"`
}

type predictionRow struct {
	PlayerID    string  `db:"player_id"`
	Season      int     `db:"season"`
	PredictedFV float64 `db:"predicted_fv"`
	Confidence  float64 `db:"confidence"`
}

// FetchSnapshot reads the candidate population for one season and level
// set. Rows dated after asOf are excluded so a re-run against the same
// as-of date sees the same data. The deduper is scoped to this one
// fetch: it drops replays within a batch without starving later fetches
// of rows they have every right to see again.
func (s *PostgresSource) FetchSnapshot(ctx context.Context, season int, levels []string, asOf time.Time) (*Snapshot, error) {
	deduper := s.newDeduper()
	byID := make(map[string]*PlayerRows)
	order := make([]string, 0, 256)

	var players []playerRow
	if err := s.db.SelectContext(ctx, &players,
		`SELECT player_id, name, role, level, season, birth_date
		   FROM players
		  WHERE season = $1 AND level = ANY($2)
		  ORDER BY player_id`,
		season, pq.Array(levels)); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	for _, p := range players {
		role := model.Role(p.Role)
		if !role.Valid() {
			continue
		}
		byID[p.PlayerID] = &PlayerRows{
			Meta: model.PlayerMeta{
				PlayerID: p.PlayerID,
				Name:     p.Name,
				Role:     role,
				Level:    p.Level,
				Season:   p.Season,
				Age:      asOf.Sub(p.BirthDate).Hours() / hoursPerYear,
			},
		}
		order = append(order, p.PlayerID)
	}

	var events []rawEventRow
	if err := s.db.SelectContext(ctx, &events,
		`SELECT event_id, player_id, level, season, game_id, game_date,
		        velocity, spin_rate, in_zone, swing, contact, in_play,
		        launch_speed, launch_angle, outcome
		   FROM raw_events
		  WHERE season = $1 AND level = ANY($2) AND game_date <= $3
		  ORDER BY game_date, event_id`,
		season, pq.Array(levels), asOf); err != nil {
		return nil, fmt.Errorf("select raw events: %w", err)
	}
	for _, e := range events {
		pr, ok := byID[e.PlayerID]
		if !ok || deduper.SeenAndRecord(ctx, e.EventID) {
			continue
		}
		pr.Pitches = append(pr.Pitches, model.RawEvent{
			EventID:     e.EventID,
			PlayerID:    e.PlayerID,
			Level:       e.Level,
			Season:      e.Season,
			GameID:      e.GameID,
			GameDate:    e.GameDate,
			Velocity:    e.Velocity,
			SpinRate:    e.SpinRate,
			InZone:      e.InZone,
			Swing:       e.Swing,
			Contact:     e.Contact,
			InPlay:      e.InPlay,
			LaunchSpeed: e.LaunchSpeed,
			LaunchAngle: e.LaunchAngle,
			Outcome:     e.Outcome,
		})
	}

	var logs []gameLogRow
	if err := s.db.SelectContext(ctx, &logs,
		`SELECT row_id, player_id, level, season, game_date,
		        pa, ab, h, bb, so, hbp, sf
		   FROM game_logs
		  WHERE season = $1 AND level = ANY($2) AND game_date <= $3
		  ORDER BY game_date, row_id`,
		season, pq.Array(levels), asOf); err != nil {
		return nil, fmt.Errorf("select game logs: %w", err)
	}
	for _, g := range logs {
		pr, ok := byID[g.PlayerID]
		if !ok || deduper.SeenAndRecord(ctx, g.RowID) {
			continue
		}
		pr.GameLogs = append(pr.GameLogs, model.GameLogRow{
			RowID:            g.RowID,
			PlayerID:         g.PlayerID,
			Level:            g.Level,
			Season:           g.Season,
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

	var grades []gradeRow
	if err := s.db.SelectContext(ctx, &grades,
		`SELECT DISTINCT ON (player_id) player_id, report_year, future_value
		   FROM scouting_grades
		  WHERE report_year <= $1
		  ORDER BY player_id, report_year DESC`,
		season); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("select scouting grades: %w", err)
	}
	for _, g := range grades {
		pr, ok := byID[g.PlayerID]
		if !ok {
			continue
		}
		pr.Grade = &model.ScoutingGrade{
			PlayerID:    g.PlayerID,
			ReportYear:  g.ReportYear,
			FutureValue: g.FutureValue,
		}
	}

	var preds []predictionRow
	if err := s.db.SelectContext(ctx, &preds,
		`SELECT player_id, season, predicted_fv, confidence
		   FROM ml_predictions
		  WHERE season = $1`,
		season); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("select ml predictions: %w", err)
	}
	for _, p := range preds {
		pr, ok := byID[p.PlayerID]
		if !ok {
			continue
		}
		pr.Prediction = &model.MLPrediction{
			PlayerID:    p.PlayerID,
			Season:      p.Season,
			PredictedFV: p.PredictedFV,
			Confidence:  p.Confidence,
		}
	}

	snap := &Snapshot{
		Season:  season,
		Levels:  levels,
		AsOf:    asOf,
		Players: make([]PlayerRows, 0, len(order)),
	}
	for _, id := range order {
		snap.Players = append(snap.Players, *byID[id])
	}
	return snap, nil
}
