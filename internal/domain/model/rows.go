// Package model contains domain records passed between layers.
//
// The three input collections (RawEvent, GameLogRow, ScoutingGrade) are
// materialized by an external ingestion pipeline and read-only here. The
// engine never builds queries or mutates rows; "missing" is always a
// structural absence, never a zero masquerading as a value.
package model

import "time"

// RawEvent is one pitch a player saw (hitter) or threw (pitcher).
type RawEvent struct {
	EventID     string // unique id for idempotency
	PlayerID    string
	Level       string // e.g. "A", "A+", "AA", "AAA"
	Season      int
	GameID      string
	GameDate    time.Time
	Velocity    float64 // release velocity, mph
	SpinRate    float64 // rpm, 0 when not tracked
	InZone      bool    // pitch crossed the strike zone
	Swing       bool
	Contact     bool    // swing made contact (foul or in play)
	InPlay      bool    // ball put in play
	LaunchSpeed float64 // exit velocity, mph; 0 when not tracked or no contact
	LaunchAngle float64 // degrees; meaningful only when InPlay
	Outcome     string  // terminal outcome code for the plate appearance, "" mid-PA
}

// GameLogRow is one player-game of coarse counting stats. For pitchers the
// same fields are read from the defensive side: PA is batters faced,
// Strikeouts are strikeouts recorded, Walks are walks allowed.
type GameLogRow struct {
	RowID            string
	PlayerID         string
	Level            string
	Season           int
	GameDate         time.Time
	PlateAppearances int
	AtBats           int
	Hits             int
	Walks            int
	Strikeouts       int
	HitByPitch       int
	SacFlies         int
}

// ScoutingGrade is one report-year of tool grades on the 20-80 scale.
type ScoutingGrade struct {
	PlayerID    string
	ReportYear  int
	FutureValue float64        // 20-80 summary grade, the ranking baseline
	Tools       map[string]int // per-tool grades, e.g. "hit", "power", "command"
}

// MLPrediction is a model-produced alternative baseline for a player.
// It substitutes the scouting future value wholesale when preferred;
// it is never blended metric-by-metric with performance data.
type MLPrediction struct {
	PlayerID    string
	Season      int
	PredictedFV float64 // same 20-80 scale as ScoutingGrade.FutureValue
	Confidence  float64 // 0-1
}
