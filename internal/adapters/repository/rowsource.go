// Package repository materializes the engine's input rows and keeps the
// latest published standings.
//
// The engine itself never builds queries or performs I/O: a RowSource
// hands it a pre-filtered, already-validated Snapshot, and the engine
// hands back an ordered list that the Board retains for lookup.
package repository

import (
	"context"
	"time"

	"github.com/scoutline/pennant/internal/domain/model"
)

// PlayerRows bundles every input row for one ranking candidate. Slices
// may be empty and pointers nil; the fallback cascade decides what to do
// with whatever is present.
type PlayerRows struct {
	Meta       model.PlayerMeta
	Pitches    []model.RawEvent
	GameLogs   []model.GameLogRow
	Grade      *model.ScoutingGrade
	Prediction *model.MLPrediction
}

// Snapshot is the candidate population for one ranking pass, pre-filtered
// to a season and set of levels by the source.
type Snapshot struct {
	Season  int
	Levels  []string
	AsOf    time.Time
	Players []PlayerRows
}

// RowSource fetches the three input collections for a candidate
// population. asOf pins player ages and the ranking date so a pass is
// reproducible.
type RowSource interface {
	FetchSnapshot(ctx context.Context, season int, levels []string, asOf time.Time) (*Snapshot, error)
}
