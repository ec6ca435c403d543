// Package fallback resolves which data source scores a player.
//
// Sources are tried in a fixed priority order: pitch-level events, then
// game-log aggregates, then the scouting-grade baseline alone. Exactly
// one source produces all of a player's metrics in a ranking pass; the
// resolver never blends two sources metric-by-metric, which would mix
// incompatible scales. The chosen source is returned as provenance so
// downstream consumers and tests can assert where a score came from.
package fallback

import (
	"github.com/scoutline/pennant/internal/domain/extract"
	"github.com/scoutline/pennant/internal/domain/model"
)

// Default sample thresholds. Pitchers need more pitches than hitters for
// rate stability, so the two roles carry distinct minimums.
const (
	defaultMinPitchesHitter  = 100
	defaultMinPitchesPitcher = 200
	defaultMinPlateApps      = 40
)

// PlayerData bundles one player's raw rows for resolution. Rows may span
// more time than the observation window; the resolver filters by date.
type PlayerData struct {
	Meta     model.PlayerMeta
	Pitches  []model.RawEvent
	GameLogs []model.GameLogRow
}

// Resolver picks the first source with a sufficient sample.
type Resolver struct {
	extractor         *extract.Extractor
	minPitchesHitter  int
	minPitchesPitcher int
	minPlateApps      int
}

// New creates a Resolver around an extractor with configuration options.
func New(extractor *extract.Extractor, opts ...Option) *Resolver {
	r := &Resolver{
		extractor:         extractor,
		minPitchesHitter:  defaultMinPitchesHitter,
		minPitchesPitcher: defaultMinPitchesPitcher,
		minPlateApps:      defaultMinPlateApps,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the provenance tag and metrics for one player over one
// window. A zero window or a player with no sufficient source yields
// SourceGradesOnly with no metrics; that is a status, not an error.
func (r *Resolver) Resolve(data PlayerData, w model.Window) (model.Source, map[model.Metric]model.MetricValue) {
	if w.IsZero() {
		return model.SourceGradesOnly, nil
	}

	pitches := pitchesInWindow(data.Pitches, w)
	minPitches := r.minPitchesHitter
	if data.Meta.Role == model.RolePitcher {
		minPitches = r.minPitchesPitcher
	}
	if len(pitches) >= minPitches {
		metrics := r.extractor.FromPitches(pitches, data.Meta.Role)
		// A sufficient pitch count can still fail every per-metric
		// denominator floor; treat that as an insufficient source.
		if len(metrics) > 0 {
			return model.SourcePitchLevel, metrics
		}
	}

	logs, pa := logsInWindow(data.GameLogs, w)
	if pa >= r.minPlateApps {
		metrics := r.extractor.FromGameLogs(logs, data.Meta.Role)
		if len(metrics) > 0 {
			return model.SourceGameLog, metrics
		}
	}

	return model.SourceGradesOnly, nil
}

func pitchesInWindow(events []model.RawEvent, w model.Window) []model.RawEvent {
	out := make([]model.RawEvent, 0, len(events))
	for i := range events {
		if w.Contains(events[i].GameDate) {
			out = append(out, events[i])
		}
	}
	return out
}

func logsInWindow(rows []model.GameLogRow, w model.Window) ([]model.GameLogRow, int) {
	out := make([]model.GameLogRow, 0, len(rows))
	pa := 0
	for i := range rows {
		if w.Contains(rows[i].GameDate) {
			out = append(out, rows[i])
			pa += rows[i].PlateAppearances
		}
	}
	return out, pa
}
