// Package window decides the observation date range for a player.
//
// The policy exists to kill one recurring bug class: applying a fixed
// trailing window after a season has ended silently drops most of the
// season's observations. The selector detects a stale season via the
// days-since-last-observation threshold and switches to the full-season
// range instead.
package window

import (
	"time"

	"github.com/scoutline/pennant/internal/domain/model"
)

// Default selection constants.
const (
	defaultTrailingDays = 60
	defaultGraceDays    = 14
	defaultTrendDays    = 21
)

// Selector chooses observation windows. It is pure and safe for
// concurrent use.
type Selector struct {
	trailingDays int
	graceDays    int
	trendDays    int
}

// New creates a Selector with configuration options.
func New(opts ...Option) *Selector {
	s := &Selector{
		trailingDays: defaultTrailingDays,
		graceDays:    defaultGraceDays,
		trendDays:    defaultTrendDays,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Select returns the observation window for a player.
//
// If the season has no observations at all, the zero window is returned
// and callers must treat it as "no data". If the last observation is more
// than the grace period old, the season is effectively over and the
// window covers the entire season to date. Otherwise the window is the
// trailing period, clamped to the season start so a cohort never mixes
// observations across a season boundary.
func (s *Selector) Select(today time.Time, season model.SeasonBounds, lastObs time.Time, hasObs bool) model.Window {
	if !hasObs {
		return model.Window{}
	}

	end := today
	if end.After(season.End) {
		end = season.End
	}

	if today.Sub(lastObs) > time.Duration(s.graceDays)*24*time.Hour {
		// Season effectively over: full season to date.
		return model.Window{Start: season.Start, End: end}
	}

	start := today.AddDate(0, 0, -s.trailingDays)
	if start.Before(season.Start) {
		start = season.Start
	}
	return model.Window{Start: start, End: end}
}

// Trend returns the short recent sub-window of a base window used for the
// hot/cold comparison. A base window shorter than twice the trend length
// yields the zero window: there is not enough separation for a recent
// sub-window to mean anything.
func (s *Selector) Trend(base model.Window) model.Window {
	if base.IsZero() || base.Days() < 2*s.trendDays {
		return model.Window{}
	}
	return model.Window{
		Start: base.End.AddDate(0, 0, -s.trendDays),
		End:   base.End,
	}
}
