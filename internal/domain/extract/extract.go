// Package extract computes named rate metrics from raw rows.
//
// Extraction is a pure function over rows the caller has already filtered
// to one player and one observation window. Every rate carries its
// denominator as the sample size; a rate whose denominator is below the
// configured floor is omitted from the result, never defaulted. Division
// by zero cannot occur: a zero denominator is below every floor.
package extract

import (
	"github.com/scoutline/pennant/internal/domain/model"
)

// Default extraction constants.
const (
	defaultMinDenominator  = 20   // swings, chances, plate appearances
	defaultMinBattedBalls  = 15   // hard-hit denominator floor
	defaultMinPitches      = 50   // zone rate and velocity floors
	defaultHardHitSpeedMPH = 95.0 // exit velocity for a "hard hit" ball
)

// Extractor derives metrics from pitch-level events or game logs.
type Extractor struct {
	minDenominator int
	minBattedBalls int
	minPitches     int
	hardHitSpeed   float64
}

// New creates an Extractor with configuration options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		minDenominator: defaultMinDenominator,
		minBattedBalls: defaultMinBattedBalls,
		minPitches:     defaultMinPitches,
		hardHitSpeed:   defaultHardHitSpeedMPH,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// pitchCounts accumulates the filtered pitch tallies one pass needs.
type pitchCounts struct {
	pitches      int
	swings       int
	contacts     int
	whiffs       int
	inZone       int
	outZone      int
	chases       int
	zoneSwings   int
	zoneContacts int
	battedBalls  int
	hardHits     int
	velocitySum  float64
	velocityN    int
}

func (e *Extractor) tally(events []model.RawEvent) pitchCounts {
	var c pitchCounts
	for i := range events {
		ev := &events[i]
		c.pitches++
		if ev.Velocity > 0 {
			c.velocitySum += ev.Velocity
			c.velocityN++
		}
		if ev.InZone {
			c.inZone++
		} else {
			c.outZone++
			if ev.Swing {
				c.chases++
			}
		}
		if ev.Swing {
			c.swings++
			if ev.Contact {
				c.contacts++
			} else {
				c.whiffs++
			}
			if ev.InZone {
				c.zoneSwings++
				if ev.Contact {
					c.zoneContacts++
				}
			}
		}
		if ev.InPlay {
			c.battedBalls++
			if ev.LaunchSpeed >= e.hardHitSpeed {
				c.hardHits++
			}
		}
	}
	return c
}

// FromPitches computes pitch-level metrics for one player over one window.
// The metric set depends on role: swing decisions describe a hitter,
// induced outcomes describe a pitcher.
func (e *Extractor) FromPitches(events []model.RawEvent, role model.Role) map[model.Metric]model.MetricValue {
	out := make(map[model.Metric]model.MetricValue)
	if len(events) == 0 {
		return out
	}

	c := e.tally(events)

	putRate := func(m model.Metric, num, denom, floor int) {
		if denom < floor {
			return
		}
		out[m] = model.MetricValue{
			Metric:     m,
			Value:      float64(num) / float64(denom),
			SampleSize: denom,
			Source:     model.SourcePitchLevel,
		}
	}

	switch role {
	case model.RoleHitter:
		putRate(model.MetricContactRate, c.contacts, c.swings, e.minDenominator)
		putRate(model.MetricWhiffRate, c.whiffs, c.swings, e.minDenominator)
		putRate(model.MetricChaseRate, c.chases, c.outZone, e.minDenominator)
		putRate(model.MetricZoneContactRate, c.zoneContacts, c.zoneSwings, e.minDenominator)
		putRate(model.MetricHardHitRate, c.hardHits, c.battedBalls, e.minBattedBalls)
	case model.RolePitcher:
		putRate(model.MetricWhiffRate, c.whiffs, c.swings, e.minDenominator)
		putRate(model.MetricChaseRate, c.chases, c.outZone, e.minDenominator)
		putRate(model.MetricZoneRate, c.inZone, c.pitches, e.minPitches)
		putRate(model.MetricHardHitRate, c.hardHits, c.battedBalls, e.minBattedBalls)
		if c.velocityN >= e.minPitches {
			out[model.MetricAvgVelocity] = model.MetricValue{
				Metric:     model.MetricAvgVelocity,
				Value:      c.velocitySum / float64(c.velocityN),
				SampleSize: c.velocityN,
				Source:     model.SourcePitchLevel,
			}
		}
	}

	return out
}

// FromGameLogs computes coarse proxy metrics from summed counting stats.
// For pitchers the rows are read from the defensive side: plate
// appearances are batters faced.
func (e *Extractor) FromGameLogs(rows []model.GameLogRow, role model.Role) map[model.Metric]model.MetricValue {
	out := make(map[model.Metric]model.MetricValue)
	if len(rows) == 0 {
		return out
	}

	var pa, ab, hits, walks, strikeouts, hbp, sf int
	for i := range rows {
		r := &rows[i]
		pa += r.PlateAppearances
		ab += r.AtBats
		hits += r.Hits
		walks += r.Walks
		strikeouts += r.Strikeouts
		hbp += r.HitByPitch
		sf += r.SacFlies
	}

	putRate := func(m model.Metric, num, denom int) {
		if denom < e.minDenominator {
			return
		}
		out[m] = model.MetricValue{
			Metric:     m,
			Value:      float64(num) / float64(denom),
			SampleSize: denom,
			Source:     model.SourceGameLog,
		}
	}

	switch role {
	case model.RoleHitter:
		putRate(model.MetricBattingAvg, hits, ab)
		putRate(model.MetricOnBasePct, hits+walks+hbp, ab+walks+hbp+sf)
		putRate(model.MetricStrikeoutRate, strikeouts, pa)
		putRate(model.MetricWalkRate, walks, pa)
	case model.RolePitcher:
		putRate(model.MetricStrikeoutRate, strikeouts, pa)
		putRate(model.MetricWalkRate, walks, pa)
	}

	return out
}
