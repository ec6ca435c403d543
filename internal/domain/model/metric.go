package model

// Metric names a derived rate or quality measure. All rate metrics are
// fractions in [0,1]; avg_velocity is in mph. Percentiles derived from
// metrics are points in [0,100] throughout the engine.
type Metric string

const (
	// Pitch-level metrics.
	MetricContactRate     Metric = "contact_rate"      // contacted swings / swings
	MetricChaseRate       Metric = "chase_rate"        // swings outside the zone / pitches outside the zone
	MetricWhiffRate       Metric = "whiff_rate"        // missed swings / swings
	MetricZoneContactRate Metric = "zone_contact_rate" // contacted in-zone swings / in-zone swings
	MetricZoneRate        Metric = "zone_rate"         // in-zone pitches / pitches (pitchers)
	MetricHardHitRate     Metric = "hard_hit_rate"     // batted balls >= hard-hit threshold / batted balls
	MetricAvgVelocity     Metric = "avg_velocity"      // mean release velocity (pitchers)

	// Game-log proxy metrics.
	MetricBattingAvg    Metric = "batting_avg"
	MetricOnBasePct     Metric = "on_base_pct"
	MetricStrikeoutRate Metric = "strikeout_rate" // strikeouts / plate appearances
	MetricWalkRate      Metric = "walk_rate"      // walks / plate appearances
)

// Source tags which fallback tier produced a player's metrics.
type Source string

const (
	SourcePitchLevel Source = "pitch_level"
	SourceGameLog    Source = "game_log"
	SourceGradesOnly Source = "grades_only" // no performance signal
)

// MetricValue is an ephemeral derived record for one ranking pass.
type MetricValue struct {
	Metric     Metric
	Value      float64
	SampleSize int
	Source     Source
}

// HigherIsBetter reports the orientation of a metric for a role. Several
// metrics flip orientation between hitters and pitchers: a hitter chasing
// out of the zone is a flaw, a pitcher inducing chases is a skill.
func HigherIsBetter(role Role, m Metric) bool {
	switch m {
	case MetricContactRate, MetricZoneContactRate, MetricBattingAvg, MetricOnBasePct:
		return true
	case MetricZoneRate, MetricAvgVelocity:
		return true
	case MetricChaseRate, MetricWhiffRate:
		return role == RolePitcher
	case MetricHardHitRate:
		return role == RoleHitter
	case MetricStrikeoutRate:
		return role == RolePitcher
	case MetricWalkRate:
		return role == RoleHitter
	default:
		return true
	}
}
