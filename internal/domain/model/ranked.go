package model

// Tier labels a band of the final ranked list. Bands are computed from
// rank percentiles over the ranked population, not from raw scores, so
// boundaries adapt to the population size.
type Tier string

const (
	TierElite  Tier = "Elite"
	TierImpact Tier = "Impact"
	TierSolid  Tier = "Solid"
	TierFringe Tier = "Fringe"
	TierOrg    Tier = "Org"
)

// Contribution is one metric's share of a composite percentile, kept for
// explainability. Weight is the redistributed (effective) weight, so the
// contributions of a breakdown always sum to the composite.
type Contribution struct {
	Metric       Metric  `json:"metric"`
	Percentile   float64 `json:"percentile"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// RankedPlayer is the final output record for one ranking pass. Created
// fresh per invocation, never mutated after assembly.
type RankedPlayer struct {
	Rank                int                `json:"rank"`
	PlayerID            string             `json:"player_id"`
	Name                string             `json:"name,omitempty"`
	Level               string             `json:"level"`
	Role                Role               `json:"role"`
	BaselineGrade       float64            `json:"baseline_grade"`
	BaselineSource      string             `json:"baseline_source"` // "scouting", "ml", "default"
	CompositePercentile float64            `json:"composite_percentile"`
	PerformanceModifier float64            `json:"performance_modifier"`
	TrendAdjustment     float64            `json:"trend_adjustment"`
	AgeAdjustment       float64            `json:"age_adjustment"`
	FinalScore          float64            `json:"final_score"`
	Tier                Tier               `json:"tier"`
	Source              Source             `json:"source_provenance"`
	Indeterminate       bool               `json:"indeterminate,omitempty"` // any percentile came from a degenerate cohort
	Percentiles         map[Metric]float64 `json:"percentiles,omitempty"`
	Breakdown           []Contribution     `json:"breakdown,omitempty"`
}

// Unranked reason codes.
const (
	ReasonNoData = "insufficient_data" // no performance source and no baseline grade
)

// UnrankedPlayer reports a candidate that could not be scored at all.
type UnrankedPlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name,omitempty"`
	Level    string `json:"level"`
	Reason   string `json:"reason"`
}
