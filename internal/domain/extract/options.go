package extract

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMinDenominator sets the floor for swing, chance and plate-appearance
// denominators. Rates below the floor are omitted, not defaulted.
func WithMinDenominator(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minDenominator = n
		}
	}
}

// WithMinBattedBalls sets the floor for the hard-hit rate denominator.
func WithMinBattedBalls(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minBattedBalls = n
		}
	}
}

// WithMinPitches sets the floor for whole-pitch denominators (zone rate,
// average velocity).
func WithMinPitches(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minPitches = n
		}
	}
}

// WithHardHitSpeed sets the exit velocity, in mph, above which a batted
// ball counts as hard hit.
func WithHardHitSpeed(mph float64) Option {
	return func(e *Extractor) {
		if mph > 0 {
			e.hardHitSpeed = mph
		}
	}
}
