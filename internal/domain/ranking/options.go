package ranking

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithModifierScale sets the points awarded at the extreme percentiles.
func WithModifierScale(scale float64) Option {
	return func(a *Assembler) {
		if scale > 0 {
			a.modifierScale = scale
		}
	}
}

// WithTrendThreshold sets the minimum composite delta, in percentile
// points, that triggers the hot or cold adjustment.
func WithTrendThreshold(threshold float64) Option {
	return func(a *Assembler) {
		if threshold > 0 {
			a.trendThreshold = threshold
		}
	}
}

// WithTrendBonus sets the points granted or docked when the trend
// threshold is crossed.
func WithTrendBonus(bonus float64) Option {
	return func(a *Assembler) {
		if bonus > 0 {
			a.trendBonus = bonus
		}
	}
}

// WithAgeScale bounds the age adjustment in points.
func WithAgeScale(scale float64) Option {
	return func(a *Assembler) {
		if scale > 0 {
			a.ageScale = scale
		}
	}
}
