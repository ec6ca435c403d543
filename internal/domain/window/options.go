package window

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithTrailingDays sets the trailing window length during an active season.
func WithTrailingDays(days int) Option {
	return func(s *Selector) {
		if days > 0 {
			s.trailingDays = days
		}
	}
}

// WithGraceDays sets how stale the last observation may be before the
// selector treats the season as over and switches to the full-season range.
func WithGraceDays(days int) Option {
	return func(s *Selector) {
		if days > 0 {
			s.graceDays = days
		}
	}
}

// WithTrendDays sets the length of the recent sub-window used for the
// hot/cold trend comparison.
func WithTrendDays(days int) Option {
	return func(s *Selector) {
		if days > 0 {
			s.trendDays = days
		}
	}
}
