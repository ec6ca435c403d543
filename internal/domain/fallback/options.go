package fallback

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithMinPitchesHitter sets the pitch-level sample floor for hitters.
func WithMinPitchesHitter(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.minPitchesHitter = n
		}
	}
}

// WithMinPitchesPitcher sets the pitch-level sample floor for pitchers.
func WithMinPitchesPitcher(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.minPitchesPitcher = n
		}
	}
}

// WithMinPlateAppearances sets the game-log fallback floor.
func WithMinPlateAppearances(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.minPlateApps = n
		}
	}
}
