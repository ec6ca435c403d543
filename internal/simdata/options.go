package simdata

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source so generation is reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithSeason sets the generated season.
func WithSeason(season int) Option {
	return func(g *Generator) {
		if season > 0 {
			g.season = season
		}
	}
}

// WithLevels sets the levels to populate.
func WithLevels(levels []string) Option {
	return func(g *Generator) {
		if len(levels) > 0 {
			g.levels = levels
		}
	}
}

// WithPlayersPerLevel sets the population size per level.
func WithPlayersPerLevel(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.playersPerLevel = n
		}
	}
}
