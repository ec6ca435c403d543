package repository

import "github.com/scoutline/pennant/internal/domain/dedupe"

// PostgresOption applies a configuration option to the PostgresSource.
type PostgresOption func(*PostgresSource)

// WithPostgresDeduper replaces the constructor for the per-fetch row
// deduper.
func WithPostgresDeduper(newDeduper func() dedupe.Deduper) PostgresOption {
	return func(s *PostgresSource) {
		if newDeduper != nil {
			s.newDeduper = newDeduper
		}
	}
}

// FixtureOption applies a configuration option to the FixtureSource.
type FixtureOption func(*FixtureSource)

// WithFixtureDeduper replaces the constructor for the per-fetch row
// deduper.
func WithFixtureDeduper(newDeduper func() dedupe.Deduper) FixtureOption {
	return func(s *FixtureSource) {
		if newDeduper != nil {
			s.newDeduper = newDeduper
		}
	}
}
