package composite

import "errors"

// Sentinel kinds for composite scoring errors.
var (
	// ErrInvalidWeights marks a structurally invalid weight vector; it is
	// raised at construction and never recovered by normalizing.
	ErrInvalidWeights = errors.New("invalid weight vector")

	// ErrNoMetrics means none of the weighted metrics were present for a
	// player. Callers treat it as "no performance signal".
	ErrNoMetrics = errors.New("no weighted metrics present")
)
