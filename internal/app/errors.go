package engine

import "errors"

// Sentinel kinds for engine errors.
var (
	ErrEmptySnapshot = errors.New("snapshot has no players")
	ErrQueueFull     = errors.New("evaluation queue full")
)
