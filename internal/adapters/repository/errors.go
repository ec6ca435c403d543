package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrInvalidLimit = errors.New("invalid standings limit")
	ErrNoStandings  = errors.New("no standings published")
	ErrBadFixture   = errors.New("malformed fixture file")
)
