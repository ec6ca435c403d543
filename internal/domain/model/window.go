package model

import "time"

// Window is an inclusive observation date range. The zero value means
// "no data": callers must treat it as an empty window, not an error.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the window is empty.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Contains reports whether t falls inside the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	if w.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the window length in whole days.
func (w Window) Days() int {
	if w.IsZero() {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// SeasonBounds delimits one minor-league season.
type SeasonBounds struct {
	Year  int
	Start time.Time
	End   time.Time
}

// DefaultSeasonBounds returns the conventional minor-league calendar for a
// year: opening day in early April, final games in mid September.
func DefaultSeasonBounds(year int) SeasonBounds {
	return SeasonBounds{
		Year:  year,
		Start: time.Date(year, time.April, 4, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.September, 17, 0, 0, 0, 0, time.UTC),
	}
}
