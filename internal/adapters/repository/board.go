package repository

import (
	"context"
	"sync"
	"time"

	"github.com/scoutline/pennant/internal/domain/model"
)

// Board retains the most recently published standings for TopN and
// per-player rank lookup. A publish replaces the previous run wholesale;
// nothing is carried across runs implicitly, which keeps stale windows
// from ever leaking into a lookup.
type Board struct {
	mu          sync.RWMutex
	runID       string
	publishedAt time.Time
	entries     []model.RankedPlayer
	unranked    []model.UnrankedPlayer
	indexByID   map[string]int
}

// NewBoard creates an empty standings board.
func NewBoard() *Board {
	return &Board{
		indexByID: make(map[string]int),
	}
}

// Publish replaces the board's contents with one run's output. The
// entries are assumed already ordered and ranked by the assembler.
func (b *Board) Publish(runID string, ranked []model.RankedPlayer, unranked []model.UnrankedPlayer) {
	index := make(map[string]int, len(ranked))
	for i := range ranked {
		index[ranked[i].PlayerID] = i
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.runID = runID
	b.publishedAt = time.Now().UTC()
	b.entries = ranked
	b.unranked = unranked
	b.indexByID = index
}

// RunID returns the id of the published run, empty before any publish.
func (b *Board) RunID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.runID
}

// TopN returns the first n standings entries.
func (b *Board) TopN(_ context.Context, n int) ([]model.RankedPlayer, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.runID == "" {
		return nil, ErrNoStandings
	}
	if n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]model.RankedPlayer, n)
	copy(out, b.entries[:n])
	return out, nil
}

// Rank returns the standings entry for one player.
func (b *Board) Rank(_ context.Context, playerID string) (model.RankedPlayer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.runID == "" {
		return model.RankedPlayer{}, ErrNoStandings
	}
	i, ok := b.indexByID[playerID]
	if !ok {
		return model.RankedPlayer{}, ErrNotFound
	}
	return b.entries[i], nil
}

// Unranked returns the players the published run could not score.
func (b *Board) Unranked(_ context.Context) []model.UnrankedPlayer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.UnrankedPlayer, len(b.unranked))
	copy(out, b.unranked)
	return out
}

// Count returns the number of ranked players on the board.
func (b *Board) Count(_ context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
