// Package dedupe guards row loaders against double ingestion.
//
// Upstream ingestion delivers batches at-least-once; a replayed batch
// would silently inflate every denominator downstream. Loaders pass each
// row id through a Deduper and drop rows already seen.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 500_000

// Deduper records seen row IDs so each row is counted at most once.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true if the id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the current number of tracked ids.
	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus a FIFO ring for
// bounded eviction. When maxSize is zero or negative the set is
// unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper with configuration
// options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}

	return d
}

// SeenAndRecord atomically checks and records one row id.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		// Evict the oldest id once the ring wraps.
		if evicted := d.ring[d.next]; evicted != "" {
			delete(d.seen, evicted)
			d.size.Add(-1)
		}
		d.ring[d.next] = id
		d.next = (d.next + 1) % d.maxSize
	}

	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the current number of tracked ids.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
