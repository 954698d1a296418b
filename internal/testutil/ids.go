// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"fmt"
	"sync"

	"github.com/talgya/loom/internal/store"
)

// IDSequence hands out deterministic entity ids for tests, replacing the
// random uuid ids used in production so fixtures and golden files stay
// stable across runs.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type IDSequence struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewIDSequence creates a sequence producing ids prefix-000001, prefix-000002
// and so on, in sorted-id processing order.
func NewIDSequence(prefix string) *IDSequence {
	return &IDSequence{prefix: prefix}
}

// Next returns the next id in the sequence.
func (g *IDSequence) Next() store.EntityID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return store.EntityID(fmt.Sprintf("%s-%06d", g.prefix, g.seq))
}

// Current returns the count of ids handed out so far.
func (g *IDSequence) Current() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence so a scenario can be replayed with identical
// ids.
func (g *IDSequence) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
