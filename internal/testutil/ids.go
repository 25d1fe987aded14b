// Package testutil provides deterministic identifier sources for tests.
//
// Production code generates record identifiers from wall time plus random
// bits, which makes golden-file comparison impossible. Tests swap in one of
// the generators here to get stable, predictable ids.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates "prefix0001", "prefix0002", ... in order.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDs creates a sequence generator with the given prefix.
func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

// Generate returns the next id in the sequence.
func (s *SequenceIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%04d", s.prefix, s.n)
}

// FixedIDs returns predetermined ids in order.
//
// This enables exact assertions on collision handling: tests can force the
// generator to emit a colliding id first and verify the retry.
//
// Panics when all ids are consumed. Running out means the test asked for
// more ids than it planned for, which is a test bug worth failing loudly on.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator that returns ids in the given order.
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

// Generate returns the next predetermined id.
func (f *FixedIDs) Generate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx >= len(f.ids) {
		panic(fmt.Sprintf("testutil: all %d fixed ids consumed", len(f.ids)))
	}
	id := f.ids[f.idx]
	f.idx++
	return id
}
