package store

import "sync"

// Slot is a single named storage cell holding an opaque payload.
//
// Read returns ok=false when the slot has never been written. Write
// replaces the payload wholesale; last write wins.
type Slot interface {
	Read() (payload []byte, ok bool, err error)
	Write(payload []byte) error
}

// MemorySlot is an in-process Slot for tests and the scenario harness.
//
// Thread-safety: safe for concurrent use via internal mutex.
type MemorySlot struct {
	mu      sync.Mutex
	payload []byte
	written bool
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Seed pre-populates the slot, bypassing Write. Used by tests to simulate
// payloads left behind by older builds.
func (m *MemorySlot) Seed(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = append([]byte(nil), payload...)
	m.written = true
}

func (m *MemorySlot) Read() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.written {
		return nil, false, nil
	}
	return append([]byte(nil), m.payload...), true, nil
}

func (m *MemorySlot) Write(payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = append([]byte(nil), payload...)
	m.written = true
	return nil
}
