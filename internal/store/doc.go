// Package store owns the persisted document collection.
//
// Persistence is a single named slot holding a serialized JSON array of
// record-shaped objects: arbitrary-key tolerant on read, canonical-key on
// write. The slot lives in a SQLite database opened with WAL mode, but the
// Slot interface keeps the document logic independent of the backing; tests
// use an in-memory slot.
//
// Every public Store operation is an atomic read-modify-write: load the
// full state, mutate, save the full state. A mutex serializes operations so
// no caller can observe intermediate state. There is exactly one writer by
// construction (a single local user), so no cross-process coordination is
// attempted beyond SQLite's own locking.
//
// Load re-runs every raw record through record.Normalize and writes the
// healed sequence back if anything changed. Schema evolution is detected
// structurally (presence/absence of keys), never via a version field.
package store
