// Package record defines the document record data model and the
// normalization rules that heal records persisted by older schema versions.
//
// The canonical entity is DocumentRecord. Raw persisted data is tolerated
// with arbitrary keys on read (legacy records may carry a dateForwarded
// field, or lack id/kind entirely); Normalize narrows a Raw map into a
// canonical DocumentRecord and reports whether anything had to change.
//
// Normalization is idempotent: normalizing an already-normalized record is
// a no-op. The store relies on this to re-normalize on every load and heal
// legacy data incrementally.
//
// Identifier generation lives here too. Generated identifiers are short
// opaque tokens, a time-based prefix plus a random suffix, deconflicted
// against the set of identifiers already in use.
package record
