package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/dtslog/internal/query"
	"github.com/roach88/dtslog/internal/record"
)

// Store is the sole owner of the persisted document collection.
//
// All operations are load-mutate-save against the full collection and are
// serialized behind a mutex, so no interleaving call can observe an
// intermediate state. Insertion order is preserved across save/load.
type Store struct {
	mu   sync.Mutex
	slot Slot
	gen  record.Generator
}

// Option configures a Store.
type Option func(*Store)

// WithGenerator replaces the identifier source. Tests and the scenario
// harness use this for deterministic ids.
func WithGenerator(gen record.Generator) Option {
	return func(s *Store) { s.gen = gen }
}

// New creates a Store over the given slot.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{slot: slot, gen: record.TokenGenerator{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the raw persisted state, normalizes every record, writes the
// healed sequence back if anything changed, and returns it.
//
// Normalization shares one ids-seen set across the whole pass so multiple
// legacy records lacking ids cannot be assigned duplicates within a single
// load.
func (s *Store) Load() ([]record.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]record.DocumentRecord, error) {
	payload, ok, err := s.slot.Read()
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if !ok || len(payload) == 0 {
		return []record.DocumentRecord{}, nil
	}

	var raws []record.Raw
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, fmt.Errorf("load documents: decode slot payload: %w", err)
	}

	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		if id, isStr := raw["id"].(string); isStr && id != "" {
			seen[id] = struct{}{}
		}
	}

	docs := make([]record.DocumentRecord, 0, len(raws))
	healed := false
	for _, raw := range raws {
		rec, changed, err := record.Normalize(raw, s.gen, seen)
		if err != nil {
			return nil, fmt.Errorf("load documents: %w", err)
		}
		healed = healed || changed
		docs = append(docs, rec)
	}

	if healed {
		if err := s.saveLocked(docs); err != nil {
			return nil, err
		}
		slog.Debug("healed legacy records on load", "records", len(docs))
	}

	return docs, nil
}

func (s *Store) saveLocked(docs []record.DocumentRecord) error {
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	if err := s.slot.Write(payload); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	return nil
}

// Add appends a record to the collection and returns it as stored.
//
// If the incoming record has no id, or its id collides with an existing
// one, a fresh unique id is assigned. Missing non-id fields are never a
// reason to reject; required-field validation is the caller's concern.
func (s *Store) Add(rec record.DocumentRecord) (record.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadLocked()
	if err != nil {
		return record.DocumentRecord{}, err
	}

	ids := idSet(docs)
	if _, taken := ids[rec.ID]; rec.ID == "" || taken {
		id, err := record.GenerateUnique(s.gen, ids)
		if err != nil {
			return record.DocumentRecord{}, fmt.Errorf("add document: %w", err)
		}
		rec.ID = id
	}

	docs = append(docs, rec)
	if err := s.saveLocked(docs); err != nil {
		return record.DocumentRecord{}, err
	}
	return rec, nil
}

// Update replaces the entry whose id matches rec.ID with rec verbatim.
// No partial merge is attempted. A missing id is a silent no-op: the
// caller contract is that edits always target an existing record.
func (s *Store) Update(rec record.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i, d := range docs {
		if d.ID == rec.ID {
			docs[i] = rec
			return s.saveLocked(docs)
		}
	}
	return nil
}

// DeleteByID removes at most one entry with the given id and reports
// whether a removal occurred. Deleting an absent id is not an error;
// the operation is idempotent.
func (s *Store) DeleteByID(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(id)
}

func (s *Store) deleteLocked(id string) (bool, error) {
	docs, err := s.loadLocked()
	if err != nil {
		return false, err
	}

	for i, d := range docs {
		if d.ID == id {
			docs = append(docs[:i], docs[i+1:]...)
			return true, s.saveLocked(docs)
		}
	}
	return false, nil
}

// DeleteAll removes every listed id and returns the number actually
// removed. Absent ids are skipped silently.
func (s *Store) DeleteAll(ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadLocked()
	if err != nil {
		return 0, err
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := docs[:0]
	removed := 0
	for _, d := range docs {
		if _, hit := drop[d.ID]; hit {
			removed++
			continue
		}
		kept = append(kept, d)
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, s.saveLocked(kept)
}

// Merge bulk-ingests partially-mapped rows from a CSV import and returns
// the number of rows actually imported.
//
// Per row: a supplied id is reused only when not already taken, otherwise
// a fresh one is generated; the kind defaults to forward unless the row
// says received; rows blank across every mapped field are skipped and not
// counted. All appended records land in one persisted write at the end.
func (s *Store) Merge(rows []record.Partial) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.loadLocked()
	if err != nil {
		return 0, err
	}

	ids := idSet(docs)
	imported := 0
	for _, row := range rows {
		if row.Blank() {
			continue
		}

		id := row.ID
		if _, taken := ids[id]; id == "" || taken {
			id, err = record.GenerateUnique(s.gen, ids)
			if err != nil {
				return 0, fmt.Errorf("merge documents: %w", err)
			}
		} else {
			ids[id] = struct{}{}
		}

		docs = append(docs, record.DocumentRecord{
			ID:         id,
			Kind:       record.ParseKind(row.Kind),
			DTSNo:      row.DTSNo,
			FromOffice: row.FromOffice,
			Details:    row.Details,
			ReceivedBy: row.ReceivedBy,
			ToOffice:   row.ToOffice,
			Date:       row.Date,
		})
		imported++
	}

	if imported == 0 {
		return 0, nil
	}
	if err := s.saveLocked(docs); err != nil {
		return 0, err
	}
	slog.Debug("merged imported rows", "imported", imported, "total", len(docs))
	return imported, nil
}

// Filtered loads the collection and returns the records matching the view
// and filters, preserving original order.
func (s *Store) Filtered(view record.Kind, f query.Filters) ([]record.DocumentRecord, error) {
	docs, err := s.Load()
	if err != nil {
		return nil, err
	}
	return query.Filter(docs, view, f), nil
}

func idSet(docs []record.DocumentRecord) map[string]struct{} {
	ids := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		ids[d.ID] = struct{}{}
	}
	return ids
}
