package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dtslog/internal/query"
	"github.com/roach88/dtslog/internal/record"
	"github.com/roach88/dtslog/internal/testutil"
)

func memStore(t *testing.T) *Store {
	t.Helper()
	return New(NewMemorySlot(), WithGenerator(testutil.NewSequenceIDs("gen-")))
}

func TestStore_LoadEmpty(t *testing.T) {
	s := memStore(t)

	docs, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_AddAssignsID(t *testing.T) {
	s := memStore(t)

	added, err := s.Add(record.DocumentRecord{
		Kind:    record.KindForward,
		DTSNo:   "DTS-1",
		Details: "Hello\nWorld",
		Date:    "2024-01-05",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Hello\nWorld", docs[0].Details, "embedded newline preserved through storage")
	assert.Equal(t, added.ID, docs[0].ID)
}

func TestStore_AddKeepsSuppliedID(t *testing.T) {
	s := memStore(t)

	added, err := s.Add(record.DocumentRecord{ID: "mine", Kind: record.KindForward})
	require.NoError(t, err)
	assert.Equal(t, "mine", added.ID)
}

func TestStore_AddDeconflictsDuplicateID(t *testing.T) {
	s := memStore(t)

	first, err := s.Add(record.DocumentRecord{ID: "dup", Kind: record.KindForward, DTSNo: "one"})
	require.NoError(t, err)
	second, err := s.Add(record.DocumentRecord{ID: "dup", Kind: record.KindForward, DTSNo: "two"})
	require.NoError(t, err)

	assert.Equal(t, "dup", first.ID)
	assert.NotEqual(t, first.ID, second.ID, "second add with same id must get a fresh one")

	docs, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assertUniqueIDs(t, docs)
}

func TestStore_UpdateReplacesVerbatim(t *testing.T) {
	s := memStore(t)

	added, err := s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "old", Details: "old"})
	require.NoError(t, err)
	other, err := s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "keep"})
	require.NoError(t, err)

	updated := record.DocumentRecord{
		ID:      added.ID,
		Kind:    record.KindReceived,
		Details: "replaced entirely",
		Date:    "2024-02-02",
	}
	require.NoError(t, s.Update(updated))

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, updated, docs[0], "update is a full replace, not a merge")
	assert.Equal(t, other, docs[1], "other records unchanged")
}

func TestStore_UpdateMissingIDIsNoOp(t *testing.T) {
	s := memStore(t)

	added, err := s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "a"})
	require.NoError(t, err)

	require.NoError(t, s.Update(record.DocumentRecord{ID: "ghost", DTSNo: "b"}))

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, added, docs[0])
}

func TestStore_DeleteByID(t *testing.T) {
	s := memStore(t)

	a, err := s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "a"})
	require.NoError(t, err)
	_, err = s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "b"})
	require.NoError(t, err)

	removed, err := s.DeleteByID(a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b", docs[0].DTSNo)
}

func TestStore_DeleteIdempotent(t *testing.T) {
	s := memStore(t)

	a, err := s.Add(record.DocumentRecord{Kind: record.KindForward})
	require.NoError(t, err)

	removed, err := s.DeleteByID(a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteByID(a.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete of same id must be a no-op")

	docs, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_DeleteAll(t *testing.T) {
	s := memStore(t)

	a, _ := s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "a"})
	b, _ := s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "b"})
	_, _ = s.Add(record.DocumentRecord{Kind: record.KindForward, DTSNo: "c"})

	removed, err := s.DeleteAll([]string{a.ID, b.ID, "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "c", docs[0].DTSNo)
}

func TestStore_LoadHealsLegacyRecords(t *testing.T) {
	slot := NewMemorySlot()
	slot.Seed([]byte(`[
		{"dtsNo":"DTS-1","dateForwarded":"2023-01-01"},
		{"dtsNo":"DTS-2","dateForwarded":"2023-02-02"},
		{"id":"keep","kind":"received","fromOffice":"Registry","date":"2023-03-03"}
	]`))
	s := New(slot, WithGenerator(testutil.NewSequenceIDs("gen-")))

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// Legacy records got fresh distinct ids within the same load pass.
	assert.Equal(t, "gen-0001", docs[0].ID)
	assert.Equal(t, "gen-0002", docs[1].ID)
	assert.Equal(t, record.KindForward, docs[0].Kind)
	assert.Equal(t, "2023-01-01", docs[0].Date)
	assert.Equal(t, "keep", docs[2].ID)
	assertUniqueIDs(t, docs)

	// The healed sequence was written back canonically.
	payload, ok, err := slot.Read()
	require.NoError(t, err)
	require.True(t, ok)
	var raws []map[string]any
	require.NoError(t, json.Unmarshal(payload, &raws))
	assert.Equal(t, "gen-0001", raws[0]["id"])
	assert.NotContains(t, raws[0], "dateForwarded", "write-back uses canonical keys only")

	// A second load has nothing left to heal.
	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, docs, again)
}

func TestStore_LoadAvoidsCollidingWithLaterRecord(t *testing.T) {
	// A legacy record without an id must not be assigned the id of a
	// record appearing later in the same payload.
	slot := NewMemorySlot()
	slot.Seed([]byte(`[
		{"dtsNo":"legacy"},
		{"id":"gen-0001","kind":"forward","dtsNo":"taken"}
	]`))
	s := New(slot, WithGenerator(testutil.NewSequenceIDs("gen-")))

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "gen-0002", docs[0].ID)
	assertUniqueIDs(t, docs)
}

func TestStore_MergeCountsAndSkipsBlankRows(t *testing.T) {
	s := memStore(t)

	imported, err := s.Merge([]record.Partial{
		{DTSNo: "DTS-1", Details: "first"},
		{}, // entirely blank: skipped, not counted
		{Kind: "received", FromOffice: "Registry"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, record.KindForward, docs[0].Kind)
	assert.Equal(t, record.KindReceived, docs[1].Kind)
	assertUniqueIDs(t, docs)
}

func TestStore_MergeReusesFreeIDsOnly(t *testing.T) {
	s := memStore(t)
	existing, err := s.Add(record.DocumentRecord{ID: "taken", Kind: record.KindForward})
	require.NoError(t, err)

	imported, err := s.Merge([]record.Partial{
		{ID: "taken", Details: "collides"},
		{ID: "free", Details: "kept"},
		{ID: "free", Details: "collides with earlier row"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, imported)

	docs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, "taken", existing.ID)
	assert.Equal(t, "free", docs[2].ID)
	assertUniqueIDs(t, docs)
}

func TestStore_MergeEmptyWritesNothing(t *testing.T) {
	slot := NewMemorySlot()
	s := New(slot, WithGenerator(testutil.NewSequenceIDs("gen-")))

	imported, err := s.Merge([]record.Partial{{}, {Details: "  "}})
	require.NoError(t, err)
	assert.Equal(t, 0, imported)

	_, ok, err := slot.Read()
	require.NoError(t, err)
	assert.False(t, ok, "an all-blank import must not write the slot")
}

func TestStore_Filtered(t *testing.T) {
	s := memStore(t)
	_, _ = s.Add(record.DocumentRecord{Kind: record.KindForward, Details: "budget memo", Date: "2024-01-05"})
	_, _ = s.Add(record.DocumentRecord{Kind: record.KindReceived, Details: "budget reply", Date: "2024-01-06"})
	_, _ = s.Add(record.DocumentRecord{Kind: record.KindForward, Details: "payroll", Date: "2024-01-07"})

	docs, err := s.Filtered(record.KindForward, query.Filters{Text: "budget"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "budget memo", docs[0].Details)
}

func TestStore_SQLiteBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.db")
	d, err := Open(path)
	require.NoError(t, err)

	s := New(d.Slot(DefaultSlot))
	added, err := s.Add(record.DocumentRecord{Kind: record.KindForward, Details: "durable\nentry"})
	require.NoError(t, err)
	require.NoError(t, d.Close())

	d2, err := Open(path)
	require.NoError(t, err)
	defer d2.Close()

	docs, err := New(d2.Slot(DefaultSlot)).Load()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, added.ID, docs[0].ID)
	assert.Equal(t, "durable\nentry", docs[0].Details)
}

func assertUniqueIDs(t *testing.T, docs []record.DocumentRecord) {
	t.Helper()
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		assert.False(t, seen[d.ID], "duplicate id %q", d.ID)
		assert.NotEmpty(t, d.ID)
		seen[d.ID] = true
	}
}
