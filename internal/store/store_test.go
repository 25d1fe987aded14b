package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer d.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		d, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		d.Close()
	}

	d, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer d.Close()

	var name string
	err = d.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='slots'",
	).Scan(&name)
	if err != nil {
		t.Errorf("slots table not found after idempotent opens: %v", err)
	}
}

func TestOpen_EnablesForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var enabled int
	if err := d.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("get foreign_keys: %v", err)
	}
	if enabled != 1 {
		t.Errorf("foreign_keys = %d, want 1", enabled)
	}
}

func TestOpen_StampsSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer d.Close()

	var version int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("get user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestSlot_ReadMissing(t *testing.T) {
	d := openTestDB(t)
	slot := d.Slot("nothing-here")

	_, ok, err := slot.Read()
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if ok {
		t.Error("Read() of an unwritten slot reported ok=true")
	}
}

func TestSlot_WriteThenRead(t *testing.T) {
	d := openTestDB(t)
	slot := d.Slot(DefaultSlot)

	if err := slot.Write([]byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	payload, ok, err := slot.Read()
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if !ok {
		t.Fatal("Read() after Write() reported ok=false")
	}
	if string(payload) != `[{"id":"a"}]` {
		t.Errorf("payload = %q", payload)
	}
}

func TestSlot_WriteReplaces(t *testing.T) {
	d := openTestDB(t)
	slot := d.Slot(DefaultSlot)

	if err := slot.Write([]byte("first")); err != nil {
		t.Fatalf("first Write() failed: %v", err)
	}
	if err := slot.Write([]byte("second")); err != nil {
		t.Fatalf("second Write() failed: %v", err)
	}

	payload, _, err := slot.Read()
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(payload) != "second" {
		t.Errorf("payload = %q, want %q", payload, "second")
	}
}

func TestSlot_NamesAreIndependent(t *testing.T) {
	d := openTestDB(t)

	if err := d.Slot("a").Write([]byte("aaa")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := d.Slot("b").Write([]byte("bbb")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	payload, _, err := d.Slot("a").Read()
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(payload) != "aaa" {
		t.Errorf("slot a payload = %q", payload)
	}
}

func TestSlot_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	d1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := d1.Slot(DefaultSlot).Write([]byte("kept")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	d1.Close()

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer d2.Close()

	payload, ok, err := d2.Slot(DefaultSlot).Read()
	if err != nil || !ok {
		t.Fatalf("Read() after reopen: ok=%v err=%v", ok, err)
	}
	if string(payload) != "kept" {
		t.Errorf("payload = %q, want %q", payload, "kept")
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}
